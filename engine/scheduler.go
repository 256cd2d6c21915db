package engine

import (
	"time"
)

// Task is a cooperative unit of work advanced once per tick
// Tick runs until the task's next suspension point and reports completion
type Task interface {
	Tick(now time.Duration) (done bool)
}

// aborter is implemented by tasks that must stop mid-tick when cancelled
type aborter interface {
	abort()
}

// Handle refers to a started task
type Handle struct {
	name string
	done bool
	task Task
}

// Name returns the label given at Start
func (h *Handle) Name() string {
	if h == nil {
		return ""
	}
	return h.name
}

// Running reports whether the task is still scheduled
func (h *Handle) Running() bool {
	return h != nil && !h.done
}

// Cancel stops the task immediately; it will not tick again
func (h *Handle) Cancel() {
	if h == nil || h.done {
		return
	}
	h.done = true
	if a, ok := h.task.(aborter); ok {
		a.abort()
	}
}

// Scheduler owns simulation time and advances cooperative tasks
// Single-threaded: all calls happen from the simulation tick
type Scheduler struct {
	now   time.Duration
	tasks []*Handle
}

// NewScheduler creates a scheduler at time zero
func NewScheduler() *Scheduler {
	return &Scheduler{
		tasks: make([]*Handle, 0, 8),
	}
}

// Now returns simulation time since the scheduler was created
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Start schedules a task and runs it immediately up to its first suspension point
// A task that completes synchronously is never queued
func (s *Scheduler) Start(name string, t Task) *Handle {
	h := &Handle{name: name, task: t}
	if t.Tick(s.now) {
		h.done = true
		return h
	}
	if !h.done {
		s.tasks = append(s.tasks, h)
	}
	return h
}

// Advance moves simulation time forward by dt and ticks every running task in start order
// Tasks started during this call were already run by Start and are not ticked again
func (s *Scheduler) Advance(dt time.Duration) {
	if dt > 0 {
		s.now += dt
	}

	n := len(s.tasks)
	for i := 0; i < n; i++ {
		h := s.tasks[i]
		if h.done {
			continue
		}
		if h.task.Tick(s.now) {
			h.done = true
		}
	}

	// Compact finished tasks, keeping order
	live := s.tasks[:0]
	for _, h := range s.tasks {
		if !h.done {
			live = append(live, h)
		}
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
}

// Len returns the number of running tasks
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

// Every is a repeating timer task firing fn after each interval
// interval is sampled again after every firing, so it may be randomized
type Every struct {
	interval func() time.Duration
	fn       func()
	next     time.Duration
	started  bool
	stopped  bool
}

// NewEvery creates a repeating task; the first firing happens one interval after start
func NewEvery(interval func() time.Duration, fn func()) *Every {
	return &Every{interval: interval, fn: fn}
}

func (e *Every) Tick(now time.Duration) bool {
	if e.stopped {
		return true
	}
	if !e.started {
		e.started = true
		e.next = now + e.interval()
		return false
	}
	for !e.stopped && now >= e.next {
		e.fn()
		e.next += e.interval()
	}
	return e.stopped
}

func (e *Every) abort() { e.stopped = true }
