package engine

import (
	"time"
)

type stepKind uint8

const (
	stepDo stepKind = iota
	stepWait
	stepUntil
	stepPoll
	stepTween
	stepAt
)

// Step is one suspension-aware instruction of a Sequence
type Step struct {
	kind      stepKind
	fn        func()
	cond      func() bool
	poll      func(elapsed time.Duration) bool
	tween     func(t float64)
	at        func() time.Duration
	dur       time.Duration // Wait and Tween length, Until and Poll timeout (0 = unbounded)
	onTimeout func()
}

// Do runs fn and continues within the same tick
func Do(fn func()) Step {
	return Step{kind: stepDo, fn: fn}
}

// Wait suspends for d of simulation time
func Wait(d time.Duration) Step {
	return Step{kind: stepWait, dur: d}
}

// WaitUntil suspends until cond holds, checked every tick
// A positive timeout ends the wait without the condition
func WaitUntil(cond func() bool, timeout time.Duration) Step {
	return Step{kind: stepUntil, cond: cond, dur: timeout}
}

// Poll calls fn every tick, starting immediately, until it returns true
// fn receives the time spent in this step; a positive timeout bounds the loop
func Poll(fn func(elapsed time.Duration) bool, timeout time.Duration) Step {
	return Step{kind: stepPoll, poll: fn, dur: timeout}
}

// Tween calls fn every tick with progress in [0, 1] over d, ending with exactly 1
func Tween(d time.Duration, fn func(t float64)) Step {
	return Step{kind: stepTween, tween: fn, dur: d}
}

// At suspends until the absolute simulation time returned by deadline
// deadline is read every tick, so it may move while the step waits
func At(deadline func() time.Duration) Step {
	return Step{kind: stepAt, at: deadline}
}

// OnTimeout attaches a callback fired when a WaitUntil or Poll step times out
func (s Step) OnTimeout(fn func()) Step {
	s.onTimeout = fn
	return s
}

// Sequence runs steps in order as an explicit state machine
// Timed steps use virtual deadlines measured from the previous step's end,
// so chained waits never accumulate tick quantization drift
type Sequence struct {
	steps   []Step
	idx     int
	started bool
	entered bool

	cursor    time.Duration // Virtual time the current step began
	stepStart time.Duration
	stopped   bool
}

// NewSequence creates a sequence from steps
func NewSequence(steps ...Step) *Sequence {
	return &Sequence{steps: steps}
}

// Tick advances through every step that can complete at now
func (q *Sequence) Tick(now time.Duration) bool {
	if !q.started {
		q.started = true
		q.cursor = now
	}

	for q.idx < len(q.steps) {
		if q.stopped {
			return true
		}

		st := &q.steps[q.idx]
		if !q.entered {
			q.entered = true
			q.stepStart = q.cursor
		}

		switch st.kind {
		case stepDo:
			if st.fn != nil {
				st.fn()
			}
			q.next(q.stepStart)

		case stepWait:
			deadline := q.stepStart + st.dur
			if now < deadline {
				return false
			}
			q.next(deadline)

		case stepUntil:
			if st.cond == nil || st.cond() {
				q.next(maxDuration(q.stepStart, now))
				continue
			}
			if q.timedOut(st, now) {
				continue
			}
			return false

		case stepPoll:
			if st.poll == nil || st.poll(now-q.stepStart) {
				q.next(maxDuration(q.stepStart, now))
				continue
			}
			if q.timedOut(st, now) {
				continue
			}
			return false

		case stepAt:
			deadline := q.stepStart
			if st.at != nil {
				deadline = maxDuration(deadline, st.at())
			}
			if now < deadline {
				return false
			}
			q.next(deadline)

		case stepTween:
			deadline := q.stepStart + st.dur
			if now >= deadline || st.dur <= 0 {
				if st.tween != nil {
					st.tween(1)
				}
				q.next(deadline)
				continue
			}
			if st.tween != nil {
				st.tween(float64(now-q.stepStart) / float64(st.dur))
			}
			return false
		}
	}
	return true
}

// Done reports whether every step has run or the sequence was cancelled
func (q *Sequence) Done() bool {
	return q.stopped || q.idx >= len(q.steps)
}

func (q *Sequence) timedOut(st *Step, now time.Duration) bool {
	if st.dur <= 0 {
		return false
	}
	deadline := q.stepStart + st.dur
	if now < deadline {
		return false
	}
	if st.onTimeout != nil {
		st.onTimeout()
	}
	q.next(deadline)
	return true
}

func (q *Sequence) next(end time.Duration) {
	q.cursor = end
	q.idx++
	q.entered = false
}

func (q *Sequence) abort() { q.stopped = true }

func maxDuration(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}
