package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/crosswalk/core"
)

// Runner drives World.Tick on a fixed interval in real time
// Pause-aware; catches up at most MaxLag before resynchronizing its deadline
type Runner struct {
	world    *World
	clock    *PausableClock
	interval time.Duration
	maxLag   time.Duration

	nextDeadline time.Duration
	tickCount    atomic.Uint64

	mu       sync.Mutex
	stopChan chan struct{} // nil while stopped
	wg       sync.WaitGroup

	// Signals the front end that a tick finished
	updateDone chan struct{}
}

// NewRunner creates a runner; the returned channel receives a token after every tick
func NewRunner(world *World, clock *PausableClock, interval, maxLag time.Duration) (*Runner, <-chan struct{}) {
	updateDone := make(chan struct{}, 1)
	return &Runner{
		world:      world,
		clock:      clock,
		interval:   interval,
		maxLag:     maxLag,
		updateDone: updateDone,
	}, updateDone
}

// Start begins the loop; calling it while running is a no-op
// A stopped runner may be started again
func (r *Runner) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopChan != nil {
		return
	}
	stop := make(chan struct{})
	r.stopChan = stop
	r.wg.Add(1)
	core.Go(func() { r.loop(stop) })
}

// Stop halts the loop and waits for it to exit; stopping an idle runner is a no-op
func (r *Runner) Stop() {
	r.mu.Lock()
	stop := r.stopChan
	r.stopChan = nil
	r.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	r.wg.Wait()
}

// Running reports whether the loop is active
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopChan != nil
}

// Pause freezes scene time
func (r *Runner) Pause() { r.clock.Pause() }

// Resume continues scene time
func (r *Runner) Resume() { r.clock.Resume() }

// Paused reports whether scene time is frozen
func (r *Runner) Paused() bool { return r.clock.IsPaused() }

// TogglePause flips the pause state
func (r *Runner) TogglePause() {
	if r.clock.IsPaused() {
		r.clock.Resume()
	} else {
		r.clock.Pause()
	}
}

// Ticks returns the number of ticks executed
func (r *Runner) Ticks() uint64 {
	return r.tickCount.Load()
}

func (r *Runner) loop(stop <-chan struct{}) {
	defer r.wg.Done()

	r.nextDeadline = r.clock.Elapsed() + r.interval

	timer := time.NewTimer(r.interval)
	defer timer.Stop()

	for {
		var sleep time.Duration

		if r.clock.IsPaused() {
			// Longer sleep while paused to save CPU
			sleep = r.interval * 2
		} else {
			now := r.clock.Elapsed()
			if now >= r.nextDeadline {
				r.step()

				r.nextDeadline += r.interval
				if now-r.nextDeadline > r.maxLag {
					r.nextDeadline = now + r.interval
				}
			}
			sleep = r.nextDeadline - r.clock.Elapsed()
		}

		if sleep < 0 {
			sleep = 0
		}
		timer.Reset(sleep)
		select {
		case <-timer.C:
		case <-stop:
			return
		}
	}
}

// step runs one fixed-interval tick under the world lock
func (r *Runner) step() {
	r.world.RunSafe(func() {
		r.world.Tick(r.interval)
	})
	r.tickCount.Add(1)

	select {
	case r.updateDone <- struct{}{}:
	default:
	}
}
