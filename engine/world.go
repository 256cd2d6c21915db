package engine

import (
	"math/rand"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/crosswalk/core"
	"github.com/lixenwraith/crosswalk/event"
	"github.com/lixenwraith/crosswalk/status"
)

// System is a per-tick participant of the scene
type System interface {
	Name() string
	Priority() int
	Update(dt time.Duration)
}

// World is the explicitly owned scene context handed to every component at construction
// All mutation happens inside Tick on a single goroutine; the mutex only fences the front end
type World struct {
	mu sync.Mutex

	Scheduler *Scheduler
	Status    *status.Registry
	Events    *event.Queue
	Router    *event.Router
	Rand      *rand.Rand
	Entities  core.Allocator

	systems []System

	statTicks  *atomic.Int64
	statEvents *atomic.Int64
}

// NewWorld creates a world with a seeded random source
func NewWorld(seed int64) *World {
	queue := event.NewQueue()
	reg := status.NewRegistry()
	return &World{
		Scheduler:  NewScheduler(),
		Status:     reg,
		Events:     queue,
		Router:     event.NewRouter(queue),
		Rand:       rand.New(rand.NewSource(seed)),
		systems:    make([]System, 0, 8),
		statTicks:  reg.Ints.Get("engine.ticks"),
		statEvents: reg.Ints.Get("engine.events"),
	}
}

// AddSystem registers a system; systems update in ascending priority, ties in registration order
func (w *World) AddSystem(s System) {
	w.systems = append(w.systems, s)
	sort.SliceStable(w.systems, func(i, j int) bool {
		return w.systems[i].Priority() < w.systems[j].Priority()
	})
}

// Systems returns the registered systems in update order
func (w *World) Systems() []System {
	return w.systems
}

// Now returns simulation time
func (w *World) Now() time.Duration {
	return w.Scheduler.Now()
}

// Tick runs one frame: queued events, cooperative tasks, then systems in priority order
func (w *World) Tick(dt time.Duration) {
	n := w.Router.DispatchAll()
	w.statEvents.Add(int64(n))

	w.Scheduler.Advance(dt)

	for _, s := range w.systems {
		s.Update(dt)
	}

	w.statTicks.Add(1)
}

// Emit queues an event for dispatch at the start of the next tick
func (w *World) Emit(t event.EventType, payload any) {
	w.Events.Push(event.GameEvent{Type: t, Payload: payload})
}

// RandRange returns a uniform duration in [lo, hi]
func (w *World) RandRange(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(w.Rand.Int63n(int64(hi-lo)+1))
}

// RandFloat returns a uniform float in [lo, hi)
func (w *World) RandFloat(lo, hi float64) float64 {
	return lo + w.Rand.Float64()*(hi-lo)
}

// RunSafe executes fn while holding the world lock
func (w *World) RunSafe(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn()
}

// Lock acquires the world lock
func (w *World) Lock() {
	w.mu.Lock()
}

// Unlock releases the world lock
func (w *World) Unlock() {
	w.mu.Unlock()
}
