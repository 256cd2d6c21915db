package engine

import (
	"testing"
	"time"

	"github.com/lixenwraith/crosswalk/event"
)

type recordingSystem struct {
	name     string
	priority int
	log      *[]string
}

func (r *recordingSystem) Name() string  { return r.name }
func (r *recordingSystem) Priority() int { return r.priority }
func (r *recordingSystem) Update(time.Duration) {
	*r.log = append(*r.log, r.name)
}

func TestWorldTickOrder(t *testing.T) {
	w := NewWorld(1)
	var log []string

	w.AddSystem(&recordingSystem{name: "late", priority: 50, log: &log})
	w.AddSystem(&recordingSystem{name: "early", priority: 10, log: &log})
	w.Router.Register(event.HandlerFunc{Type: event.EventButtonPress, Fn: func(event.GameEvent) {
		log = append(log, "event")
	}})
	w.Scheduler.Start("task", NewSequence(Wait(tick), Do(func() { log = append(log, "task") })))

	w.Emit(event.EventButtonPress, nil)
	w.Tick(tick)

	want := []string{"event", "task", "early", "late"}
	if len(log) != len(want) {
		t.Fatalf("Expected %v, got %v", want, log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("Position %d: expected %s, got %s", i, want[i], log[i])
		}
	}
	if got := w.Status.Ints.Get("engine.ticks").Load(); got != 1 {
		t.Errorf("Expected 1 tick recorded, got %d", got)
	}
}

func TestWorldRandRangeBounds(t *testing.T) {
	w := NewWorld(7)
	lo, hi := 1500*time.Millisecond, 3500*time.Millisecond
	for i := 0; i < 1000; i++ {
		d := w.RandRange(lo, hi)
		if d < lo || d > hi {
			t.Fatalf("RandRange out of bounds: %v", d)
		}
	}
}
