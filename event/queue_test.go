package event

import (
	"sync"
	"testing"

	"github.com/lixenwraith/crosswalk/parameter"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	q.Emit(EventButtonPress)
	q.Push(GameEvent{Type: EventPlayerMove, Payload: &PlayerMovePayload{DX: 1}})
	q.Emit(EventSceneEntered)

	got := q.Consume()
	want := []EventType{EventButtonPress, EventPlayerMove, EventSceneEntered}
	if len(got) != len(want) {
		t.Fatalf("Expected %d events, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Type != want[i] {
			t.Errorf("Event %d: expected %v, got %v", i, want[i], got[i].Type)
		}
	}
	if q.Consume() != nil {
		t.Error("Expected empty queue after consume")
	}
}

func TestQueueOverflowDropsOldest(t *testing.T) {
	q := NewQueue()
	for i := 0; i < parameter.EventQueueSize+5; i++ {
		q.Push(GameEvent{Type: EventPlayerTurn, Payload: i})
	}
	got := q.Consume()
	if len(got) != parameter.EventQueueSize {
		t.Fatalf("Expected %d events, got %d", parameter.EventQueueSize, len(got))
	}
	if first := got[0].Payload.(int); first != 5 {
		t.Errorf("Expected oldest surviving payload 5, got %d", first)
	}
	if q.Dropped() != 5 {
		t.Errorf("Expected 5 dropped, got %d", q.Dropped())
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewQueue()
	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				q.Emit(EventButtonPress)
			}
		}()
	}
	wg.Wait()
	if n := len(q.Consume()); n != 80 {
		t.Errorf("Expected 80 events, got %d", n)
	}
}

func TestRouterDispatchOrder(t *testing.T) {
	q := NewQueue()
	r := NewRouter(q)
	var order []string
	r.Register(HandlerFunc{Type: EventButtonPress, Fn: func(GameEvent) { order = append(order, "a") }})
	r.Register(HandlerFunc{Type: EventButtonPress, Fn: func(GameEvent) { order = append(order, "b") }})

	q.Emit(EventButtonPress)
	q.Emit(EventGripChange) // No handler
	if n := r.DispatchAll(); n != 2 {
		t.Errorf("Expected 2 dispatched, got %d", n)
	}
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("Expected [a b], got %v", order)
	}
}

func TestLookupRoundTrip(t *testing.T) {
	for et := EventTick; et < eventTypeCount; et++ {
		got, ok := Lookup(et.String())
		if !ok || got != et {
			t.Errorf("Lookup(%q): expected %v, got %v (ok=%v)", et.String(), et, got, ok)
		}
	}
}
