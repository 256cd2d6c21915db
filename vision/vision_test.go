package vision

import (
	"testing"
	"time"

	"github.com/lixenwraith/crosswalk/engine"
	"github.com/lixenwraith/crosswalk/event"
	"github.com/lixenwraith/crosswalk/parameter"
	"github.com/lixenwraith/crosswalk/status"
)

const frame = 50 * time.Millisecond

func TestReduceBaseRadiusFloor(t *testing.T) {
	tn := NewTunnel(status.NewRegistry())
	tn.ReduceBaseRadius(0.02)
	if got := tn.Base(); got < 0.1599 || got > 0.1601 {
		t.Errorf("Expected 0.16, got %f", got)
	}
	for i := 0; i < 20; i++ {
		tn.ReduceBaseRadius(0.02)
	}
	if tn.Base() != parameter.TunnelMinRadius {
		t.Errorf("Expected floor %f, got %f", parameter.TunnelMinRadius, tn.Base())
	}
	tn.ReduceBaseRadius(-1)
	if tn.Base() != parameter.TunnelMinRadius {
		t.Error("Expected negative reductions ignored")
	}
}

func TestRadiusSettlesToBase(t *testing.T) {
	tn := NewTunnel(status.NewRegistry())
	tn.ReduceBaseRadius(0.04)
	for i := 0; i < 40; i++ {
		tn.Step(GestureState{}, frame)
	}
	if d := tn.Radius() - tn.Base(); d > 1e-3 || d < -1e-3 {
		t.Errorf("Expected radius near base %f, got %f", tn.Base(), tn.Radius())
	}
}

func TestStretchWidensWithinLimit(t *testing.T) {
	tn := NewTunnel(status.NewRegistry())
	for i := 0; i < 40; i++ {
		tn.Step(GestureState{Held: true, Trying: true, Stretch: 1}, frame)
	}
	if tn.Radius() <= tn.Base() {
		t.Errorf("Expected wider than base, got %f", tn.Radius())
	}
	if tn.Radius() > tn.Base()+parameter.TunnelMaxExtraRadius {
		t.Errorf("Expected at most base+extra, got %f", tn.Radius())
	}
	if tn.Strain() < 0.9 {
		t.Errorf("Expected strain near 1, got %f", tn.Strain())
	}

	tn.Step(GestureState{Released: true}, frame)
	if tn.Snap() <= 0 || tn.Snap() >= 1 {
		t.Errorf("Expected a decaying snap impulse, got %f", tn.Snap())
	}
}

func TestInactiveTunnelShowsFullView(t *testing.T) {
	tn := NewTunnel(status.NewRegistry())
	tn.SetActive(false)
	if tn.Radius() != 1 {
		t.Errorf("Expected full view, got %f", tn.Radius())
	}
}

func TestGestureRisingEdge(t *testing.T) {
	g := &Gesture{}
	g.SetDistance(0.4)

	tests := []struct {
		name    string
		left    bool
		right   bool
		dist    float64
		trying  bool
		rising  bool
		release bool
	}{
		{"one grip", true, false, 0.6, false, false, false},
		{"both grips at rest", true, true, 0.6, false, false, false},
		{"small stretch below threshold", true, true, 0.6 + 0.004, false, false, false},
		{"stretch", true, true, 0.7, true, true, false},
		{"keep stretching", true, true, 0.8, true, false, false},
		{"release", false, true, 0.8, false, false, true},
		{"regrab at new distance", true, true, 0.8, false, false, false},
		{"stretch again", true, true, 0.9, true, true, false},
	}

	for _, tt := range tests {
		g.SetGrips(tt.left, tt.right)
		g.SetDistance(tt.dist)
		s := g.Sample()
		if s.Trying != tt.trying || s.Rising != tt.rising || s.Released != tt.release {
			t.Errorf("%s: expected trying=%t rising=%t released=%t, got %+v", tt.name, tt.trying, tt.rising, tt.release, s)
		}
	}
}

type phase struct{ try bool }

func (p *phase) InTryExpand() bool { return p.try }

func TestDriverEmitsAttempt(t *testing.T) {
	w := engine.NewWorld(1)
	d := NewDriver(w, NewTunnel(w.Status))
	d.SetPhase(&phase{try: true})
	w.Router.Register(d)
	w.AddSystem(d)

	attempts := 0
	w.Router.Register(event.HandlerFunc{Type: event.EventExpandAttempted, Fn: func(event.GameEvent) { attempts++ }})

	w.Tick(frame)
	if d.Frame().Arrows != 1 || d.Frame().Glow != 0.25 {
		t.Errorf("Expected hint arrows while asked to stretch, got %+v", d.Frame())
	}

	w.Emit(event.EventHandDistance, &event.HandDistancePayload{Meters: 0.3})
	w.Emit(event.EventGripChange, &event.GripPayload{Left: true, Right: true})
	w.Tick(frame)
	w.Emit(event.EventHandDistance, &event.HandDistancePayload{Meters: 0.5})
	for i := 0; i < 5; i++ {
		w.Tick(frame)
	}

	if attempts != 1 {
		t.Errorf("Expected 1 attempt event, got %d", attempts)
	}
	if d.Frame().Arrows != 0 {
		t.Error("Expected arrows hidden while trying")
	}
}
