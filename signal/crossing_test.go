package signal

import (
	"testing"

	"github.com/lixenwraith/crosswalk/engine"
	"github.com/lixenwraith/crosswalk/event"
	"github.com/lixenwraith/crosswalk/vmath"
	"github.com/lixenwraith/crosswalk/zone"
)

type spot struct{ p vmath.Vec3F }

func (s *spot) Position() vmath.Vec3F { return s.p }

type countingRequester struct{ n int }

func (r *countingRequester) RequestCrossing() bool { r.n++; return r.n == 1 }

func playerAt(p *spot) *zone.Collider {
	return zone.NewCollider("player", p, vmath.Vec3F{Y: 0.9}, vmath.Vec3F{X: 0.3, Y: 0.9, Z: 0.3}, zone.LayerPlayer, false)
}

func TestCrossingZoneOccupancy(t *testing.T) {
	tr := zone.NewTracker()
	cz := NewCrossingZone(vmath.Vec3F{X: 50, Y: 1}, vmath.Vec3F{X: 2, Y: 1, Z: 4})
	tr.Watch(cz.Collider, cz)

	pos := &spot{p: vmath.Vec3F{X: 50, Z: -8}}
	tr.Add(playerAt(pos))
	car := zone.NewCollider("car", nil, vmath.Vec3F{X: 50, Y: 0.75}, vmath.Vec3F{X: 2, Y: 0.75, Z: 1}, zone.LayerVehicleBody, false)
	tr.Add(car)

	tr.Update(0)
	if cz.PlayerInside() {
		t.Error("Expected vehicles not to count as occupants")
	}

	pos.p.Z = 0
	tr.Update(0)
	if !cz.PlayerInside() {
		t.Error("Expected player inside")
	}

	pos.p.Z = 8
	tr.Update(0)
	if cz.PlayerInside() {
		t.Error("Expected player outside after exit")
	}
}

func TestButtonReach(t *testing.T) {
	w := engine.NewWorld(1)
	req := &countingRequester{}
	pos := &spot{p: vmath.Vec3F{X: 10}}
	b := NewButton(w, req, pos, vmath.Vec3F{X: 0, Y: 1.2}, 1.5)
	w.Router.Register(b)
	pressed := 0
	w.Router.Register(event.HandlerFunc{Type: event.EventCrosswalkPressed, Fn: func(event.GameEvent) { pressed++ }})

	w.Emit(event.EventButtonPress, nil)
	w.Tick(frame)
	w.Tick(frame)
	if req.n != 0 || pressed != 0 {
		t.Errorf("Expected out-of-reach press ignored, got %d requests", req.n)
	}

	pos.p = vmath.Vec3F{X: 1}
	w.Emit(event.EventButtonPress, nil)
	w.Tick(frame)
	w.Tick(frame)
	if req.n != 1 {
		t.Errorf("Expected 1 request, got %d", req.n)
	}
	if pressed != 1 {
		t.Errorf("Expected scenario notified once, got %d", pressed)
	}
}

func TestButtonWithoutSignal(t *testing.T) {
	w := engine.NewWorld(1)
	b := NewButton(w, nil, nil, vmath.Vec3F{}, 1)
	b.Press()
	if w.Events.Len() != 0 {
		t.Error("Expected no notification without a signal controller")
	}
}

func TestZoneRequest(t *testing.T) {
	req := &countingRequester{}
	zr := NewZoneRequest(req, vmath.Vec3F{}, vmath.Vec3F{X: 1, Y: 1, Z: 1})
	zr.OnZoneEnter(zone.NewCollider("car", nil, vmath.Vec3F{}, vmath.Vec3F{X: 1}, zone.LayerVehicleBody, false))
	zr.OnZoneEnter(playerAt(&spot{}))
	zr.OnZoneEnter(playerAt(&spot{}))
	if req.n != 2 {
		t.Errorf("Expected every player entry to request, got %d", req.n)
	}
}
