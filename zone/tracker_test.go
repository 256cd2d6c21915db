package zone

import (
	"testing"

	"github.com/lixenwraith/crosswalk/vmath"
)

type point struct{ p vmath.Vec3F }

func (p *point) Position() vmath.Vec3F { return p.p }

type recorder struct {
	events []string
}

func (r *recorder) OnZoneEnter(c *Collider) { r.events = append(r.events, "enter:"+c.Owner.(string)) }
func (r *recorder) OnZoneStay(c *Collider)  { r.events = append(r.events, "stay:"+c.Owner.(string)) }
func (r *recorder) OnZoneExit(c *Collider)  { r.events = append(r.events, "exit:"+c.Owner.(string)) }

func box(h float64) vmath.Vec3F { return vmath.Vec3F{X: h, Y: h, Z: h} }

func TestTrackerEnterStayExit(t *testing.T) {
	tr := NewTracker()
	rec := &recorder{}
	area := NewCollider("area", nil, vmath.Vec3F{}, box(1), LayerArea, true)
	tr.Watch(area, rec)

	pos := &point{p: vmath.Vec3F{X: 5}}
	body := NewCollider("car", pos, vmath.Vec3F{}, box(0.5), LayerVehicleBody, false)
	tr.Add(body)

	tr.Update(0)
	pos.p.X = 0.5
	tr.Update(0)
	tr.Update(0)
	pos.p.X = 5
	tr.Update(0)

	want := []string{"enter:car", "stay:car", "exit:car"}
	if len(rec.events) != len(want) {
		t.Fatalf("Expected %v, got %v", want, rec.events)
	}
	for i := range want {
		if rec.events[i] != want[i] {
			t.Errorf("Event %d: expected %s, got %s", i, want[i], rec.events[i])
		}
	}
}

func TestTrackerDestroyedColliderProducesNoExit(t *testing.T) {
	tr := NewTracker()
	rec := &recorder{}
	area := NewCollider("area", nil, vmath.Vec3F{}, box(1), LayerArea, true)
	tr.Watch(area, rec)
	body := NewCollider("car", nil, vmath.Vec3F{}, box(0.5), LayerVehicleBody, false)
	tr.Add(body)

	tr.Update(0)
	body.Destroy()
	tr.Update(0)

	if len(rec.events) != 1 || rec.events[0] != "enter:car" {
		t.Errorf("Expected only enter, got %v", rec.events)
	}
	if len(tr.Colliders()) != 1 {
		t.Errorf("Expected destroyed collider pruned, got %d colliders", len(tr.Colliders()))
	}
}

func TestTrackerReEnterAfterDisable(t *testing.T) {
	tr := NewTracker()
	rec := &recorder{}
	area := NewCollider("area", nil, vmath.Vec3F{}, box(1), LayerArea, true)
	tr.Watch(area, rec)
	body := NewCollider("car", nil, vmath.Vec3F{}, box(0.5), LayerVehicleBody, false)
	tr.Add(body)

	tr.Update(0)
	body.SetEnabled(false)
	tr.Update(0)
	body.SetEnabled(true)
	tr.Update(0)

	want := []string{"enter:car", "enter:car"}
	if len(rec.events) != 2 || rec.events[0] != want[0] || rec.events[1] != want[1] {
		t.Errorf("Expected %v, got %v", want, rec.events)
	}
}

func TestMaskHas(t *testing.T) {
	m := MaskOf(LayerVehicleBody, LayerPlayer)
	if !m.Has(LayerVehicleBody) || !m.Has(LayerPlayer) {
		t.Error("Expected mask to include listed layers")
	}
	if m.Has(LayerVehicleSensor) {
		t.Error("Expected mask to exclude sensor layer")
	}
}
