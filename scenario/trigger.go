package scenario

import (
	"log"

	"github.com/lixenwraith/crosswalk/vmath"
	"github.com/lixenwraith/crosswalk/zone"
)

// TriggerKind names a scene trigger area
type TriggerKind uint8

const (
	TriggerStartScene TriggerKind = iota
	TriggerEndCrossing
	TriggerExitDoor
)

func (k TriggerKind) String() string {
	switch k {
	case TriggerStartScene:
		return "start-scene"
	case TriggerEndCrossing:
		return "end-crossing"
	case TriggerExitDoor:
		return "exit-door"
	default:
		return "unknown"
	}
}

// Trigger fires when the player enters its volume
// The start trigger fires at most once; the others fire on every entry
type Trigger struct {
	Kind     TriggerKind
	Collider *zone.Collider

	fire  func()
	fired int
}

// NewTrigger creates a player-layer trigger volume calling fire on entry
func NewTrigger(kind TriggerKind, center, halfSize vmath.Vec3F, fire func()) *Trigger {
	t := &Trigger{Kind: kind, fire: fire}
	t.Collider = zone.NewCollider(t, nil, center, halfSize, zone.LayerArea, true)
	return t
}

// Fired returns how many times the trigger fired
func (t *Trigger) Fired() int {
	return t.fired
}

func (t *Trigger) OnZoneEnter(other *zone.Collider) {
	if other.Layer != zone.LayerPlayer {
		return
	}
	if t.Kind == TriggerStartScene && t.fired > 0 {
		return
	}
	t.fired++
	log.Printf("[SCENARIO] Trigger %v entered", t.Kind)
	if t.fire != nil {
		t.fire()
	}
}

func (t *Trigger) OnZoneStay(*zone.Collider) {}

func (t *Trigger) OnZoneExit(*zone.Collider) {}
