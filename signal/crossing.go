package signal

import (
	"log"

	"github.com/lixenwraith/crosswalk/engine"
	"github.com/lixenwraith/crosswalk/event"
	"github.com/lixenwraith/crosswalk/vmath"
	"github.com/lixenwraith/crosswalk/zone"
)

// CrossingZone tracks whether the player stands on the crosswalk
type CrossingZone struct {
	Collider *zone.Collider
	inside   bool
}

// NewCrossingZone creates the crosswalk volume centered at center
func NewCrossingZone(center, halfSize vmath.Vec3F) *CrossingZone {
	z := &CrossingZone{}
	z.Collider = zone.NewCollider(z, nil, center, halfSize, zone.LayerArea, true)
	return z
}

// PlayerInside implements Occupancy
func (z *CrossingZone) PlayerInside() bool {
	return z.inside
}

func (z *CrossingZone) OnZoneEnter(other *zone.Collider) {
	if other.Layer == zone.LayerPlayer {
		z.inside = true
	}
}

func (z *CrossingZone) OnZoneStay(*zone.Collider) {}

func (z *CrossingZone) OnZoneExit(other *zone.Collider) {
	if other.Layer == zone.LayerPlayer {
		z.inside = false
	}
}

// Requester accepts crossing requests
type Requester interface {
	RequestCrossing() bool
}

// Locator reports an actor position
type Locator interface {
	Position() vmath.Vec3F
}

// Button is the pole-mounted crossing request button
// It handles EventButtonPress and only reacts when the player is within reach
type Button struct {
	Position vmath.Vec3F
	Reach    float64

	world  *engine.World
	signal Requester
	player Locator
}

// NewButton creates a button; a nil player locator disables the reach check
func NewButton(w *engine.World, signal Requester, player Locator, pos vmath.Vec3F, reach float64) *Button {
	return &Button{
		Position: pos,
		Reach:    reach,
		world:    w,
		signal:   signal,
		player:   player,
	}
}

// InReach reports whether the player can touch the button
func (b *Button) InReach() bool {
	if b.player == nil {
		return true
	}
	return vmath.V3FDist(vmath.V3FGround(b.player.Position()), vmath.V3FGround(b.Position)) <= b.Reach
}

// Press requests a crossing and notifies the scenario
func (b *Button) Press() {
	if b.signal == nil {
		log.Printf("[SIGNAL] Button pressed with no signal controller")
		return
	}
	log.Printf("[SIGNAL] Crosswalk button pressed")
	b.signal.RequestCrossing()
	b.world.Emit(event.EventCrosswalkPressed, nil)
}

func (b *Button) EventTypes() []event.EventType {
	return []event.EventType{event.EventButtonPress}
}

func (b *Button) HandleEvent(ev event.GameEvent) {
	if ev.Type != event.EventButtonPress {
		return
	}
	if !b.InReach() {
		log.Printf("[SIGNAL] Button out of reach")
		return
	}
	b.Press()
}

// ZoneRequest requests a crossing when the player steps into the waiting area
type ZoneRequest struct {
	Collider *zone.Collider
	signal   Requester
}

// NewZoneRequest creates a waiting area volume
func NewZoneRequest(signal Requester, center, halfSize vmath.Vec3F) *ZoneRequest {
	r := &ZoneRequest{signal: signal}
	r.Collider = zone.NewCollider(r, nil, center, halfSize, zone.LayerArea, true)
	return r
}

func (r *ZoneRequest) OnZoneEnter(other *zone.Collider) {
	if other.Layer != zone.LayerPlayer {
		return
	}
	if r.signal == nil {
		log.Printf("[SIGNAL] Waiting area has no signal controller")
		return
	}
	r.signal.RequestCrossing()
}

func (r *ZoneRequest) OnZoneStay(*zone.Collider) {}
func (r *ZoneRequest) OnZoneExit(*zone.Collider) {}
