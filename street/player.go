package street

import (
	"github.com/lixenwraith/crosswalk/core"
	"github.com/lixenwraith/crosswalk/event"
	"github.com/lixenwraith/crosswalk/parameter"
	"github.com/lixenwraith/crosswalk/vmath"
	"github.com/lixenwraith/crosswalk/zone"
)

// Player is the tracked viewer walking the scene
// Pos is the ground point under the player; the body collider stands on it
type Player struct {
	Entity   core.Entity
	Pos      vmath.Vec3F
	Yaw      float64 // Degrees, 0 faces +Z
	Collider *zone.Collider
}

// NewPlayer places the player at pos facing yaw
func NewPlayer(id core.Entity, pos vmath.Vec3F, yaw float64) *Player {
	p := &Player{Entity: id, Pos: pos, Yaw: vmath.NormalizeAngle(yaw)}
	p.Collider = zone.NewCollider(p, p,
		vmath.Vec3F{Y: parameter.PlayerHeight / 2},
		vmath.Vec3F{X: parameter.PlayerRadius, Y: parameter.PlayerHeight / 2, Z: parameter.PlayerRadius},
		zone.LayerPlayer, false)
	return p
}

// Position implements zone.Anchor
func (p *Player) Position() vmath.Vec3F {
	return p.Pos
}

// Head returns the eye point
func (p *Player) Head() vmath.Vec3F {
	return vmath.V3FAdd(p.Pos, vmath.Vec3F{Y: parameter.PlayerEyeHeight})
}

// Forward returns the ground-plane view direction
func (p *Player) Forward() vmath.Vec3F {
	return vmath.YawForward(p.Yaw)
}

// Right returns the ground-plane right vector
func (p *Player) Right() vmath.Vec3F {
	return vmath.YawRight(p.Yaw)
}

// Move displaces the player on the ground plane in world axes
func (p *Player) Move(dx, dz float64) {
	p.Pos.X += dx
	p.Pos.Z += dz
}

// Walk moves relative to the view: forward along the heading, strafe to the right
func (p *Player) Walk(forward, strafe float64) {
	d := vmath.V3FAdd(vmath.V3FScale(p.Forward(), forward), vmath.V3FScale(p.Right(), strafe))
	p.Move(d.X, d.Z)
}

// Turn rotates the view by degrees, positive to the right
func (p *Player) Turn(deg float64) {
	p.Yaw = vmath.NormalizeAngle(p.Yaw + deg)
}

func (p *Player) EventTypes() []event.EventType {
	return []event.EventType{event.EventPlayerMove, event.EventPlayerTurn}
}

func (p *Player) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventPlayerMove:
		if m, ok := ev.Payload.(*event.PlayerMovePayload); ok {
			p.Move(m.DX, m.DZ)
		}
	case event.EventPlayerTurn:
		if t, ok := ev.Payload.(*event.PlayerTurnPayload); ok {
			p.Turn(t.Degrees)
		}
	}
}
