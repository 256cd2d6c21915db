package pedestrian

import (
	"math"
	"time"

	"github.com/lixenwraith/crosswalk/audio"
	"github.com/lixenwraith/crosswalk/core"
	"github.com/lixenwraith/crosswalk/parameter"
	"github.com/lixenwraith/crosswalk/vmath"
	"github.com/lixenwraith/crosswalk/zone"
)

// Walker is a scripted pedestrian moving in a straight line toward a destination
type Walker struct {
	Entity   core.Entity
	Pos      vmath.Vec3F
	Yaw      float64 // Degrees, 0 faces +Z
	Speed    float64
	Voice    audio.Source
	Collider *zone.Collider

	// DespawnOnArrival removes the walker once it reaches its destination
	DespawnOnArrival bool

	dest    vmath.Vec3F
	hasDest bool
	stopped bool
	alive   bool
}

// NewWalker creates a standing walker
func NewWalker(id core.Entity, pos vmath.Vec3F, yaw float64) *Walker {
	w := &Walker{
		Entity: id,
		Pos:    pos,
		Yaw:    yaw,
		Speed:  parameter.PedestrianWalkSpeed,
		Voice:  audio.Null{},
		alive:  true,
	}
	w.Collider = zone.NewCollider(w, w, vmath.Vec3F{Y: 0.9}, vmath.Vec3F{X: 0.25, Y: 0.9, Z: 0.25}, zone.LayerPedestrian, false)
	return w
}

// Position implements zone.Anchor
func (w *Walker) Position() vmath.Vec3F {
	return w.Pos
}

// GoTo sets the destination and turns to face it
func (w *Walker) GoTo(p vmath.Vec3F) {
	w.dest = p
	w.hasDest = true
	d := vmath.V3FSub(p, w.Pos)
	if d.X != 0 || d.Z != 0 {
		w.Yaw = vmath.NormalizeAngle(math.Atan2(d.X, d.Z) * 180 / math.Pi)
	}
}

// Stop halts motion without forgetting the destination
func (w *Walker) Stop() {
	w.stopped = true
}

// Resume continues toward the destination
func (w *Walker) Resume() {
	w.stopped = false
}

// Walking reports whether the walker is moving toward a destination
func (w *Walker) Walking() bool {
	return w.alive && w.hasDest && !w.stopped && w.Pos != w.dest
}

// Arrived reports whether the walker stands at its destination
func (w *Walker) Arrived() bool {
	return w.hasDest && w.Pos == w.dest
}

// Alive reports whether the walker is still in the scene
func (w *Walker) Alive() bool {
	return w != nil && w.alive
}

// Despawn removes the walker and its collider
func (w *Walker) Despawn() {
	if !w.alive {
		return
	}
	w.alive = false
	w.Collider.Destroy()
	if w.Voice != nil {
		w.Voice.Stop()
	}
}

// Update steps toward the destination
func (w *Walker) Update(dt time.Duration) {
	if !w.Walking() {
		return
	}
	w.Pos = vmath.V3FMoveTowards(w.Pos, w.dest, w.Speed*dt.Seconds())
	if w.DespawnOnArrival && w.Arrived() {
		w.Despawn()
	}
}
