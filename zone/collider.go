package zone

import (
	"math"

	"github.com/lixenwraith/crosswalk/vmath"
)

// Layer is a collision category bit
type Layer uint32

const (
	LayerDefault Layer = 1 << iota
	LayerVehicleBody
	LayerVehicleSensor
	LayerPlayer
	LayerPedestrian
	LayerArea
)

// Mask is a set of layers
type Mask uint32

// Has reports whether the mask includes layer
func (m Mask) Has(l Layer) bool {
	return uint32(m)&uint32(l) != 0
}

// MaskOf builds a mask from layers
func MaskOf(layers ...Layer) Mask {
	var m Mask
	for _, l := range layers {
		m |= Mask(l)
	}
	return m
}

// Anchor provides the world position a collider follows
type Anchor interface {
	Position() vmath.Vec3F
}

// Collider is an axis-aligned box attached to an owner
// Owner is the actor the collider belongs to; listeners resolve it with a type switch
type Collider struct {
	Owner     any
	Anchor    Anchor      // nil = static, Offset is the world center
	Offset    vmath.Vec3F // Center relative to the anchor
	HalfSize  vmath.Vec3F
	Layer     Layer
	IsTrigger bool // Triggers overlap without blocking; sensors and areas are triggers

	disabled  bool
	destroyed bool
}

// NewCollider creates an enabled collider
func NewCollider(owner any, anchor Anchor, offset, halfSize vmath.Vec3F, layer Layer, trigger bool) *Collider {
	return &Collider{
		Owner:     owner,
		Anchor:    anchor,
		Offset:    offset,
		HalfSize:  halfSize,
		Layer:     layer,
		IsTrigger: trigger,
	}
}

// Center returns the world-space center
func (c *Collider) Center() vmath.Vec3F {
	if c.Anchor == nil {
		return c.Offset
	}
	return vmath.V3FAdd(c.Anchor.Position(), c.Offset)
}

// Overlaps reports AABB intersection; touching faces do not count
func (c *Collider) Overlaps(o *Collider) bool {
	a, b := c.Center(), o.Center()
	return math.Abs(a.X-b.X) < c.HalfSize.X+o.HalfSize.X &&
		math.Abs(a.Y-b.Y) < c.HalfSize.Y+o.HalfSize.Y &&
		math.Abs(a.Z-b.Z) < c.HalfSize.Z+o.HalfSize.Z
}

// Contains reports whether a point lies inside the box
func (c *Collider) Contains(p vmath.Vec3F) bool {
	ctr := c.Center()
	return math.Abs(p.X-ctr.X) < c.HalfSize.X &&
		math.Abs(p.Y-ctr.Y) < c.HalfSize.Y &&
		math.Abs(p.Z-ctr.Z) < c.HalfSize.Z
}

// SetEnabled toggles participation in overlap tests
func (c *Collider) SetEnabled(enabled bool) {
	c.disabled = !enabled
}

// Destroy permanently removes the collider from every overlap test
func (c *Collider) Destroy() {
	c.destroyed = true
}

// Alive reports whether the collider still exists and is enabled
func (c *Collider) Alive() bool {
	return c != nil && !c.destroyed && !c.disabled
}
