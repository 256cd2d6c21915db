package traffic

import (
	"fmt"
	"log"

	"github.com/lixenwraith/crosswalk/parameter"
	"github.com/lixenwraith/crosswalk/vmath"
	"github.com/lixenwraith/crosswalk/zone"
)

// SignalView is the read side of the signal controller traffic depends on
type SignalView interface {
	ShouldCarsStop() bool
}

// Checkpoint is a stop line that holds at most one vehicle
// Chained checkpoints queue vehicles single file behind the front line
type Checkpoint struct {
	Name     string
	Front    bool        // Closest to the crossing
	Ahead    *Checkpoint // Next line toward the crossing, nil for the front line
	Origin   vmath.Vec3F // Stop plane origin
	Forward  vmath.Vec3F // Stop plane normal, the lane's travel direction
	Fallback float64     // Saved instead of a near-zero speed
	Collider *zone.Collider

	signal   SignalView
	stats    *Stats
	occupant *Vehicle
	warned   bool
}

// NewCheckpoint creates a stop line zone on a lane at distance d
func NewCheckpoint(name string, lane *Lane, d float64, signal SignalView, stats *Stats) *Checkpoint {
	c := &Checkpoint{
		Name:     name,
		Origin:   lane.At(d),
		Forward:  lane.Forward(),
		Fallback: parameter.CheckpointFallbackSpeed,
		signal:   signal,
		stats:    stats,
	}
	half := vmath.Vec3F{X: parameter.CheckpointDepth / 2, Y: 1, Z: parameter.LaneWidth / 2}
	if c.Forward.Z != 0 {
		half.X, half.Z = half.Z, half.X
	}
	c.Collider = zone.NewCollider(c, nil, vmath.V3FAdd(c.Origin, vmath.Vec3F{Y: 1}), half, zone.LayerArea, true)
	return c
}

// Occupant returns the tracked vehicle, nil when empty
func (c *Checkpoint) Occupant() *Vehicle {
	return c.occupant
}

// Occupied reports whether a vehicle is tracked
func (c *Checkpoint) Occupied() bool {
	return c.occupant != nil
}

// HasPassed reports whether the vehicle is beyond the stop plane
func (c *Checkpoint) HasPassed(v *Vehicle) bool {
	return vmath.V3FDot(c.Forward, vmath.V3FSub(v.Position(), c.Origin)) > 0
}

// OnZoneEnter tracks the newest vehicle; the previous occupant is forgotten
func (c *Checkpoint) OnZoneEnter(other *zone.Collider) {
	v := vehicleBody(other)
	if v == nil {
		return
	}
	c.occupant = v
}

// OnZoneStay decides hold or release for a vehicle inside the line
func (c *Checkpoint) OnZoneStay(other *zone.Collider) {
	v := vehicleBody(other)
	if v == nil {
		return
	}
	if c.signal == nil {
		if !c.warned {
			log.Printf("[TRAFFIC] %s: no signal controller, checkpoint inactive", c.Name)
			c.warned = true
		}
		return
	}

	// Front line never blocks a vehicle that already crossed it
	if c.Front && c.HasPassed(v) {
		c.Release(v)
		c.clear(v)
		return
	}

	if !c.signal.ShouldCarsStop() {
		c.Release(v)
		return
	}

	if c.Front || (c.Ahead != nil && c.Ahead.Occupied()) {
		c.Hold(v)
		return
	}

	// Nothing ahead, let it roll up to the next line
	c.Release(v)
	c.clear(v)
}

// OnZoneExit forgets and releases the vehicle unconditionally
func (c *Checkpoint) OnZoneExit(other *zone.Collider) {
	v := vehicleBody(other)
	if v == nil {
		return
	}
	c.clear(v)
	c.Release(v)
}

// Hold stops the vehicle, saving its speed on the first claim
func (c *Checkpoint) Hold(v *Vehicle) {
	if v == nil {
		return
	}
	c.stats.hold(v.Hold(c, ClaimCheckpoint, c.Fallback))
}

// Release drops this line's claim
func (c *Checkpoint) Release(v *Vehicle) {
	if v == nil {
		return
	}
	c.stats.release(v.Release(c))
}

// Forget clears a despawned occupant
func (c *Checkpoint) Forget(v *Vehicle) {
	c.clear(v)
}

func (c *Checkpoint) clear(v *Vehicle) {
	if c.occupant == v {
		c.occupant = nil
	}
}

func (c *Checkpoint) String() string {
	return fmt.Sprintf("%s(front=%t occupied=%t)", c.Name, c.Front, c.Occupied())
}

// Chain is the ordered set of stop lines on one lane, front line first
type Chain struct {
	Lane  *Lane
	Nodes []*Checkpoint
}

// NewChain builds count lines ending at frontAt, spaced backward along the lane
func NewChain(lane *Lane, frontAt float64, count int, spacing float64, signal SignalView, stats *Stats) *Chain {
	ch := &Chain{Lane: lane, Nodes: make([]*Checkpoint, 0, count)}
	for i := 0; i < count; i++ {
		d := frontAt - float64(i)*spacing
		if d < 0 {
			break
		}
		cp := NewCheckpoint(fmt.Sprintf("%s/stop%d", lane.Name, i), lane, d, signal, stats)
		if i == 0 {
			cp.Front = true
		} else {
			cp.Ahead = ch.Nodes[i-1]
		}
		ch.Nodes = append(ch.Nodes, cp)
	}
	return ch
}

// Watch registers every line with the tracker
func (ch *Chain) Watch(t *zone.Tracker) {
	for _, cp := range ch.Nodes {
		t.Watch(cp.Collider, cp)
	}
}

// Forget clears a despawned vehicle from every line
func (ch *Chain) Forget(v *Vehicle) {
	for _, cp := range ch.Nodes {
		cp.Forget(v)
	}
}

// Stopped appends vehicles tracked by a line that are at near-zero speed
func (ch *Chain) Stopped(dst []*Vehicle) []*Vehicle {
	for _, cp := range ch.Nodes {
		v := cp.Occupant()
		if v == nil || !v.Alive() {
			continue
		}
		if v.Stopped() {
			dst = append(dst, v)
		}
	}
	return dst
}

// Occupancy returns how many lines track a vehicle
func (ch *Chain) Occupancy() int {
	n := 0
	for _, cp := range ch.Nodes {
		if cp.Occupied() {
			n++
		}
	}
	return n
}
