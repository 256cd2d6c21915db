package traffic

import (
	"time"

	"github.com/lixenwraith/crosswalk/parameter"
	"github.com/lixenwraith/crosswalk/vmath"
	"github.com/lixenwraith/crosswalk/zone"
)

// SpacingSensor is a trigger ahead of a vehicle's bumper that stops it behind another vehicle
type SpacingSensor struct {
	Collider *zone.Collider
	Mask     zone.Mask // Layers that block
	Fallback float64

	vehicle  *Vehicle
	stats    *Stats
	blocking map[*zone.Collider]struct{}
}

// NewSpacingSensor attaches a sensor to v
func NewSpacingSensor(v *Vehicle, stats *Stats) *SpacingSensor {
	fwd := v.Lane.Forward()
	reach := parameter.SensorReach
	offset := vmath.V3FAdd(vmath.V3FScale(fwd, parameter.VehicleLength/2+reach/2), vmath.Vec3F{Y: 0.75})
	half := vmath.Vec3F{X: reach / 2, Y: 0.5, Z: parameter.VehicleWidth * 0.45}
	if fwd.Z != 0 {
		half.X, half.Z = half.Z, half.X
	}

	s := &SpacingSensor{
		Mask:     zone.MaskOf(zone.LayerVehicleBody),
		Fallback: parameter.SpacingFallbackSpeed,
		vehicle:  v,
		stats:    stats,
		blocking: make(map[*zone.Collider]struct{}),
	}
	s.Collider = zone.NewCollider(s, v, offset, half, zone.LayerVehicleSensor, true)
	v.Sensor = s
	return s
}

// Vehicle returns the sensor's own vehicle
func (s *SpacingSensor) Vehicle() *Vehicle {
	return s.vehicle
}

// Blocking returns the number of colliders currently in the way
func (s *SpacingSensor) Blocking() int {
	return len(s.blocking)
}

// blocks filters to solid bodies of other vehicles on a masked layer
func (s *SpacingSensor) blocks(other *zone.Collider) bool {
	if !s.Mask.Has(other.Layer) || other.IsTrigger {
		return false
	}
	ov, ok := other.Owner.(*Vehicle)
	return ok && ov != s.vehicle
}

func (s *SpacingSensor) OnZoneEnter(other *zone.Collider) {
	if !s.blocks(other) {
		return
	}
	s.blocking[other] = struct{}{}
	s.stats.hold(s.vehicle.Hold(s, ClaimSpacing, s.Fallback))
}

func (s *SpacingSensor) OnZoneStay(*zone.Collider) {}

func (s *SpacingSensor) OnZoneExit(other *zone.Collider) {
	if !s.blocks(other) {
		return
	}
	delete(s.blocking, other)
	s.resume()
}

// Sweep purges colliders that vanished while overlapping and resumes when clear
func (s *SpacingSensor) Sweep() {
	purged := 0
	for c := range s.blocking {
		if !c.Alive() {
			delete(s.blocking, c)
			purged++
		}
	}
	s.stats.add(statPurged, purged)
	s.resume()
}

// resume restores speed once the blocking set is empty
func (s *SpacingSensor) resume() {
	if len(s.blocking) == 0 && s.vehicle.HeldBy(s) {
		s.stats.release(s.vehicle.Release(s))
	}
}

// Sweeper runs every live sensor's sweep after zone dispatch
type Sweeper struct {
	fleet *Fleet
}

func (w *Sweeper) Name() string  { return "spacing" }
func (w *Sweeper) Priority() int { return parameter.PrioritySpacing }

func (w *Sweeper) Update(time.Duration) {
	for _, v := range w.fleet.vehicles {
		if v.Sensor != nil && v.Alive() {
			v.Sensor.Sweep()
		}
	}
}
