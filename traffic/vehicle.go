package traffic

import (
	"fmt"
	"time"

	"github.com/lixenwraith/crosswalk/audio"
	"github.com/lixenwraith/crosswalk/core"
	"github.com/lixenwraith/crosswalk/parameter"
	"github.com/lixenwraith/crosswalk/vmath"
	"github.com/lixenwraith/crosswalk/zone"
)

// ClaimKind ranks speed override holders; higher values win owner reporting
type ClaimKind int

const (
	ClaimCheckpoint ClaimKind = iota
	ClaimSpacing
)

func (k ClaimKind) String() string {
	switch k {
	case ClaimCheckpoint:
		return "checkpoint"
	case ClaimSpacing:
		return "spacing"
	}
	return "unknown"
}

type claim struct {
	holder any
	kind   ClaimKind
}

// Vehicle is a car riding a lane
//
// Speed is shared between checkpoints and the spacing sensor through a single
// override slot: the first claim saves the cruising speed, later claims join
// without touching it, and the speed is restored once when the last claim leaves
type Vehicle struct {
	Entity   core.Entity
	Lane     *Lane
	Distance float64
	Speed    float64
	Body     *zone.Collider
	Sensor   *SpacingSensor
	Horn     audio.Source

	alive  bool
	claims []claim
	saved  float64
}

// NewVehicle places a vehicle on a lane and builds its body collider
func NewVehicle(id core.Entity, lane *Lane, distance, speed float64) *Vehicle {
	v := &Vehicle{
		Entity:   id,
		Lane:     lane,
		Distance: distance,
		Speed:    speed,
		Horn:     audio.Null{},
		alive:    true,
	}
	half := vmath.Vec3F{X: parameter.VehicleLength / 2, Y: 0.75, Z: parameter.VehicleWidth / 2}
	if lane.Forward().Z != 0 {
		half.X, half.Z = half.Z, half.X
	}
	v.Body = zone.NewCollider(v, v, vmath.Vec3F{Y: 0.75}, half, zone.LayerVehicleBody, false)
	return v
}

// Position implements zone.Anchor
func (v *Vehicle) Position() vmath.Vec3F {
	return v.Lane.At(v.Distance)
}

// Advance moves the vehicle along its lane
func (v *Vehicle) Advance(dt time.Duration) {
	if !v.alive {
		return
	}
	v.Distance += v.Speed * dt.Seconds()
}

// Alive reports whether the vehicle is still in the scene
func (v *Vehicle) Alive() bool {
	return v != nil && v.alive
}

// Stopped reports a near-zero speed
func (v *Vehicle) Stopped() bool {
	return v.Speed <= parameter.StoppedSpeed
}

// Hold adds holder to the override slot and zeroes speed
// The first claim saves the current speed, or fallback when already near zero
// Returns true when this call opened the slot
func (v *Vehicle) Hold(holder any, kind ClaimKind, fallback float64) bool {
	if !v.Alive() {
		return false
	}
	opened := false
	if v.indexOf(holder) < 0 {
		if len(v.claims) == 0 {
			if v.Speed > parameter.StoppedSpeed {
				v.saved = v.Speed
			} else {
				v.saved = fallback
			}
			opened = true
		}
		v.claims = append(v.claims, claim{holder: holder, kind: kind})
	}
	v.Speed = 0
	return opened
}

// Release drops holder's claim; the saved speed comes back when no claim remains
// Returns true when this call restored speed
func (v *Vehicle) Release(holder any) bool {
	if !v.Alive() {
		return false
	}
	i := v.indexOf(holder)
	if i < 0 {
		return false
	}
	v.claims = append(v.claims[:i], v.claims[i+1:]...)
	if len(v.claims) > 0 {
		return false
	}
	v.Speed = v.saved
	v.saved = 0
	return true
}

// HeldBy reports whether holder has a claim
func (v *Vehicle) HeldBy(holder any) bool {
	return v.indexOf(holder) >= 0
}

// Held reports whether any claim is active
func (v *Vehicle) Held() bool {
	return len(v.claims) > 0
}

// Owner returns the highest ranked claim kind; ok is false when nothing holds the vehicle
func (v *Vehicle) Owner() (kind ClaimKind, ok bool) {
	for i, c := range v.claims {
		if i == 0 || c.kind > kind {
			kind = c.kind
		}
	}
	return kind, len(v.claims) > 0
}

// SavedSpeed returns the speed that will be restored, zero when not held
func (v *Vehicle) SavedSpeed() float64 {
	return v.saved
}

// Despawn removes the vehicle and its colliders; claims are dropped without restoring
func (v *Vehicle) Despawn() {
	if !v.Alive() {
		return
	}
	v.alive = false
	v.claims = nil
	v.saved = 0
	v.Body.Destroy()
	if v.Sensor != nil {
		v.Sensor.Collider.Destroy()
	}
	if v.Horn != nil {
		v.Horn.Stop()
	}
}

func (v *Vehicle) indexOf(holder any) int {
	for i, c := range v.claims {
		if c.holder == holder {
			return i
		}
	}
	return -1
}

func (v *Vehicle) String() string {
	return fmt.Sprintf("car#%d", v.Entity)
}

// vehicleBody resolves a collider to the vehicle whose body it is
func vehicleBody(c *zone.Collider) *Vehicle {
	if c == nil || c.Layer != zone.LayerVehicleBody {
		return nil
	}
	v, _ := c.Owner.(*Vehicle)
	if !v.Alive() {
		return nil
	}
	return v
}
