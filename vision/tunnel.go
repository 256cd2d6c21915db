package vision

import (
	"log"
	"math"
	"time"

	"github.com/lixenwraith/crosswalk/parameter"
	"github.com/lixenwraith/crosswalk/status"
	"github.com/lixenwraith/crosswalk/vmath"
)

// Tunnel is the restricted field of view driven by stress and the stretch gesture
// Radius is in normalized screen units around the view center
type Tunnel struct {
	base      float64
	radius    float64
	radiusVel float64
	strain    float64
	snap      float64
	active    bool

	statRadius *status.AtomicFloat
	statBase   *status.AtomicFloat
}

// NewTunnel creates an active tunnel at the stock radius
func NewTunnel(reg *status.Registry) *Tunnel {
	t := &Tunnel{
		base:       parameter.TunnelBaseRadius,
		radius:     parameter.TunnelBaseRadius,
		active:     true,
		statRadius: reg.Floats.Get("vision.radius"),
		statBase:   reg.Floats.Get("vision.base_radius"),
	}
	t.publish()
	return t
}

// ReduceBaseRadius permanently narrows the resting radius, never below the floor
func (t *Tunnel) ReduceBaseRadius(amount float64) {
	if amount <= 0 {
		return
	}
	t.base = math.Max(parameter.TunnelMinRadius, t.base-amount)
	log.Printf("[VISION] Base radius reduced -> %.3f", t.base)
	t.publish()
}

// Base returns the resting radius
func (t *Tunnel) Base() float64 { return t.base }

// Radius returns the current drive radius; an inactive tunnel reports full view
func (t *Tunnel) Radius() float64 {
	if !t.active {
		return 1
	}
	return t.radius
}

// Strain returns the effort overlay weight in [0, 1]
func (t *Tunnel) Strain() float64 { return t.strain }

// Snap returns the release impulse in [0, 1]
func (t *Tunnel) Snap() float64 { return t.snap }

// Active reports whether the effect is applied
func (t *Tunnel) Active() bool { return t.active }

// SetActive toggles the effect, e.g. when leaving the street
func (t *Tunnel) SetActive(active bool) {
	t.active = active
	t.publish()
}

// Step advances the radius, strain and snap for one frame
func (t *Tunnel) Step(g GestureState, dt time.Duration) {
	dts := dt.Seconds()

	if g.Trying {
		// Diminishing returns: pushing harder widens less
		resisted := 1 - math.Exp(-parameter.TunnelExpandResist*g.Stretch)
		target := t.base + parameter.TunnelMaxExtraRadius*resisted
		t.radius = vmath.Lerp(t.radius, target, vmath.ExpBlend(parameter.TunnelExpandSpeed, dts))
		t.radiusVel = 0
		t.strain = vmath.Lerp(t.strain, 1, vmath.ExpBlend(parameter.TunnelStrainRise, dts))
	} else {
		t.radius = vmath.SmoothDamp(t.radius, t.base, &t.radiusVel, parameter.TunnelSnapTime, dts)
		t.strain = vmath.Lerp(t.strain, 0, vmath.ExpBlend(parameter.TunnelStrainFall, dts))
	}

	if g.Released {
		t.snap = 1
	}
	t.snap = vmath.Lerp(t.snap, 0, vmath.ExpBlend(parameter.TunnelSnapDecay, dts))

	t.publish()
}

func (t *Tunnel) publish() {
	t.statRadius.Set(t.Radius())
	t.statBase.Set(t.base)
}
