package vision

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/crosswalk/engine"
	"github.com/lixenwraith/crosswalk/event"
	"github.com/lixenwraith/crosswalk/parameter"
)

// PhaseView tells the driver when the scene is asking for the stretch gesture
type PhaseView interface {
	InTryExpand() bool
}

// Frame is the per-frame drive for the vision post effect
type Frame struct {
	Radius float64
	Strain float64
	Snap   float64
	Arrows float64 // Hint arrows while the scene asks for a stretch
	Glow   float64
}

// Driver feeds gesture input into the tunnel and reports expand attempts
type Driver struct {
	world   *engine.World
	Tunnel  *Tunnel
	Gesture *Gesture
	phase   PhaseView

	last         GestureState
	frame        Frame
	statAttempts *atomic.Int64
}

// NewDriver creates a driver; phase may be set later with SetPhase
func NewDriver(w *engine.World, tunnel *Tunnel) *Driver {
	return &Driver{
		world:        w,
		Tunnel:       tunnel,
		Gesture:      &Gesture{},
		statAttempts: w.Status.Ints.Get("vision.attempts"),
	}
}

// SetPhase wires the scenario phase view
func (d *Driver) SetPhase(p PhaseView) {
	d.phase = p
}

// Frame returns the latest drive values
func (d *Driver) Frame() Frame {
	return d.frame
}

// Last returns the latest gesture sample
func (d *Driver) Last() GestureState {
	return d.last
}

func (d *Driver) EventTypes() []event.EventType {
	return []event.EventType{event.EventGripChange, event.EventHandDistance}
}

func (d *Driver) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventGripChange:
		if p, ok := ev.Payload.(*event.GripPayload); ok {
			d.Gesture.SetGrips(p.Left, p.Right)
		}
	case event.EventHandDistance:
		if p, ok := ev.Payload.(*event.HandDistancePayload); ok {
			d.Gesture.SetDistance(p.Meters)
		}
	}
}

func (d *Driver) Name() string  { return "vision" }
func (d *Driver) Priority() int { return parameter.PriorityVision }

// Update samples the gesture, emits an attempt on its rising edge, and steps the tunnel
func (d *Driver) Update(dt time.Duration) {
	g := d.Gesture.Sample()
	d.last = g

	if g.Rising {
		d.statAttempts.Add(1)
		log.Printf("[VISION] Expand attempted (stretch %.2f)", g.Stretch)
		d.world.Emit(event.EventExpandAttempted, nil)
	}

	d.Tunnel.Step(g, dt)

	inTry := d.phase != nil && d.phase.InTryExpand()
	d.frame = Frame{
		Radius: d.Tunnel.Radius(),
		Strain: d.Tunnel.Strain(),
		Snap:   d.Tunnel.Snap(),
	}
	if inTry {
		d.frame.Glow = 0.25
		if !g.Trying {
			d.frame.Arrows = 1
		}
	}
}
