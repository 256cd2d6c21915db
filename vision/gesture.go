package vision

import (
	"github.com/lixenwraith/crosswalk/parameter"
	"github.com/lixenwraith/crosswalk/vmath"
)

// GestureState is one frame of the stretch gesture
type GestureState struct {
	Held     bool    // Both grips engaged
	Trying   bool    // Held and stretched past the threshold
	Rising   bool    // Trying started this frame
	Released bool    // Grips let go this frame
	Stretch  float64 // Normalized stretch since the grab started
}

// Gesture detects "both grips held and pulled apart" from controller input
type Gesture struct {
	left, right bool
	distance    float64
	grabStart   float64
	wasHeld     bool
	wasTrying   bool
}

// SetGrips updates both grip states
func (g *Gesture) SetGrips(left, right bool) {
	g.left, g.right = left, right
}

// SetDistance updates the distance between the controllers
func (g *Gesture) SetDistance(m float64) {
	g.distance = m
}

// Grips returns both grip states
func (g *Gesture) Grips() (left, right bool) {
	return g.left, g.right
}

// Distance returns the distance between the controllers
func (g *Gesture) Distance() float64 {
	return g.distance
}

// Sample evaluates the gesture for this frame and advances edge state
// The stretch reference is the distance at the moment both grips engaged
func (g *Gesture) Sample() GestureState {
	held := g.left && g.right
	if held && !g.wasHeld {
		g.grabStart = g.distance
	}

	var s GestureState
	s.Held = held
	if held {
		s.Stretch = vmath.Clamp01(vmath.InverseLerp(0, parameter.GestureMaxStretch, g.distance-g.grabStart))
	}
	s.Trying = held && s.Stretch > parameter.GestureMinStretch
	s.Rising = s.Trying && !g.wasTrying
	s.Released = g.wasHeld && !held

	g.wasHeld = held
	g.wasTrying = s.Trying
	return s
}
