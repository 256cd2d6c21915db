package street

import (
	"github.com/lixenwraith/crosswalk/parameter"
	"github.com/lixenwraith/crosswalk/vmath"
)

// Layout is the street geometry in meters
// The road runs along X; the player starts on the south curb (negative Z) facing north
type Layout struct {
	Length    float64
	LaneWidth float64

	Crossing     vmath.Vec3F // Center of the crosswalk on the road
	CrossingHalf vmath.Vec3F

	PlayerStart vmath.Vec3F
	PlayerYaw   float64

	StartArea    vmath.Vec3F
	StartHalf    vmath.Vec3F
	Button       vmath.Vec3F
	FarCurb      vmath.Vec3F
	FarCurbHalf  vmath.Vec3F
	WaitingArea  vmath.Vec3F
	WaitingHalf  vmath.Vec3F
	ExitDoor     vmath.Vec3F
	ExitDoorHalf vmath.Vec3F

	PedestrianSpawn vmath.Vec3F
	PedestrianYaw   float64
	PedestrianExit  vmath.Vec3F
}

// DefaultLayout returns the stock single-crossing street
func DefaultLayout() Layout {
	half := parameter.LaneWidth
	x := parameter.CrossingCenter
	return Layout{
		Length:    parameter.LaneLength,
		LaneWidth: parameter.LaneWidth,

		Crossing:     vmath.Vec3F{X: x, Y: 1},
		CrossingHalf: vmath.Vec3F{X: parameter.CrossingWidth / 2, Y: 1, Z: half},

		PlayerStart: vmath.Vec3F{X: x, Z: -half - 7},
		PlayerYaw:   0,

		StartArea: vmath.Vec3F{X: x, Y: 1, Z: -half - 4},
		StartHalf: vmath.Vec3F{X: 3, Y: 1, Z: 1},
		Button:    vmath.Vec3F{X: x + 1, Y: 1.1, Z: -half - 1},

		FarCurb:      vmath.Vec3F{X: x, Y: 1, Z: half + 2},
		FarCurbHalf:  vmath.Vec3F{X: 3, Y: 1, Z: 1},
		WaitingArea:  vmath.Vec3F{X: x, Y: 1, Z: -half - 1},
		WaitingHalf:  vmath.Vec3F{X: 2, Y: 1, Z: 0.5},
		ExitDoor:     vmath.Vec3F{X: x + 6, Y: 1, Z: half + 5},
		ExitDoorHalf: vmath.Vec3F{X: 1, Y: 1, Z: 0.5},

		PedestrianSpawn: vmath.Vec3F{X: x - 6, Z: -half - 1.5},
		PedestrianYaw:   90,
		PedestrianExit:  vmath.Vec3F{X: x + 10, Z: -half - 1.5},
	}
}

// NearLane runs +X on the south half of the road
func (l Layout) NearLane() (start, end vmath.Vec3F) {
	z := -l.LaneWidth / 2
	return vmath.Vec3F{Z: z}, vmath.Vec3F{X: l.Length, Z: z}
}

// OppositeLane runs -X on the north half of the road
func (l Layout) OppositeLane() (start, end vmath.Vec3F) {
	z := l.LaneWidth / 2
	return vmath.Vec3F{X: l.Length, Z: z}, vmath.Vec3F{Z: z}
}

// StopLineGap is the distance from a front stop line center back from the crossing center
func (l Layout) StopLineGap() float64 {
	return l.CrossingHalf.X + parameter.CheckpointDepth/2 + parameter.StopLineClearance
}
