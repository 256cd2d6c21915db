package parameter

import "time"

// Pedestrian bump sequence
const (
	PedestrianStartDelay     = 1 * time.Second
	PedestrianApproachMax    = 6 * time.Second // Safety bound on the approach loop
	PedestrianArrivalRadius  = 0.25
	PedestrianTurnDuration   = 250 * time.Millisecond
	PedestrianFaceHeading    = 50.0
	PedestrianExitHeading    = 180.0
	PedestrianPauseDuration  = 1 * time.Second
	PedestrianHazardStep     = 0.02
	PedestrianWalkSpeed      = 1.4
	PedestrianBumpForward    = 1.2
	PedestrianBumpSideOffset = 0.1
)

// Player body (meters)
const (
	PlayerHeight    = 1.8
	PlayerEyeHeight = 1.6
	PlayerRadius    = 0.3
	PlayerStepSize  = 0.5
	PlayerTurnStep  = 15.0 // Degrees per key press
	ButtonReach     = 1.5
)

// AutopilotWalkSpeed is the scripted visitor's walking speed (m/s)
const AutopilotWalkSpeed = 1.6
