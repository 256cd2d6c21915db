package parameter

import "time"

// Speed bookkeeping
const (
	// StoppedSpeed is the near-zero threshold below which a speed is treated as stopped
	StoppedSpeed = 0.01

	// CheckpointFallbackSpeed is saved by a checkpoint hold when the vehicle is already stopped
	CheckpointFallbackSpeed = 10.0

	// SpacingFallbackSpeed is saved by a spacing sensor hold when the vehicle is already stopped
	SpacingFallbackSpeed = 5.0

	// VehicleCruiseSpeed is the speed given to newly spawned vehicles (m/s)
	VehicleCruiseSpeed = 8.0
)

// Honk loop
const (
	HonkIntervalMin = 1500 * time.Millisecond
	HonkIntervalMax = 3500 * time.Millisecond
	HonkPitchMin    = 0.9
	HonkPitchMax    = 1.1
	HonkHazardStep  = 0.02
)

// Street geometry (meters)
const (
	LaneLength         = 80.0
	LaneWidth          = 3.5
	CrossingCenter     = 50.0 // Distance along lane where the crossing is centered
	CrossingWidth      = 4.0
	CheckpointSpacing  = 7.0 // Distance between chained stop lines
	CheckpointDepth    = 2.0
	CheckpointCount    = 4
	VehicleLength      = 4.2
	VehicleWidth       = 1.8
	SensorReach        = 2.5 // How far ahead of the bumper the spacing sensor extends
	SpawnInterval      = 3 * time.Second
	SpawnClearDistance = 8.0
)

// StopLineClearance keeps a held vehicle's bumper off the crosswalk
const StopLineClearance = 0.5
