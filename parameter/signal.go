package parameter

import "time"

// Crossing cycle timing
const (
	// SignalWaitTime is the delay between a crossing request and pedestrian green
	SignalWaitTime = 6 * time.Second

	// SignalCrossCueHold is the pause after the "crossing" cue before the beep cue
	SignalCrossCueHold = 2 * time.Second

	// SignalPedsGreenDuration is how long the beep cue runs before reverting
	SignalPedsGreenDuration = 4 * time.Second
)
