package parameter

import "time"

// Simulation Loop Timing
const (
	// TickInterval is the fixed simulation step driven by the runner
	TickInterval = 50 * time.Millisecond

	// FrameInterval is the terminal redraw interval (~30 FPS)
	FrameInterval = 33 * time.Millisecond

	// MaxTickLag is how far the runner may fall behind before resynchronizing its deadline
	MaxTickLag = 2 * TickInterval
)

// Event Queue Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255
)

// Default seed used when none is supplied on the command line
const DefaultSeed int64 = 1

// LogFile is the debug log destination relative to the working directory
const LogFile = "logs/crosswalk.log"
