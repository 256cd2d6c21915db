package parameter

// System Execution Priorities (lower runs first)
// Signal reads precede every traffic decision in the same frame
const (
	PrioritySignal     = 10
	PriorityTraffic    = 20 // Vehicle movement, spawn and despawn
	PriorityZones      = 30 // Overlap dispatch: checkpoints, sensors, crossing, triggers
	PrioritySpacing    = 40 // Defensive sweep after zone events
	PriorityPedestrian = 50
	PriorityVision     = 60
	PriorityCueQueue   = 70
	PriorityStatus     = 1000 // After all others, telemetry collection
)
