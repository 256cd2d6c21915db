package event

// PlayerMovePayload is a ground-plane displacement in meters
type PlayerMovePayload struct {
	DX, DZ float64
}

// PlayerTurnPayload is a yaw delta in degrees
type PlayerTurnPayload struct {
	Degrees float64
}

// GripPayload carries both controller grip states
type GripPayload struct {
	Left, Right bool
}

// HandDistancePayload carries the distance between both controllers in meters
type HandDistancePayload struct {
	Meters float64
}

// SignalChangedPayload reports the new signal state by name
type SignalChangedPayload struct {
	State string
}
