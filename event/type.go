package event

// EventType represents the type of scene event
type EventType int

const (
	// EventTick is reserved: FSM transitions on EventTick are evaluated every update
	EventTick EventType = iota

	// === Input Event ===

	// EventButtonPress signals the crosswalk button was pressed with grip
	// Trigger: Front end input | Consumer: signal.Button | Payload: nil
	EventButtonPress

	// EventPlayerMove moves the player on the ground plane
	// Trigger: Front end input | Consumer: street.Player | Payload: *PlayerMovePayload
	EventPlayerMove

	// EventPlayerTurn rotates the player view
	// Trigger: Front end input | Consumer: street.Player | Payload: *PlayerTurnPayload
	EventPlayerTurn

	// EventGripChange updates controller grip state
	// Trigger: Front end input | Consumer: vision.Gesture | Payload: *GripPayload
	EventGripChange

	// EventHandDistance updates the distance between both controllers
	// Trigger: Front end input | Consumer: vision.Gesture | Payload: *HandDistancePayload
	EventHandDistance

	// === Scenario Event ===

	// EventSceneEntered fires when the player enters the start trigger
	EventSceneEntered

	// EventIntroComplete fires when the intro narration and pause have elapsed
	EventIntroComplete

	// EventExpandAttempted fires on the rising edge of the stretch gesture
	EventExpandAttempted

	// EventInstructionsComplete fires when the find-the-button narration has finished
	EventInstructionsComplete

	// EventCrosswalkPressed fires when the crossing button is pressed
	EventCrosswalkPressed

	// EventReachedOtherSide fires when the player enters the far curb trigger
	EventReachedOtherSide

	// === Notification Event ===

	// EventSignalChanged fires on every signal transition | Payload: *SignalChangedPayload
	EventSignalChanged

	// EventCrossingComplete fires when a crossing cycle reverts to cars green
	EventCrossingComplete

	// EventPedestrianEncounter fires when the pedestrian bump sequence completes
	EventPedestrianEncounter

	eventTypeCount
)

var eventNames = [eventTypeCount]string{
	EventTick:                 "Tick",
	EventButtonPress:          "ButtonPress",
	EventPlayerMove:           "PlayerMove",
	EventPlayerTurn:           "PlayerTurn",
	EventGripChange:           "GripChange",
	EventHandDistance:         "HandDistance",
	EventSceneEntered:         "SceneEntered",
	EventIntroComplete:        "IntroComplete",
	EventExpandAttempted:      "ExpandAttempted",
	EventInstructionsComplete: "InstructionsComplete",
	EventCrosswalkPressed:     "CrosswalkPressed",
	EventReachedOtherSide:     "ReachedOtherSide",
	EventSignalChanged:        "SignalChanged",
	EventCrossingComplete:     "CrossingComplete",
	EventPedestrianEncounter:  "PedestrianEncounter",
}

// String returns the registered name of the event type
func (t EventType) String() string {
	if t >= 0 && t < eventTypeCount {
		return eventNames[t]
	}
	return "Unknown"
}

// Lookup resolves an event name to its type, used by scripted input
func Lookup(name string) (EventType, bool) {
	for i, n := range eventNames {
		if n == name {
			return EventType(i), true
		}
	}
	return 0, false
}

// GameEvent is a queued event with optional payload
type GameEvent struct {
	Type    EventType
	Payload any
}
