package fsm

import (
	"time"

	"github.com/lixenwraith/crosswalk/event"
)

// StateID is a unique identifier for a node
type StateID int

// StateNone marks an uninitialized machine
const StateNone StateID = 0

// Machine is a generic event-driven finite state machine
// T is the context passed to actions and guards
type Machine[T any] struct {
	// Graph data, immutable after Validate
	nodes map[StateID]*Node[T]
	order []StateID

	// Runtime state
	activeStateID StateID
	timeInState   time.Duration
	history       []StateID

	// Events raised by actions while a transition is in progress, replayed after it completes
	transitioning bool
	deferred      []event.EventType

	// Observers notified after every completed transition
	listeners []TransitionListener
}

// Node represents a state
type Node[T any] struct {
	ID   StateID
	Name string

	// Lifecycle Actions
	OnEnter  []ActionFunc[T]
	OnUpdate []ActionFunc[T]
	OnExit   []ActionFunc[T]

	// Transitions in evaluation priority order
	Transitions []Transition[T]
}

// Transition defines a link between states
type Transition[T any] struct {
	TargetID StateID
	Event    event.EventType // event.EventTick = evaluated every Update
	Guard    GuardFunc[T]    // nil = always true
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T)

// TransitionListener observes completed transitions
type TransitionListener func(from, to StateID)
