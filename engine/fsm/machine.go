package fsm

import (
	"fmt"
	"time"

	"github.com/lixenwraith/crosswalk/event"
)

// NewMachine creates a new FSM instance
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes:   make(map[StateID]*Node[T]),
		history: make([]StateID, 0, 8),
	}
}

// Subscribe registers a transition listener
func (m *Machine[T]) Subscribe(fn TransitionListener) {
	m.listeners = append(m.listeners, fn)
}

// Init enters the initial state, running its enter actions
func (m *Machine[T]) Init(ctx T, initial StateID) error {
	node, ok := m.nodes[initial]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", initial)
	}
	m.activeStateID = initial
	m.timeInState = 0
	m.history = append(m.history[:0], initial)
	for _, action := range node.OnEnter {
		action(ctx)
	}
	return nil
}

// Update advances time in state, runs per-tick actions and evaluates tick transitions
func (m *Machine[T]) Update(ctx T, dt time.Duration) {
	if m.activeStateID == StateNone {
		return
	}
	m.timeInState += dt

	node := m.nodes[m.activeStateID]
	for _, action := range node.OnUpdate {
		action(ctx)
	}
	m.fire(ctx, event.EventTick)
}

// HandleEvent routes an event to the active state
// Returns true if the event triggered a transition
// Events raised from inside enter/exit actions are deferred until the running transition
// has completed and its listeners were notified; they report false to the raiser
func (m *Machine[T]) HandleEvent(ctx T, et event.EventType) bool {
	if m.activeStateID == StateNone || et == event.EventTick {
		return false
	}
	if m.transitioning {
		m.deferred = append(m.deferred, et)
		return false
	}
	return m.fire(ctx, et)
}

func (m *Machine[T]) fire(ctx T, et event.EventType) bool {
	node := m.nodes[m.activeStateID]
	for _, trans := range node.Transitions {
		if trans.Event != et {
			continue
		}
		if trans.Guard == nil || trans.Guard(ctx) {
			return m.transition(ctx, trans.TargetID)
		}
	}
	return false
}

// transition exits the current state and enters the target; self-transitions are ignored
func (m *Machine[T]) transition(ctx T, targetID StateID) bool {
	if m.activeStateID == targetID {
		return false
	}
	target, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("FSM: attempted transition to unknown state ID %d", targetID))
	}

	m.transitioning = true
	from := m.activeStateID
	for _, action := range m.nodes[from].OnExit {
		action(ctx)
	}

	// State is committed before enter actions so they observe the new state
	m.activeStateID = targetID
	m.timeInState = 0
	m.history = append(m.history, targetID)

	for _, action := range target.OnEnter {
		action(ctx)
	}
	for _, fn := range m.listeners {
		fn(from, targetID)
	}
	m.transitioning = false

	for len(m.deferred) > 0 {
		next := m.deferred[0]
		m.deferred = m.deferred[1:]
		m.fire(ctx, next)
	}
	return true
}

// Current returns the active state ID
func (m *Machine[T]) Current() StateID {
	return m.activeStateID
}

// CurrentName returns the active state's name
func (m *Machine[T]) CurrentName() string {
	if node, ok := m.nodes[m.activeStateID]; ok {
		return node.Name
	}
	return ""
}

// StateName returns the name registered for id
func (m *Machine[T]) StateName(id StateID) string {
	if node, ok := m.nodes[id]; ok {
		return node.Name
	}
	return ""
}

// TimeInState returns time spent in the active state
func (m *Machine[T]) TimeInState() time.Duration {
	return m.timeInState
}

// History returns every state entered since Init, in order
func (m *Machine[T]) History() []StateID {
	out := make([]StateID, len(m.history))
	copy(out, m.history)
	return out
}
