package fsm

import "fmt"

// AddState adds a node to the machine
func (m *Machine[T]) AddState(id StateID, name string) *Node[T] {
	node := &Node[T]{
		ID:   id,
		Name: name,
	}
	if _, exists := m.nodes[id]; !exists {
		m.order = append(m.order, id)
	}
	m.nodes[id] = node
	return node
}

// AddTransition adds a transition to a specific node
func (m *Machine[T]) AddTransition(sourceID StateID, t Transition[T]) {
	if node, ok := m.nodes[sourceID]; ok {
		node.Transitions = append(node.Transitions, t)
	}
}

// OnEnter appends an enter action to a node
func (m *Machine[T]) OnEnter(id StateID, fn ActionFunc[T]) {
	if node, ok := m.nodes[id]; ok {
		node.OnEnter = append(node.OnEnter, fn)
	}
}

// OnExit appends an exit action to a node
func (m *Machine[T]) OnExit(id StateID, fn ActionFunc[T]) {
	if node, ok := m.nodes[id]; ok {
		node.OnExit = append(node.OnExit, fn)
	}
}

// OnUpdate appends a per-tick action to a node
func (m *Machine[T]) OnUpdate(id StateID, fn ActionFunc[T]) {
	if node, ok := m.nodes[id]; ok {
		node.OnUpdate = append(node.OnUpdate, fn)
	}
}

// Validate checks every transition references a known state
// Must be called after the graph is built and before Init
func (m *Machine[T]) Validate() error {
	if len(m.nodes) == 0 {
		return fmt.Errorf("fsm has no states")
	}
	for _, id := range m.order {
		node := m.nodes[id]
		if id == StateNone {
			return fmt.Errorf("state %q uses reserved id %d", node.Name, StateNone)
		}
		for i, t := range node.Transitions {
			if _, ok := m.nodes[t.TargetID]; !ok {
				return fmt.Errorf("state %q transition %d targets unknown state %d", node.Name, i, t.TargetID)
			}
		}
	}
	return nil
}
