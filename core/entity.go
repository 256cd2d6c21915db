package core

import "sync/atomic"

// Entity identifies a moving actor (vehicle, pedestrian, player) for the lifetime of a scene
type Entity uint64

// NoEntity is the zero handle, never issued by an Allocator
const NoEntity Entity = 0

// Allocator issues monotonically increasing entity handles
type Allocator struct {
	next atomic.Uint64
}

// Next returns a fresh handle
func (a *Allocator) Next() Entity {
	return Entity(a.next.Add(1))
}
