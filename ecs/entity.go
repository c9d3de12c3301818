package ecs

import "fmt"

// Entity is a handle to a world slot. The low 32 bits hold the slot and the
// high 32 bits the slot's generation, which changes on reuse so stale handles
// stop being alive.
type Entity uint64

// Nil is the zero handle. CreateEntity never returns it.
const Nil Entity = 0

type (
	entityID   uint32
	generation uint32
)

const slotBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(gen)<<slotBits | Entity(id)
}

func (e Entity) id() entityID           { return entityID(e) }
func (e Entity) generation() generation { return generation(e >> slotBits) }

// Valid reports whether e refers to a slot at all. It does not check
// liveness; use World.IsAlive for that.
func (e Entity) Valid() bool {
	return e.id() != 0
}

func (e Entity) String() string {
	if !e.Valid() {
		return "entity(nil)"
	}
	return fmt.Sprintf("entity(%d.%d)", e.id(), e.generation())
}
