// Package component defines the data attached to entities. Every component
// type has exactly one handle, created at package init with NewComponent.
package component

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID identifies a component type within the process. Zero is never
// issued.
type ComponentID uint32

var lastID atomic.Uint32

type ComponentKind[T any] struct {
	id   ComponentID
	name string
}

func NewComponentKind[T any]() ComponentKind[T] {
	var zero T
	return ComponentKind[T]{
		id:   ComponentID(lastID.Add(1)),
		name: fmt.Sprintf("%T", zero),
	}
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }
func (k ComponentKind[T]) Name() string    { return k.name }
func (k ComponentKind[T]) Valid() bool     { return k.id != 0 }

// ComponentHandle is the typed key passed to the ecs Add/Get helpers.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}

// ID is shorthand for Kind().ID() when building queries.
func (h ComponentHandle[T]) ID() ComponentID {
	return h.kind.id
}

func (h ComponentHandle[T]) String() string {
	return h.kind.name
}
