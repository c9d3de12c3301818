package ecs

import "github.com/milk9111/nightwalk/ecs/component"

func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value T) error {
	return w.addComponent(e, handle.ID(), value)
}

func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	return w.removeComponent(e, handle.ID())
}

func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	_, ok := w.getComponent(e, handle.ID())
	return ok
}

func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (T, bool) {
	var zero T
	value, ok := w.getComponent(e, handle.ID())
	if !ok {
		return zero, false
	}
	cast, ok := value.(T)
	if !ok {
		return zero, false
	}
	return cast, true
}

// Update loads a component, lets fn mutate it and stores it back.
func Update[T any](w *World, e Entity, handle component.ComponentHandle[T], fn func(*T)) bool {
	value, ok := Get(w, e, handle)
	if !ok {
		return false
	}
	fn(&value)
	return Add(w, e, handle, value) == nil
}

// First returns the first entity holding the component.
func First[T any](w *World, handle component.ComponentHandle[T]) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	ents := w.store(handle.ID(), false).Entities()
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

// ForEach visits every entity holding the component. Writes through the
// pointer are stored back after fn returns.
func ForEach[T any](w *World, handle component.ComponentHandle[T], fn func(Entity, *T)) {
	if w == nil {
		return
	}
	s := w.store(handle.ID(), false)
	ents := append([]Entity(nil), s.Entities()...)
	for _, e := range ents {
		value, ok := s.Get(e).(T)
		if !ok {
			continue
		}
		fn(e, &value)
		if w.entities.isAlive(e) && s.Has(e) {
			s.Set(e, value)
		}
	}
}
