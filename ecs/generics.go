package ecs

import "github.com/milk9111/puffball/ecs/component"

// Add attaches a component to a live entity, replacing any existing value.
func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value T) error {
	if !w.Alive(e) {
		return component.ErrEntityNotAlive
	}
	w.store(handle.ID()).set(e.id(), value)
	return nil
}

// Get returns the component for e, if present.
func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (T, bool) {
	var zero T
	if !w.entities.alive(e) {
		return zero, false
	}
	v := w.store(handle.ID()).get(e.id())
	if v == nil {
		return zero, false
	}
	cast, ok := v.(T)
	if !ok {
		return zero, false
	}
	return cast, true
}

// Has reports whether e carries the component.
func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	return w.entities.alive(e) && w.store(handle.ID()).has(e.id())
}

// Remove detaches the component from e if present.
func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	if !w.entities.alive(e) {
		return false
	}
	return w.store(handle.ID()).remove(e.id())
}

// ForEach visits every live entity carrying the component. The iteration
// order is storage order; entities added or removed by fn are not revisited
// this pass. Entities marked destroyed are skipped.
func ForEach[T any](w *World, handle component.ComponentHandle[T], fn func(e Entity, v T)) {
	if fn == nil {
		return
	}
	s := w.store(handle.ID())
	snapshot := append([]entityID(nil), s.ids()...)
	for _, id := range snapshot {
		e := makeEntity(id, w.entities.gens[id])
		if !w.Alive(e) {
			continue
		}
		v := s.get(id)
		if v == nil {
			continue
		}
		if cast, ok := v.(T); ok {
			fn(e, cast)
		}
	}
}

// Query returns the live entities carrying the component.
func Query[T any](w *World, handle component.ComponentHandle[T]) []Entity {
	var out []Entity
	ForEach(w, handle, func(e Entity, _ T) {
		out = append(out, e)
	})
	return out
}
