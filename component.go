package granary

import (
	"github.com/rotisserie/eris"

	"github.com/mossforge/granary/types"
)

// GetComponent returns the entity's component of type T.
func GetComponent[T any](w *World, id types.EntityID) (T, error) {
	var zero T
	component, err := w.store.Get(id, types.Of[T]())
	if err != nil {
		return zero, err
	}

	out, ok := component.(T)
	if !ok {
		// Rows key instances by their dynamic type, so the assertion can
		// only fail if the store's views desynchronized.
		return zero, eris.Errorf("entity %d stored %T under component type %s", id, component, types.Of[T]())
	}
	return out, nil
}

// HasComponent reports whether a live entity carries a component of type
// T. A dead identifier simply reports false.
func HasComponent[T any](w *World, id types.EntityID) bool {
	return w.store.Has(id, types.Of[T]())
}

// RemoveComponent deletes the entity's component of type T. Removing a
// type the entity does not carry is a no-op.
func RemoveComponent[T any](w *World, id types.EntityID) error {
	return w.Remove(id, types.Of[T]())
}

// TakeComponent returns the entity's component of type T and removes it
// from the entity in the same step.
func TakeComponent[T any](w *World, id types.EntityID) (T, error) {
	var zero T
	component, err := w.Take(id, types.Of[T]())
	if err != nil {
		return zero, err
	}

	out, ok := component.(T)
	if !ok {
		return zero, eris.Errorf("entity %d stored %T under component type %s", id, component, types.Of[T]())
	}
	return out, nil
}

// UpdateComponent reads the entity's component of type T, applies fn, and
// stores the result back, replacing the old instance.
func UpdateComponent[T any](w *World, id types.EntityID, fn func(T) T) error {
	current, err := GetComponent[T](w, id)
	if err != nil {
		return err
	}
	return w.Insert(id, fn(current))
}
