// Package storage holds the component index backing a world: a row view
// (entity to component instances keyed by type), a column view (component
// type to the bitmap of entities carrying it), and the identifier
// allocator. The two views are kept mutually consistent by every mutation.
//
// A Store performs no locking. It is intended to be owned by a single
// goroutine; concurrent mutation is a caller bug.
package storage

import (
	"sort"

	"github.com/kelindar/bitmap"
	"github.com/rotisserie/eris"

	"github.com/mossforge/granary/types"
)

// Store is the component index and identifier allocator.
//
// Identifiers are allocated from a monotonic counter and never reused, so a
// handle that outlives its entity keeps failing with ErrEntityDoesNotExist
// instead of silently aliasing a newer entity.
type Store struct {
	nextID  types.EntityID
	rows    map[types.EntityID]map[types.ComponentType]any
	columns map[types.ComponentType]*bitmap.Bitmap
	live    bitmap.Bitmap
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		nextID:  0,
		rows:    make(map[types.EntityID]map[types.ComponentType]any),
		columns: make(map[types.ComponentType]*bitmap.Bitmap),
	}
}

// -------------------------------------------------------------------------------------------------
// Entity lifecycle
// -------------------------------------------------------------------------------------------------

// Spawn allocates the next identifier and marks it live with an empty row.
// Spawning cannot fail; exhausting the identifier space panics, since at
// that point the store is unusable and there is nothing sensible to retry.
func (s *Store) Spawn() types.EntityID {
	id := s.nextID
	if id > types.MaxEntityID {
		panic("granary: entity identifier space exhausted")
	}
	s.nextID++

	s.rows[id] = make(map[types.ComponentType]any)
	s.live.Set(uint32(id))
	return id
}

// SpawnAt claims a specific identifier, for deterministic replays and
// tests. The allocator is bumped past id so later Spawn calls never
// collide with it.
func (s *Store) SpawnAt(id types.EntityID) error {
	if id > types.MaxEntityID {
		return eris.Errorf("identifier %d is out of allocatable range", id)
	}
	if s.Contains(id) {
		return eris.Wrapf(ErrEntityAlreadyExists, "cannot spawn at %d", id)
	}

	s.rows[id] = make(map[types.ComponentType]any)
	s.live.Set(uint32(id))
	if id >= s.nextID {
		s.nextID = id + 1
	}
	return nil
}

// Destroy removes the entity's row and clears its bit in every column it
// appears in. The identifier is retired, never reissued.
func (s *Store) Destroy(id types.EntityID) error {
	row, ok := s.rows[id]
	if !ok {
		return eris.Wrapf(ErrEntityDoesNotExist, "cannot destroy entity %d", id)
	}

	for t := range row {
		s.columns[t].Remove(uint32(id))
	}
	delete(s.rows, id)
	s.live.Remove(uint32(id))
	return nil
}

// Clear destroys every entity and drops every column. The allocator keeps
// counting: identifiers from before the clear stay retired.
func (s *Store) Clear() {
	s.rows = make(map[types.EntityID]map[types.ComponentType]any)
	s.columns = make(map[types.ComponentType]*bitmap.Bitmap)
	s.live = bitmap.Bitmap{}
}

// Contains reports whether the identifier is live.
func (s *Store) Contains(id types.EntityID) bool {
	return s.live.Contains(uint32(id))
}

// Len returns the number of live entities.
func (s *Store) Len() int {
	return len(s.rows)
}

// IsEmpty reports whether no entities are live.
func (s *Store) IsEmpty() bool {
	return len(s.rows) == 0
}

// IDs returns a snapshot of the live identifiers in ascending order.
func (s *Store) IDs() []types.EntityID {
	out := make([]types.EntityID, 0, len(s.rows))
	s.live.Range(func(x uint32) {
		out = append(out, types.EntityID(x))
	})
	return out
}

// -------------------------------------------------------------------------------------------------
// Component operations
// -------------------------------------------------------------------------------------------------

// Put stores a component on a live entity, classified by the value's
// dynamic type. A second put of the same type replaces the first: an
// entity holds at most one instance per type, last write wins.
func (s *Store) Put(id types.EntityID, component any) error {
	if component == nil {
		return eris.Wrapf(ErrNilComponent, "cannot put component on entity %d", id)
	}
	row, ok := s.rows[id]
	if !ok {
		return eris.Wrapf(ErrEntityDoesNotExist, "cannot put component on entity %d", id)
	}

	t := types.TypeOf(component)
	row[t] = component
	s.column(t).Set(uint32(id))
	return nil
}

// Remove deletes the entity's instance of the given type. Removing a type
// the entity does not carry is a no-op, so removal is idempotent.
func (s *Store) Remove(id types.EntityID, t types.ComponentType) error {
	row, ok := s.rows[id]
	if !ok {
		return eris.Wrapf(ErrEntityDoesNotExist, "cannot remove %s from entity %d", t, id)
	}

	if _, ok := row[t]; !ok {
		return nil
	}
	delete(row, t)
	s.columns[t].Remove(uint32(id))
	return nil
}

// Get returns the entity's instance of the given type.
func (s *Store) Get(id types.EntityID, t types.ComponentType) (any, error) {
	row, ok := s.rows[id]
	if !ok {
		return nil, eris.Wrapf(ErrEntityDoesNotExist, "cannot get %s from entity %d", t, id)
	}
	component, ok := row[t]
	if !ok {
		return nil, eris.Wrapf(ErrComponentNotOnEntity, "entity %d has no %s", id, t)
	}
	return component, nil
}

// Take returns the entity's instance of the given type and removes it from
// the row in the same step.
func (s *Store) Take(id types.EntityID, t types.ComponentType) (any, error) {
	component, err := s.Get(id, t)
	if err != nil {
		return nil, err
	}
	delete(s.rows[id], t)
	s.columns[t].Remove(uint32(id))
	return component, nil
}

// Has reports whether a live entity carries the given type. A dead or
// unknown identifier simply reports false.
func (s *Store) Has(id types.EntityID, t types.ComponentType) bool {
	_, ok := s.rows[id][t]
	return ok
}

// TypeCount returns the number of component types on the entity, zero for
// dead identifiers.
func (s *Store) TypeCount(id types.EntityID) int {
	return len(s.rows[id])
}

// Types returns the entity's component types sorted by type string, so
// callers iterating a row see a stable order.
func (s *Store) Types(id types.EntityID) ([]types.ComponentType, error) {
	row, ok := s.rows[id]
	if !ok {
		return nil, eris.Wrapf(ErrEntityDoesNotExist, "cannot list component types of entity %d", id)
	}

	out := make([]types.ComponentType, 0, len(row))
	for t := range row {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out, nil
}

// Components returns the entity's component values in the order given by
// Types.
func (s *Store) Components(id types.EntityID) ([]any, error) {
	ts, err := s.Types(id)
	if err != nil {
		return nil, err
	}

	out := make([]any, len(ts))
	for i, t := range ts {
		out[i] = s.rows[id][t]
	}
	return out, nil
}

