// Package granary implements an in-process entity-component store.
//
// A World hands out entity identifiers, stores heterogeneous component
// values classified by their concrete type (at most one instance per type
// per entity, last write wins), and answers queries that lazily yield
// tuples of requested components, gated by has types and trimmed by
// without types.
//
// A World is single-threaded on purpose: no method takes a lock, and
// mutating a world from two goroutines at once is a data race. Own a world
// from one goroutine, or fence it yourself.
//
// Iteration has snapshot-candidate, live-row semantics: Entities, All and
// query evaluation snapshot the set of candidate identifiers up front, then
// re-check each candidate against live state as it is yielded. Entities
// despawned mid-iteration are skipped, never yielded stale; entities that
// start matching after evaluation begins appear on the next evaluation.
package granary

import (
	"github.com/mossforge/granary/search"
	"github.com/mossforge/granary/storage"
	"github.com/mossforge/granary/types"
)

type (
	// EntityID identifies an entity. See types.EntityID.
	EntityID = types.EntityID
	// ComponentType identifies a component kind by its concrete Go type.
	ComponentType = types.ComponentType
)

const (
	// MaxEntityID is the last identifier a world will allocate.
	MaxEntityID = types.MaxEntityID
	// BadEntityID is a sentinel value returned alongside errors.
	BadEntityID = types.BadEntityID
)

var (
	// ErrEntityDoesNotExist marks per-entity operations on identifiers
	// that are not live, whether never allocated or already despawned.
	ErrEntityDoesNotExist = storage.ErrEntityDoesNotExist
	// ErrEntityAlreadyExists marks SpawnAt collisions.
	ErrEntityAlreadyExists = storage.ErrEntityAlreadyExists
	// ErrComponentNotOnEntity marks Get or Take of a type the live entity
	// does not carry.
	ErrComponentNotOnEntity = storage.ErrComponentNotOnEntity
	// ErrNilComponent marks nil component values and zero component types.
	ErrNilComponent = storage.ErrNilComponent

	// ErrInvalidQuery marks queries whose find, has and without clauses
	// overlap.
	ErrInvalidQuery = search.ErrInvalidQuery
	// ErrInvalidWhere marks broken where clauses.
	ErrInvalidWhere = search.ErrInvalidWhere
	// ErrNoMatch is returned by First when a query matches nothing.
	ErrNoMatch = search.ErrNoMatch
)

// Type returns the component type token for T, the handle queries and
// typed accessors use to name component kinds.
func Type[T any]() types.ComponentType {
	return types.Of[T]()
}

// TypeOf returns the component type token for a value's dynamic type.
func TypeOf(component any) types.ComponentType {
	return types.TypeOf(component)
}
