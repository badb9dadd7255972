// Package filter provides a composable set algebra over a store's column
// view. A filter evaluates to the bitmap of entity identifiers matching
// it; query engines use the result as their candidate set.
package filter

import (
	"github.com/kelindar/bitmap"

	"github.com/mossforge/granary/types"
)

// Source is the read surface a filter evaluates against. A store's column
// view satisfies it.
type Source interface {
	// Column returns the bitmap of entities carrying the given type, nil
	// when no entity ever carried it.
	Column(t types.ComponentType) bitmap.Bitmap
	// Live returns the bitmap of live entity identifiers.
	Live() bitmap.Bitmap
	// TypeCount returns the number of component types on an entity.
	TypeCount(id types.EntityID) int
}

// ComponentFilter is a filter that selects entities based on their
// component types.
type ComponentFilter interface {
	// Evaluate returns the set of live entities matching the filter. The
	// returned bitmap is owned by the caller.
	Evaluate(src Source) bitmap.Bitmap
}
