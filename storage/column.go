package storage

import (
	"sort"

	"github.com/kelindar/bitmap"

	"github.com/mossforge/granary/types"
)

// The column view maps each component type to the bitmap of entity
// identifiers carrying it, one bit per identifier. Set algebra over
// columns (intersection, union, negation against the live set) is how
// queries compute candidate sets without touching rows.

// Column returns the bitmap of entities carrying the given type, or a nil
// bitmap when no entity ever carried it. Callers must treat the returned
// bitmap as read-only; mutating it would desynchronize the two views.
func (s *Store) Column(t types.ComponentType) bitmap.Bitmap {
	if col, ok := s.columns[t]; ok {
		return *col
	}
	return nil
}

// Live returns the bitmap of live identifiers. Read-only, as with Column.
func (s *Store) Live() bitmap.Bitmap {
	return s.live
}

// ColumnCount returns how many entities carry the given type.
func (s *Store) ColumnCount(t types.ComponentType) int {
	return s.Column(t).Count()
}

// ColumnTypes returns every component type that ever grew a column,
// sorted by type string. Columns persist after their last entity leaves;
// the listing is the world's type universe, not its current population.
func (s *Store) ColumnTypes() []types.ComponentType {
	out := make([]types.ComponentType, 0, len(s.columns))
	for t := range s.columns {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}

// column returns the mutable column for t, creating it lazily. Columns
// spring into existence on the first put of a new type; there is no
// registration step.
func (s *Store) column(t types.ComponentType) *bitmap.Bitmap {
	col, ok := s.columns[t]
	if !ok {
		col = &bitmap.Bitmap{}
		s.columns[t] = col
	}
	return col
}
