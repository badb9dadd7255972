package filter

import (
	"sort"

	"github.com/kelindar/bitmap"

	"github.com/mossforge/granary/types"
)

// columnsBySize fetches the column for each type and orders them by
// ascending population, so intersections start from the smallest set.
func columnsBySize(src Source, components []types.ComponentType) []bitmap.Bitmap {
	cols := make([]bitmap.Bitmap, len(components))
	for i, t := range components {
		cols[i] = src.Column(t)
	}
	sort.Slice(cols, func(i, j int) bool {
		return cols[i].Count() < cols[j].Count()
	})
	return cols
}

// dedupe drops repeated types, keeping first occurrences in order. Filters
// are set algebra; a repeated type must not skew counts. The input slice is
// left untouched.
func dedupe(components []types.ComponentType) []types.ComponentType {
	if len(components) < 2 {
		return components
	}

	seen := make(map[types.ComponentType]struct{}, len(components))
	out := make([]types.ComponentType, 0, len(components))
	for _, t := range components {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
