package search

import (
	"github.com/kelindar/bitmap"

	"github.com/mossforge/granary/types"
)

// snapshot extracts a bitmap's set bits as entity identifiers in ascending
// order. Queries iterate the snapshot, not the live bitmap, so mutation
// during iteration cannot skip or repeat surviving entities.
func snapshot(bm bitmap.Bitmap) []types.EntityID {
	out := make([]types.EntityID, 0, bm.Count())
	bm.Range(func(x uint32) {
		out = append(out, types.EntityID(x))
	})
	return out
}

// whereEnv builds the expression environment for one entity: every
// component on it keyed by base type name, plus "_id" for the identifier.
func whereEnv(reader Reader, id types.EntityID) (map[string]any, error) {
	ts, err := reader.Types(id)
	if err != nil {
		return nil, err
	}

	env := make(map[string]any, len(ts)+1)
	// Cast to a plain uint32: expr compares machine integers more readily
	// than named types.
	env["_id"] = uint32(id)
	for _, t := range ts {
		component, err := reader.Get(id, t)
		if err != nil {
			return nil, err
		}
		env[t.Name()] = component
	}
	return env, nil
}

func cloneTypes(components []types.ComponentType) []types.ComponentType {
	if components == nil {
		return nil
	}
	out := make([]types.ComponentType, len(components))
	copy(out, components)
	return out
}
