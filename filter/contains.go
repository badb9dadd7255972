package filter

import (
	"github.com/kelindar/bitmap"

	"github.com/mossforge/granary/types"
)

type contains struct {
	components []types.ComponentType
}

// Contains matches entities that carry all of the given component types.
// With no arguments it matches every live entity.
func Contains(components ...types.ComponentType) ComponentFilter {
	return &contains{components: dedupe(components)}
}

func (f *contains) Evaluate(src Source) bitmap.Bitmap {
	if len(f.components) == 0 {
		return src.Live().Clone(nil)
	}

	// The smallest column bounds the result, so intersect outward from it.
	// An empty intermediate ends the evaluation early: the intersection
	// can only shrink.
	cols := columnsBySize(src, f.components)
	out := cols[0].Clone(nil)
	for _, col := range cols[1:] {
		if out.Count() == 0 {
			break
		}
		out.And(col)
	}
	return out
}
