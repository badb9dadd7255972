package filter

import (
	"github.com/kelindar/bitmap"

	"github.com/mossforge/granary/types"
)

type exact struct {
	components []types.ComponentType
}

// Exact matches entities whose component set is exactly the given types,
// nothing more. With no arguments it matches entities carrying no
// components at all.
func Exact(components ...types.ComponentType) ComponentFilter {
	return &exact{components: dedupe(components)}
}

func (f *exact) Evaluate(src Source) bitmap.Bitmap {
	base := (&contains{components: f.components}).Evaluate(src)

	out := bitmap.Bitmap{}
	base.Range(func(x uint32) {
		if src.TypeCount(types.EntityID(x)) == len(f.components) {
			out.Set(x)
		}
	})
	return out
}
