package filter

import (
	"github.com/kelindar/bitmap"

	"github.com/mossforge/granary/types"
)

type anyOf struct {
	components []types.ComponentType
}

// AnyOf matches entities carrying at least one of the given component
// types. Composed with Not it expresses exclusion lists.
func AnyOf(components ...types.ComponentType) ComponentFilter {
	return &anyOf{components: dedupe(components)}
}

func (f *anyOf) Evaluate(src Source) bitmap.Bitmap {
	out := bitmap.Bitmap{}
	for _, t := range f.components {
		out.Or(src.Column(t))
	}
	return out
}
