package filter

import (
	"github.com/kelindar/bitmap"
)

type not struct {
	filter ComponentFilter
}

// Not matches the live entities the wrapped filter does not match.
func Not(filter ComponentFilter) ComponentFilter {
	return &not{filter: filter}
}

func (f *not) Evaluate(src Source) bitmap.Bitmap {
	out := src.Live().Clone(nil)
	out.AndNot(f.filter.Evaluate(src))
	return out
}
