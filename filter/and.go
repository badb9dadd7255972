package filter

import (
	"github.com/kelindar/bitmap"
)

type and struct {
	filters []ComponentFilter
}

// And matches entities matched by every given filter. With no arguments it
// matches every live entity.
func And(filters ...ComponentFilter) ComponentFilter {
	return &and{filters: filters}
}

func (f *and) Evaluate(src Source) bitmap.Bitmap {
	if len(f.filters) == 0 {
		return src.Live().Clone(nil)
	}

	out := f.filters[0].Evaluate(src)
	for _, filter := range f.filters[1:] {
		if out.Count() == 0 {
			break
		}
		out.And(filter.Evaluate(src))
	}
	return out
}
