package filter

import (
	"github.com/kelindar/bitmap"
)

type or struct {
	filters []ComponentFilter
}

// Or matches entities matched by at least one of the given filters.
func Or(filters ...ComponentFilter) ComponentFilter {
	return &or{filters: filters}
}

func (f *or) Evaluate(src Source) bitmap.Bitmap {
	out := bitmap.Bitmap{}
	for _, filter := range f.filters {
		out.Or(filter.Evaluate(src))
	}
	return out
}
