package filter

import (
	"github.com/kelindar/bitmap"
)

type all struct{}

// All matches every live entity.
func All() ComponentFilter {
	return &all{}
}

func (f *all) Evaluate(src Source) bitmap.Bitmap {
	return src.Live().Clone(nil)
}
