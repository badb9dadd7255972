package granary

import (
	"iter"
	"time"

	"github.com/rotisserie/eris"

	"github.com/mossforge/granary/filter"
	"github.com/mossforge/granary/search"
	"github.com/mossforge/granary/statsd"
	"github.com/mossforge/granary/storage"
	"github.com/mossforge/granary/types"
)

// Find builds a query yielding tuples of the given component types, in the
// order given. Refine it with Has, Without and Where, then consume it with
// Iter, Each, Count, First or Collect; every consumption re-evaluates
// against current state.
//
//	seq, err := w.Find(granary.Type[Position](), granary.Type[Velocity]()).
//		Without(granary.Type[Dead]()).
//		Iter()
func (w *World) Find(components ...types.ComponentType) *search.Find {
	return search.New(w.store, components...)
}

// FindOn evaluates a one-off query against a single entity: the tuple and
// true when the entity matches. A dead identifier is an error, a live
// non-match is (nil, false, nil).
func (w *World) FindOn(id types.EntityID, components ...types.ComponentType) ([]any, bool, error) {
	start := time.Now()
	tuple, matched, err := search.New(w.store, components...).On(id)
	statsd.EmitFindStat(start, "on")
	return tuple, matched, err
}

// FindMatching iterates the identifiers matched by an arbitrary component
// filter, ascending. Compose filters for shapes Find cannot express, like
// disjunctions:
//
//	for id := range w.FindMatching(filter.Or(filter.Contains(a), filter.Contains(b))) { ... }
//
// The candidate set snapshots at the call, as with Entities.
func (w *World) FindMatching(f filter.ComponentFilter) iter.Seq[types.EntityID] {
	start := time.Now()
	candidates := f.Evaluate(w.store)
	snapshot := make([]types.EntityID, 0, candidates.Count())
	candidates.Range(func(x uint32) {
		snapshot = append(snapshot, types.EntityID(x))
	})
	statsd.EmitFindStat(start, "matching")

	return func(yield func(types.EntityID) bool) {
		for _, id := range snapshot {
			if !w.store.Contains(id) {
				continue
			}
			if !yield(id) {
				return
			}
		}
	}
}

// Satisfies reports whether a live entity carries every has type and none
// of the without types. Unlike Find, the two lists need not be disjoint; a
// type in both makes the answer trivially false.
func (w *World) Satisfies(id types.EntityID, has []types.ComponentType, without []types.ComponentType) (bool, error) {
	if !w.store.Contains(id) {
		return false, eris.Wrapf(storage.ErrEntityDoesNotExist, "cannot check entity %d", id)
	}

	for _, t := range has {
		if !w.store.Has(id, t) {
			return false, nil
		}
	}
	for _, t := range without {
		if w.store.Has(id, t) {
			return false, nil
		}
	}
	return true, nil
}
