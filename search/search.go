// Package search implements lazy queries over a component store. A Find
// names the component types to yield, plus optional has, without and where
// refinements; results stream one tuple at a time.
package search

import (
	"iter"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rotisserie/eris"

	"github.com/mossforge/granary/filter"
	"github.com/mossforge/granary/storage"
	"github.com/mossforge/granary/types"
)

// Reader is the store surface a query runs against.
type Reader interface {
	filter.Source

	Contains(id types.EntityID) bool
	Has(id types.EntityID, t types.ComponentType) bool
	Get(id types.EntityID, t types.ComponentType) (any, error)
	Types(id types.EntityID) ([]types.ComponentType, error)
}

// CallbackFn is the function signature for Each callbacks. The components
// slice holds the requested types in request order.
type CallbackFn func(id types.EntityID, components []any) bool

// Match is one fully materialized query result.
type Match struct {
	ID         types.EntityID
	Components []any
}

// Find is a query over a store: yield the entities carrying every
// requested component type, additionally gated by has, excluded by
// without, optionally filtered by a where expression.
//
// Refinement methods return derived queries, so a base Find can be kept
// and specialized freely. Every evaluation method re-runs the query
// against the store's current state.
type Find struct {
	reader     Reader
	components []types.ComponentType // yielded in tuples
	has        []types.ComponentType // gate matching, never yielded
	without    []types.ComponentType // exclude matching
	whereSrc   string
	where      *vm.Program
}

// New builds a query yielding tuples of the given component types. With no
// types it matches every live entity and yields empty tuples.
func New(reader Reader, components ...types.ComponentType) *Find {
	return &Find{reader: reader, components: components}
}

// Has requires the given types to be present on matched entities without
// including them in yielded tuples.
func (f *Find) Has(components ...types.ComponentType) *Find {
	out := f.clone()
	out.has = append(out.has, components...)
	return out
}

// Without excludes entities carrying any of the given types.
func (f *Find) Without(components ...types.ComponentType) *Find {
	out := f.clone()
	out.without = append(out.without, components...)
	return out
}

// Where filters matches with an expr-lang predicate. The environment binds
// each component on the entity by its base type name, plus "_id" for the
// identifier, e.g. "Position.X > 3 && _id != 0".
//
// Unlike tuple materialization, where predicates run eagerly when
// evaluation starts, so expression failures surface as errors before the
// first yield rather than disappearing mid-iteration.
func (f *Find) Where(src string) *Find {
	out := f.clone()
	out.whereSrc = src
	out.where = nil
	return out
}

// -------------------------------------------------------------------------------------------------
// Evaluation
// -------------------------------------------------------------------------------------------------

// Iter returns the lazy result sequence. Clause validation and where
// filtering happen here, before anything is yielded; tuples materialize
// one at a time as the sequence is consumed.
//
// The candidate set is snapshotted when Iter returns: entities despawned
// or mutated away mid-iteration are re-checked and skipped, entities that
// begin matching after evaluation starts do not appear. Identifiers are
// yielded in ascending order.
func (f *Find) Iter() (iter.Seq2[types.EntityID, []any], error) {
	ids, err := f.evaluate()
	if err != nil {
		return nil, err
	}

	return func(yield func(types.EntityID, []any) bool) {
		for _, id := range ids {
			components, ok := f.materialize(id)
			if !ok {
				continue
			}
			if !yield(id, components) {
				return
			}
		}
	}, nil
}

// Each iterates over all entities that match the query. To stop the
// iteration, return false from the callback; to continue, return true.
func (f *Find) Each(callback CallbackFn) error {
	ids, err := f.evaluate()
	if err != nil {
		return err
	}

	for _, id := range ids {
		components, ok := f.materialize(id)
		if !ok {
			continue
		}
		if !callback(id, components) {
			return nil
		}
	}
	return nil
}

// Count returns the number of entities that match the query, without
// materializing any tuples.
func (f *Find) Count() (int, error) {
	ids, err := f.evaluate()
	if err != nil {
		return 0, err
	}

	count := 0
	for _, id := range ids {
		if f.matches(id) {
			count++
		}
	}
	return count, nil
}

// First returns the first entity that matches the query, or ErrNoMatch.
func (f *Find) First() (types.EntityID, []any, error) {
	ids, err := f.evaluate()
	if err != nil {
		return types.BadEntityID, nil, err
	}

	for _, id := range ids {
		if components, ok := f.materialize(id); ok {
			return id, components, nil
		}
	}
	return types.BadEntityID, nil, ErrNoMatch
}

// MustFirst returns the first entity that matches the query and panics
// when there is none.
func (f *Find) MustFirst() (types.EntityID, []any) {
	id, components, err := f.First()
	if err != nil {
		panic("no entity matches the search")
	}
	return id, components
}

// Collect materializes every match. Meant for tests and small results;
// prefer Iter or Each for streaming.
func (f *Find) Collect() ([]Match, error) {
	ids, err := f.evaluate()
	if err != nil {
		return nil, err
	}

	out := make([]Match, 0, len(ids))
	for _, id := range ids {
		if components, ok := f.materialize(id); ok {
			out = append(out, Match{ID: id, Components: components})
		}
	}
	return out, nil
}

// On evaluates the query against a single entity: its tuple and true when
// the entity matches, false when it is live but does not match. A dead
// identifier is an error, unlike a plain non-match.
func (f *Find) On(id types.EntityID) ([]any, bool, error) {
	if err := f.validate(); err != nil {
		return nil, false, err
	}
	if !f.reader.Contains(id) {
		return nil, false, eris.Wrapf(storage.ErrEntityDoesNotExist, "cannot run query on entity %d", id)
	}

	if f.where != nil {
		ok, err := f.matchWhere(id)
		if err != nil || !ok {
			return nil, false, err
		}
	}
	components, ok := f.materialize(id)
	return components, ok, nil
}

// -------------------------------------------------------------------------------------------------
// Internals
// -------------------------------------------------------------------------------------------------

func (f *Find) clone() *Find {
	out := *f
	out.components = cloneTypes(f.components)
	out.has = cloneTypes(f.has)
	out.without = cloneTypes(f.without)
	return &out
}

// validate rejects malformed queries before any candidate is considered.
// The three clauses must be pairwise disjoint and free of repeats: a type
// cannot be yielded and excluded at once, and a repeated find type would
// make a tuple slot ambiguous.
func (f *Find) validate() error {
	clauses := []struct {
		name       string
		components []types.ComponentType
	}{
		{"find", f.components},
		{"has", f.has},
		{"without", f.without},
	}

	seen := make(map[types.ComponentType]string)
	for _, clause := range clauses {
		for _, t := range clause.components {
			if t.IsZero() {
				return eris.Wrapf(ErrInvalidQuery, "%s clause holds the zero component type", clause.name)
			}
			prev, ok := seen[t]
			if ok && prev == clause.name {
				return eris.Wrapf(ErrInvalidQuery, "%s appears twice in the %s clause", t, clause.name)
			}
			if ok {
				return eris.Wrapf(ErrInvalidQuery, "%s appears in both the %s and %s clauses", t, prev, clause.name)
			}
			seen[t] = clause.name
		}
	}

	if f.whereSrc != "" && f.where == nil {
		// Compile checks the expression shape only; the environment is not
		// known until entities are bound, so type errors inside the
		// expression can still surface at run time.
		program, err := expr.Compile(f.whereSrc, expr.AsBool())
		if err != nil {
			return eris.Wrapf(ErrInvalidWhere, "failed to parse where clause: %s", err)
		}
		f.where = program
	}
	return nil
}

// evaluate validates the query and computes the candidate snapshot: the
// column intersection for find and has types minus the union of without
// columns, with the optional where predicate applied.
func (f *Find) evaluate() ([]types.EntityID, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}

	required := make([]types.ComponentType, 0, len(f.components)+len(f.has))
	required = append(required, f.components...)
	required = append(required, f.has...)

	var cf filter.ComponentFilter = filter.Contains(required...)
	if len(f.without) > 0 {
		cf = filter.And(cf, filter.Not(filter.AnyOf(f.without...)))
	}
	ids := snapshot(cf.Evaluate(f.reader))

	if f.where == nil {
		return ids, nil
	}

	kept := ids[:0]
	for _, id := range ids {
		ok, err := f.matchWhere(id)
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, id)
		}
	}
	return kept, nil
}

// matches re-checks a candidate against the live store: still alive, still
// carrying every find and has type, still free of every without type.
func (f *Find) matches(id types.EntityID) bool {
	if !f.reader.Contains(id) {
		return false
	}
	for _, t := range f.components {
		if !f.reader.Has(id, t) {
			return false
		}
	}
	for _, t := range f.has {
		if !f.reader.Has(id, t) {
			return false
		}
	}
	for _, t := range f.without {
		if f.reader.Has(id, t) {
			return false
		}
	}
	return true
}

// materialize builds the entity's tuple in request order. Candidates are
// snapshotted when evaluation starts; an entity despawned or mutated away
// since then simply no longer matches.
func (f *Find) materialize(id types.EntityID) ([]any, bool) {
	if !f.matches(id) {
		return nil, false
	}

	components := make([]any, len(f.components))
	for i, t := range f.components {
		component, err := f.reader.Get(id, t)
		if err != nil {
			return nil, false
		}
		components[i] = component
	}
	return components, true
}

func (f *Find) matchWhere(id types.EntityID) (bool, error) {
	env, err := whereEnv(f.reader, id)
	if err != nil {
		return false, nil
	}

	output, err := expr.Run(f.where, env)
	if err != nil {
		return false, eris.Wrapf(ErrInvalidWhere, "failed to run where clause: %s", err)
	}
	matched, ok := output.(bool)
	if !ok {
		return false, eris.Wrap(ErrInvalidWhere, "where clause must evaluate to a boolean")
	}
	return matched, nil
}
