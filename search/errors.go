package search

import (
	"github.com/rotisserie/eris"
)

var (
	// ErrInvalidQuery marks queries whose find, has and without clauses
	// are not pairwise disjoint. It surfaces before anything is yielded.
	ErrInvalidQuery = eris.New("invalid query")

	// ErrInvalidWhere marks where clauses that fail to parse, fail to run,
	// or evaluate to something other than a boolean.
	ErrInvalidWhere = eris.New("invalid where clause")

	// ErrNoMatch is returned by First when the query matches nothing.
	ErrNoMatch = eris.New("no entity matches the search")
)
