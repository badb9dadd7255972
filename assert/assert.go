// Package assert funnels the gotest.tools and testify assertions used by
// this repo's tests through one import. Assertions that take an error
// render the full eris wrap chain into the failure message, so a failed
// check prints where the error came from, not just its outermost text.
package assert

import (
	gocmp "github.com/google/go-cmp/cmp"
	"github.com/rotisserie/eris"
	testify "github.com/stretchr/testify/assert"
	gotest "gotest.tools/v3/assert"
)

type helperT interface {
	Helper()
}

// withTrace prepends the eris-rendered chain of err to the failure args.
func withTrace(err error, msgAndArgs []any) []any {
	if err == nil {
		return msgAndArgs
	}
	return append([]any{eris.ToString(err, true)}, msgAndArgs...)
}

// gotest.tools wrappers

func NilError(t gotest.TestingT, err error, msgAndArgs ...any) {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	gotest.NilError(t, err, withTrace(err, msgAndArgs)...)
}

func Equal(t gotest.TestingT, x, y any, msgAndArgs ...any) {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	gotest.Equal(t, x, y, msgAndArgs...)
}

func DeepEqual(t gotest.TestingT, x, y any, opts ...gocmp.Option) {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	gotest.DeepEqual(t, x, y, opts...)
}

// ErrorContains matches substring against the whole wrap chain, so wrap
// context added above a sentinel stays matchable.
func ErrorContains(t gotest.TestingT, err error, substring string, msgAndArgs ...any) {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	gotest.ErrorContains(t, err, substring, withTrace(err, msgAndArgs)...)
}

// ErrorIs compares root causes, so a wrapped sentinel matches the bare
// sentinel it was wrapped from.
func ErrorIs(t gotest.TestingT, err error, expected error, msgAndArgs ...any) {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	gotest.ErrorIs(t, eris.Cause(err), eris.Cause(expected), withTrace(err, msgAndArgs)...)
}

// testify wrappers

// IsError asserts err is non-nil; named to avoid clashing with the
// gotest.tools Error signature.
func IsError(t testify.TestingT, err error, msgAndArgs ...any) bool {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	return testify.Error(t, err, withTrace(err, msgAndArgs)...)
}

// IsEqual asserts testify-style equality; named to avoid clashing with
// the gotest.tools Equal signature.
func IsEqual(t testify.TestingT, expected, actual any, msgAndArgs ...any) bool {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	return testify.Equal(t, expected, actual, msgAndArgs...)
}

func NotEqual(t testify.TestingT, expected, actual any, msgAndArgs ...any) bool {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	return testify.NotEqual(t, expected, actual, msgAndArgs...)
}

func True(t testify.TestingT, value bool, msgAndArgs ...any) bool {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	return testify.True(t, value, msgAndArgs...)
}

func False(t testify.TestingT, value bool, msgAndArgs ...any) bool {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	return testify.False(t, value, msgAndArgs...)
}

func Nil(t testify.TestingT, object any, msgAndArgs ...any) bool {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	return testify.Nil(t, object, msgAndArgs...)
}

func NotEmpty(t testify.TestingT, object any, msgAndArgs ...any) bool {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	return testify.NotEmpty(t, object, msgAndArgs...)
}

func Len(t testify.TestingT, object any, length int, msgAndArgs ...any) bool {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	return testify.Len(t, object, length, msgAndArgs...)
}

func Panics(t testify.TestingT, f testify.PanicTestFunc, msgAndArgs ...any) bool {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	return testify.Panics(t, f, msgAndArgs...)
}

func PanicsWithValue(t testify.TestingT, expected any, f testify.PanicTestFunc, msgAndArgs ...any) bool {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	return testify.PanicsWithValue(t, expected, f, msgAndArgs...)
}

func NotPanics(t testify.TestingT, f testify.PanicTestFunc, msgAndArgs ...any) bool {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
	return testify.NotPanics(t, f, msgAndArgs...)
}
