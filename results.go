package querydsl

import "errors"

var (
	// ErrNonUniqueResult is returned when a query expected to return at most
	// one result returns more.
	ErrNonUniqueResult = errors.New("querydsl: non-unique result")
	// ErrNoResult is returned when a query expected to return one result returns none.
	ErrNoResult = errors.New("querydsl: no result")
)

// QueryResults is a page of results with the total count of matching rows.
type QueryResults[T any] struct {
	Results []T
	Total   int64
	Limit   int64
	Offset  int64
}

// NewQueryResults returns a QueryResults.
func NewQueryResults[T any](results []T, total int64, mod QueryModifiers) *QueryResults[T] {
	return &QueryResults[T]{
		Results: results,
		Total:   total,
		Limit:   mod.Limit,
		Offset:  mod.Offset,
	}
}

// IsEmpty reports whether the page has no results.
func (r *QueryResults[T]) IsEmpty() bool {
	return len(r.Results) == 0
}
