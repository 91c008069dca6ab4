package sqlq

import (
	"database/sql"
	"fmt"

	"github.com/ikonglong/querydsl"
	"github.com/qjebbs/go-sqlf/v4"
	"golang.org/x/sync/errgroup"
)

// Fetch builds and executes q, and scans the rows into a slice of T.
//
// fn returns a new T and the scan destinations of its fields, in the order
// of the selected columns. Surplus columns are dropped.
//
//	users, err := sqlq.Fetch(ctx, db, q, func() (*User, []any) {
//		u := &User{}
//		return u, []any{&u.ID, &u.Name}
//	})
func Fetch[T any](ctx Context, db QueryAble, q *Query, fn func() (T, []any), options ...Option) ([]T, error) {
	r, err := _fetch(ctx, db, q, fn, "Fetch", options...)
	if err != nil {
		var zero T
		return nil, wrapErrWithDebugName("Fetch", zero, err)
	}
	return r, nil
}

// FetchOne executes q expecting at most one row. It returns
// querydsl.ErrNonUniqueResult if there are more, and an error matching both
// querydsl.ErrNoResult and sql.ErrNoRows if there is none.
func FetchOne[T any](ctx Context, db QueryAble, q *Query, fn func() (T, []any), options ...Option) (T, error) {
	var zero T
	c := q.Clone()
	c.Metadata().SetUnique(true)
	c.Limit(2)
	r, err := _fetch(ctx, db, c, fn, "FetchOne", options...)
	if err != nil {
		return zero, wrapErrWithDebugName("FetchOne", zero, err)
	}
	switch len(r) {
	case 0:
		return zero, errNoResult
	case 1:
		return r[0], nil
	}
	return zero, querydsl.ErrNonUniqueResult
}

// FetchFirst executes q with limit 1 and returns the first row.
// See FetchOne for the error returned when there is no row.
func FetchFirst[T any](ctx Context, db QueryAble, q *Query, fn func() (T, []any), options ...Option) (T, error) {
	var zero T
	c := q.Clone()
	c.Limit(1)
	r, err := _fetch(ctx, db, c, fn, "FetchFirst", options...)
	if err != nil {
		return zero, wrapErrWithDebugName("FetchFirst", zero, err)
	}
	if len(r) == 0 {
		return zero, errNoResult
	}
	return r[0], nil
}

// FetchCount executes the count query of q, see Query.CountBuilder.
func FetchCount(ctx Context, db QueryAble, q *Query, options ...Option) (int64, error) {
	r, err := _count(ctx, db, q, options...)
	if err != nil {
		return 0, wrapErrWithDebugName("FetchCount", q, err)
	}
	return r, nil
}

// FetchResults executes q and its count query concurrently, returning a page
// of results with the total count.
func FetchResults[T any](ctx Context, db QueryAble, q *Query, fn func() (T, []any), options ...Option) (*querydsl.QueryResults[T], error) {
	var (
		total   int64
		results []T
		g       errgroup.Group
	)
	mod := q.Metadata().Modifiers()
	// the goroutines build with their own argument stores
	g.Go(func() error {
		var err error
		total, err = _count(ContextWithNewArgStore(ctx), db, q, options...)
		return err
	})
	g.Go(func() error {
		var err error
		results, err = _fetch(ContextWithNewArgStore(ctx), db, q, fn, "FetchResults", options...)
		return err
	})
	if err := g.Wait(); err != nil {
		var zero T
		return nil, wrapErrWithDebugName("FetchResults", zero, err)
	}
	return querydsl.NewQueryResults(results, total, mod), nil
}

// Iterate executes q and returns an iterator over its rows.
// The iterator must be closed after use.
func Iterate[T any](ctx Context, db QueryAble, q *Query, fn func() (T, []any), options ...Option) (*Iterator[T], error) {
	var zero T
	opt := mergeOptions(options...)
	var debugger *execDebugger
	if opt.debug {
		debugger = newExecDebugger(opt.logger, ctx.Dialect(), "Iterate", zero, opt.measureTime)
		defer debugger.print()
	}
	query, args, err := buildSelect(ctx, q)
	if err != nil {
		return nil, wrapErrWithDebugName("Iterate", zero, err)
	}
	if debugger != nil {
		debugger.onQuery(query, args)
	}
	if db == nil {
		return nil, ErrNilDB
	}
	rows, err := db.Query(query, args...)
	if debugger != nil {
		debugger.onExec(err)
	}
	if err != nil {
		return nil, wrapErrWithDebugName("Iterate", zero, err)
	}
	return &Iterator[T]{rows: rows, fn: fn}, nil
}

// Exec executes a sqlf.Builder statement against the database,
// e.g. an *InsertClause, *UpdateClause or *DeleteClause.
func Exec(ctx Context, db QueryAble, b sqlf.Builder, options ...Option) (sql.Result, error) {
	opt := mergeOptions(options...)
	var debugger *execDebugger
	if opt.debug {
		debugger = newExecDebugger(opt.logger, ctx.Dialect(), "Exec", b, opt.measureTime)
		defer debugger.print()
	}
	query, args, err := sqlf.Build(ctx, b)
	if err != nil {
		return nil, err
	}
	if debugger != nil {
		debugger.onQuery(query, args)
	}
	if db == nil {
		return nil, ErrNilDB
	}
	r, err := db.Exec(query, args...)
	if debugger != nil {
		debugger.onExec(err)
	}
	return r, err
}

var errNoResult = fmt.Errorf("%w: %w", querydsl.ErrNoResult, sql.ErrNoRows)

func _fetch[T any](ctx Context, db QueryAble, q *Query, fn func() (T, []any), funcName string, options ...Option) ([]T, error) {
	var zero T
	opt := mergeOptions(options...)
	var debugger *execDebugger
	if opt.debug {
		debugger = newExecDebugger(opt.logger, ctx.Dialect(), funcName, zero, opt.measureTime)
		defer debugger.print()
	}
	query, args, err := buildSelect(ctx, q)
	if err != nil {
		return nil, err
	}
	if debugger != nil {
		debugger.onQuery(query, args)
	}
	if db == nil {
		return nil, ErrNilDB
	}
	r, err := scan(db, query, args, fn)
	if debugger != nil {
		debugger.onExec(err)
	}
	return r, err
}

func _count(ctx Context, db QueryAble, q *Query, options ...Option) (int64, error) {
	opt := mergeOptions(options...)
	var debugger *execDebugger
	if opt.debug {
		debugger = newExecDebugger(opt.logger, ctx.Dialect(), "FetchCount", q, opt.measureTime)
		defer debugger.print()
	}
	query, args, err := sqlf.Build(ctx, q.CountBuilder())
	if err != nil {
		return 0, err
	}
	if debugger != nil {
		debugger.onQuery(query, args)
	}
	if db == nil {
		return 0, ErrNilDB
	}
	var r int64
	err = db.QueryRow(query, args...).Scan(&r)
	if debugger != nil {
		debugger.onExec(err)
	}
	if err != nil {
		return 0, err
	}
	return r, nil
}

func buildSelect(ctx Context, q *Query) (query string, args []any, err error) {
	if q == nil {
		return "", nil, fmt.Errorf("nil query")
	}
	if len(q.Metadata().Projection()) == 0 {
		return "", nil, ErrNoProjection
	}
	return sqlf.Build(ctx, q)
}
