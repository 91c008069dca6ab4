package sqlq

import (
	"context"
	"errors"

	"github.com/ikonglong/querydsl/dialect"
	"github.com/qjebbs/go-sqlf/v4"
)

var defaultDialect = dialect.PostgreSQL{}

// Context is the build context of SQL queries, carrying the bind arguments
// and the dialect.
type Context interface {
	sqlf.Context
	// Dialect returns the dialect of the context.
	Dialect() dialect.Dialect
}

var _ Context = (*defaultCtx)(nil)

type defaultCtx struct {
	sqlf.Context

	// cached values
	d dialect.Dialect
}

// Dialect returns the dialect.
func (c *defaultCtx) Dialect() dialect.Dialect {
	if c.d == nil {
		d, ok := dialect.Upgrade(c.BaseDialect())
		if !ok {
			d = defaultDialect
		}
		c.d = d
	}
	return c.d
}

// NewContext returns a new Context with an argument store for the given dialect.
// PostgreSQL is used if d is nil.
func NewContext(parent context.Context, d dialect.Dialect) Context {
	if parent == nil {
		panic("cannot create context from nil parent")
	}
	if d == nil {
		d = defaultDialect
	}
	return &defaultCtx{
		Context: sqlf.NewContext(parent, d),
		d:       d,
	}
}

// ContextWithValue returns a new Context with the given value added to the context's value store.
func ContextWithValue(parent Context, key, value any) Context {
	if parent == nil {
		panic("cannot create context from nil parent")
	}
	return &defaultCtx{
		Context: sqlf.ContextWithValue(unwrapContext(parent), key, value),
	}
}

// ContextWithNewArgStore returns a new context with a new ArgStore created from the dialect in the parent context.
func ContextWithNewArgStore(parent Context) Context {
	if parent == nil {
		panic("cannot create context from nil parent")
	}
	return &defaultCtx{
		Context: sqlf.ContextWithNewArgStore(unwrapContext(parent)),
	}
}

// unwrapContext extracts *defaultCtx.Context to avoid double wrapping.
func unwrapContext(ctx Context) sqlf.Context {
	if ctx, ok := ctx.(*defaultCtx); ok {
		return ctx.Context
	}
	return ctx
}

// ContextUpgrade upgrades a sqlf.Context to sqlq.Context.
func ContextUpgrade(ctx sqlf.Context) (Context, error) {
	if uc, ok := ctx.(Context); ok {
		return uc, nil
	}
	if ctx == nil {
		return nil, errors.New("nil context")
	}
	return &defaultCtx{Context: ctx}, nil
}

// Build builds b with ctx, returning the query and its arguments.
func Build(ctx Context, b sqlf.Builder) (query string, args []any, err error) {
	return sqlf.Build(ctx, b)
}
