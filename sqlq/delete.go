package sqlq

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/ikonglong/querydsl"
	"github.com/qjebbs/go-sqlf/v4"
)

var _ sqlf.Builder = (*DeleteClause)(nil)

// DeleteClause is the DELETE statement builder. Columns of the target
// table are rendered unqualified.
type DeleteClause struct {
	mixin  *querydsl.QueryMixin[*DeleteClause]
	target RelationalPath

	debugger debugger
}

// NewDeleteClause returns a new DeleteClause of t.
func NewDeleteClause(t RelationalPath) *DeleteClause {
	c := &DeleteClause{target: t}
	c.mixin = querydsl.NewQueryMixin(c, nil)
	return c
}

// Where adds conditions, joined with AND. Nil predicates are ignored.
func (c *DeleteClause) Where(predicates ...querydsl.Predicate) *DeleteClause {
	return c.mixin.Where(predicates...)
}

// Limit limits the number of deleted rows, if the dialect supports it.
func (c *DeleteClause) Limit(limit int64) *DeleteClause {
	return c.mixin.Limit(limit)
}

// Debug enables debug mode which logs the built query.
func (c *DeleteClause) Debug(name ...string) *DeleteClause {
	c.debugger.Debug(name...)
	return c
}

// Build builds the query.
func (c *DeleteClause) Build(ctx Context) (query string, args []any, err error) {
	return Build(ctx, c)
}

// Execute builds and executes the statement.
func (c *DeleteClause) Execute(ctx Context, db QueryAble, options ...Option) (sql.Result, error) {
	return Exec(ctx, db, c, options...)
}

// BuildTo implements sqlf.Builder
func (c *DeleteClause) BuildTo(ctx sqlf.Context) (query string, err error) {
	uCtx, err := ContextUpgrade(ctx)
	if err != nil {
		return "", err
	}
	return c.buildInternal(uCtx)
}

func (c *DeleteClause) buildInternal(ctx Context) (string, error) {
	if c == nil {
		return "", nil
	}
	md := c.mixin.Metadata()
	if err := md.Err(); err != nil {
		return "", err
	}
	if c.target == nil {
		return "", fmt.Errorf("no target table specified for delete")
	}
	r, err := newDMLSerializer(c.target).renderer(ctx)
	if err != nil {
		return "", err
	}
	table, err := r.identifier(c.target.TableName())
	if err != nil {
		return "", err
	}
	built := []string{"DELETE FROM " + table}
	tail, err := r.dmlTail(md)
	if err != nil {
		return "", err
	}
	built = append(built, tail...)
	query := strings.Join(built, " ")
	c.debugger.printIfDebug(ctx, query, ctx.Args())
	return query, nil
}
