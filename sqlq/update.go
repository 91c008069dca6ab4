package sqlq

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/ikonglong/querydsl"
	"github.com/qjebbs/go-sqlf/v4"
)

var _ sqlf.Builder = (*UpdateClause)(nil)

// UpdateClause is the UPDATE statement builder. Columns of the target
// table are rendered unqualified.
//
//	sqlq.NewUpdateClause(u).
//		Set(u.Name, "Jane").
//		Set(u.Age, u.Age.Add(1)).
//		Where(u.ID.Eq(1))
type UpdateClause struct {
	mixin  *querydsl.QueryMixin[*UpdateClause]
	target RelationalPath
	set    []*assignment

	errors []error // errors during building

	debugger debugger
}

// NewUpdateClause returns a new UpdateClause of t.
func NewUpdateClause(t RelationalPath) *UpdateClause {
	c := &UpdateClause{target: t}
	c.mixin = querydsl.NewQueryMixin(c, nil)
	return c
}

// Set adds the update of a column to a constant or an expression.
func (c *UpdateClause) Set(col querydsl.Expression, v any) *UpdateClause {
	p, err := targetColumn(c.target, col)
	if err != nil {
		c.errors = append(c.errors, fmt.Errorf("set: %w", err))
		return c
	}
	c.set = append(c.set, &assignment{column: p, value: valueExpr(v)})
	return c
}

// SetNull adds the update of a column to NULL.
func (c *UpdateClause) SetNull(col querydsl.Expression) *UpdateClause {
	return c.Set(col, nil)
}

// From adds the sources the target rows are updated from, e.g.
//
//	sqlq.NewUpdateClause(e).
//		Set(e.Salary, s.Salary).
//		From(s).
//		Where(s.ID.EqExpr(e.SuperiorID))
//
// With sources, columns of the target table are qualified with its alias.
func (c *UpdateClause) From(sources ...querydsl.Expression) *UpdateClause {
	return c.mixin.From(sources...)
}

// Where adds conditions, joined with AND. Nil predicates are ignored.
func (c *UpdateClause) Where(predicates ...querydsl.Predicate) *UpdateClause {
	return c.mixin.Where(predicates...)
}

// Limit limits the number of updated rows, if the dialect supports it.
func (c *UpdateClause) Limit(limit int64) *UpdateClause {
	return c.mixin.Limit(limit)
}

// Debug enables debug mode which logs the built query.
func (c *UpdateClause) Debug(name ...string) *UpdateClause {
	c.debugger.Debug(name...)
	return c
}

// Build builds the query.
func (c *UpdateClause) Build(ctx Context) (query string, args []any, err error) {
	return Build(ctx, c)
}

// Execute builds and executes the statement.
func (c *UpdateClause) Execute(ctx Context, db QueryAble, options ...Option) (sql.Result, error) {
	return Exec(ctx, db, c, options...)
}

// BuildTo implements sqlf.Builder
func (c *UpdateClause) BuildTo(ctx sqlf.Context) (query string, err error) {
	uCtx, err := ContextUpgrade(ctx)
	if err != nil {
		return "", err
	}
	return c.buildInternal(uCtx)
}

func (c *UpdateClause) buildInternal(ctx Context) (string, error) {
	if c == nil {
		return "", nil
	}
	md := c.mixin.Metadata()
	errs := append([]error(nil), c.errors...)
	if err := md.Err(); err != nil {
		errs = append(errs, err)
	}
	if err := collectedErrors(errs); err != nil {
		return "", err
	}
	if c.target == nil {
		return "", fmt.Errorf("no target table specified for update")
	}
	if len(c.set) == 0 {
		return "", fmt.Errorf("no columns specified for update")
	}
	sources := md.Joins()
	ser := newDMLSerializer(c.target)
	if len(sources) > 0 {
		ser = NewSerializer(nil)
	}
	r, err := ser.renderer(ctx)
	if err != nil {
		return "", err
	}
	if len(sources) > 0 && !r.caps.SupportsUpdateFrom {
		return "", fmt.Errorf("update from is not supported by %s", r.templates.Name())
	}
	built := make([]string, 0, 5)
	var target sqlf.Builder = sqlf.Identifier(c.target.TableName())
	switch {
	case len(sources) == 0:
	case r.templates.name == "sqlserver":
		// the target is referenced by alias and declared in FROM
		target = sqlf.Identifier(c.target.Path().Root().Element())
		sources = append([]*querydsl.JoinExpression{{Type: querydsl.JoinDefault, Target: c.target}}, sources...)
	default:
		target = tableAs(c.target)
	}
	table, err := target.BuildTo(ctx)
	if err != nil {
		return "", err
	}
	built = append(built, "UPDATE "+table)
	set, err := r.assignments(c.set)
	if err != nil {
		return "", fmt.Errorf("build set: %w", err)
	}
	built = append(built, "SET "+set)
	if len(sources) > 0 {
		from, err := r.from(sources)
		if err != nil {
			return "", err
		}
		clause, err := sqlf.Prefix("FROM", from).BuildTo(ctx)
		if err != nil {
			return "", err
		}
		built = append(built, clause)
	}
	tail, err := r.dmlTail(md)
	if err != nil {
		return "", err
	}
	built = append(built, tail...)
	query := strings.Join(built, " ")
	c.debugger.printIfDebug(ctx, query, ctx.Args())
	return query, nil
}

// dmlTail renders the WHERE and LIMIT clauses of UPDATE and DELETE statements.
func (r *renderer) dmlTail(md *querydsl.QueryMetadata) ([]string, error) {
	clauses := make([]string, 0, 2)
	if !querydsl.IsNil(md.Where()) {
		where, err := r.expr(md.Where())
		if err != nil {
			return nil, fmt.Errorf("build where: %w", err)
		}
		clauses = append(clauses, "WHERE "+where)
	}
	if limit := md.Modifiers().Limit; limit > 0 {
		if !r.caps.SupportsDeleteLimit {
			return nil, fmt.Errorf("limit in UPDATE and DELETE is not supported by %s", r.templates.Name())
		}
		clauses = append(clauses, fmt.Sprintf("LIMIT %d", limit))
	}
	return clauses, nil
}
