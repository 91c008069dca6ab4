package sqlq

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ikonglong/querydsl"
	"github.com/qjebbs/go-sqlf/v4"
)

var _ sqlf.Builder = (*InsertClause)(nil)

// InsertClause is the INSERT statement builder.
//
//	sqlq.NewInsertClause(u).
//		Columns(u.Name, u.Age).
//		Values("Jane", 20).
//		Values("John", 30).
//		Returning(u.ID)
type InsertClause struct {
	target     RelationalPath
	columns    []*querydsl.Path
	values     [][]querydsl.Expression
	sub        *querydsl.SubQueryExpression
	conflictOn []*querydsl.Path
	conflictDo []*assignment
	returning  []*querydsl.Path

	errors []error // errors during building

	debugger debugger
}

// Default is the DEFAULT keyword, to insert or update a column with its
// default value, e.g.
//
//	sqlq.NewInsertClause(e).Columns(e.FirstName, e.Salary).Values("Jane", sqlq.Default)
var Default querydsl.Expression = defaultValue{}

type defaultValue struct{}

func (defaultValue) Node() querydsl.Expression { return defaultValue{} }
func (defaultValue) String() string            { return "DEFAULT" }

type assignment struct {
	column *querydsl.Path
	value  querydsl.Expression
}

// NewInsertClause returns a new InsertClause into t.
func NewInsertClause(t RelationalPath) *InsertClause {
	return &InsertClause{target: t}
}

// Columns sets the columns for insertion.
func (c *InsertClause) Columns(cols ...querydsl.Expression) *InsertClause {
	c.columns = c.columns[:0]
	for _, col := range cols {
		p, err := c.column(col)
		if err != nil {
			c.pushError(fmt.Errorf("columns: %w", err))
			continue
		}
		c.columns = append(c.columns, p)
	}
	return c
}

// Values adds a row of values for insertion. A value is either a constant
// or an expression.
func (c *InsertClause) Values(vals ...any) *InsertClause {
	c.values = append(c.values, valueExprs(vals))
	return c
}

// Set sets the value of a column, on the single row to insert.
func (c *InsertClause) Set(col querydsl.Expression, v any) *InsertClause {
	p, err := c.column(col)
	if err != nil {
		c.pushError(fmt.Errorf("set: %w", err))
		return c
	}
	if len(c.values) == 0 {
		c.values = append(c.values, nil)
	}
	if len(c.values) > 1 || len(c.values[0]) != len(c.columns) {
		c.pushError(errors.New("set: cannot be mixed with Values"))
		return c
	}
	c.columns = append(c.columns, p)
	c.values[0] = append(c.values[0], valueExpr(v))
	return c
}

// Select sets the subquery which provides the rows to insert, e.g.
//
//	c.Select(sqlq.NewSubQuery().From(s).List(s.ID, s.Name))
func (c *InsertClause) Select(sq *querydsl.SubQueryExpression) *InsertClause {
	c.sub = sq
	return c
}

// OnConflict sets the conflict target for the insert statement.
// Without DoUpdateSet, conflicting rows are ignored.
func (c *InsertClause) OnConflict(cols ...querydsl.Expression) *InsertClause {
	for _, col := range cols {
		p, err := c.column(col)
		if err != nil {
			c.pushError(fmt.Errorf("on conflict: %w", err))
			continue
		}
		c.conflictOn = append(c.conflictOn, p)
	}
	return c
}

// DoUpdateSet adds the update of a column to the conflict action.
func (c *InsertClause) DoUpdateSet(col querydsl.Expression, v any) *InsertClause {
	p, err := c.column(col)
	if err != nil {
		c.pushError(fmt.Errorf("do update set: %w", err))
		return c
	}
	c.conflictDo = append(c.conflictDo, &assignment{column: p, value: valueExpr(v)})
	return c
}

// Returning sets the columns returned by the statement.
func (c *InsertClause) Returning(cols ...querydsl.Expression) *InsertClause {
	for _, col := range cols {
		p, err := c.column(col)
		if err != nil {
			c.pushError(fmt.Errorf("returning: %w", err))
			continue
		}
		c.returning = append(c.returning, p)
	}
	return c
}

// Debug enables debug mode which logs the built query.
func (c *InsertClause) Debug(name ...string) *InsertClause {
	c.debugger.Debug(name...)
	return c
}

// Build builds the query.
func (c *InsertClause) Build(ctx Context) (query string, args []any, err error) {
	return Build(ctx, c)
}

// Execute builds and executes the statement.
func (c *InsertClause) Execute(ctx Context, db QueryAble, options ...Option) (sql.Result, error) {
	return Exec(ctx, db, c, options...)
}

// BuildTo implements sqlf.Builder
func (c *InsertClause) BuildTo(ctx sqlf.Context) (query string, err error) {
	uCtx, err := ContextUpgrade(ctx)
	if err != nil {
		return "", err
	}
	return c.buildInternal(uCtx)
}

func (c *InsertClause) buildInternal(ctx Context) (string, error) {
	if c == nil {
		return "", nil
	}
	if err := c.anyError(); err != nil {
		return "", err
	}
	if c.target == nil {
		return "", fmt.Errorf("no target table specified for insert")
	}
	if c.sub == nil && len(c.values) == 0 {
		return "", fmt.Errorf("no values or select specified for insert")
	}
	if c.sub != nil && len(c.values) > 0 {
		return "", fmt.Errorf("cannot specify both select and values for insert")
	}
	caps := ctx.Dialect().Capabilities()
	r, err := newDMLSerializer(c.target).renderer(ctx)
	if err != nil {
		return "", err
	}
	built := make([]string, 0)
	table, err := r.identifier(c.target.TableName())
	if err != nil {
		return "", err
	}
	built = append(built, "INSERT INTO "+table)
	if len(c.columns) > 0 {
		cols, err := r.columnList(c.columns, "")
		if err != nil {
			return "", err
		}
		built = append(built, "("+cols+")")
	}
	if len(c.returning) > 0 && caps.SupportsOutputInserted {
		cols, err := r.columnList(c.returning, "INSERTED.")
		if err != nil {
			return "", fmt.Errorf("build returning clause: %w", err)
		}
		built = append(built, "OUTPUT "+cols)
	}
	if len(c.values) > 0 {
		rows := make([]string, 0, len(c.values))
		for i, row := range c.values {
			if len(c.columns) > 0 && len(row) != len(c.columns) {
				return "", fmt.Errorf("values row %d: %d values for %d columns", i, len(row), len(c.columns))
			}
			vals, err := r.list(row)
			if err != nil {
				return "", fmt.Errorf("build insert values: %w", err)
			}
			rows = append(rows, "("+vals+")")
		}
		built = append(built, "VALUES "+strings.Join(rows, ", "))
	}
	if c.sub != nil {
		sel, err := r.query(c.sub.Metadata(), false)
		if err != nil {
			return "", fmt.Errorf("build insert from select: %w", err)
		}
		built = append(built, sel)
	}
	// conflict handling
	switch {
	case len(c.conflictOn) == 0 && len(c.conflictDo) == 0:
	case caps.SupportsOnConflict:
		if len(c.conflictOn) == 0 {
			return "", errors.New("do update set requires on conflict columns")
		}
		cols, err := r.columnList(c.conflictOn, "")
		if err != nil {
			return "", err
		}
		built = append(built, "ON CONFLICT ("+cols+")")
		if len(c.conflictDo) == 0 {
			built = append(built, "DO NOTHING")
			break
		}
		set, err := r.assignments(c.conflictDo)
		if err != nil {
			return "", fmt.Errorf("build conflict do actions: %w", err)
		}
		built = append(built, "DO UPDATE SET "+set)
	case caps.SupportsOnDuplicateKeyUpdate:
		if len(c.conflictDo) == 0 {
			return "", fmt.Errorf("ON DUPLICATE KEY UPDATE requires at least one update")
		}
		set, err := r.assignments(c.conflictDo)
		if err != nil {
			return "", fmt.Errorf("build conflict do actions: %w", err)
		}
		built = append(built, "ON DUPLICATE KEY UPDATE "+set)
	default:
		return "", fmt.Errorf("ON CONFLICT is not supported by %s", r.templates.Name())
	}
	// returning clause
	if len(c.returning) > 0 && !caps.SupportsOutputInserted {
		if !caps.SupportsReturning {
			return "", fmt.Errorf("returning is not supported by %s", r.templates.Name())
		}
		cols, err := r.columnList(c.returning, "")
		if err != nil {
			return "", fmt.Errorf("build returning clause: %w", err)
		}
		built = append(built, "RETURNING "+cols)
	}
	query := strings.Join(built, " ")
	c.debugger.printIfDebug(ctx, query, ctx.Args())
	return query, nil
}

func (c *InsertClause) column(col querydsl.Expression) (*querydsl.Path, error) {
	return targetColumn(c.target, col)
}

func (c *InsertClause) pushError(err error) {
	c.errors = append(c.errors, err)
}

func (c *InsertClause) anyError() error {
	return collectedErrors(c.errors)
}

func newDMLSerializer(t RelationalPath) *Serializer {
	s := NewSerializer(nil)
	if t != nil {
		s.bare = t.Path().Root().Element()
	}
	return s
}

// targetColumn checks that col is a column of table t.
func targetColumn(t RelationalPath, col querydsl.Expression) (*querydsl.Path, error) {
	p := querydsl.PathOf(col)
	if p == nil || p.IsRoot() {
		return nil, fmt.Errorf("%s is not a column", col)
	}
	if t != nil && p.Root().Element() != t.Path().Root().Element() {
		return nil, fmt.Errorf("%s is not a column of %s", p, t.TableName())
	}
	return p, nil
}

// valueExpr returns v as an expression, nil for NULL.
func valueExpr(v any) querydsl.Expression {
	if v == nil {
		return nil
	}
	if e, ok := v.(querydsl.Expression); ok {
		return e
	}
	return querydsl.NewConstant(v)
}

func valueExprs(vals []any) []querydsl.Expression {
	r := make([]querydsl.Expression, len(vals))
	for i, v := range vals {
		r[i] = valueExpr(v)
	}
	return r
}

func collectedErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	sb := new(strings.Builder)
	sb.WriteString("collected errors: \n")
	for _, err := range errs {
		sb.WriteString(" - ")
		sb.WriteString(err.Error())
		sb.WriteRune('\n')
	}
	return errors.New(sb.String())
}

func (r *renderer) columnList(cols []*querydsl.Path, prefix string) (string, error) {
	items := make([]string, 0, len(cols))
	for _, col := range cols {
		id, err := r.identifier(col.Element())
		if err != nil {
			return "", err
		}
		items = append(items, prefix+id)
	}
	return strings.Join(items, ", "), nil
}

func (r *renderer) assignments(set []*assignment) (string, error) {
	items := make([]string, 0, len(set))
	for _, a := range set {
		col, err := r.identifier(a.column.Element())
		if err != nil {
			return "", err
		}
		v, err := r.expr(a.value)
		if err != nil {
			return "", err
		}
		items = append(items, col+" = "+v)
	}
	return strings.Join(items, ", "), nil
}
