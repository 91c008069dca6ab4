package sqlq

import (
	"context"
	"strings"

	"github.com/ikonglong/querydsl"
	"github.com/ikonglong/querydsl/dialect"
	"github.com/qjebbs/go-sqlf/v4"
)

var _ sqlf.Builder = (*SubQuery)(nil)

// SubQuery builds queries used as expressions of other queries.
// It's detached into an expression with List, Unique, Exists, NotExists or Count:
//
//	sq := sqlq.NewSubQuery().
//		From(order).
//		Where(order.CustomerID.EqExpr(customer.ID))
//	sqlq.NewQuery().
//		Select(customer.Name).
//		From(customer).
//		Where(sq.Exists())
type SubQuery struct {
	*sqlBase[*SubQuery]
}

// NewSubQuery returns a new SubQuery.
func NewSubQuery() *SubQuery {
	q := &SubQuery{}
	q.sqlBase = newSQLBase(q, nil)
	return q
}

// List returns the subquery selecting exprs.
func (q *SubQuery) List(exprs ...querydsl.Expression) *querydsl.SubQueryExpression {
	md := q.Metadata().Clone()
	md.SetProjection(exprs...)
	return querydsl.NewSubQueryExpression(md)
}

// Unique returns the subquery selecting exprs, expected to return at most one row.
func (q *SubQuery) Unique(exprs ...querydsl.Expression) *querydsl.SubQueryExpression {
	md := q.Metadata().Clone()
	md.SetProjection(exprs...)
	md.SetUnique(true)
	return querydsl.NewSubQueryExpression(md)
}

// Exists returns the condition that the subquery has rows.
func (q *SubQuery) Exists() querydsl.BooleanExpr {
	return querydsl.NewSubQueryExpression(q.Metadata().Clone()).Exists()
}

// NotExists returns the condition that the subquery has no rows.
func (q *SubQuery) NotExists() querydsl.BooleanExpr {
	return querydsl.NewSubQueryExpression(q.Metadata().Clone()).NotExists()
}

// Count returns the subquery counting its rows.
func (q *SubQuery) Count() querydsl.NumberExpr[int64] {
	md := q.Metadata().Clone()
	md.SetProjection(querydsl.NewOperation(querydsl.OpCountAll))
	md.SetUnique(true)
	return querydsl.NewNumberExpr[int64](querydsl.NewSubQueryExpression(md))
}

// BuildTo implements sqlf.Builder
func (q *SubQuery) BuildTo(ctx sqlf.Context) (query string, err error) {
	return NewSerializer(nil).Serialize(q.Metadata(), false).BuildTo(ctx)
}

// String renders the subquery as ANSI SQL if it has sources,
// otherwise in the backend independent form.
func (q *SubQuery) String() string {
	return renderForDisplay(q.Metadata())
}

func renderForDisplay(md *querydsl.QueryMetadata) string {
	if len(md.Joins()) == 0 {
		return md.String()
	}
	ctx := NewContext(context.Background(), dialect.AnsiSQL{})
	query, err := NewSerializer(DefaultTemplates).Serialize(md, false).BuildTo(ctx)
	if err != nil {
		return md.String()
	}
	return strings.TrimSpace(query)
}
