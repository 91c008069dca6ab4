package sqlq

import (
	"github.com/ikonglong/querydsl"
	"github.com/qjebbs/go-sqlf/v4"
)

var _ sqlf.Builder = (*Query)(nil)

// Query is the SQL query builder. It renders with the dialect of the build context:
//
//	u := NewQUser("u")
//	q := sqlq.NewQuery().
//		Select(u.ID, u.Name).
//		From(u).
//		Where(u.Age.Gt(18), u.Name.StartsWith("J")).
//		OrderBy(u.Name.Asc()).
//		Limit(10)
//	query, args, err := q.Build(sqlq.NewContext(context.Background(), dialect.PostgreSQL{}))
//	// SELECT "u"."id", "u"."name" FROM "user" AS "u" WHERE "u"."age" > $1 AND "u"."name" LIKE $2 ESCAPE '\' ORDER BY "u"."name" ASC LIMIT 10
//
// or executed with Fetch, FetchOne, FetchCount, etc.
type Query struct {
	*sqlBase[*Query]
	templates *Templates
	unions    []*union

	debugger debugger
}

type union struct {
	all   bool
	query *querydsl.SubQueryExpression
}

// NewQuery returns a new Query.
func NewQuery() *Query {
	q := &Query{}
	q.sqlBase = newSQLBase(q, nil)
	return q
}

// Templates sets the templates to render with, instead of
// those of the context dialect.
func (q *Query) Templates(t *Templates) *Query {
	q.templates = t
	return q
}

// Select sets the columns to select.
func (q *Query) Select(exprs ...querydsl.Expression) *Query {
	return q.Mixin().Select(exprs...)
}

// Union unions the other queries with 'UNION', e.g.
//
//	q.Union(sqlq.NewSubQuery().From(e).Where(e.ID.Eq(2)).List(e.ID))
//
// The ordering, limit and offset of q apply to the whole union, ordering
// by the column names of the result. The unioned queries must have none.
func (q *Query) Union(queries ...*querydsl.SubQueryExpression) *Query {
	for _, sq := range queries {
		q.unions = append(q.unions, &union{query: sq})
	}
	return q
}

// UnionAll unions the other queries with 'UNION ALL'.
func (q *Query) UnionAll(queries ...*querydsl.SubQueryExpression) *Query {
	for _, sq := range queries {
		q.unions = append(q.unions, &union{all: true, query: sq})
	}
	return q
}

// Clone returns a copy of q which can be modified independently.
func (q *Query) Clone() *Query {
	c := &Query{
		templates: q.templates,
		unions:    append([]*union(nil), q.unions...),
		debugger:  q.debugger,
	}
	c.sqlBase = newSQLBase(c, q.Metadata().Clone())
	return c
}

// Debug enables debug mode which logs the built query.
func (q *Query) Debug(name ...string) *Query {
	q.debugger.Debug(name...)
	return q
}

// Build builds the query.
func (q *Query) Build(ctx Context) (query string, args []any, err error) {
	return Build(ctx, q)
}

// BuildTo implements sqlf.Builder
func (q *Query) BuildTo(ctx sqlf.Context) (query string, err error) {
	uCtx, err := ContextUpgrade(ctx)
	if err != nil {
		return "", err
	}
	return q.buildInternal(uCtx)
}

func (q *Query) buildInternal(ctx Context) (string, error) {
	if q == nil {
		return "", nil
	}
	s := NewSerializer(q.templates)
	b := s.Serialize(q.Metadata(), false)
	if len(q.unions) > 0 {
		b = s.serializeUnion(q.Metadata(), q.unions, false)
	}
	query, err := b.BuildTo(ctx)
	if err != nil {
		return "", err
	}
	q.debugger.printIfDebug(ctx, query, ctx.Args())
	return query, nil
}

// CountBuilder returns the builder of the statement counting the rows of q,
// regardless of its ordering, limit and offset.
func (q *Query) CountBuilder() sqlf.Builder {
	s := NewSerializer(q.templates)
	if len(q.unions) > 0 {
		return s.serializeUnion(q.Metadata(), q.unions, true)
	}
	return s.Serialize(q.Metadata(), true)
}

// String renders the query as ANSI SQL if it has sources,
// otherwise in the backend independent form.
func (q *Query) String() string {
	return renderForDisplay(q.Metadata())
}
