package querydoc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ikonglong/querydsl"
	"github.com/ikonglong/querydsl/mongodb"
	"github.com/ikonglong/querydsl/sqlq"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SQLQuery builds the SQL query of a table document.
func (d *Document) SQLQuery() (*sqlq.Query, error) {
	if d.IsCollection() {
		return nil, errors.New("not a table query")
	}
	if len(d.Embedded) > 0 {
		return nil, errors.New("anyEmbedded is not supported in SQL")
	}
	q := sqlq.NewQuery().From(sqlq.NewTable(d.From.Table, d.From.Alias))
	for _, j := range d.Joins {
		if j.Table == "" {
			return nil, errors.New("join: table required")
		}
		t := sqlq.NewTable(j.Table, j.Alias)
		switch strings.ToLower(j.Type) {
		case "", "inner":
			q.InnerJoin(t)
		case "join":
			q.Join(t)
		case "left":
			q.LeftJoin(t)
		case "right":
			q.RightJoin(t)
		case "full":
			q.FullJoin(t)
		default:
			return nil, fmt.Errorf("join %s: invalid type %q", j.Table, j.Type)
		}
		on, err := predicates(j.On)
		if err != nil {
			return nil, fmt.Errorf("join %s: %w", j.Table, err)
		}
		q.On(on...)
	}
	sel, err := parsePaths(d.Select)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	if len(sel) == 0 {
		sel = []querydsl.Expression{sqlq.NewTable(d.From.Table, d.From.Alias).AllColumns()}
	}
	q.Select(sel...)
	if d.Distinct {
		q.Distinct()
	}
	where, err := d.Predicates()
	if err != nil {
		return nil, fmt.Errorf("where: %w", err)
	}
	q.Where(where...)
	groupBy, err := parsePaths(d.GroupBy)
	if err != nil {
		return nil, fmt.Errorf("groupBy: %w", err)
	}
	q.GroupBy(groupBy...)
	orders, err := d.Orders()
	if err != nil {
		return nil, err
	}
	q.OrderBy(orders...)
	q.Restrict(d.Modifiers())
	return q, nil
}

// MongoQuery builds the query of a collection document on coll,
// which may be nil if the query is only rendered.
func (d *Document) MongoQuery(coll *mongo.Collection, options ...mongodb.Option) (*mongodb.Query[bson.D], error) {
	if !d.IsCollection() {
		return nil, errors.New("not a collection query")
	}
	if len(d.Joins) > 0 || len(d.GroupBy) > 0 || d.Distinct {
		return nil, errors.New("joins, groupBy and distinct are not supported by mongodb")
	}
	q := mongodb.NewQuery[bson.D](coll, options...)
	where, err := d.Predicates()
	if err != nil {
		return nil, fmt.Errorf("where: %w", err)
	}
	q.Where(where...)
	for _, e := range d.Embedded {
		collection, err := ParsePath(e.Path)
		if err != nil {
			return nil, fmt.Errorf("anyEmbedded: %w", err)
		}
		if e.Alias == "" {
			return nil, fmt.Errorf("anyEmbedded %s: alias required", e.Path)
		}
		on, err := predicates(e.On)
		if err != nil {
			return nil, fmt.Errorf("anyEmbedded %s: %w", e.Path, err)
		}
		alias := querydsl.NewEntityPath(e.Alias, querydsl.NewVariable(e.Alias))
		q.AnyEmbedded(collection, alias).On(on...)
	}
	orders, err := d.Orders()
	if err != nil {
		return nil, err
	}
	q.OrderBy(orders...)
	q.Restrict(d.Modifiers())
	return q, nil
}

// Keys returns the selected paths, the projection of a collection query.
func (d *Document) Keys() ([]querydsl.Expression, error) {
	return parsePaths(d.Select)
}
