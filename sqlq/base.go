package sqlq

import (
	"github.com/ikonglong/querydsl"
)

// sqlBase adds the SQL sources and joins to the fluent surface of query builder Q.
type sqlBase[Q any] struct {
	*querydsl.QueryBase[Q]
}

func newSQLBase[Q any](self Q, md *querydsl.QueryMetadata) *sqlBase[Q] {
	return &sqlBase[Q]{QueryBase: querydsl.NewQueryBase(self, md)}
}

// From adds tables or aliased subqueries to the FROM clause.
func (b *sqlBase[Q]) From(sources ...querydsl.Expression) Q {
	return b.Mixin().From(sources...)
}

// Join adds a JOIN of target. Use On to set the join condition.
func (b *sqlBase[Q]) Join(target querydsl.Expression) Q {
	return b.Mixin().PlainJoin(target)
}

// InnerJoin adds an INNER JOIN of target.
func (b *sqlBase[Q]) InnerJoin(target querydsl.Expression) Q {
	return b.Mixin().InnerJoin(target)
}

// LeftJoin adds a LEFT JOIN of target.
func (b *sqlBase[Q]) LeftJoin(target querydsl.Expression) Q {
	return b.Mixin().LeftJoin(target)
}

// RightJoin adds a RIGHT JOIN of target.
func (b *sqlBase[Q]) RightJoin(target querydsl.Expression) Q {
	return b.Mixin().RightJoin(target)
}

// FullJoin adds a FULL JOIN of target.
func (b *sqlBase[Q]) FullJoin(target querydsl.Expression) Q {
	return b.Mixin().FullJoin(target)
}

// On adds conditions to the last join.
func (b *sqlBase[Q]) On(conditions ...querydsl.Predicate) Q {
	return b.Mixin().On(conditions...)
}
