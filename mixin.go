package querydsl

// QueryMixin mutates query metadata on behalf of a query builder Q and
// returns the builder, so that every builder shares the same fluent
// implementation.
//
//	type MyQuery struct{ mixin *querydsl.QueryMixin[*MyQuery] }
//
//	func NewMyQuery() *MyQuery {
//		q := &MyQuery{}
//		q.mixin = querydsl.NewQueryMixin(q, nil)
//		return q
//	}
//
//	func (q *MyQuery) Where(p ...querydsl.Predicate) *MyQuery { return q.mixin.Where(p...) }
type QueryMixin[Q any] struct {
	self     Q
	metadata *QueryMetadata
}

// NewQueryMixin returns a mixin operating on md on behalf of self.
// A new metadata is created if md is nil.
func NewQueryMixin[Q any](self Q, md *QueryMetadata) *QueryMixin[Q] {
	if md == nil {
		md = NewQueryMetadata()
	}
	return &QueryMixin[Q]{self: self, metadata: md}
}

// SetSelf replaces the builder returned by the fluent methods.
func (m *QueryMixin[Q]) SetSelf(self Q) { m.self = self }

// Self returns the builder.
func (m *QueryMixin[Q]) Self() Q { return m.self }

// Metadata returns the query metadata.
func (m *QueryMixin[Q]) Metadata() *QueryMetadata { return m.metadata }

// From adds query sources.
func (m *QueryMixin[Q]) From(sources ...Expression) Q {
	for _, s := range sources {
		m.metadata.AddJoin(JoinDefault, s)
	}
	return m.self
}

// Join adds a join of type t to target. Use On to set the join condition.
func (m *QueryMixin[Q]) Join(t JoinType, target Expression) Q {
	m.metadata.AddJoin(t, target)
	return m.self
}

// JoinAlias adds a join of type t to target, referenced by alias,
// e.g. a collection property joined as a variable.
func (m *QueryMixin[Q]) JoinAlias(t JoinType, target Expression, alias *Path) Q {
	m.metadata.AddJoin(t, As(target, alias.Element()))
	return m.self
}

// InnerJoin adds an inner join.
func (m *QueryMixin[Q]) InnerJoin(target Expression) Q { return m.Join(JoinInner, target) }

// PlainJoin adds a join.
func (m *QueryMixin[Q]) PlainJoin(target Expression) Q { return m.Join(JoinPlain, target) }

// LeftJoin adds a left join.
func (m *QueryMixin[Q]) LeftJoin(target Expression) Q { return m.Join(JoinLeft, target) }

// RightJoin adds a right join.
func (m *QueryMixin[Q]) RightJoin(target Expression) Q { return m.Join(JoinRight, target) }

// FullJoin adds a full join.
func (m *QueryMixin[Q]) FullJoin(target Expression) Q { return m.Join(JoinFull, target) }

// On adds conditions to the last join.
func (m *QueryMixin[Q]) On(conditions ...Predicate) Q {
	for _, c := range conditions {
		m.metadata.AddJoinCondition(c)
	}
	return m.self
}

// Where adds filter conditions.
func (m *QueryMixin[Q]) Where(predicates ...Predicate) Q {
	m.metadata.AddWhere(predicates...)
	return m.self
}

// Having adds having conditions.
func (m *QueryMixin[Q]) Having(predicates ...Predicate) Q {
	m.metadata.AddHaving(predicates...)
	return m.self
}

// GroupBy adds grouping expressions.
func (m *QueryMixin[Q]) GroupBy(exprs ...Expression) Q {
	m.metadata.AddGroupBy(exprs...)
	return m.self
}

// OrderBy adds orderings.
func (m *QueryMixin[Q]) OrderBy(orders ...*OrderSpecifier) Q {
	m.metadata.AddOrderBy(orders...)
	return m.self
}

// Limit sets the limit.
func (m *QueryMixin[Q]) Limit(limit int64) Q {
	m.metadata.SetLimit(limit)
	return m.self
}

// Offset sets the offset.
func (m *QueryMixin[Q]) Offset(offset int64) Q {
	m.metadata.SetOffset(offset)
	return m.self
}

// Restrict sets limit and offset.
func (m *QueryMixin[Q]) Restrict(mod QueryModifiers) Q {
	m.metadata.SetModifiers(mod)
	return m.self
}

// Distinct makes the query distinct.
func (m *QueryMixin[Q]) Distinct() Q {
	m.metadata.SetDistinct(true)
	return m.self
}

// Select sets the projection.
func (m *QueryMixin[Q]) Select(exprs ...Expression) Q {
	m.metadata.SetProjection(exprs...)
	return m.self
}

// String renders the metadata in a backend independent form.
func (m *QueryMixin[Q]) String() string {
	return m.metadata.String()
}

// QueryBase is the fluent surface shared by query builders which embed it.
type QueryBase[Q any] struct {
	mixin *QueryMixin[Q]
}

// NewQueryBase returns a QueryBase operating on md on behalf of self.
func NewQueryBase[Q any](self Q, md *QueryMetadata) *QueryBase[Q] {
	return &QueryBase[Q]{mixin: NewQueryMixin(self, md)}
}

// Mixin returns the underlying mixin.
func (b *QueryBase[Q]) Mixin() *QueryMixin[Q] { return b.mixin }

// Metadata returns the query metadata.
func (b *QueryBase[Q]) Metadata() *QueryMetadata { return b.mixin.metadata }

// Where adds filter conditions. Nil predicates are ignored.
func (b *QueryBase[Q]) Where(predicates ...Predicate) Q { return b.mixin.Where(predicates...) }

// Having adds having conditions.
func (b *QueryBase[Q]) Having(predicates ...Predicate) Q { return b.mixin.Having(predicates...) }

// GroupBy adds grouping expressions.
func (b *QueryBase[Q]) GroupBy(exprs ...Expression) Q { return b.mixin.GroupBy(exprs...) }

// OrderBy adds orderings.
func (b *QueryBase[Q]) OrderBy(orders ...*OrderSpecifier) Q { return b.mixin.OrderBy(orders...) }

// Limit sets the limit.
func (b *QueryBase[Q]) Limit(limit int64) Q { return b.mixin.Limit(limit) }

// Offset sets the offset.
func (b *QueryBase[Q]) Offset(offset int64) Q { return b.mixin.Offset(offset) }

// Restrict sets limit and offset.
func (b *QueryBase[Q]) Restrict(mod QueryModifiers) Q { return b.mixin.Restrict(mod) }

// Distinct makes the query distinct.
func (b *QueryBase[Q]) Distinct() Q { return b.mixin.Distinct() }
