package querydsl

var _ Expression = SimpleExpr[int]{}

// SimpleExpr is a typed expression supporting equality, membership and null checks.
type SimpleExpr[T any] struct {
	node Expression
}

// NewSimpleExpr wraps e as a SimpleExpr.
func NewSimpleExpr[T any](e Expression) SimpleExpr[T] {
	return SimpleExpr[T]{node: nodeOf(e)}
}

// Node implements Expression.
func (e SimpleExpr[T]) Node() Expression { return e.node }

// String implements Expression.
func (e SimpleExpr[T]) String() string {
	if e.node == nil {
		return ""
	}
	return e.node.String()
}

// Eq returns "e = v".
func (e SimpleExpr[T]) Eq(v T) BooleanExpr {
	return BooleanOperation(OpEq, e.node, NewConstant(v))
}

// EqExpr returns "e = o".
func (e SimpleExpr[T]) EqExpr(o Expression) BooleanExpr {
	return BooleanOperation(OpEq, e.node, o)
}

// Ne returns "e != v".
func (e SimpleExpr[T]) Ne(v T) BooleanExpr {
	return BooleanOperation(OpNe, e.node, NewConstant(v))
}

// NeExpr returns "e != o".
func (e SimpleExpr[T]) NeExpr(o Expression) BooleanExpr {
	return BooleanOperation(OpNe, e.node, o)
}

// In returns "e in (values...)". An empty list is allowed and never matches.
func (e SimpleExpr[T]) In(values ...T) BooleanExpr {
	return BooleanOperation(OpIn, e.node, constantsOf(values))
}

// NotIn returns "e not in (values...)".
func (e SimpleExpr[T]) NotIn(values ...T) BooleanExpr {
	return BooleanOperation(OpNotIn, e.node, constantsOf(values))
}

// InExpr returns "e in o", where o is a subquery or a collection expression.
func (e SimpleExpr[T]) InExpr(o Expression) BooleanExpr {
	return BooleanOperation(OpIn, e.node, o)
}

// NotInExpr returns "e not in o".
func (e SimpleExpr[T]) NotInExpr(o Expression) BooleanExpr {
	return BooleanOperation(OpNotIn, e.node, o)
}

// InSubQuery returns "e in (sq)".
func (e SimpleExpr[T]) InSubQuery(sq *SubQueryExpression) BooleanExpr {
	return BooleanOperation(OpIn, e.node, sq)
}

// IsNull returns "e is null".
func (e SimpleExpr[T]) IsNull() BooleanExpr {
	return BooleanOperation(OpIsNull, e.node)
}

// IsNotNull returns "e is not null".
func (e SimpleExpr[T]) IsNotNull() BooleanExpr {
	return BooleanOperation(OpIsNotNull, e.node)
}

// Count returns the count aggregation of e.
func (e SimpleExpr[T]) Count() NumberExpr[int64] {
	return NewNumberExpr[int64](NewOperation(OpCount, e.node))
}

// CountDistinct returns the distinct count aggregation of e.
func (e SimpleExpr[T]) CountDistinct() NumberExpr[int64] {
	return NewNumberExpr[int64](NewOperation(OpCountDistinct, e.node))
}

// Coalesce returns the first non null value of e and v.
func (e SimpleExpr[T]) Coalesce(v T) SimpleExpr[T] {
	return NewSimpleExpr[T](NewOperation(OpCoalesce, e.node, NewConstant(v)))
}

// CastTo returns e converted to the SQL type typ, e.g. "TEXT".
func (e SimpleExpr[T]) CastTo(typ string) SimpleExpr[any] {
	return NewSimpleExpr[any](NewOperation(OpCast, e.node, NewConstant(typ)))
}

// As returns e aliased as alias.
func (e SimpleExpr[T]) As(alias string) SimpleExpr[T] {
	return NewSimpleExpr[T](As(e, alias))
}

// ComparableExpr is a typed expression supporting ordering.
type ComparableExpr[T any] struct {
	SimpleExpr[T]
}

// NewComparableExpr wraps e as a ComparableExpr.
func NewComparableExpr[T any](e Expression) ComparableExpr[T] {
	return ComparableExpr[T]{NewSimpleExpr[T](e)}
}

// Lt returns "e < v".
func (e ComparableExpr[T]) Lt(v T) BooleanExpr {
	return BooleanOperation(OpLt, e.node, NewConstant(v))
}

// LtExpr returns "e < o".
func (e ComparableExpr[T]) LtExpr(o Expression) BooleanExpr {
	return BooleanOperation(OpLt, e.node, o)
}

// Gt returns "e > v".
func (e ComparableExpr[T]) Gt(v T) BooleanExpr {
	return BooleanOperation(OpGt, e.node, NewConstant(v))
}

// GtExpr returns "e > o".
func (e ComparableExpr[T]) GtExpr(o Expression) BooleanExpr {
	return BooleanOperation(OpGt, e.node, o)
}

// Loe returns "e <= v".
func (e ComparableExpr[T]) Loe(v T) BooleanExpr {
	return BooleanOperation(OpLoe, e.node, NewConstant(v))
}

// LoeExpr returns "e <= o".
func (e ComparableExpr[T]) LoeExpr(o Expression) BooleanExpr {
	return BooleanOperation(OpLoe, e.node, o)
}

// Goe returns "e >= v".
func (e ComparableExpr[T]) Goe(v T) BooleanExpr {
	return BooleanOperation(OpGoe, e.node, NewConstant(v))
}

// GoeExpr returns "e >= o".
func (e ComparableExpr[T]) GoeExpr(o Expression) BooleanExpr {
	return BooleanOperation(OpGoe, e.node, o)
}

// Between returns "e between from and to", bounds inclusive.
func (e ComparableExpr[T]) Between(from, to T) BooleanExpr {
	return BooleanOperation(OpBetween, e.node, NewConstant(from), NewConstant(to))
}

// NotBetween returns the negation of Between.
func (e ComparableExpr[T]) NotBetween(from, to T) BooleanExpr {
	return e.Between(from, to).Not()
}

// Asc returns an ascending order specifier of e.
func (e ComparableExpr[T]) Asc() *OrderSpecifier {
	return &OrderSpecifier{Target: e.node, Order: OrderAsc}
}

// Desc returns a descending order specifier of e.
func (e ComparableExpr[T]) Desc() *OrderSpecifier {
	return &OrderSpecifier{Target: e.node, Order: OrderDesc}
}

// Min returns the min aggregation of e.
func (e ComparableExpr[T]) Min() ComparableExpr[T] {
	return NewComparableExpr[T](NewOperation(OpMin, e.node))
}

// Max returns the max aggregation of e.
func (e ComparableExpr[T]) Max() ComparableExpr[T] {
	return NewComparableExpr[T](NewOperation(OpMax, e.node))
}
