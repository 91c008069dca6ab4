// Package querydsl is a typed query construction library. It provides,
//   - A fluent, type-checked expression API (paths, predicates, ordering) to build queries
//     instead of concatenating strings.
//   - Query metadata and a shared mixin, reused by every backend query builder.
//   - Backend serializers for SQL (package sqlq) and MongoDB (package mongodb).
//
// Expressions are immutable trees. Every typed expression wraps one of the node types
// *Path, *Constant, *Operation or *SubQueryExpression, which is what serializers consume.
package querydsl

// Expression is a node of the expression tree.
type Expression interface {
	// Node returns the underlying node of the expression, which is one of
	// *Path, *Constant, *Operation or *SubQueryExpression.
	Node() Expression
	// String returns a human readable rendering of the expression.
	String() string
}

// Predicate is a boolean typed expression usable in filter clauses.
type Predicate interface {
	Expression
	isPredicate()
}

// nodeOf returns the node of e, or nil if e or its node is nil.
func nodeOf(e Expression) Expression {
	if e == nil {
		return nil
	}
	return e.Node()
}

// IsNil reports whether the expression is absent, e.g. a nil interface,
// a zero BooleanExpr or an empty BooleanBuilder.
func IsNil(e Expression) bool {
	if e == nil {
		return true
	}
	switch v := e.(type) {
	case *Path:
		return v == nil
	case *Constant:
		return v == nil
	case *Operation:
		return v == nil
	case *SubQueryExpression:
		return v == nil
	case *BooleanBuilder:
		return v == nil || v.predicate == nil
	}
	return e.Node() == nil
}
