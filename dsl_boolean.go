package querydsl

import "time"

var _ Predicate = BooleanExpr{}

// BooleanExpr is a boolean typed expression, the common predicate type.
type BooleanExpr struct {
	ComparableExpr[bool]
}

// NewBooleanExpr wraps e as a BooleanExpr.
func NewBooleanExpr(e Expression) BooleanExpr {
	return BooleanExpr{NewComparableExpr[bool](e)}
}

// BooleanOperation returns the boolean operation op applied to args.
func BooleanOperation(op Operator, args ...Expression) BooleanExpr {
	return NewBooleanExpr(NewOperation(op, args...))
}

func (BooleanExpr) isPredicate() {}

// And returns "e and p". A nil p is ignored.
func (e BooleanExpr) And(p Predicate) BooleanExpr {
	return And(e, p)
}

// Or returns "e or p". A nil p is ignored.
func (e BooleanExpr) Or(p Predicate) BooleanExpr {
	return Or(e, p)
}

// AndAnyOf returns "e and (p1 or p2 ...)".
func (e BooleanExpr) AndAnyOf(predicates ...Predicate) BooleanExpr {
	return And(e, AnyOf(predicates...))
}

// OrAllOf returns "e or (p1 and p2 ...)".
func (e BooleanExpr) OrAllOf(predicates ...Predicate) BooleanExpr {
	return Or(e, AllOf(predicates...))
}

// Not returns the negation of e. The negation of a negation is unwrapped.
func (e BooleanExpr) Not() BooleanExpr {
	return Not(e)
}

// IsTrue returns "e = true".
func (e BooleanExpr) IsTrue() BooleanExpr { return e.Eq(true) }

// IsFalse returns "e = false".
func (e BooleanExpr) IsFalse() BooleanExpr { return e.Eq(false) }

// DateTimeExpr is a time.Time typed expression.
type DateTimeExpr struct {
	ComparableExpr[time.Time]
}

// NewDateTimeExpr wraps e as a DateTimeExpr.
func NewDateTimeExpr(e Expression) DateTimeExpr {
	return DateTimeExpr{NewComparableExpr[time.Time](e)}
}

// Before returns "e < t".
func (e DateTimeExpr) Before(t time.Time) BooleanExpr { return e.Lt(t) }

// After returns "e > t".
func (e DateTimeExpr) After(t time.Time) BooleanExpr { return e.Gt(t) }

// Min returns the min aggregation of e.
func (e DateTimeExpr) Min() DateTimeExpr {
	return NewDateTimeExpr(NewOperation(OpMin, e.node))
}

// Max returns the max aggregation of e.
func (e DateTimeExpr) Max() DateTimeExpr {
	return NewDateTimeExpr(NewOperation(OpMax, e.node))
}
