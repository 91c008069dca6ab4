package querydsl

// Number is the set of numeric types usable in NumberExpr.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// NumberExpr is a numeric typed expression.
type NumberExpr[T Number] struct {
	ComparableExpr[T]
}

// NewNumberExpr wraps e as a NumberExpr.
func NewNumberExpr[T Number](e Expression) NumberExpr[T] {
	return NumberExpr[T]{NewComparableExpr[T](e)}
}

func (e NumberExpr[T]) arith(op Operator, o Expression) NumberExpr[T] {
	return NewNumberExpr[T](NewOperation(op, e.node, o))
}

// Add returns "e + v".
func (e NumberExpr[T]) Add(v T) NumberExpr[T] { return e.arith(OpAdd, NewConstant(v)) }

// AddExpr returns "e + o".
func (e NumberExpr[T]) AddExpr(o Expression) NumberExpr[T] { return e.arith(OpAdd, o) }

// Subtract returns "e - v".
func (e NumberExpr[T]) Subtract(v T) NumberExpr[T] { return e.arith(OpSub, NewConstant(v)) }

// SubtractExpr returns "e - o".
func (e NumberExpr[T]) SubtractExpr(o Expression) NumberExpr[T] { return e.arith(OpSub, o) }

// Multiply returns "e * v".
func (e NumberExpr[T]) Multiply(v T) NumberExpr[T] { return e.arith(OpMult, NewConstant(v)) }

// MultiplyExpr returns "e * o".
func (e NumberExpr[T]) MultiplyExpr(o Expression) NumberExpr[T] { return e.arith(OpMult, o) }

// Divide returns "e / v".
func (e NumberExpr[T]) Divide(v T) NumberExpr[T] { return e.arith(OpDiv, NewConstant(v)) }

// DivideExpr returns "e / o".
func (e NumberExpr[T]) DivideExpr(o Expression) NumberExpr[T] { return e.arith(OpDiv, o) }

// Mod returns "mod(e, v)".
func (e NumberExpr[T]) Mod(v T) NumberExpr[T] { return e.arith(OpMod, NewConstant(v)) }

// Negate returns "-e".
func (e NumberExpr[T]) Negate() NumberExpr[T] {
	return NewNumberExpr[T](NewOperation(OpNegate, e.node))
}

// Abs returns the absolute value of e.
func (e NumberExpr[T]) Abs() NumberExpr[T] {
	return NewNumberExpr[T](NewOperation(OpAbs, e.node))
}

// Sum returns the sum aggregation of e.
func (e NumberExpr[T]) Sum() NumberExpr[T] {
	return NewNumberExpr[T](NewOperation(OpSum, e.node))
}

// Avg returns the average aggregation of e.
func (e NumberExpr[T]) Avg() NumberExpr[float64] {
	return NewNumberExpr[float64](NewOperation(OpAvg, e.node))
}

// Min returns the min aggregation of e.
func (e NumberExpr[T]) Min() NumberExpr[T] {
	return NewNumberExpr[T](NewOperation(OpMin, e.node))
}

// Max returns the max aggregation of e.
func (e NumberExpr[T]) Max() NumberExpr[T] {
	return NewNumberExpr[T](NewOperation(OpMax, e.node))
}

// As returns e aliased as alias.
func (e NumberExpr[T]) As(alias string) NumberExpr[T] {
	return NewNumberExpr[T](As(e, alias))
}
