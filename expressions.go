package querydsl

// And returns "left and right". Nil operands are ignored.
func And(left, right Predicate) BooleanExpr {
	switch {
	case IsNil(left):
		return asBoolean(right)
	case IsNil(right):
		return asBoolean(left)
	}
	return BooleanOperation(OpAnd, left, right)
}

// Or returns "left or right". Nil operands are ignored.
func Or(left, right Predicate) BooleanExpr {
	switch {
	case IsNil(left):
		return asBoolean(right)
	case IsNil(right):
		return asBoolean(left)
	}
	return BooleanOperation(OpOr, left, right)
}

// AllOf returns the intersection of the predicates, nil if there is none.
func AllOf(predicates ...Predicate) Predicate {
	return reduce(OpAnd, predicates)
}

// AnyOf returns the union of the predicates, nil if there is none.
func AnyOf(predicates ...Predicate) Predicate {
	return reduce(OpOr, predicates)
}

func reduce(op Operator, predicates []Predicate) Predicate {
	var r Predicate
	for _, p := range predicates {
		if IsNil(p) {
			continue
		}
		if r == nil {
			r = asBoolean(p)
			continue
		}
		r = BooleanOperation(op, r, p)
	}
	return r
}

// Not returns the negation of p. The negation of a negation is unwrapped.
func Not(p Predicate) BooleanExpr {
	if IsNil(p) {
		return BooleanExpr{}
	}
	if op, ok := p.Node().(*Operation); ok && op.op == OpNot {
		return NewBooleanExpr(op.Arg(0))
	}
	return BooleanOperation(OpNot, p)
}

// As returns e aliased as alias.
func As(e Expression, alias string) *Operation {
	return NewOperation(OpAlias, e, NewVariable(alias))
}

// Alias splits an aliased expression into the expression and alias.
// ok is false if e is not an alias operation.
func Alias(e Expression) (target Expression, alias string, ok bool) {
	op, isOp := nodeOf(e).(*Operation)
	if !isOp || op.op != OpAlias {
		return e, "", false
	}
	return op.Arg(0), PathOf(op.Arg(1)).Element(), true
}

// Collect flattens nested operations of op into their operands,
// e.g. the conjuncts of "a and (b and c)".
func Collect(op Operator, e Expression) []Expression {
	o, ok := nodeOf(e).(*Operation)
	if !ok || o.op != op {
		return []Expression{nodeOf(e)}
	}
	var r []Expression
	for _, a := range o.args {
		r = append(r, Collect(op, a)...)
	}
	return r
}

func asBoolean(p Predicate) BooleanExpr {
	if IsNil(p) {
		return BooleanExpr{}
	}
	if b, ok := p.(BooleanExpr); ok {
		return b
	}
	return NewBooleanExpr(p)
}
