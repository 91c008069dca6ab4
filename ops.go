package querydsl

import "fmt"

// Operator identifies the operation of an *Operation node.
type Operator int

// Operators
const (
	OpInvalid Operator = iota

	// boolean
	OpAnd
	OpOr
	OpNot

	// comparison
	OpEq
	OpNe
	OpLt
	OpGt
	OpLoe
	OpGoe
	OpBetween
	OpIn
	OpNotIn
	OpIsNull
	OpIsNotNull

	// string
	OpLike
	OpLikeIC
	OpMatches
	OpMatchesIC
	OpStartsWith
	OpStartsWithIC
	OpEndsWith
	OpEndsWithIC
	OpStringContains
	OpStringContainsIC
	OpEqIgnoreCase
	OpStringIsEmpty
	OpStringLength
	OpLower
	OpUpper
	OpTrim
	OpConcat

	// numeric
	OpAdd
	OpSub
	OpMult
	OpDiv
	OpMod
	OpNegate
	OpAbs

	// aggregation
	OpCount
	OpCountDistinct
	OpCountAll
	OpSum
	OpAvg
	OpMin
	OpMax

	// collections and maps
	OpColIsEmpty
	OpColSize
	OpMapIsEmpty
	OpContainsKey
	OpContainsValue

	// misc
	OpExists
	OpAlias
	OpCoalesce
	OpList
	OpCast
)

// precedence levels, higher binds tighter
const (
	precOr         = 10
	precAnd        = 20
	precComparison = 40
	precAdditive   = 50
	precMultiplier = 60
	precUnary      = 90
	precFunction   = 100
)

type opInfo struct {
	name       string
	template   string // rendering of String(), {n} is the n-th argument
	precedence int
	infix      bool
}

var operators = map[Operator]opInfo{
	OpAnd: {"AND", "{0} && {1}", precAnd, true},
	OpOr:  {"OR", "{0} || {1}", precOr, true},
	OpNot: {"NOT", "!{0}", precUnary, true},

	OpEq:        {"EQ", "{0} = {1}", precComparison, true},
	OpNe:        {"NE", "{0} != {1}", precComparison, true},
	OpLt:        {"LT", "{0} < {1}", precComparison, true},
	OpGt:        {"GT", "{0} > {1}", precComparison, true},
	OpLoe:       {"LOE", "{0} <= {1}", precComparison, true},
	OpGoe:       {"GOE", "{0} >= {1}", precComparison, true},
	OpBetween:   {"BETWEEN", "{0} between {1} and {2}", precComparison, true},
	OpIn:        {"IN", "{0} in {1}", precComparison, true},
	OpNotIn:     {"NOT_IN", "{0} not in {1}", precComparison, true},
	OpIsNull:    {"IS_NULL", "{0} is null", precComparison, true},
	OpIsNotNull: {"IS_NOT_NULL", "{0} is not null", precComparison, true},

	OpLike:             {"LIKE", "{0} like {1}", precComparison, true},
	OpLikeIC:           {"LIKE_IC", "lower({0}) like lower({1})", precComparison, true},
	OpMatches:          {"MATCHES", "matches({0},{1})", precFunction, false},
	OpMatchesIC:        {"MATCHES_IC", "matchesIgnoreCase({0},{1})", precFunction, false},
	OpStartsWith:       {"STARTS_WITH", "startsWith({0},{1})", precFunction, false},
	OpStartsWithIC:     {"STARTS_WITH_IC", "startsWithIgnoreCase({0},{1})", precFunction, false},
	OpEndsWith:         {"ENDS_WITH", "endsWith({0},{1})", precFunction, false},
	OpEndsWithIC:       {"ENDS_WITH_IC", "endsWithIgnoreCase({0},{1})", precFunction, false},
	OpStringContains:   {"STRING_CONTAINS", "contains({0},{1})", precFunction, false},
	OpStringContainsIC: {"STRING_CONTAINS_IC", "containsIc({0},{1})", precFunction, false},
	OpEqIgnoreCase:     {"EQ_IGNORE_CASE", "eqIc({0},{1})", precFunction, false},
	OpStringIsEmpty:    {"STRING_IS_EMPTY", "empty({0})", precFunction, false},
	OpStringLength:     {"STRING_LENGTH", "length({0})", precFunction, false},
	OpLower:            {"LOWER", "lower({0})", precFunction, false},
	OpUpper:            {"UPPER", "upper({0})", precFunction, false},
	OpTrim:             {"TRIM", "trim({0})", precFunction, false},
	OpConcat:           {"CONCAT", "{0} + {1}", precAdditive, true},

	OpAdd:    {"ADD", "{0} + {1}", precAdditive, true},
	OpSub:    {"SUB", "{0} - {1}", precAdditive, true},
	OpMult:   {"MULT", "{0} * {1}", precMultiplier, true},
	OpDiv:    {"DIV", "{0} / {1}", precMultiplier, true},
	OpMod:    {"MOD", "mod({0},{1})", precFunction, false},
	OpNegate: {"NEGATE", "-{0}", precUnary, true},
	OpAbs:    {"ABS", "abs({0})", precFunction, false},

	OpCount:         {"COUNT", "count({0})", precFunction, false},
	OpCountDistinct: {"COUNT_DISTINCT", "count(distinct {0})", precFunction, false},
	OpCountAll:      {"COUNT_ALL", "count(*)", precFunction, false},
	OpSum:           {"SUM", "sum({0})", precFunction, false},
	OpAvg:           {"AVG", "avg({0})", precFunction, false},
	OpMin:           {"MIN", "min({0})", precFunction, false},
	OpMax:           {"MAX", "max({0})", precFunction, false},

	OpColIsEmpty:    {"COL_IS_EMPTY", "empty({0})", precFunction, false},
	OpColSize:       {"COL_SIZE", "size({0})", precFunction, false},
	OpMapIsEmpty:    {"MAP_IS_EMPTY", "empty({0})", precFunction, false},
	OpContainsKey:   {"CONTAINS_KEY", "containsKey({0},{1})", precFunction, false},
	OpContainsValue: {"CONTAINS_VALUE", "containsValue({0},{1})", precFunction, false},

	OpExists:   {"EXISTS", "exists {0}", precFunction, false},
	OpAlias:    {"ALIAS", "{0} as {1}", precFunction, false},
	OpCoalesce: {"COALESCE", "coalesce({0},{1})", precFunction, false},
	OpList:     {"LIST", "{0}, {1}", precFunction, false},
	OpCast:     {"CAST", "cast({0} as {1})", precFunction, false},
}

// String returns the operator name, e.g. "EQ".
func (o Operator) String() string {
	if info, ok := operators[o]; ok {
		return info.name
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// Precedence returns the binding strength of the operator, higher binds tighter.
func (o Operator) Precedence() int {
	if info, ok := operators[o]; ok {
		return info.precedence
	}
	return precFunction
}

// Infix reports whether the operator renders its operands without delimiters,
// so that operands may need parentheses.
func (o Operator) Infix() bool {
	return operators[o].infix
}

// Associative reports whether a chain of the operator needs no parentheses.
func (o Operator) Associative() bool {
	switch o {
	case OpAnd, OpOr, OpAdd, OpMult, OpConcat:
		return true
	}
	return false
}

// ParseOperator returns the operator with the given name.
func ParseOperator(name string) (Operator, error) {
	for op, info := range operators {
		if info.name == name {
			return op, nil
		}
	}
	return OpInvalid, fmt.Errorf("unknown operator %q", name)
}

// NeedsParens reports whether the argument child of the parent operator must be
// wrapped in parentheses when rendered. right tells whether child is a right hand operand.
func NeedsParens(parent Operator, child Expression, right bool) bool {
	op, ok := nodeOf(child).(*Operation)
	if !ok || !parent.Infix() || !op.op.Infix() {
		return false
	}
	cp, pp := op.op.Precedence(), parent.Precedence()
	if parent == OpNot || parent == OpNegate {
		return cp < precUnary
	}
	if cp != pp {
		return cp < pp
	}
	if op.op == parent && parent.Associative() {
		return false
	}
	return right || op.op != parent
}
