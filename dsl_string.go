package querydsl

// StringExpr is a string typed expression.
type StringExpr struct {
	ComparableExpr[string]
}

// NewStringExpr wraps e as a StringExpr.
func NewStringExpr(e Expression) StringExpr {
	return StringExpr{NewComparableExpr[string](e)}
}

// Like returns "e like pattern", with '%' and '_' as wildcards.
func (e StringExpr) Like(pattern string) BooleanExpr {
	return BooleanOperation(OpLike, e.node, NewConstant(pattern))
}

// LikeIgnoreCase is the case insensitive version of Like.
func (e StringExpr) LikeIgnoreCase(pattern string) BooleanExpr {
	return BooleanOperation(OpLikeIC, e.node, NewConstant(pattern))
}

// NotLike returns the negation of Like.
func (e StringExpr) NotLike(pattern string) BooleanExpr {
	return e.Like(pattern).Not()
}

// StartsWith reports whether e starts with s.
func (e StringExpr) StartsWith(s string) BooleanExpr {
	return BooleanOperation(OpStartsWith, e.node, NewConstant(s))
}

// StartsWithIgnoreCase is the case insensitive version of StartsWith.
func (e StringExpr) StartsWithIgnoreCase(s string) BooleanExpr {
	return BooleanOperation(OpStartsWithIC, e.node, NewConstant(s))
}

// EndsWith reports whether e ends with s.
func (e StringExpr) EndsWith(s string) BooleanExpr {
	return BooleanOperation(OpEndsWith, e.node, NewConstant(s))
}

// EndsWithIgnoreCase is the case insensitive version of EndsWith.
func (e StringExpr) EndsWithIgnoreCase(s string) BooleanExpr {
	return BooleanOperation(OpEndsWithIC, e.node, NewConstant(s))
}

// Contains reports whether e contains s.
func (e StringExpr) Contains(s string) BooleanExpr {
	return BooleanOperation(OpStringContains, e.node, NewConstant(s))
}

// ContainsIgnoreCase is the case insensitive version of Contains.
func (e StringExpr) ContainsIgnoreCase(s string) BooleanExpr {
	return BooleanOperation(OpStringContainsIC, e.node, NewConstant(s))
}

// EqualsIgnoreCase reports whether e equals s, ignoring case.
func (e StringExpr) EqualsIgnoreCase(s string) BooleanExpr {
	return BooleanOperation(OpEqIgnoreCase, e.node, NewConstant(s))
}

// Matches reports whether e matches the regular expression regex.
func (e StringExpr) Matches(regex string) BooleanExpr {
	return BooleanOperation(OpMatches, e.node, NewConstant(regex))
}

// IsEmpty reports whether e is the empty string.
func (e StringExpr) IsEmpty() BooleanExpr {
	return BooleanOperation(OpStringIsEmpty, e.node)
}

// IsNotEmpty is the negation of IsEmpty.
func (e StringExpr) IsNotEmpty() BooleanExpr {
	return e.IsEmpty().Not()
}

// Lower returns e in lower case.
func (e StringExpr) Lower() StringExpr {
	return NewStringExpr(NewOperation(OpLower, e.node))
}

// Upper returns e in upper case.
func (e StringExpr) Upper() StringExpr {
	return NewStringExpr(NewOperation(OpUpper, e.node))
}

// Trim returns e with leading and trailing spaces removed.
func (e StringExpr) Trim() StringExpr {
	return NewStringExpr(NewOperation(OpTrim, e.node))
}

// Length returns the length of e.
func (e StringExpr) Length() NumberExpr[int] {
	return NewNumberExpr[int](NewOperation(OpStringLength, e.node))
}

// Concat returns e concatenated with s.
func (e StringExpr) Concat(s string) StringExpr {
	return NewStringExpr(NewOperation(OpConcat, e.node, NewConstant(s)))
}

// ConcatExpr returns e concatenated with o.
func (e StringExpr) ConcatExpr(o Expression) StringExpr {
	return NewStringExpr(NewOperation(OpConcat, e.node, o))
}

// Min returns the min aggregation of e.
func (e StringExpr) Min() StringExpr {
	return NewStringExpr(NewOperation(OpMin, e.node))
}

// Max returns the max aggregation of e.
func (e StringExpr) Max() StringExpr {
	return NewStringExpr(NewOperation(OpMax, e.node))
}

// As returns e aliased as alias.
func (e StringExpr) As(alias string) StringExpr {
	return NewStringExpr(As(e, alias))
}
