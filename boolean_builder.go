package querydsl

var _ Predicate = (*BooleanBuilder)(nil)

// BooleanBuilder is a mutable predicate accumulator, for building
// filters conditionally.
//
//	b := querydsl.NewBooleanBuilder()
//	if name != "" {
//		b.And(user.FirstName.Eq(name))
//	}
//	query.Where(b)
type BooleanBuilder struct {
	predicate Predicate
}

// NewBooleanBuilder returns a BooleanBuilder holding the intersection of initial.
func NewBooleanBuilder(initial ...Predicate) *BooleanBuilder {
	return &BooleanBuilder{predicate: AllOf(initial...)}
}

func (*BooleanBuilder) isPredicate() {}

// Node implements Expression. It returns nil if the builder is empty.
func (b *BooleanBuilder) Node() Expression {
	if b == nil || b.predicate == nil {
		return nil
	}
	return b.predicate.Node()
}

// String implements Expression.
func (b *BooleanBuilder) String() string {
	if b == nil || b.predicate == nil {
		return ""
	}
	return b.predicate.String()
}

// HasValue reports whether the builder holds a predicate.
func (b *BooleanBuilder) HasValue() bool {
	return b != nil && b.predicate != nil
}

// Value returns the accumulated predicate, nil if empty.
func (b *BooleanBuilder) Value() Predicate {
	return b.predicate
}

// And appends p with an intersection.
func (b *BooleanBuilder) And(p Predicate) *BooleanBuilder {
	b.predicate = nilIfEmpty(And(b.predicate, p))
	return b
}

// AndNot appends the negation of p with an intersection.
func (b *BooleanBuilder) AndNot(p Predicate) *BooleanBuilder {
	return b.And(Not(p))
}

// AndAnyOf appends the union of predicates with an intersection.
func (b *BooleanBuilder) AndAnyOf(predicates ...Predicate) *BooleanBuilder {
	return b.And(AnyOf(predicates...))
}

// Or appends p with a union.
func (b *BooleanBuilder) Or(p Predicate) *BooleanBuilder {
	b.predicate = nilIfEmpty(Or(b.predicate, p))
	return b
}

// OrNot appends the negation of p with a union.
func (b *BooleanBuilder) OrNot(p Predicate) *BooleanBuilder {
	return b.Or(Not(p))
}

// OrAllOf appends the intersection of predicates with a union.
func (b *BooleanBuilder) OrAllOf(predicates ...Predicate) *BooleanBuilder {
	return b.Or(AllOf(predicates...))
}

// Not negates the accumulated predicate.
func (b *BooleanBuilder) Not() *BooleanBuilder {
	if b.predicate != nil {
		b.predicate = Not(b.predicate)
	}
	return b
}

// Clone returns a copy of b.
func (b *BooleanBuilder) Clone() *BooleanBuilder {
	return &BooleanBuilder{predicate: b.predicate}
}

func nilIfEmpty(e BooleanExpr) Predicate {
	if e.node == nil {
		return nil
	}
	return e
}
