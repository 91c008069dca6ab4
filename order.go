package querydsl

// Order is the sorting order.
type Order uint

// orders
const (
	OrderAsc Order = iota
	OrderAscNullsFirst
	OrderAscNullsLast
	OrderDesc
	OrderDescNullsFirst
	OrderDescNullsLast
)

var orders = []string{
	"asc",
	"asc nulls first",
	"asc nulls last",
	"desc",
	"desc nulls first",
	"desc nulls last",
}

// IsAscending reports whether o sorts ascending.
func (o Order) IsAscending() bool {
	return o < OrderDesc
}

// Nulls returns the null ordering: 0 default, 1 first, 2 last.
func (o Order) Nulls() int {
	return int(o % 3)
}

// String returns e.g. "asc nulls first".
func (o Order) String() string {
	if int(o) >= len(orders) {
		return "invalid"
	}
	return orders[o]
}

// OrderSpecifier is an ordering of an expression.
type OrderSpecifier struct {
	Target Expression
	Order  Order
}

// NewOrderSpecifier returns an OrderSpecifier.
func NewOrderSpecifier(order Order, target Expression) *OrderSpecifier {
	return &OrderSpecifier{Target: nodeOf(target), Order: order}
}

// NullsFirst returns a copy of o sorting nulls first.
func (o *OrderSpecifier) NullsFirst() *OrderSpecifier {
	return &OrderSpecifier{Target: o.Target, Order: o.base() + OrderAscNullsFirst}
}

// NullsLast returns a copy of o sorting nulls last.
func (o *OrderSpecifier) NullsLast() *OrderSpecifier {
	return &OrderSpecifier{Target: o.Target, Order: o.base() + OrderAscNullsLast}
}

// IsAscending reports whether o sorts ascending.
func (o *OrderSpecifier) IsAscending() bool {
	return o.Order.IsAscending()
}

func (o *OrderSpecifier) base() Order {
	if o.Order.IsAscending() {
		return OrderAsc
	}
	return OrderDesc
}

// String returns e.g. "user.name asc".
func (o *OrderSpecifier) String() string {
	return o.Target.String() + " " + o.Order.String()
}
