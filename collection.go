package querydsl

var (
	_ Expression = ListPath[int, NumberPath[int]]{}
	_ Expression = MapPath[string, int, NumberPath[int]]{}
)

// ListPath is a path of a list with elements of type E, navigated as Q.
//
//	addresses := querydsl.NewListPath[Address](user.Property("addresses"), newQAddress)
//	addresses.Any().Street.Eq("Aakatu")  // any(user.addresses).street = Aakatu
//	addresses.Get(0).Street.Eq("Aakatu") // user.addresses.get(0).street = Aakatu
type ListPath[E any, Q any] struct {
	path    *Path
	element func(*Path) Q
}

// NewListPath returns a ListPath of p, element builds the navigation type of an element path.
func NewListPath[E any, Q any](p *Path, element func(*Path) Q) ListPath[E, Q] {
	return ListPath[E, Q]{path: p, element: element}
}

// Node implements Expression.
func (l ListPath[E, Q]) Node() Expression { return l.path }

// String implements Expression.
func (l ListPath[E, Q]) String() string { return l.path.String() }

// Path returns the path node.
func (l ListPath[E, Q]) Path() *Path { return l.path }

// Any returns the navigation of any element of the list.
func (l ListPath[E, Q]) Any() Q { return l.element(l.path.AnyElement()) }

// Get returns the navigation of the element at index.
func (l ListPath[E, Q]) Get(index int) Q { return l.element(l.path.ListElement(index)) }

// Size returns the size of the list.
func (l ListPath[E, Q]) Size() NumberExpr[int] {
	return NewNumberExpr[int](NewOperation(OpColSize, l.path))
}

// IsEmpty reports whether the list is empty.
func (l ListPath[E, Q]) IsEmpty() BooleanExpr {
	return BooleanOperation(OpColIsEmpty, l.path)
}

// IsNotEmpty is the negation of IsEmpty.
func (l ListPath[E, Q]) IsNotEmpty() BooleanExpr {
	return l.IsEmpty().Not()
}

// Contains reports whether v is an element of the list.
func (l ListPath[E, Q]) Contains(v E) BooleanExpr {
	return BooleanOperation(OpIn, NewConstant(v), l.path)
}

// ContainsExpr reports whether e is an element of the list.
func (l ListPath[E, Q]) ContainsExpr(e Expression) BooleanExpr {
	return BooleanOperation(OpIn, e, l.path)
}

// MapPath is a path of a map with keys K, values V, navigated as Q.
type MapPath[K comparable, V any, Q any] struct {
	path  *Path
	value func(*Path) Q
}

// NewMapPath returns a MapPath of p, value builds the navigation type of a value path.
func NewMapPath[K comparable, V any, Q any](p *Path, value func(*Path) Q) MapPath[K, V, Q] {
	return MapPath[K, V, Q]{path: p, value: value}
}

// Node implements Expression.
func (m MapPath[K, V, Q]) Node() Expression { return m.path }

// String implements Expression.
func (m MapPath[K, V, Q]) String() string { return m.path.String() }

// Path returns the path node.
func (m MapPath[K, V, Q]) Path() *Path { return m.path }

// Get returns the navigation of the value of key.
func (m MapPath[K, V, Q]) Get(key K) Q { return m.value(m.path.MapValue(key)) }

// ContainsKey reports whether the map contains key.
func (m MapPath[K, V, Q]) ContainsKey(key K) BooleanExpr {
	return BooleanOperation(OpContainsKey, m.path, NewConstant(key))
}

// ContainsValue reports whether the map contains value.
func (m MapPath[K, V, Q]) ContainsValue(value V) BooleanExpr {
	return BooleanOperation(OpContainsValue, m.path, NewConstant(value))
}

// IsEmpty reports whether the map is empty.
func (m MapPath[K, V, Q]) IsEmpty() BooleanExpr {
	return BooleanOperation(OpMapIsEmpty, m.path)
}

// IsNotEmpty is the negation of IsEmpty.
func (m MapPath[K, V, Q]) IsNotEmpty() BooleanExpr {
	return m.IsEmpty().Not()
}
