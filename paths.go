package querydsl

// StringPath is a string typed path.
type StringPath struct{ StringExpr }

// NewStringPath returns a StringPath of p.
func NewStringPath(p *Path) StringPath { return StringPath{NewStringExpr(p)} }

// Path returns the path node.
func (e StringPath) Path() *Path { return e.node.(*Path) }

// NumberPath is a numeric typed path.
type NumberPath[T Number] struct{ NumberExpr[T] }

// NewNumberPath returns a NumberPath of p.
func NewNumberPath[T Number](p *Path) NumberPath[T] {
	return NumberPath[T]{NewNumberExpr[T](p)}
}

// Path returns the path node.
func (e NumberPath[T]) Path() *Path { return e.node.(*Path) }

// BooleanPath is a boolean typed path.
type BooleanPath struct{ BooleanExpr }

// NewBooleanPath returns a BooleanPath of p.
func NewBooleanPath(p *Path) BooleanPath { return BooleanPath{NewBooleanExpr(p)} }

// Path returns the path node.
func (e BooleanPath) Path() *Path { return e.node.(*Path) }

// DateTimePath is a time.Time typed path.
type DateTimePath struct{ DateTimeExpr }

// NewDateTimePath returns a DateTimePath of p.
func NewDateTimePath(p *Path) DateTimePath { return DateTimePath{NewDateTimeExpr(p)} }

// Path returns the path node.
func (e DateTimePath) Path() *Path { return e.node.(*Path) }

// ComparablePath is a path of an ordered type without dedicated expression.
type ComparablePath[T any] struct{ ComparableExpr[T] }

// NewComparablePath returns a ComparablePath of p.
func NewComparablePath[T any](p *Path) ComparablePath[T] {
	return ComparablePath[T]{NewComparableExpr[T](p)}
}

// Path returns the path node.
func (e ComparablePath[T]) Path() *Path { return e.node.(*Path) }

// SimplePath is a path of a type supporting equality only.
type SimplePath[T any] struct{ SimpleExpr[T] }

// NewSimplePath returns a SimplePath of p.
func NewSimplePath[T any](p *Path) SimplePath[T] {
	return SimplePath[T]{NewSimpleExpr[T](p)}
}

// Path returns the path node.
func (e SimplePath[T]) Path() *Path { return e.node.(*Path) }

// EnumPath is a path of an enumeration type, ordered by its underlying value.
type EnumPath[T any] struct{ ComparableExpr[T] }

// NewEnumPath returns an EnumPath of p.
func NewEnumPath[T any](p *Path) EnumPath[T] {
	return EnumPath[T]{NewComparableExpr[T](p)}
}

// Path returns the path node.
func (e EnumPath[T]) Path() *Path { return e.node.(*Path) }
