package querydsl

// EntityPath is the root or a property path of an entity type.
type EntityPath interface {
	Expression
	// EntityName returns the name of the entity type, e.g. "User".
	EntityName() string
	// Path returns the path node.
	Path() *Path
}

var _ EntityPath = (*EntityPathBase)(nil)

// EntityPathBase is embedded by entity navigation types (Q-types).
//
//	type QUser struct {
//		*querydsl.EntityPathBase
//		FirstName querydsl.StringPath
//	}
//
//	func NewQUser(variable string) *QUser {
//		return newQUser(querydsl.NewVariable(variable))
//	}
//
//	func newQUser(p *querydsl.Path) *QUser {
//		return &QUser{
//			EntityPathBase: querydsl.NewEntityPath("User", p),
//			FirstName:      querydsl.NewStringPath(p.Property("firstName")),
//		}
//	}
type EntityPathBase struct {
	name string
	path *Path
}

// NewEntityPath returns an EntityPathBase of entity type name at p.
func NewEntityPath(name string, p *Path) *EntityPathBase {
	return &EntityPathBase{name: name, path: p}
}

// Node implements Expression.
func (e *EntityPathBase) Node() Expression { return e.path }

// String implements Expression.
func (e *EntityPathBase) String() string { return e.path.String() }

// EntityName implements EntityPath.
func (e *EntityPathBase) EntityName() string { return e.name }

// Path implements EntityPath.
func (e *EntityPathBase) Path() *Path { return e.path }

// Eq returns "e = v", where v is an entity value or reference.
func (e *EntityPathBase) Eq(v any) BooleanExpr {
	return BooleanOperation(OpEq, e.path, NewConstant(v))
}

// Ne returns "e != v".
func (e *EntityPathBase) Ne(v any) BooleanExpr {
	return BooleanOperation(OpNe, e.path, NewConstant(v))
}

// IsNull returns "e is null".
func (e *EntityPathBase) IsNull() BooleanExpr {
	return BooleanOperation(OpIsNull, e.path)
}

// IsNotNull returns "e is not null".
func (e *EntityPathBase) IsNotNull() BooleanExpr {
	return BooleanOperation(OpIsNotNull, e.path)
}

// Count returns the count aggregation of the entity.
func (e *EntityPathBase) Count() NumberExpr[int64] {
	return NewNumberExpr[int64](NewOperation(OpCount, e.path))
}
