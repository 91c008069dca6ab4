package querydsl

// JoinType is the type of a query source.
type JoinType int

// join types
const (
	JoinDefault JoinType = iota // plain source, e.g. "FROM user u"
	JoinInner
	JoinPlain
	JoinLeft
	JoinRight
	JoinFull
)

var joinKeywords = []string{
	"from",
	"inner join",
	"join",
	"left join",
	"right join",
	"full join",
}

// String returns the lower case keyword of the join type.
func (t JoinType) String() string {
	if t < 0 || int(t) >= len(joinKeywords) {
		return "invalid join"
	}
	return joinKeywords[t]
}

// JoinExpression is a query source with its join type and condition.
type JoinExpression struct {
	Type      JoinType
	Target    Expression
	Condition Predicate
}

// String renders the join, e.g. "inner join user.addresses as a on a.zip = 1".
func (j *JoinExpression) String() string {
	s := j.Type.String() + " " + renderSource(j.Target)
	if !IsNil(j.Condition) {
		s += " on " + j.Condition.String()
	}
	return s
}

func renderSource(target Expression) string {
	if e, alias, ok := Alias(target); ok {
		return e.String() + " as " + alias
	}
	if ep, ok := target.(EntityPath); ok {
		return ep.EntityName() + " " + ep.Path().String()
	}
	return target.String()
}
