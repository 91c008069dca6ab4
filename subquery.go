package querydsl

var _ Expression = (*SubQueryExpression)(nil)

// SubQueryExpression is a query used as an expression, e.g. in IN or EXISTS.
type SubQueryExpression struct {
	metadata *QueryMetadata
}

// NewSubQueryExpression returns a subquery expression of md.
func NewSubQueryExpression(md *QueryMetadata) *SubQueryExpression {
	return &SubQueryExpression{metadata: md}
}

// Metadata returns the metadata of the subquery.
func (s *SubQueryExpression) Metadata() *QueryMetadata { return s.metadata }

// Node implements Expression.
func (s *SubQueryExpression) Node() Expression { return s }

// String implements Expression.
func (s *SubQueryExpression) String() string {
	return "(" + s.metadata.String() + ")"
}

// Exists returns "exists (s)".
func (s *SubQueryExpression) Exists() BooleanExpr {
	return BooleanOperation(OpExists, s)
}

// NotExists returns "not exists (s)".
func (s *SubQueryExpression) NotExists() BooleanExpr {
	return s.Exists().Not()
}
