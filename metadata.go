package querydsl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// QueryModifiers holds the limit and offset of a query, zero means unset.
type QueryModifiers struct {
	Limit  int64
	Offset int64
}

// IsZero reports whether neither limit nor offset is set.
func (m QueryModifiers) IsZero() bool {
	return m.Limit <= 0 && m.Offset <= 0
}

// QueryMetadata is the backend independent state of a query: its sources,
// filters, grouping, ordering, projection and modifiers.
type QueryMetadata struct {
	joins      []*JoinExpression
	where      Predicate
	having     Predicate
	groupBy    []Expression
	orderBy    []*OrderSpecifier
	projection []Expression
	distinct   bool
	unique     bool
	modifiers  QueryModifiers

	validate bool
	declared map[string]bool

	errors []error
}

// NewQueryMetadata returns an empty QueryMetadata.
func NewQueryMetadata() *QueryMetadata {
	return &QueryMetadata{
		declared: make(map[string]bool),
	}
}

// SetValidate enables checking that every path used in the query
// is rooted at a declared source.
func (m *QueryMetadata) SetValidate(validate bool) *QueryMetadata {
	m.validate = validate
	return m
}

// AddJoin appends a source of join type t. Target is an EntityPath,
// an aliased collection path (see As) or a subquery.
func (m *QueryMetadata) AddJoin(t JoinType, target Expression) {
	if IsNil(target) {
		m.pushError(fmt.Errorf("%s: nil target", t))
		return
	}
	m.declare(target)
	m.joins = append(m.joins, &JoinExpression{Type: t, Target: target})
}

// AddJoinCondition adds a condition to the last join.
func (m *QueryMetadata) AddJoinCondition(p Predicate) {
	if IsNil(p) {
		return
	}
	if len(m.joins) == 0 {
		m.pushError(errors.New("on: no join to apply the condition to"))
		return
	}
	last := m.joins[len(m.joins)-1]
	if last.Type == JoinDefault {
		m.pushError(fmt.Errorf("on: %s is not a join", renderSource(last.Target)))
		return
	}
	m.check(p)
	last.Condition = nilIfEmpty(And(last.Condition, p))
}

// AddWhere adds filter conditions, joined with AND. Nil predicates are ignored.
func (m *QueryMetadata) AddWhere(predicates ...Predicate) {
	for _, p := range predicates {
		if IsNil(p) {
			continue
		}
		m.check(p)
		m.where = nilIfEmpty(And(m.where, p))
	}
}

// AddHaving adds having conditions, joined with AND. Nil predicates are ignored.
func (m *QueryMetadata) AddHaving(predicates ...Predicate) {
	for _, p := range predicates {
		if IsNil(p) {
			continue
		}
		m.check(p)
		m.having = nilIfEmpty(And(m.having, p))
	}
}

// AddGroupBy adds grouping expressions.
func (m *QueryMetadata) AddGroupBy(exprs ...Expression) {
	for _, e := range exprs {
		if IsNil(e) {
			continue
		}
		m.check(e)
		m.groupBy = append(m.groupBy, nodeOf(e))
	}
}

// AddOrderBy adds orderings.
func (m *QueryMetadata) AddOrderBy(orders ...*OrderSpecifier) {
	for _, o := range orders {
		if o == nil || IsNil(o.Target) {
			continue
		}
		m.check(o.Target)
		m.orderBy = append(m.orderBy, o)
	}
}

// SetProjection replaces the projection.
func (m *QueryMetadata) SetProjection(exprs ...Expression) {
	m.projection = m.projection[:0]
	for _, e := range exprs {
		if IsNil(e) {
			continue
		}
		m.check(e)
		m.projection = append(m.projection, nodeOf(e))
	}
}

// SetDistinct sets the distinct flag.
func (m *QueryMetadata) SetDistinct(distinct bool) { m.distinct = distinct }

// SetUnique sets the unique flag, for queries expecting at most one result.
func (m *QueryMetadata) SetUnique(unique bool) { m.unique = unique }

// SetLimit sets the limit. Zero clears it, a negative value is collected as an error.
func (m *QueryMetadata) SetLimit(limit int64) {
	if limit < 0 {
		m.pushError(fmt.Errorf("limit must be >= 0, got %d", limit))
		return
	}
	m.modifiers.Limit = limit
}

// SetOffset sets the offset. Zero clears it, a negative value is collected as an error.
func (m *QueryMetadata) SetOffset(offset int64) {
	if offset < 0 {
		m.pushError(fmt.Errorf("offset must be >= 0, got %d", offset))
		return
	}
	m.modifiers.Offset = offset
}

// SetModifiers sets limit and offset.
func (m *QueryMetadata) SetModifiers(mod QueryModifiers) {
	m.SetLimit(mod.Limit)
	m.SetOffset(mod.Offset)
}

// ClearOrderBy removes all orderings.
func (m *QueryMetadata) ClearOrderBy() { m.orderBy = nil }

// ClearWhere removes the filter.
func (m *QueryMetadata) ClearWhere() { m.where = nil }

// Joins returns the sources of the query.
func (m *QueryMetadata) Joins() []*JoinExpression { return m.joins }

// Where returns the filter, nil if none.
func (m *QueryMetadata) Where() Predicate { return m.where }

// Having returns the having filter, nil if none.
func (m *QueryMetadata) Having() Predicate { return m.having }

// GroupBy returns the grouping expressions.
func (m *QueryMetadata) GroupBy() []Expression { return m.groupBy }

// OrderBy returns the orderings.
func (m *QueryMetadata) OrderBy() []*OrderSpecifier { return m.orderBy }

// Projection returns the projection.
func (m *QueryMetadata) Projection() []Expression { return m.projection }

// IsDistinct reports whether the query is distinct.
func (m *QueryMetadata) IsDistinct() bool { return m.distinct }

// IsUnique reports whether the query expects at most one result.
func (m *QueryMetadata) IsUnique() bool { return m.unique }

// Modifiers returns limit and offset.
func (m *QueryMetadata) Modifiers() QueryModifiers { return m.modifiers }

// Err returns the errors collected while building the query.
func (m *QueryMetadata) Err() error {
	return m.anyError()
}

// Clone returns a copy of m which can be modified independently.
func (m *QueryMetadata) Clone() *QueryMetadata {
	c := *m
	c.joins = make([]*JoinExpression, len(m.joins))
	for i, j := range m.joins {
		jc := *j
		c.joins[i] = &jc
	}
	c.groupBy = append([]Expression(nil), m.groupBy...)
	c.orderBy = append([]*OrderSpecifier(nil), m.orderBy...)
	c.projection = append([]Expression(nil), m.projection...)
	c.errors = append([]error(nil), m.errors...)
	c.declared = make(map[string]bool, len(m.declared))
	for k, v := range m.declared {
		c.declared[k] = v
	}
	return &c
}

// String renders the query in a backend independent form, e.g.
//
//	select user.firstName from User user where user.age > 10 order by user.lastName asc limit 5
func (m *QueryMetadata) String() string {
	parts := make([]string, 0, 8)
	if len(m.projection) > 0 {
		sel := "select "
		if m.distinct {
			sel += "distinct "
		}
		parts = append(parts, sel+joinStrings(m.projection, ", "))
	}
	for i, j := range m.joins {
		switch {
		case i == 0:
			parts = append(parts, "from "+renderSource(j.Target))
		case j.Type == JoinDefault:
			parts[len(parts)-1] += ", " + renderSource(j.Target)
		default:
			parts = append(parts, j.String())
		}
	}
	if !IsNil(m.where) {
		parts = append(parts, "where "+m.where.String())
	}
	if len(m.groupBy) > 0 {
		parts = append(parts, "group by "+joinStrings(m.groupBy, ", "))
	}
	if !IsNil(m.having) {
		parts = append(parts, "having "+m.having.String())
	}
	if len(m.orderBy) > 0 {
		orders := make([]string, len(m.orderBy))
		for i, o := range m.orderBy {
			orders[i] = o.String()
		}
		parts = append(parts, "order by "+strings.Join(orders, ", "))
	}
	if m.modifiers.Limit > 0 {
		parts = append(parts, "limit "+strconv.FormatInt(m.modifiers.Limit, 10))
	}
	if m.modifiers.Offset > 0 {
		parts = append(parts, "offset "+strconv.FormatInt(m.modifiers.Offset, 10))
	}
	return strings.Join(parts, " ")
}

func (m *QueryMetadata) declare(target Expression) {
	if m.declared == nil {
		m.declared = make(map[string]bool)
	}
	if e, alias, ok := Alias(target); ok {
		m.declared[alias] = true
		m.check(e)
		return
	}
	if p := PathOf(target); p != nil {
		m.declared[p.Root().Element()] = true
	}
}

// check records an error for each path not rooted at a declared source.
func (m *QueryMetadata) check(e Expression) {
	if !m.validate {
		return
	}
	Walk(e, m.checkNode)
}

func (m *QueryMetadata) checkNode(n Expression) bool {
	switch v := n.(type) {
	case *SubQueryExpression:
		return false
	case *Path:
		root := v.Root().Element()
		if !m.declared[root] {
			m.pushError(fmt.Errorf("undeclared path '%s'", root))
		}
		return false
	case *Operation:
		if v.op == OpAlias {
			Walk(v.Arg(0), m.checkNode)
			return false
		}
	}
	return true
}

func (m *QueryMetadata) pushError(err error) {
	m.errors = append(m.errors, err)
}

func (m *QueryMetadata) anyError() error {
	if len(m.errors) == 0 {
		return nil
	}
	sb := new(strings.Builder)
	sb.WriteString("collected errors: \n")
	for _, err := range m.errors {
		sb.WriteString(" - ")
		sb.WriteString(err.Error())
		sb.WriteRune('\n')
	}
	return errors.New(sb.String())
}

func joinStrings(exprs []Expression, sep string) string {
	s := make([]string, len(exprs))
	for i, e := range exprs {
		s[i] = e.String()
	}
	return strings.Join(s, sep)
}

// Walk traverses the expression tree rooted at e in depth-first order,
// calling fn for each node. Children are skipped if fn returns false.
func Walk(e Expression, fn func(Expression) bool) {
	n := nodeOf(e)
	if n == nil || !fn(n) {
		return
	}
	if op, ok := n.(*Operation); ok {
		for _, a := range op.args {
			Walk(a, fn)
		}
	}
}
