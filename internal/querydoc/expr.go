package querydoc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ikonglong/querydsl"
)

// ParsePath parses a dotted path rooted at a variable, e.g. "e.first_name"
// or "user.addresses.0.street". Numeric segments are list indexes.
func ParsePath(s string) (*querydsl.Path, error) {
	parts := strings.Split(s, ".")
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("invalid path %q", s)
		}
	}
	p := querydsl.NewVariable(parts[0])
	for _, part := range parts[1:] {
		if n, err := strconv.Atoi(part); err == nil {
			p = p.ListElement(n)
			continue
		}
		p = p.Property(part)
	}
	return p, nil
}

func parsePaths(ss []string) ([]querydsl.Expression, error) {
	exprs := make([]querydsl.Expression, 0, len(ss))
	for _, s := range ss {
		p, err := ParsePath(s)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, p)
	}
	return exprs, nil
}

// Predicates returns the where conditions of the document.
func (d *Document) Predicates() ([]querydsl.Predicate, error) {
	return predicates(d.Where)
}

func predicates(conds []Condition) ([]querydsl.Predicate, error) {
	preds := make([]querydsl.Predicate, 0, len(conds))
	for i := range conds {
		p, err := conds[i].Predicate()
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	return preds, nil
}

// Predicate converts c into a predicate.
func (c *Condition) Predicate() (querydsl.BooleanExpr, error) {
	groups := 0
	for _, set := range []bool{len(c.All) > 0, len(c.Any) > 0, c.Not != nil} {
		if set {
			groups++
		}
	}
	switch {
	case groups > 1:
		return querydsl.BooleanExpr{}, errors.New("only one of all, any and not is allowed")
	case groups == 1 && c.Path != "":
		return querydsl.BooleanExpr{}, fmt.Errorf("path %q: not allowed in a group", c.Path)
	case len(c.All) > 0:
		return fold(c.All, querydsl.BooleanExpr.And)
	case len(c.Any) > 0:
		return fold(c.Any, querydsl.BooleanExpr.Or)
	case c.Not != nil:
		p, err := c.Not.Predicate()
		if err != nil {
			return querydsl.BooleanExpr{}, err
		}
		return p.Not(), nil
	}
	p, err := c.comparison()
	if err != nil {
		return querydsl.BooleanExpr{}, fmt.Errorf("%s %s: %w", c.Path, c.Op, err)
	}
	return p, nil
}

func fold(conds []Condition, combine func(querydsl.BooleanExpr, querydsl.Predicate) querydsl.BooleanExpr) (querydsl.BooleanExpr, error) {
	var r querydsl.BooleanExpr
	for i := range conds {
		p, err := conds[i].Predicate()
		if err != nil {
			return querydsl.BooleanExpr{}, err
		}
		if i == 0 {
			r = p
			continue
		}
		r = combine(r, p)
	}
	return r, nil
}

func (c *Condition) comparison() (querydsl.BooleanExpr, error) {
	var none querydsl.BooleanExpr
	if c.Path == "" {
		return none, errors.New("path required")
	}
	p, err := ParsePath(c.Path)
	if err != nil {
		return none, err
	}
	var ref *querydsl.Path
	if c.Ref != "" {
		if ref, err = ParsePath(c.Ref); err != nil {
			return none, err
		}
	}
	s := querydsl.NewComparablePath[any](p)
	str := querydsl.NewStringPath(p)

	switch c.Op {
	case "eq", "ne", "lt", "gt", "loe", "goe":
		return compare(s, c.Op, c.Value, ref), nil
	case "between", "notBetween":
		if len(c.Values) != 2 {
			return none, errors.New("two values required")
		}
		if c.Op == "notBetween" {
			return s.NotBetween(c.Values[0], c.Values[1]), nil
		}
		return s.Between(c.Values[0], c.Values[1]), nil
	case "in":
		return s.In(c.Values...), nil
	case "notIn":
		return s.NotIn(c.Values...), nil
	case "isNull":
		return s.IsNull(), nil
	case "isNotNull":
		return s.IsNotNull(), nil
	case "isEmpty":
		return str.IsEmpty(), nil
	case "isNotEmpty":
		return str.IsNotEmpty(), nil
	case "size":
		return querydsl.BooleanOperation(querydsl.OpEq,
			querydsl.NewOperation(querydsl.OpColSize, p), querydsl.NewConstant(c.Value)), nil
	case "containsKey":
		return querydsl.BooleanOperation(querydsl.OpContainsKey, p, querydsl.NewConstant(c.Value)), nil
	}

	v, ok := c.Value.(string)
	if !ok {
		return none, fmt.Errorf("unknown operator or non-string value %v", c.Value)
	}
	switch c.Op {
	case "like":
		return str.Like(v), nil
	case "likeIgnoreCase":
		return str.LikeIgnoreCase(v), nil
	case "startsWith":
		return str.StartsWith(v), nil
	case "startsWithIgnoreCase":
		return str.StartsWithIgnoreCase(v), nil
	case "endsWith":
		return str.EndsWith(v), nil
	case "endsWithIgnoreCase":
		return str.EndsWithIgnoreCase(v), nil
	case "contains":
		return str.Contains(v), nil
	case "containsIgnoreCase":
		return str.ContainsIgnoreCase(v), nil
	case "equalsIgnoreCase":
		return str.EqualsIgnoreCase(v), nil
	case "matches":
		return str.Matches(v), nil
	}
	return none, errors.New("unknown operator")
}

func compare(s querydsl.ComparablePath[any], op string, v any, ref *querydsl.Path) querydsl.BooleanExpr {
	if ref != nil {
		switch op {
		case "eq":
			return s.EqExpr(ref)
		case "ne":
			return s.NeExpr(ref)
		case "lt":
			return s.LtExpr(ref)
		case "gt":
			return s.GtExpr(ref)
		case "loe":
			return s.LoeExpr(ref)
		}
		return s.GoeExpr(ref)
	}
	switch op {
	case "eq":
		return s.Eq(v)
	case "ne":
		return s.Ne(v)
	case "lt":
		return s.Lt(v)
	case "gt":
		return s.Gt(v)
	case "loe":
		return s.Loe(v)
	}
	return s.Goe(v)
}

// Orders returns the orderings of the document.
func (d *Document) Orders() ([]*querydsl.OrderSpecifier, error) {
	orders := make([]*querydsl.OrderSpecifier, 0, len(d.OrderBy))
	for _, o := range d.OrderBy {
		p, err := ParsePath(o.Path)
		if err != nil {
			return nil, err
		}
		order := querydsl.OrderAsc
		if o.Desc {
			order = querydsl.OrderDesc
		}
		spec := querydsl.NewOrderSpecifier(order, p)
		switch strings.ToLower(o.Nulls) {
		case "":
		case "first":
			spec = spec.NullsFirst()
		case "last":
			spec = spec.NullsLast()
		default:
			return nil, fmt.Errorf("order %s: invalid nulls %q", o.Path, o.Nulls)
		}
		orders = append(orders, spec)
	}
	return orders, nil
}

// Modifiers returns the limit and offset of the document.
func (d *Document) Modifiers() querydsl.QueryModifiers {
	return querydsl.QueryModifiers{Limit: d.Limit, Offset: d.Offset}
}
