// Package mongodb serializes querydsl expressions into MongoDB filter, sort and
// projection documents, and executes them through the official driver.
package mongodb

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ikonglong/querydsl"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ValueConverter converts the value compared with path before it's encoded,
// e.g. a referenced document into its identifier.
type ValueConverter func(path *querydsl.Path, value any) (any, error)

// Serializer renders querydsl expressions into MongoDB documents.
//
// Paths are rendered as dotted keys without their root variable:
// "any()" segments collapse, list indexes render as ".0", map values as
// ".key", and the "id" property of the root as "_id".
type Serializer struct {
	converter ValueConverter
}

// NewSerializer returns a new Serializer. The converter may be nil.
func NewSerializer(converter ValueConverter) *Serializer {
	return &Serializer{converter: converter}
}

// Filter renders the predicate p into a filter document.
// An empty document is returned for a nil predicate.
func (s *Serializer) Filter(p querydsl.Expression) (bson.D, error) {
	if querydsl.IsNil(p) {
		return bson.D{}, nil
	}
	return s.handle(p.Node())
}

// ElemMatch renders the condition that any element of the collection
// matches cond. Paths of cond are relative to the element.
func (s *Serializer) ElemMatch(collection querydsl.Expression, cond querydsl.Expression) (bson.D, error) {
	key, err := s.keyOf(collection)
	if err != nil {
		return nil, err
	}
	doc, err := s.Filter(cond)
	if err != nil {
		return nil, err
	}
	return bson.D{{Key: key, Value: bson.D{{Key: "$elemMatch", Value: doc}}}}, nil
}

// Sort renders orders into a sort document. Null ordering is not supported
// by MongoDB and is ignored.
func (s *Serializer) Sort(orders []*querydsl.OrderSpecifier) (bson.D, error) {
	sort := make(bson.D, 0, len(orders))
	for _, o := range orders {
		key, err := s.keyOf(o.Target)
		if err != nil {
			return nil, fmt.Errorf("sort: %w", err)
		}
		dir := 1
		if !o.IsAscending() {
			dir = -1
		}
		sort = append(sort, bson.E{Key: key, Value: dir})
	}
	return sort, nil
}

// Projection renders the keys to fetch into a projection document.
func (s *Serializer) Projection(keys []querydsl.Expression) (bson.D, error) {
	proj := make(bson.D, 0, len(keys))
	for _, k := range keys {
		key, err := s.keyOf(k)
		if err != nil {
			return nil, fmt.Errorf("projection: %w", err)
		}
		proj = append(proj, bson.E{Key: key, Value: 1})
	}
	return proj, nil
}

// Key returns the document key of path p.
func (s *Serializer) Key(p *querydsl.Path) (string, error) {
	segs := p.Segments()
	parts := make([]string, 0, len(segs))
	for _, seg := range segs {
		switch seg.Kind() {
		case querydsl.PathProperty:
			name := seg.Element()
			if name == "id" && seg.Parent().IsRoot() {
				name = "_id"
			}
			parts = append(parts, name)
		case querydsl.PathListIndex:
			parts = append(parts, strconv.Itoa(seg.Index()))
		case querydsl.PathMapValue:
			parts = append(parts, fmt.Sprint(seg.Key()))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("path %s has no document key", p)
	}
	return strings.Join(parts, "."), nil
}

func (s *Serializer) keyOf(e querydsl.Expression) (string, error) {
	p := querydsl.PathOf(e)
	if p == nil {
		return "", fmt.Errorf("%s is not a path", e)
	}
	return s.Key(p)
}

func (s *Serializer) handle(n querydsl.Expression) (bson.D, error) {
	o, ok := n.(*querydsl.Operation)
	if !ok {
		return nil, fmt.Errorf("unsupported filter %s", n)
	}
	switch op := o.Operator(); op {
	case querydsl.OpAnd:
		return s.and(o)
	case querydsl.OpOr:
		return s.or(o)
	case querydsl.OpNot:
		return s.not(o.Arg(0))
	case querydsl.OpEq:
		return s.eq(o)
	case querydsl.OpNe:
		if size, ok := sizeOperand(o); ok {
			doc, err := s.size(size, o.Arg(1))
			if err != nil {
				return nil, err
			}
			return negate(doc), nil
		}
		return s.operatorDoc(o, "$ne")
	case querydsl.OpLt:
		return s.operatorDoc(o, "$lt")
	case querydsl.OpGt:
		return s.operatorDoc(o, "$gt")
	case querydsl.OpLoe:
		return s.operatorDoc(o, "$lte")
	case querydsl.OpGoe:
		return s.operatorDoc(o, "$gte")
	case querydsl.OpBetween:
		key, p, err := s.pathArg(o, 0)
		if err != nil {
			return nil, err
		}
		from, err := s.value(p, o.Arg(1))
		if err != nil {
			return nil, err
		}
		to, err := s.value(p, o.Arg(2))
		if err != nil {
			return nil, err
		}
		return bson.D{{Key: key, Value: bson.D{{Key: "$gte", Value: from}, {Key: "$lte", Value: to}}}}, nil
	case querydsl.OpIn:
		return s.in(o, false)
	case querydsl.OpNotIn:
		return s.in(o, true)
	case querydsl.OpIsNull:
		return s.exists(o, false)
	case querydsl.OpIsNotNull:
		return s.exists(o, true)
	case querydsl.OpStringIsEmpty:
		key, _, err := s.pathArg(o, 0)
		if err != nil {
			return nil, err
		}
		return bson.D{{Key: key, Value: ""}}, nil
	case querydsl.OpColIsEmpty:
		key, _, err := s.pathArg(o, 0)
		if err != nil {
			return nil, err
		}
		return bson.D{{Key: "$or", Value: bson.A{
			bson.D{{Key: key, Value: bson.A{}}},
			bson.D{{Key: key, Value: bson.D{{Key: "$exists", Value: false}}}},
		}}}, nil
	case querydsl.OpMapIsEmpty:
		key, _, err := s.pathArg(o, 0)
		if err != nil {
			return nil, err
		}
		return bson.D{{Key: "$or", Value: bson.A{
			bson.D{{Key: key, Value: bson.D{}}},
			bson.D{{Key: key, Value: bson.D{{Key: "$exists", Value: false}}}},
		}}}, nil
	case querydsl.OpContainsKey:
		key, _, err := s.pathArg(o, 0)
		if err != nil {
			return nil, err
		}
		c, err := constantArg(o, 1)
		if err != nil {
			return nil, err
		}
		return bson.D{{Key: key + "." + fmt.Sprint(c.Value()), Value: bson.D{{Key: "$exists", Value: true}}}}, nil
	case querydsl.OpStartsWith, querydsl.OpStartsWithIC,
		querydsl.OpEndsWith, querydsl.OpEndsWithIC,
		querydsl.OpStringContains, querydsl.OpStringContainsIC,
		querydsl.OpEqIgnoreCase, querydsl.OpMatches, querydsl.OpMatchesIC,
		querydsl.OpLike, querydsl.OpLikeIC:
		return s.regex(o)
	}
	return nil, fmt.Errorf("operator %s is not supported by mongodb", o.Operator())
}

func (s *Serializer) and(o *querydsl.Operation) (bson.D, error) {
	conjuncts := querydsl.Collect(querydsl.OpAnd, o)
	docs := make([]bson.D, 0, len(conjuncts))
	for _, c := range conjuncts {
		d, err := s.handle(c)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return merge(docs), nil
}

// merge merges the documents into one, or renders them with $and if their
// keys collide. Empty documents are skipped.
func merge(docs []bson.D) bson.D {
	keys := make(map[string]bool)
	collide := false
	for _, d := range docs {
		for _, e := range d {
			if keys[e.Key] {
				collide = true
			}
			keys[e.Key] = true
		}
	}
	if collide {
		list := make(bson.A, 0, len(docs))
		for _, d := range docs {
			if len(d) > 0 {
				list = append(list, d)
			}
		}
		return bson.D{{Key: "$and", Value: list}}
	}
	merged := make(bson.D, 0, len(keys))
	for _, d := range docs {
		merged = append(merged, d...)
	}
	return merged
}

func (s *Serializer) or(o *querydsl.Operation) (bson.D, error) {
	disjuncts := querydsl.Collect(querydsl.OpOr, o)
	list := make(bson.A, 0, len(disjuncts))
	for _, c := range disjuncts {
		d, err := s.handle(c)
		if err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return bson.D{{Key: "$or", Value: list}}, nil
}

func (s *Serializer) not(arg querydsl.Expression) (bson.D, error) {
	if querydsl.IsNil(arg) {
		return nil, errors.New("not: nil operand")
	}
	if o, ok := arg.Node().(*querydsl.Operation); ok {
		switch o.Operator() {
		case querydsl.OpIn:
			return s.in(o, true)
		case querydsl.OpNotIn:
			return s.in(o, false)
		}
	}
	d, err := s.handle(arg.Node())
	if err != nil {
		return nil, err
	}
	return negate(d), nil
}

func (s *Serializer) eq(o *querydsl.Operation) (bson.D, error) {
	if size, ok := sizeOperand(o); ok {
		return s.size(size, o.Arg(1))
	}
	key, p, err := s.pathArg(o, 0)
	if err != nil {
		return nil, err
	}
	v, err := s.value(p, o.Arg(1))
	if err != nil {
		return nil, err
	}
	return bson.D{{Key: key, Value: v}}, nil
}

func (s *Serializer) size(size *querydsl.Operation, n querydsl.Expression) (bson.D, error) {
	key, _, err := s.pathArg(size, 0)
	if err != nil {
		return nil, err
	}
	c, ok := n.Node().(*querydsl.Constant)
	if !ok {
		return nil, fmt.Errorf("size: constant expected, got %s", n)
	}
	return bson.D{{Key: key, Value: bson.D{{Key: "$size", Value: c.Value()}}}}, nil
}

func (s *Serializer) operatorDoc(o *querydsl.Operation, operator string) (bson.D, error) {
	key, p, err := s.pathArg(o, 0)
	if err != nil {
		return nil, err
	}
	v, err := s.value(p, o.Arg(1))
	if err != nil {
		return nil, err
	}
	return bson.D{{Key: key, Value: bson.D{{Key: operator, Value: v}}}}, nil
}

// in renders "path in values" with $in / $nin, and "value in collection path"
// as a match / $ne of the collection.
func (s *Serializer) in(o *querydsl.Operation, negated bool) (bson.D, error) {
	if p := querydsl.PathOf(o.Arg(1)); p != nil {
		key, err := s.Key(p)
		if err != nil {
			return nil, err
		}
		v, err := s.value(p, o.Arg(0))
		if err != nil {
			return nil, err
		}
		if negated {
			return bson.D{{Key: key, Value: bson.D{{Key: "$ne", Value: v}}}}, nil
		}
		return bson.D{{Key: key, Value: v}}, nil
	}
	key, p, err := s.pathArg(o, 0)
	if err != nil {
		return nil, err
	}
	c, err := constantArg(o, 1)
	if err != nil {
		return nil, err
	}
	vs, ok := c.Values()
	if !ok {
		vs = []any{c.Value()}
	}
	list := make(bson.A, 0, len(vs))
	for _, v := range vs {
		cv, err := s.convert(p, v)
		if err != nil {
			return nil, err
		}
		list = append(list, cv)
	}
	operator := "$in"
	if negated {
		operator = "$nin"
	}
	return bson.D{{Key: key, Value: bson.D{{Key: operator, Value: list}}}}, nil
}

func (s *Serializer) exists(o *querydsl.Operation, exists bool) (bson.D, error) {
	key, _, err := s.pathArg(o, 0)
	if err != nil {
		return nil, err
	}
	return bson.D{{Key: key, Value: bson.D{{Key: "$exists", Value: exists}}}}, nil
}

func (s *Serializer) regex(o *querydsl.Operation) (bson.D, error) {
	key, _, err := s.pathArg(o, 0)
	if err != nil {
		return nil, err
	}
	c, err := constantArg(o, 1)
	if err != nil {
		return nil, err
	}
	str, ok := c.Value().(string)
	if !ok {
		return nil, fmt.Errorf("operator %s: string expected, got %T", o.Operator(), c.Value())
	}
	var pattern, options string
	switch o.Operator() {
	case querydsl.OpStartsWith, querydsl.OpStartsWithIC:
		pattern = "^" + regexp.QuoteMeta(str)
	case querydsl.OpEndsWith, querydsl.OpEndsWithIC:
		pattern = regexp.QuoteMeta(str) + "$"
	case querydsl.OpStringContains, querydsl.OpStringContainsIC:
		pattern = ".*" + regexp.QuoteMeta(str) + ".*"
	case querydsl.OpEqIgnoreCase:
		pattern = "^" + regexp.QuoteMeta(str) + "$"
	case querydsl.OpLike, querydsl.OpLikeIC:
		pattern = LikeToRegex(str)
	default:
		pattern = str
	}
	switch o.Operator() {
	case querydsl.OpStartsWithIC, querydsl.OpEndsWithIC, querydsl.OpStringContainsIC,
		querydsl.OpEqIgnoreCase, querydsl.OpMatchesIC, querydsl.OpLikeIC:
		options = "i"
	}
	return bson.D{{Key: key, Value: primitive.Regex{Pattern: pattern, Options: options}}}, nil
}

// LikeToRegex converts a LIKE pattern into a regular expression, with '%'
// matching any sequence and '_' any character. The expression is anchored
// unless the pattern starts or ends with '%'. A backslash escapes the next
// character.
func LikeToRegex(like string) string {
	sb := new(strings.Builder)
	if !strings.HasPrefix(like, "%") {
		sb.WriteByte('^')
	}
	escaped := false
	for _, r := range like {
		switch {
		case escaped:
			sb.WriteString(regexp.QuoteMeta(string(r)))
			escaped = false
		case r == '\\':
			escaped = true
		case r == '%':
			sb.WriteString(".*")
		case r == '_':
			sb.WriteByte('.')
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	if !strings.HasSuffix(like, "%") || strings.HasSuffix(like, `\%`) {
		sb.WriteByte('$')
	}
	return sb.String()
}

func (s *Serializer) pathArg(o *querydsl.Operation, i int) (string, *querydsl.Path, error) {
	p := querydsl.PathOf(o.Arg(i))
	if p == nil {
		return "", nil, fmt.Errorf("operator %s: path expected, got %s", o.Operator(), o.Arg(i))
	}
	key, err := s.Key(p)
	if err != nil {
		return "", nil, err
	}
	return key, p, nil
}

func constantArg(o *querydsl.Operation, i int) (*querydsl.Constant, error) {
	arg := o.Arg(i)
	if querydsl.IsNil(arg) {
		return nil, fmt.Errorf("operator %s: missing operand %d", o.Operator(), i)
	}
	c, ok := arg.Node().(*querydsl.Constant)
	if !ok {
		return nil, fmt.Errorf("operator %s: constant expected, got %s", o.Operator(), arg)
	}
	return c, nil
}

// value returns the converted value of the constant e compared with path p.
func (s *Serializer) value(p *querydsl.Path, e querydsl.Expression) (any, error) {
	if querydsl.IsNil(e) {
		return nil, nil
	}
	c, ok := e.Node().(*querydsl.Constant)
	if !ok {
		return nil, fmt.Errorf("%s: comparing with %s is not supported by mongodb", p, e)
	}
	return s.convert(p, c.Value())
}

func (s *Serializer) convert(p *querydsl.Path, v any) (any, error) {
	if s.converter != nil {
		cv, err := s.converter(p, v)
		if err != nil {
			return nil, fmt.Errorf("convert value of %s: %w", p, err)
		}
		v = cv
	}
	if str, ok := v.(string); ok && isIDPath(p) {
		if id, err := primitive.ObjectIDFromHex(str); err == nil {
			return id, nil
		}
	}
	return v, nil
}

func isIDPath(p *querydsl.Path) bool {
	return p.Kind() == querydsl.PathProperty && p.Element() == "id" && p.Parent().IsRoot()
}

func sizeOperand(o *querydsl.Operation) (*querydsl.Operation, bool) {
	if querydsl.IsNil(o.Arg(0)) {
		return nil, false
	}
	lhs, ok := o.Arg(0).Node().(*querydsl.Operation)
	if !ok || lhs.Operator() != querydsl.OpColSize {
		return nil, false
	}
	return lhs, true
}

// negate returns the negation of the filter document d.
func negate(d bson.D) bson.D {
	list := make([]bson.D, 0, len(d))
	for _, e := range d {
		switch v := e.Value.(type) {
		case bson.A:
			switch e.Key {
			case "$or":
				list = append(list, bson.D{{Key: "$nor", Value: v}})
				continue
			case "$nor":
				list = append(list, bson.D{{Key: "$or", Value: v}})
				continue
			case "$and":
				negated := make(bson.A, 0, len(v))
				for _, c := range v {
					if cd, ok := c.(bson.D); ok {
						negated = append(negated, negate(cd))
					}
				}
				list = append(list, bson.D{{Key: "$or", Value: negated}})
				continue
			}
			list = append(list, bson.D{{Key: e.Key, Value: bson.D{{Key: "$ne", Value: v}}}})
		case primitive.Regex:
			list = append(list, bson.D{{Key: e.Key, Value: bson.D{{Key: "$not", Value: v}}}})
		case bson.D:
			list = append(list, negateField(e.Key, v))
		default:
			list = append(list, bson.D{{Key: e.Key, Value: bson.D{{Key: "$ne", Value: v}}}})
		}
	}
	if len(list) == 1 {
		return list[0]
	}
	or := make(bson.A, 0, len(list))
	for _, l := range list {
		or = append(or, l)
	}
	return bson.D{{Key: "$or", Value: or}}
}

// negateField negates the operator document v of key.
func negateField(key string, v bson.D) bson.D {
	switch len(v) {
	case 0:
		return bson.D{{Key: key, Value: bson.D{{Key: "$ne", Value: v}}}}
	case 1:
		return bson.D{{Key: key, Value: bson.D{{Key: "$not", Value: v}}}}
	}
	or := make(bson.A, 0, len(v))
	for _, e := range v {
		or = append(or, bson.D{{Key: key, Value: bson.D{{Key: "$not", Value: bson.D{e}}}}})
	}
	return bson.D{{Key: "$or", Value: or}}
}
