package sqlq

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ikonglong/querydsl"
	"github.com/ikonglong/querydsl/dialect"
	"github.com/qjebbs/go-sqlf/v4"
)

// Serializer renders query metadata and expressions into SQL.
type Serializer struct {
	templates *Templates
	// paths rooted at bare are rendered without qualifier
	bare string
}

// NewSerializer returns a Serializer rendering with templates t.
// If t is nil, the templates of the context dialect are used.
func NewSerializer(t *Templates) *Serializer {
	return &Serializer{templates: t}
}

// Serialize returns the builder of the SELECT statement of md.
// If forCountRow is true, the statement counts the rows of md instead,
// ignoring its ordering and modifiers.
func (s *Serializer) Serialize(md *querydsl.QueryMetadata, forCountRow bool) sqlf.Builder {
	return sqlf.Func(func(ctx sqlf.Context) (query string, err error) {
		r, err := s.renderer(ctx)
		if err != nil {
			return "", err
		}
		if forCountRow {
			return r.countRows(md)
		}
		return r.query(md, false)
	})
}

// serializeUnion returns the builder of md combined with unions.
// The ordering and modifiers of md apply to the whole union.
func (s *Serializer) serializeUnion(md *querydsl.QueryMetadata, unions []*union, forCountRow bool) sqlf.Builder {
	return sqlf.Func(func(ctx sqlf.Context) (query string, err error) {
		r, err := s.renderer(ctx)
		if err != nil {
			return "", err
		}
		return r.union(md, unions, forCountRow)
	})
}

// Expression returns the builder of e.
func (s *Serializer) Expression(e querydsl.Expression) sqlf.Builder {
	return sqlf.Func(func(ctx sqlf.Context) (query string, err error) {
		r, err := s.renderer(ctx)
		if err != nil {
			return "", err
		}
		return r.expr(e)
	})
}

func (s *Serializer) renderer(ctx sqlf.Context) (*renderer, error) {
	uCtx, err := ContextUpgrade(ctx)
	if err != nil {
		return nil, err
	}
	t := s.templates
	if t == nil {
		t = TemplatesFor(uCtx.Dialect())
	}
	return &renderer{
		ctx:       uCtx,
		templates: t,
		caps:      uCtx.Dialect().Capabilities(),
		bare:      s.bare,
	}, nil
}

type renderer struct {
	ctx       Context
	templates *Templates
	caps      dialect.Capabilities
	bare      string
	// columns are rendered without qualifier, e.g. in the ORDER BY of a union
	unqualified bool
}

var joinKeywords = map[querydsl.JoinType]string{
	querydsl.JoinInner: "INNER JOIN",
	querydsl.JoinPlain: "JOIN",
	querydsl.JoinLeft:  "LEFT JOIN",
	querydsl.JoinRight: "RIGHT JOIN",
	querydsl.JoinFull:  "FULL JOIN",
}

func (r *renderer) query(md *querydsl.QueryMetadata, nested bool) (string, error) {
	b, err := r.statement(md, nested)
	if err != nil {
		return "", err
	}
	return b.BuildTo(r.ctx)
}

// statement returns the builder of the SELECT statement of md.
func (r *renderer) statement(md *querydsl.QueryMetadata, nested bool) (sqlf.Builder, error) {
	if err := md.Err(); err != nil {
		return nil, err
	}
	clauses, err := r.clauses(md, nested)
	if err != nil {
		return nil, err
	}
	ordered := len(md.OrderBy()) > 0
	if ordered {
		clauses = append(clauses, r.orders(md.OrderBy()))
	}
	clauses = append(clauses, r.limit(md.Modifiers(), ordered)...)
	return sqlf.Join(clauses, " "), nil
}

// clauses returns the clauses from SELECT to HAVING.
func (r *renderer) clauses(md *querydsl.QueryMetadata, nested bool) ([]sqlf.Builder, error) {
	clauses := make([]sqlf.Builder, 0, 8)
	if sel := r.selects(md, nested); sel != nil {
		clauses = append(clauses, sel)
	}
	body, err := r.body(md)
	if err != nil {
		return nil, err
	}
	return append(clauses, body...), nil
}

func (r *renderer) countRows(md *querydsl.QueryMetadata) (string, error) {
	if err := md.Err(); err != nil {
		return "", err
	}
	wrap := len(md.GroupBy()) > 0 || (md.IsDistinct() && len(md.Projection()) > 0)
	if !wrap {
		body, err := r.body(md)
		if err != nil {
			return "", err
		}
		clauses := append([]sqlf.Builder{sqlf.F("SELECT COUNT(*)")}, body...)
		return sqlf.Join(clauses, " ").BuildTo(r.ctx)
	}
	inner := md.Clone()
	inner.ClearOrderBy()
	inner.SetModifiers(querydsl.QueryModifiers{})
	if len(inner.Projection()) == 0 {
		inner.SetProjection(inner.GroupBy()...)
	}
	q, err := r.statement(inner, true)
	if err != nil {
		return "", err
	}
	return r.countOf(q).BuildTo(r.ctx)
}

// countOf returns the statement counting the rows of q.
func (r *renderer) countOf(q sqlf.Builder) sqlf.Builder {
	if r.templates.name == "oracle" {
		return sqlf.F(`SELECT COUNT(*) FROM (?) "q"`, q)
	}
	return sqlf.F(`SELECT COUNT(*) FROM (?) AS "q"`, q)
}

// union renders md combined with unions, ordered and limited as a whole.
func (r *renderer) union(md *querydsl.QueryMetadata, unions []*union, forCountRow bool) (string, error) {
	if err := md.Err(); err != nil {
		return "", err
	}
	if len(md.Projection()) == 0 {
		return "", errors.New("union: no projection")
	}
	first := md.Clone()
	first.ClearOrderBy()
	first.SetModifiers(querydsl.QueryModifiers{})
	head, err := r.clauses(first, false)
	if err != nil {
		return "", err
	}
	parts := []sqlf.Builder{sqlf.Join(head, " ")}
	for i, u := range unions {
		if u.query == nil {
			return "", fmt.Errorf("union %d: nil query", i+1)
		}
		umd := u.query.Metadata()
		if err := umd.Err(); err != nil {
			return "", fmt.Errorf("union %d: %w", i+1, err)
		}
		if len(umd.Projection()) == 0 {
			return "", fmt.Errorf("union %d: no projection", i+1)
		}
		if len(umd.OrderBy()) > 0 || !umd.Modifiers().IsZero() {
			return "", fmt.Errorf("union %d: order by, limit and offset apply to the whole union", i+1)
		}
		branch, err := r.clauses(umd, false)
		if err != nil {
			return "", fmt.Errorf("union %d: %w", i+1, err)
		}
		keyword := "UNION"
		if u.all {
			keyword = "UNION ALL"
		}
		parts = append(parts, sqlf.Prefix(keyword, sqlf.Join(branch, " ")))
	}
	body := sqlf.Join(parts, " ")
	if forCountRow {
		return r.countOf(body).BuildTo(r.ctx)
	}
	clauses := []sqlf.Builder{body}
	ordered := len(md.OrderBy()) > 0
	if ordered {
		outer := *r
		outer.unqualified = true
		clauses = append(clauses, outer.orders(md.OrderBy()))
	}
	clauses = append(clauses, r.limit(md.Modifiers(), ordered)...)
	return sqlf.Join(clauses, " ").BuildTo(r.ctx)
}

// body returns the clauses from FROM to HAVING.
func (r *renderer) body(md *querydsl.QueryMetadata) ([]sqlf.Builder, error) {
	clauses := make([]sqlf.Builder, 0, 4)
	if len(md.Joins()) > 0 {
		from, err := r.from(md.Joins())
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, sqlf.Prefix("FROM", from))
	}
	if !querydsl.IsNil(md.Where()) {
		clauses = append(clauses, sqlf.Prefix("WHERE", r.exprBuilder(md.Where(), "where")))
	}
	if len(md.GroupBy()) > 0 {
		clauses = append(clauses, sqlf.Prefix("GROUP BY", r.listBuilder(md.GroupBy(), "group by")))
	}
	if !querydsl.IsNil(md.Having()) {
		clauses = append(clauses, sqlf.Prefix("HAVING", r.exprBuilder(md.Having(), "having")))
	}
	return clauses, nil
}

func (r *renderer) selects(md *querydsl.QueryMetadata, nested bool) sqlf.Builder {
	keyword := "SELECT"
	if md.IsDistinct() {
		keyword = "SELECT DISTINCT"
	}
	projection := md.Projection()
	if len(projection) == 0 {
		if nested {
			return sqlf.F(keyword + " 1")
		}
		return nil
	}
	items := make([]sqlf.Builder, 0, len(projection))
	for _, e := range projection {
		if p := querydsl.PathOf(e); p != nil && p.IsRoot() {
			items = append(items, sqlf.F("?.*", sqlf.Identifier(p.Element())))
			continue
		}
		items = append(items, r.exprBuilder(e, "select"))
	}
	return sqlf.Prefix(keyword, sqlf.Join(items, ", "))
}

func (r *renderer) from(joins []*querydsl.JoinExpression) (sqlf.Builder, error) {
	items := make([]sqlf.Builder, 0, len(joins))
	for i, j := range joins {
		src, err := r.source(j.Target)
		if err != nil {
			return nil, err
		}
		switch {
		case i == 0:
			items = append(items, src)
			continue
		case j.Type == querydsl.JoinDefault:
			last := len(items) - 1
			items[last] = sqlf.Join([]sqlf.Builder{items[last], src}, ", ")
			continue
		case j.Type == querydsl.JoinFull && !r.caps.SupportsFullJoin:
			return nil, fmt.Errorf("full join is not supported by %s", r.templates.Name())
		case j.Type == querydsl.JoinRight && !r.caps.SupportsRightJoin:
			return nil, fmt.Errorf("right join is not supported by %s", r.templates.Name())
		}
		keyword := joinKeywords[j.Type]
		if querydsl.IsNil(j.Condition) {
			items = append(items, sqlf.Prefix(keyword, src))
			continue
		}
		items = append(items, sqlf.F(keyword+" ? ON ?", src, r.exprBuilder(j.Condition, "join condition")))
	}
	return sqlf.Join(items, " "), nil
}

func (r *renderer) source(target querydsl.Expression) (sqlf.Builder, error) {
	if t, ok := target.(RelationalPath); ok {
		return tableAs(t), nil
	}
	if e, alias, ok := querydsl.Alias(target); ok {
		if t, ok := e.(RelationalPath); ok {
			return sqlf.F("? AS ?", sqlf.Identifier(t.TableName()), sqlf.Identifier(alias)), nil
		}
		if sq, ok := e.(*querydsl.SubQueryExpression); ok && sq != nil {
			return sqlf.F("(?) AS ?", r.subquery(sq.Metadata()), sqlf.Identifier(alias)), nil
		}
		return nil, fmt.Errorf("unsupported query source %s", e)
	}
	if ep, ok := target.(querydsl.EntityPath); ok {
		name := sqlf.Identifier(ep.EntityName())
		if v := ep.Path().Root().Element(); v != ep.EntityName() {
			return sqlf.F("? AS ?", name, sqlf.Identifier(v)), nil
		}
		return name, nil
	}
	return nil, fmt.Errorf("unsupported query source %s", target)
}

func (r *renderer) orders(orders []*querydsl.OrderSpecifier) sqlf.Builder {
	items := make([]sqlf.Builder, 0, len(orders))
	for _, o := range orders {
		target := r.exprBuilder(o.Target, "order by")
		dir := "ASC"
		if !o.IsAscending() {
			dir = "DESC"
		}
		switch nulls := o.Order.Nulls(); {
		case nulls == 0:
			items = append(items, sqlf.F("? "+dir, target))
		case r.caps.SupportsNullsOrdering:
			if nulls == 1 {
				items = append(items, sqlf.F("? "+dir+" NULLS FIRST", target))
			} else {
				items = append(items, sqlf.F("? "+dir+" NULLS LAST", target))
			}
		default:
			first, last := "0", "1"
			if nulls == 2 {
				first, last = "1", "0"
			}
			// the target is built twice to bind its arguments in order
			items = append(items,
				sqlf.F("CASE WHEN ? IS NULL THEN "+first+" ELSE "+last+" END", target),
				sqlf.F("? "+dir, target),
			)
		}
	}
	return sqlf.Prefix("ORDER BY", sqlf.Join(items, ", "))
}

func (r *renderer) limit(mod querydsl.QueryModifiers, ordered bool) []sqlf.Builder {
	if mod.IsZero() {
		return nil
	}
	clauses := make([]sqlf.Builder, 0, 3)
	if r.caps.LimitStyle == dialect.OffsetFetch {
		if !ordered && r.caps.RequiresOrderForOffset {
			clauses = append(clauses, sqlf.F("ORDER BY (SELECT NULL)"))
		}
		clauses = append(clauses, sqlf.F(fmt.Sprintf("OFFSET %d ROWS", mod.Offset)))
		if mod.Limit > 0 {
			clauses = append(clauses, sqlf.F(fmt.Sprintf("FETCH NEXT %d ROWS ONLY", mod.Limit)))
		}
		return clauses
	}
	switch {
	case mod.Limit > 0:
		clauses = append(clauses, sqlf.F(fmt.Sprintf("LIMIT %d", mod.Limit)))
	case r.templates.maxLimit != "":
		clauses = append(clauses, sqlf.F("LIMIT "+r.templates.maxLimit))
	}
	if mod.Offset > 0 {
		clauses = append(clauses, sqlf.F(fmt.Sprintf("OFFSET %d", mod.Offset)))
	}
	return clauses
}

// exprBuilder returns the builder of e, annotating its errors with the clause.
func (r *renderer) exprBuilder(e querydsl.Expression, clause string) sqlf.Builder {
	return sqlf.Func(func(sqlf.Context) (string, error) {
		s, err := r.expr(e)
		if err != nil {
			return "", fmt.Errorf("build %s: %w", clause, err)
		}
		return s, nil
	})
}

func (r *renderer) listBuilder(exprs []querydsl.Expression, clause string) sqlf.Builder {
	items := make([]sqlf.Builder, 0, len(exprs))
	for _, e := range exprs {
		items = append(items, r.exprBuilder(e, clause))
	}
	return sqlf.Join(items, ", ")
}

// subquery returns the builder of the nested query md.
func (r *renderer) subquery(md *querydsl.QueryMetadata) sqlf.Builder {
	return sqlf.Func(func(sqlf.Context) (string, error) {
		return r.query(md, true)
	})
}

func (r *renderer) list(exprs []querydsl.Expression) (string, error) {
	items := make([]string, 0, len(exprs))
	for _, e := range exprs {
		s, err := r.expr(e)
		if err != nil {
			return "", err
		}
		items = append(items, s)
	}
	return strings.Join(items, ", "), nil
}

func (r *renderer) identifier(name string) (string, error) {
	return sqlf.Identifier(name).BuildTo(r.ctx)
}

func (r *renderer) bind(v any) (string, error) {
	return sqlf.F("?", v).BuildTo(r.ctx)
}

func (r *renderer) expr(e querydsl.Expression) (string, error) {
	if querydsl.IsNil(e) {
		return "NULL", nil
	}
	switch n := e.Node().(type) {
	case *querydsl.Path:
		return r.path(n)
	case *querydsl.Constant:
		return r.constant(n)
	case *querydsl.Operation:
		return r.operation(n)
	case *querydsl.SubQueryExpression:
		inner := *r
		inner.unqualified = false
		q, err := inner.query(n.Metadata(), true)
		if err != nil {
			return "", err
		}
		return "(" + q + ")", nil
	case defaultValue:
		if !r.caps.SupportsInsertDefault {
			return "", fmt.Errorf("DEFAULT is not supported by %s", r.templates.Name())
		}
		return "DEFAULT", nil
	}
	return "", fmt.Errorf("unsupported expression %T", e)
}

func (r *renderer) path(p *querydsl.Path) (string, error) {
	segs := p.Segments()
	for _, s := range segs {
		if s.Kind() != querydsl.PathProperty {
			return "", fmt.Errorf("path %s: collection navigation is not supported in SQL", p)
		}
	}
	if r.unqualified && len(segs) > 0 {
		return r.identifier(segs[len(segs)-1].Element())
	}
	parts := make([]string, 0, len(segs)+1)
	if len(segs) == 0 || p.Root().Element() != r.bare {
		id, err := r.identifier(p.Root().Element())
		if err != nil {
			return "", err
		}
		parts = append(parts, id)
	}
	for _, s := range segs {
		if s.Element() == "*" {
			parts = append(parts, "*")
			continue
		}
		id, err := r.identifier(s.Element())
		if err != nil {
			return "", err
		}
		parts = append(parts, id)
	}
	return strings.Join(parts, "."), nil
}

func (r *renderer) constant(c *querydsl.Constant) (string, error) {
	vs, ok := c.Values()
	if !ok {
		return r.bind(c.Value())
	}
	items := make([]string, 0, len(vs))
	for _, v := range vs {
		s, err := r.bind(v)
		if err != nil {
			return "", err
		}
		items = append(items, s)
	}
	return "(" + strings.Join(items, ", ") + ")", nil
}

func (r *renderer) operation(o *querydsl.Operation) (string, error) {
	switch op := o.Operator(); op {
	case querydsl.OpAlias:
		target, alias, _ := querydsl.Alias(o)
		s, err := r.expr(target)
		if err != nil {
			return "", err
		}
		id, err := r.identifier(alias)
		if err != nil {
			return "", err
		}
		return s + " AS " + id, nil
	case querydsl.OpNot:
		return r.not(o.Arg(0))
	case querydsl.OpIn, querydsl.OpNotIn:
		return r.in(op, o.Arg(0), o.Arg(1))
	case querydsl.OpStartsWith, querydsl.OpStartsWithIC,
		querydsl.OpEndsWith, querydsl.OpEndsWithIC,
		querydsl.OpStringContains, querydsl.OpStringContainsIC:
		return r.like(o)
	case querydsl.OpList:
		return r.list(o.Args())
	case querydsl.OpCast:
		return r.cast(o)
	case querydsl.OpColIsEmpty, querydsl.OpColSize, querydsl.OpMapIsEmpty,
		querydsl.OpContainsKey, querydsl.OpContainsValue:
		return "", fmt.Errorf("operator %s: collections are not supported in SQL", op)
	}
	return r.template(o.Operator(), o.Args())
}

func (r *renderer) template(op querydsl.Operator, args []querydsl.Expression) (string, error) {
	t, ok := r.templates.Get(op)
	if !ok {
		return "", fmt.Errorf("operator %s is not supported by %s", op, r.templates.Name())
	}
	sb := new(strings.Builder)
	p := t.Pattern
	for i := 0; i < len(p); i++ {
		c := p[i]
		if c != '{' {
			sb.WriteByte(c)
			continue
		}
		end := strings.IndexByte(p[i:], '}')
		if end < 0 {
			sb.WriteString(p[i:])
			break
		}
		n, err := strconv.Atoi(p[i+1 : i+end])
		if err != nil {
			sb.WriteByte(c)
			continue
		}
		if n >= len(args) {
			return "", fmt.Errorf("operator %s: missing argument %d", op, n)
		}
		s, err := r.expr(args[n])
		if err != nil {
			return "", err
		}
		if t.Infix && r.needsParens(op, t, args[n], n > 0) {
			s = "(" + s + ")"
		}
		sb.WriteString(s)
		i += end
	}
	return sb.String(), nil
}

// needsParens reports whether the argument child of the parent operator
// must be wrapped in parentheses.
func (r *renderer) needsParens(parent querydsl.Operator, pt Template, child querydsl.Expression, right bool) bool {
	if querydsl.IsNil(child) {
		return false
	}
	o, ok := child.Node().(*querydsl.Operation)
	if !ok {
		return false
	}
	op := likeOperator(o.Operator())
	ct, ok := r.templates.Get(op)
	if !ok || !ct.Infix {
		return false
	}
	if ct.Precedence != pt.Precedence {
		return ct.Precedence < pt.Precedence
	}
	if op == parent && parent.Associative() {
		return false
	}
	return right || op != parent
}

// cast renders the conversion of the first argument to the type named
// by the second, with the cast pattern of the dialect.
func (r *renderer) cast(o *querydsl.Operation) (string, error) {
	c, ok := o.Arg(1).(*querydsl.Constant)
	if !ok || c == nil {
		return "", errors.New("cast: type expected")
	}
	typ, ok := c.Value().(string)
	if !ok || typ == "" {
		return "", fmt.Errorf("cast: type name expected, got %v", c.Value())
	}
	arg := o.Arg(0)
	if querydsl.IsNil(arg) {
		return "", errors.New("cast: nil operand")
	}
	s, err := r.expr(arg)
	if err != nil {
		return "", err
	}
	if a, ok := arg.Node().(*querydsl.Operation); ok {
		if t, ok := r.templates.Get(likeOperator(a.Operator())); ok && t.Infix {
			s = "(" + s + ")"
		}
	}
	return strings.Replace(r.ctx.Dialect().CastType(typ), "?", s, 1), nil
}

// not renders the negation of arg, using the negated operator where SQL has one.
func (r *renderer) not(arg querydsl.Expression) (string, error) {
	if querydsl.IsNil(arg) {
		return "", errors.New("not: nil operand")
	}
	o, ok := arg.Node().(*querydsl.Operation)
	if !ok {
		s, err := r.expr(arg)
		if err != nil {
			return "", err
		}
		return "NOT " + s, nil
	}
	switch o.Operator() {
	case querydsl.OpIn:
		return r.in(querydsl.OpNotIn, o.Arg(0), o.Arg(1))
	case querydsl.OpNotIn:
		return r.in(querydsl.OpIn, o.Arg(0), o.Arg(1))
	case querydsl.OpIsNull:
		return r.template(querydsl.OpIsNotNull, o.Args())
	case querydsl.OpIsNotNull:
		return r.template(querydsl.OpIsNull, o.Args())
	case querydsl.OpEq:
		return r.template(querydsl.OpNe, o.Args())
	case querydsl.OpNe:
		return r.template(querydsl.OpEq, o.Args())
	}
	s, err := r.operation(o)
	if err != nil {
		return "", err
	}
	if t, ok := r.templates.Get(likeOperator(o.Operator())); ok && t.Infix {
		return "NOT (" + s + ")", nil
	}
	return "NOT " + s, nil
}

func (r *renderer) in(op querydsl.Operator, left, right querydsl.Expression) (string, error) {
	if querydsl.IsNil(right) {
		return "", fmt.Errorf("operator %s: nil right operand", op)
	}
	switch n := right.Node().(type) {
	case *querydsl.Constant:
		vs, ok := n.Values()
		if !ok {
			vs = []any{n.Value()}
		}
		if len(vs) == 0 {
			if op == querydsl.OpIn {
				return "1 = 0", nil
			}
			return "1 = 1", nil
		}
		right = querydsl.NewConstant(vs)
	case *querydsl.SubQueryExpression:
	default:
		return "", fmt.Errorf("operator %s: right operand must be a list or a subquery, got %s", op, right)
	}
	return r.template(op, []querydsl.Expression{left, right})
}

// like renders the string matching operators as LIKE with wildcards.
func (r *renderer) like(o *querydsl.Operation) (string, error) {
	op := o.Operator()
	prefix, suffix := "", ""
	switch op {
	case querydsl.OpStartsWith, querydsl.OpStartsWithIC:
		suffix = "%"
	case querydsl.OpEndsWith, querydsl.OpEndsWithIC:
		prefix = "%"
	default:
		prefix, suffix = "%", "%"
	}
	pattern := o.Arg(1)
	if querydsl.IsNil(pattern) {
		return "", fmt.Errorf("operator %s: nil pattern", op)
	}
	if c, ok := pattern.Node().(*querydsl.Constant); ok {
		s, ok := c.Value().(string)
		if !ok {
			return "", fmt.Errorf("operator %s: string expected, got %T", op, c.Value())
		}
		pattern = querydsl.NewConstant(prefix + r.templates.EscapeLike(s) + suffix)
	} else {
		if prefix != "" {
			pattern = querydsl.NewOperation(querydsl.OpConcat, querydsl.NewConstant(prefix), pattern)
		}
		if suffix != "" {
			pattern = querydsl.NewOperation(querydsl.OpConcat, pattern, querydsl.NewConstant(suffix))
		}
	}
	return r.template(likeOperator(op), []querydsl.Expression{o.Arg(0), pattern})
}

// likeOperator returns the LIKE operator a string matching operator is rendered with.
func likeOperator(op querydsl.Operator) querydsl.Operator {
	switch op {
	case querydsl.OpStartsWith, querydsl.OpEndsWith, querydsl.OpStringContains:
		return querydsl.OpLike
	case querydsl.OpStartsWithIC, querydsl.OpEndsWithIC, querydsl.OpStringContainsIC:
		return querydsl.OpLikeIC
	}
	return op
}
