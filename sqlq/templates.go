package sqlq

import (
	"github.com/ikonglong/querydsl"
	"github.com/ikonglong/querydsl/dialect"
)

// precedence levels of SQL operators, higher binds tighter
const (
	precOr         = 10
	precAnd        = 20
	precNot        = 30
	precComparison = 40
	precAdditive   = 50
	precMultiplier = 60
	precUnary      = 90
	precFunction   = 100
)

// Template is the SQL pattern of an operator. {n} in the pattern is
// replaced with the n-th argument.
type Template struct {
	Pattern    string
	Precedence int
	// Infix reports whether the arguments are rendered without delimiters,
	// so that they may need parentheses.
	Infix bool
}

func infix(pattern string, precedence int) Template {
	return Template{Pattern: pattern, Precedence: precedence, Infix: true}
}

func function(pattern string) Template {
	return Template{Pattern: pattern, Precedence: precFunction}
}

// Templates holds the SQL patterns of operators for a dialect.
type Templates struct {
	name     string
	patterns map[querydsl.Operator]Template
	escape   string
	// maxLimit is the LIMIT rendered when only an offset is set, for
	// dialects which have no OFFSET without LIMIT.
	maxLimit string
}

// DefaultTemplates are the ANSI SQL templates, used to render
// subqueries for display.
var DefaultTemplates = TemplatesFor(dialect.AnsiSQL{})

// TemplatesFor returns the templates of dialect d.
func TemplatesFor(d dialect.Dialect) *Templates {
	caps := d.Capabilities()
	t := &Templates{
		name:     dialectName(d),
		escape:   `\`,
		patterns: ansiPatterns(),
	}
	likeEscape := " ESCAPE '" + t.escape + "'"
	switch d.(type) {
	case dialect.MySQL:
		// backslash is the default escape character, and
		// it starts an escape sequence in MySQL string literals.
		likeEscape = ""
		t.maxLimit = "18446744073709551615"
		t.Set(querydsl.OpConcat, function("CONCAT({0}, {1})"))
	case dialect.SQLServer:
		t.Set(querydsl.OpConcat, infix("{0} + {1}", precAdditive))
		t.Set(querydsl.OpStringLength, function("LEN({0})"))
		t.Set(querydsl.OpStringIsEmpty, infix("LEN({0}) = 0", precComparison))
		t.Set(querydsl.OpMod, infix("{0} % {1}", precMultiplier))
	case dialect.SQLite:
		t.maxLimit = "-1"
		t.Set(querydsl.OpMod, infix("{0} % {1}", precMultiplier))
	}
	t.Set(querydsl.OpLike, infix("{0} LIKE {1}"+likeEscape, precComparison))
	if caps.SupportsILike {
		t.Set(querydsl.OpLikeIC, infix("{0} ILIKE {1}"+likeEscape, precComparison))
	} else {
		t.Set(querydsl.OpLikeIC, infix("LOWER({0}) LIKE LOWER({1})"+likeEscape, precComparison))
	}
	switch op := caps.RegexpOperator; op {
	case "":
	case "~":
		t.Set(querydsl.OpMatches, infix("{0} ~ {1}", precComparison))
		t.Set(querydsl.OpMatchesIC, infix("{0} ~* {1}", precComparison))
	default:
		t.Set(querydsl.OpMatches, infix("{0} "+op+" {1}", precComparison))
		t.Set(querydsl.OpMatchesIC, infix("LOWER({0}) "+op+" LOWER({1})", precComparison))
	}
	return t
}

func ansiPatterns() map[querydsl.Operator]Template {
	return map[querydsl.Operator]Template{
		querydsl.OpAnd: infix("{0} AND {1}", precAnd),
		querydsl.OpOr:  infix("{0} OR {1}", precOr),
		querydsl.OpNot: infix("NOT {0}", precNot),

		querydsl.OpEq:        infix("{0} = {1}", precComparison),
		querydsl.OpNe:        infix("{0} <> {1}", precComparison),
		querydsl.OpLt:        infix("{0} < {1}", precComparison),
		querydsl.OpGt:        infix("{0} > {1}", precComparison),
		querydsl.OpLoe:       infix("{0} <= {1}", precComparison),
		querydsl.OpGoe:       infix("{0} >= {1}", precComparison),
		querydsl.OpBetween:   infix("{0} BETWEEN {1} AND {2}", precComparison),
		querydsl.OpIn:        infix("{0} IN {1}", precComparison),
		querydsl.OpNotIn:     infix("{0} NOT IN {1}", precComparison),
		querydsl.OpIsNull:    infix("{0} IS NULL", precComparison),
		querydsl.OpIsNotNull: infix("{0} IS NOT NULL", precComparison),

		querydsl.OpEqIgnoreCase:  infix("LOWER({0}) = LOWER({1})", precComparison),
		querydsl.OpStringIsEmpty: infix("LENGTH({0}) = 0", precComparison),
		querydsl.OpStringLength:  function("LENGTH({0})"),
		querydsl.OpLower:         function("LOWER({0})"),
		querydsl.OpUpper:         function("UPPER({0})"),
		querydsl.OpTrim:          function("TRIM({0})"),
		querydsl.OpConcat:        infix("{0} || {1}", precAdditive),

		querydsl.OpAdd:    infix("{0} + {1}", precAdditive),
		querydsl.OpSub:    infix("{0} - {1}", precAdditive),
		querydsl.OpMult:   infix("{0} * {1}", precMultiplier),
		querydsl.OpDiv:    infix("{0} / {1}", precMultiplier),
		querydsl.OpMod:    function("MOD({0}, {1})"),
		querydsl.OpNegate: infix("-{0}", precUnary),
		querydsl.OpAbs:    function("ABS({0})"),

		querydsl.OpCount:         function("COUNT({0})"),
		querydsl.OpCountDistinct: function("COUNT(DISTINCT {0})"),
		querydsl.OpCountAll:      function("COUNT(*)"),
		querydsl.OpSum:           function("SUM({0})"),
		querydsl.OpAvg:           function("AVG({0})"),
		querydsl.OpMin:           function("MIN({0})"),
		querydsl.OpMax:           function("MAX({0})"),

		querydsl.OpExists:   function("EXISTS {0}"),
		querydsl.OpCoalesce: function("COALESCE({0}, {1})"),
	}
}

func dialectName(d dialect.Dialect) string {
	switch d.(type) {
	case dialect.PostgreSQL:
		return "postgres"
	case dialect.MySQL:
		return "mysql"
	case dialect.SQLite:
		return "sqlite"
	case dialect.SQLServer:
		return "sqlserver"
	case dialect.Oracle:
		return "oracle"
	case dialect.Derby:
		return "derby"
	}
	return "ansi"
}

// Name returns the name of the dialect the templates are made for.
func (t *Templates) Name() string { return t.name }

// Get returns the template of op.
func (t *Templates) Get(op querydsl.Operator) (Template, bool) {
	tmpl, ok := t.patterns[op]
	return tmpl, ok
}

// Set sets the template of op.
func (t *Templates) Set(op querydsl.Operator, tmpl Template) *Templates {
	t.patterns[op] = tmpl
	return t
}

// Clone returns a copy of t which can be modified independently.
func (t *Templates) Clone() *Templates {
	c := *t
	c.patterns = make(map[querydsl.Operator]Template, len(t.patterns))
	for op, tmpl := range t.patterns {
		c.patterns[op] = tmpl
	}
	return &c
}

// EscapeLike escapes the wildcards of s, so that it matches literally in a LIKE pattern.
func (t *Templates) EscapeLike(s string) string {
	if s == "" {
		return s
	}
	r := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '%', '_', t.escape[0]:
			r = append(r, t.escape[0], c)
		default:
			r = append(r, c)
		}
	}
	return string(r)
}
