package dialect

import (
	"fmt"

	"github.com/ikonglong/querydsl"
	"github.com/qjebbs/go-sqlf/v4/dialect"
)

// Dialect extends dialect.Dialect with additional capabilities.
type Dialect interface {
	dialect.Dialect

	// Capabilities returns the SQL capabilities of the dialect.
	Capabilities() Capabilities

	// CastType casts the given type to the dialect-specific type.
	// Exactly one placeholder "?" is expected in the returned string,
	// which will be replaced with the value to be casted.
	//
	// For example,
	//   PostgreSQL.CastType("TEXT") // "?::TEXT"
	//   SQLite.CastType("TEXT")     // "CAST(? AS TEXT)"
	CastType(typ string) string
}

// LimitStyle is the syntax of row limiting.
type LimitStyle int

// limit styles
const (
	// LimitOffset renders "LIMIT n OFFSET m".
	LimitOffset LimitStyle = iota
	// OffsetFetch renders "OFFSET m ROWS FETCH NEXT n ROWS ONLY".
	OffsetFetch
)

// Capabilities represents the SQL capabilities of a dialect.
type Capabilities struct {
	// SupportsReturning indicates whether the dialect supports RETURNING clause.
	SupportsReturning bool
	// SupportsOutputInserted indicates whether the dialect supports OUTPUT clause.
	SupportsOutputInserted bool

	// SupportsInsertDefault indicates whether the dialect supports DEFAULT keyword in INSERT statements.
	SupportsInsertDefault bool
	// SupportsOnConflict indicates whether the dialect supports CONFLICT clause.
	SupportsOnConflict bool
	// SupportsOnDuplicateKeyUpdate indicates whether the dialect supports ON DUPLICATE KEY UPDATE clause.
	SupportsOnDuplicateKeyUpdate bool

	// SupportsUpdateFrom indicates whether the dialect supports FROM clause in UPDATE statements.
	//
	// For example (PostgreSQL),
	//   UPDATE foo SET val = bar.val FROM bar WHERE foo.id = bar.id
	SupportsUpdateFrom bool
	// SupportsDeleteLimit indicates whether the dialect supports LIMIT in UPDATE and DELETE statements.
	SupportsDeleteLimit bool

	// LimitStyle is the row limiting syntax of SELECT statements.
	LimitStyle LimitStyle
	// RequiresOrderForOffset indicates whether OFFSET ... FETCH needs an ORDER BY clause,
	// in which case "ORDER BY (SELECT NULL)" is rendered when the query has none.
	RequiresOrderForOffset bool
	// SupportsNullsOrdering indicates whether NULLS FIRST / NULLS LAST is supported in ORDER BY.
	SupportsNullsOrdering bool
	// SupportsFullJoin indicates whether FULL JOIN is supported.
	SupportsFullJoin bool
	// SupportsRightJoin indicates whether RIGHT JOIN is supported.
	SupportsRightJoin bool
	// RegexpOperator is the infix regular expression match operator, e.g. "~" or "REGEXP".
	// Empty if the dialect has none.
	RegexpOperator string
	// SupportsILike indicates whether the dialect has a case insensitive ILIKE operator.
	SupportsILike bool
}

// Upgrade attempts to upgrade a sqlf/dialect.Dialect to a querydsl/dialect.Dialect.
func Upgrade(d dialect.Dialect) (Dialect, bool) {
	if dialect, ok := d.(Dialect); ok {
		return dialect, true
	}
	switch v := d.(type) {
	case dialect.PostgreSQL:
		return PostgreSQL{
			PostgreSQL: v,
		}, true
	case dialect.SQLite:
		return SQLite{
			SQLite: v,
		}, true
	case dialect.Oracle:
		return Oracle{
			Oracle: v,
		}, true
	case dialect.SQLServer:
		return SQLServer{
			SQLServer: v,
		}, true
	case dialect.AnsiSQL:
		return AnsiSQL{
			AnsiSQL: v,
		}, true
	case dialect.MySQL:
		return MySQL{
			MySQL: v,
		}, true
	}
	return nil, false
}

// ForTarget returns the dialect of a relational target.
func ForTarget(t querydsl.Target) (Dialect, error) {
	switch t {
	case querydsl.TargetDerby:
		return Derby{}, nil
	case querydsl.TargetH2, querydsl.TargetHSQLDB:
		return AnsiSQL{}, nil
	case querydsl.TargetMySQL:
		return MySQL{}, nil
	case querydsl.TargetPostgreSQL:
		return PostgreSQL{}, nil
	case querydsl.TargetSQLite:
		return SQLite{}, nil
	case querydsl.TargetOracle:
		return Oracle{}, nil
	case querydsl.TargetSQLServer:
		return SQLServer{}, nil
	}
	return nil, fmt.Errorf("no SQL dialect for target %s", t)
}
