package dialect

import (
	"fmt"

	"github.com/qjebbs/go-sqlf/v4/dialect"
)

var _ Dialect = SQLite{}

// SQLite is the SQLite dialect.
type SQLite struct {
	dialect.SQLite
}

// Capabilities returns the capabilities of the SQLite dialect.
func (SQLite) Capabilities() Capabilities {
	return Capabilities{
		SupportsReturning:  true,
		SupportsOnConflict: true,
		SupportsUpdateFrom: true,

		LimitStyle:            LimitOffset,
		SupportsNullsOrdering: true,
		SupportsFullJoin:      true,
		SupportsRightJoin:     true,
		RegexpOperator:        "REGEXP",
	}
}

// CastType casts the given type to the dialect-specific type.
func (SQLite) CastType(typ string) string {
	return fmt.Sprintf("CAST(? AS %s)", typ)
}
