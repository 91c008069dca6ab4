package dialect

import (
	"github.com/qjebbs/go-sqlf/v4/dialect"
)

var _ Dialect = PostgreSQL{}

// PostgreSQL is the PostgreSQL dialect.
type PostgreSQL struct {
	dialect.PostgreSQL
}

// Capabilities returns the capabilities of the PostgreSQL dialect.
func (PostgreSQL) Capabilities() Capabilities {
	return Capabilities{
		SupportsReturning:     true,
		SupportsInsertDefault: true,
		SupportsOnConflict:    true,
		SupportsUpdateFrom:    true,

		LimitStyle:            LimitOffset,
		SupportsNullsOrdering: true,
		SupportsFullJoin:      true,
		SupportsRightJoin:     true,
		RegexpOperator:        "~",
		SupportsILike:         true,
	}
}

// CastType casts the given type to the dialect-specific type.
func (PostgreSQL) CastType(typ string) string {
	return "?::" + typ
}
