package dialect

import (
	"fmt"

	"github.com/qjebbs/go-sqlf/v4/dialect"
)

var _ Dialect = AnsiSQL{}

// AnsiSQL is the ANSI SQL dialect.
type AnsiSQL struct {
	dialect.AnsiSQL
}

// Capabilities returns the capabilities of the ANSI SQL dialect.
func (AnsiSQL) Capabilities() Capabilities {
	return Capabilities{
		SupportsInsertDefault: true,

		LimitStyle:            OffsetFetch,
		SupportsNullsOrdering: true,
		SupportsFullJoin:      true,
		SupportsRightJoin:     true,
	}
}

// CastType casts the given type to the dialect-specific type.
func (AnsiSQL) CastType(typ string) string {
	return fmt.Sprintf("CAST(? AS %s)", typ)
}

var _ Dialect = Derby{}

// Derby is the Apache Derby dialect, ANSI SQL with Derby capabilities.
type Derby struct {
	dialect.AnsiSQL
}

// Capabilities returns the capabilities of the Derby dialect.
func (Derby) Capabilities() Capabilities {
	return Capabilities{
		SupportsInsertDefault: true,

		LimitStyle:            OffsetFetch,
		SupportsNullsOrdering: true,
		SupportsRightJoin:     true,
	}
}

// CastType casts the given type to the dialect-specific type.
func (Derby) CastType(typ string) string {
	return fmt.Sprintf("CAST(? AS %s)", typ)
}
