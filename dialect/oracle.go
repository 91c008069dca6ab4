package dialect

import (
	"fmt"

	"github.com/qjebbs/go-sqlf/v4/dialect"
)

var _ Dialect = Oracle{}

// Oracle is the Oracle dialect.
type Oracle struct {
	dialect.Oracle
}

// Capabilities returns the capabilities of the Oracle dialect.
func (Oracle) Capabilities() Capabilities {
	return Capabilities{
		SupportsReturning:     true,
		SupportsInsertDefault: true,

		LimitStyle:            OffsetFetch,
		SupportsNullsOrdering: true,
		SupportsFullJoin:      true,
		SupportsRightJoin:     true,
	}
}

// CastType casts the given type to the dialect-specific type.
func (Oracle) CastType(typ string) string {
	return fmt.Sprintf("CAST(? AS %s)", typ)
}
