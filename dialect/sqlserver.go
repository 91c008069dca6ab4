package dialect

import (
	"fmt"

	"github.com/qjebbs/go-sqlf/v4/dialect"
)

var _ Dialect = SQLServer{}

// SQLServer is the Microsoft SQL Server dialect.
type SQLServer struct {
	dialect.SQLServer
}

// Capabilities returns the capabilities of the SQLServer dialect.
func (SQLServer) Capabilities() Capabilities {
	return Capabilities{
		SupportsOutputInserted: true,
		SupportsInsertDefault:  true,
		SupportsUpdateFrom:     true,

		LimitStyle:             OffsetFetch,
		RequiresOrderForOffset: true,
		SupportsFullJoin:       true,
		SupportsRightJoin:      true,
	}
}

// CastType casts the given type to the dialect-specific type.
func (SQLServer) CastType(typ string) string {
	return fmt.Sprintf("CAST(? AS %s)", typ)
}
