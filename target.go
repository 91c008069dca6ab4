package querydsl

import (
	"fmt"
	"strings"
)

// Target is a query backend, used to select dialects and test modes.
type Target int

// targets
const (
	TargetUnknown Target = iota
	TargetDerby
	TargetH2
	TargetHSQLDB
	TargetMySQL
	TargetPostgreSQL
	TargetSQLite
	TargetOracle
	TargetSQLServer
	TargetMongoDB
)

var targetNames = map[Target]string{
	TargetDerby:      "derby",
	TargetH2:         "h2",
	TargetHSQLDB:     "hsqldb",
	TargetMySQL:      "mysql",
	TargetPostgreSQL: "postgres",
	TargetSQLite:     "sqlite",
	TargetOracle:     "oracle",
	TargetSQLServer:  "sqlserver",
	TargetMongoDB:    "mongodb",
}

// String returns the lower case name of the target.
func (t Target) String() string {
	if n, ok := targetNames[t]; ok {
		return n
	}
	return "unknown"
}

// ParseTarget parses a target name, case insensitive.
// "postgresql" and "sqlite3" are accepted as aliases.
func ParseTarget(s string) (Target, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "postgresql", "pg":
		return TargetPostgreSQL, nil
	case "sqlite3":
		return TargetSQLite, nil
	case "mssql":
		return TargetSQLServer, nil
	case "mongo":
		return TargetMongoDB, nil
	}
	for t, n := range targetNames {
		if n == name {
			return t, nil
		}
	}
	return TargetUnknown, fmt.Errorf("unknown target %q", s)
}
