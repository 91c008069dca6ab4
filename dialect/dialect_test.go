package dialect_test

import (
	"reflect"
	"testing"

	"github.com/ikonglong/querydsl"
	"github.com/ikonglong/querydsl/dialect"
	sqlfdialect "github.com/qjebbs/go-sqlf/v4/dialect"
)

func TestForTarget(t *testing.T) {
	testCases := []struct {
		target querydsl.Target
		want   dialect.Dialect
	}{
		{querydsl.TargetPostgreSQL, dialect.PostgreSQL{}},
		{querydsl.TargetMySQL, dialect.MySQL{}},
		{querydsl.TargetSQLite, dialect.SQLite{}},
		{querydsl.TargetSQLServer, dialect.SQLServer{}},
		{querydsl.TargetOracle, dialect.Oracle{}},
		{querydsl.TargetDerby, dialect.Derby{}},
		{querydsl.TargetH2, dialect.AnsiSQL{}},
		{querydsl.TargetHSQLDB, dialect.AnsiSQL{}},
	}
	for _, tc := range testCases {
		got, err := dialect.ForTarget(tc.target)
		if err != nil {
			t.Fatalf("%s: %v", tc.target, err)
		}
		if reflect.TypeOf(got) != reflect.TypeOf(tc.want) {
			t.Errorf("%s: got %T, want %T", tc.target, got, tc.want)
		}
	}
	if _, err := dialect.ForTarget(querydsl.TargetMongoDB); err == nil {
		t.Error("want error for mongodb target")
	}
}

func TestUpgrade(t *testing.T) {
	testCases := []struct {
		in   sqlfdialect.Dialect
		want dialect.Dialect
	}{
		{sqlfdialect.PostgreSQL{}, dialect.PostgreSQL{}},
		{sqlfdialect.MySQL{}, dialect.MySQL{}},
		{sqlfdialect.SQLite{}, dialect.SQLite{}},
		{sqlfdialect.SQLServer{}, dialect.SQLServer{}},
		{sqlfdialect.Oracle{}, dialect.Oracle{}},
		{sqlfdialect.AnsiSQL{}, dialect.AnsiSQL{}},
		{dialect.Derby{}, dialect.Derby{}},
	}
	for _, tc := range testCases {
		got, ok := dialect.Upgrade(tc.in)
		if !ok {
			t.Fatalf("%T: not upgraded", tc.in)
		}
		if reflect.TypeOf(got) != reflect.TypeOf(tc.want) {
			t.Errorf("%T: got %T, want %T", tc.in, got, tc.want)
		}
	}
}

func TestCapabilities(t *testing.T) {
	pg := dialect.PostgreSQL{}.Capabilities()
	if !pg.SupportsReturning || !pg.SupportsOnConflict || pg.LimitStyle != dialect.LimitOffset {
		t.Errorf("unexpected postgres capabilities: %+v", pg)
	}
	my := dialect.MySQL{}.Capabilities()
	if my.SupportsFullJoin || my.SupportsNullsOrdering || !my.SupportsOnDuplicateKeyUpdate || !my.SupportsDeleteLimit {
		t.Errorf("unexpected mysql capabilities: %+v", my)
	}
	ms := dialect.SQLServer{}.Capabilities()
	if ms.LimitStyle != dialect.OffsetFetch || !ms.RequiresOrderForOffset || !ms.SupportsOutputInserted {
		t.Errorf("unexpected sqlserver capabilities: %+v", ms)
	}
	lite := dialect.SQLite{}.Capabilities()
	if lite.SupportsInsertDefault || !lite.SupportsUpdateFrom || !lite.SupportsOnConflict {
		t.Errorf("unexpected sqlite capabilities: %+v", lite)
	}
	derby := dialect.Derby{}.Capabilities()
	if derby.SupportsFullJoin || derby.RegexpOperator != "" {
		t.Errorf("unexpected derby capabilities: %+v", derby)
	}
}

func TestCastType(t *testing.T) {
	if got, want := (dialect.PostgreSQL{}).CastType("TEXT"), "?::TEXT"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := (dialect.SQLite{}).CastType("TEXT"), "CAST(? AS TEXT)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
