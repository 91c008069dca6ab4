package sqlq_test

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/ikonglong/querydsl/dialect"
	"github.com/ikonglong/querydsl/internal/testdomain"
	"github.com/ikonglong/querydsl/sqlq"
	"github.com/qjebbs/go-sqlf/v4"
)

func TestDMLBuild(t *testing.T) {
	var (
		e = testdomain.NewQEmployee("e")
		s = testdomain.NewQEmployee("s")
	)
	testCases := []struct {
		name      string
		dialect   dialect.Dialect
		builder   sqlf.Builder
		wantQuery string
		wantArgs  []any
	}{
		{
			name:    "insert values returning",
			dialect: dialect.PostgreSQL{},
			builder: sqlq.NewInsertClause(e).
				Columns(e.ID, e.FirstName).
				Values(1, "Jane").
				Values(2, "John").
				Returning(e.ID),
			wantQuery: `INSERT INTO "employee" ("id", "first_name") VALUES ($1, $2), ($3, $4) RETURNING "id"`,
			wantArgs:  []any{1, "Jane", 2, "John"},
		},
		{
			name:    "insert null",
			dialect: dialect.PostgreSQL{},
			builder: sqlq.NewInsertClause(e).
				Columns(e.ID, e.SuperiorID).
				Values(1, nil),
			wantQuery: `INSERT INTO "employee" ("id", "superior_id") VALUES ($1, NULL)`,
			wantArgs:  []any{1},
		},
		{
			name:    "insert set on conflict update",
			dialect: dialect.PostgreSQL{},
			builder: sqlq.NewInsertClause(e).
				Set(e.ID, 1).
				Set(e.FirstName, "Jane").
				OnConflict(e.ID).
				DoUpdateSet(e.FirstName, "Jane"),
			wantQuery: `INSERT INTO "employee" ("id", "first_name") VALUES ($1, $2) ON CONFLICT ("id") DO UPDATE SET "first_name" = $2`,
			wantArgs:  []any{1, "Jane"},
		},
		{
			name:    "insert on conflict do nothing",
			dialect: dialect.PostgreSQL{},
			builder: sqlq.NewInsertClause(e).
				Set(e.ID, 1).
				OnConflict(e.ID),
			wantQuery: `INSERT INTO "employee" ("id") VALUES ($1) ON CONFLICT ("id") DO NOTHING`,
			wantArgs:  []any{1},
		},
		{
			name:    "insert select",
			dialect: dialect.PostgreSQL{},
			builder: sqlq.NewInsertClause(e).
				Columns(e.ID, e.FirstName).
				Select(sqlq.NewSubQuery().
					From(s).
					Where(s.Salary.Gt(10)).
					List(s.ID, s.FirstName),
				),
			wantQuery: `INSERT INTO "employee" ("id", "first_name") SELECT "s"."id", "s"."first_name" FROM "employee" AS "s" WHERE "s"."salary" > $1`,
			wantArgs:  []any{float64(10)},
		},
		{
			name:    "insert on duplicate key update",
			dialect: dialect.MySQL{},
			builder: sqlq.NewInsertClause(e).
				Columns(e.ID, e.FirstName).
				Values(1, "Jane").
				OnConflict(e.ID).
				DoUpdateSet(e.FirstName, "Jane"),
			wantQuery: "INSERT INTO `employee` (`id`, `first_name`) VALUES (?, ?) ON DUPLICATE KEY UPDATE `first_name` = ?",
			wantArgs:  []any{1, "Jane", "Jane"},
		},
		{
			name:    "update",
			dialect: dialect.PostgreSQL{},
			builder: sqlq.NewUpdateClause(e).
				Set(e.Salary, e.Salary.Multiply(1.1)).
				SetNull(e.SuperiorID).
				Where(e.ID.Eq(1)),
			wantQuery: `UPDATE "employee" SET "salary" = "salary" * $1, "superior_id" = NULL WHERE "id" = $2`,
			wantArgs:  []any{1.1, int64(1)},
		},
		{
			name:    "update limit",
			dialect: dialect.MySQL{},
			builder: sqlq.NewUpdateClause(e).
				Set(e.FirstName, "Jane").
				Where(e.ID.Eq(1)).
				Limit(1),
			wantQuery: "UPDATE `employee` SET `first_name` = ? WHERE `id` = ? LIMIT 1",
			wantArgs:  []any{"Jane", int64(1)},
		},
		{
			name:    "update with subquery",
			dialect: dialect.PostgreSQL{},
			builder: sqlq.NewUpdateClause(e).
				Set(e.Salary, 0.0).
				Where(sqlq.NewSubQuery().From(s).Where(s.ID.EqExpr(e.SuperiorID), s.FirstName.Eq("Mike")).Exists()),
			wantQuery: `UPDATE "employee" SET "salary" = $1 WHERE EXISTS (SELECT 1 FROM "employee" AS "s" WHERE "s"."id" = "superior_id" AND "s"."first_name" = $2)`,
			wantArgs:  []any{0.0, "Mike"},
		},
		{
			name:    "insert default",
			dialect: dialect.PostgreSQL{},
			builder: sqlq.NewInsertClause(e).
				Columns(e.ID, e.FirstName).
				Values(1, sqlq.Default),
			wantQuery: `INSERT INTO "employee" ("id", "first_name") VALUES ($1, DEFAULT)`,
			wantArgs:  []any{1},
		},
		{
			name:    "update from",
			dialect: dialect.PostgreSQL{},
			builder: sqlq.NewUpdateClause(e).
				Set(e.Salary, s.Salary).
				From(s).
				Where(s.ID.EqExpr(e.SuperiorID), e.ID.Eq(4)),
			wantQuery: `UPDATE "employee" AS "e" SET "salary" = "s"."salary" FROM "employee" AS "s" WHERE "s"."id" = "e"."superior_id" AND "e"."id" = $1`,
			wantArgs:  []any{int64(4)},
		},
		{
			name:    "update from sqlserver",
			dialect: dialect.SQLServer{},
			builder: sqlq.NewUpdateClause(e).
				Set(e.Salary, s.Salary).
				From(s).
				Where(s.ID.EqExpr(e.SuperiorID)),
			wantQuery: `UPDATE [e] SET [salary] = [s].[salary] FROM [employee] AS [e], [employee] AS [s] WHERE [s].[id] = [e].[superior_id]`,
		},
		{
			name:      "delete",
			dialect:   dialect.PostgreSQL{},
			builder:   sqlq.NewDeleteClause(e).Where(e.FirstName.Eq("Jane")),
			wantQuery: `DELETE FROM "employee" WHERE "first_name" = $1`,
			wantArgs:  []any{"Jane"},
		},
		{
			name:      "delete all",
			dialect:   dialect.PostgreSQL{},
			builder:   sqlq.NewDeleteClause(e),
			wantQuery: `DELETE FROM "employee"`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := sqlq.NewContext(context.Background(), tc.dialect)
			gotQuery, gotArgs, err := sqlq.Build(ctx, tc.builder)
			if err != nil {
				t.Fatal(err)
			}
			if gotQuery != tc.wantQuery {
				t.Errorf("got:\n%s\nwant:\n%s", gotQuery, tc.wantQuery)
			}
			if len(gotArgs) == 0 && len(tc.wantArgs) == 0 {
				return
			}
			if !reflect.DeepEqual(gotArgs, tc.wantArgs) {
				t.Errorf("got args:\n%v\nwant:\n%v", gotArgs, tc.wantArgs)
			}
		})
	}
}

func TestInsertOutputInserted(t *testing.T) {
	e := testdomain.NewQEmployee("e")
	b := sqlq.NewInsertClause(e).
		Columns(e.FirstName).
		Values("Jane").
		Returning(e.ID)
	got, _, err := b.Build(sqlq.NewContext(context.Background(), dialect.SQLServer{}))
	if err != nil {
		t.Fatal(err)
	}
	output := strings.Index(got, "OUTPUT INSERTED.")
	values := strings.Index(got, "VALUES")
	if output < 0 || values < 0 || output > values {
		t.Errorf("want OUTPUT INSERTED before VALUES, got %q", got)
	}
	if strings.Contains(got, "RETURNING") {
		t.Errorf("unexpected RETURNING in %q", got)
	}
}

func TestDMLBuildErrors(t *testing.T) {
	var (
		e = testdomain.NewQEmployee("e")
		v = testdomain.NewQSurvey("v")
	)
	testCases := []struct {
		name    string
		dialect dialect.Dialect
		builder sqlf.Builder
	}{
		{
			name:    "column of another table",
			dialect: dialect.PostgreSQL{},
			builder: sqlq.NewInsertClause(e).Set(v.Name, "x"),
		},
		{
			name:    "set mixed with values",
			dialect: dialect.PostgreSQL{},
			builder: sqlq.NewInsertClause(e).Columns(e.ID).Values(1).Values(2).Set(e.FirstName, "x"),
		},
		{
			name:    "values length",
			dialect: dialect.PostgreSQL{},
			builder: sqlq.NewInsertClause(e).Columns(e.ID, e.FirstName).Values(1),
		},
		{
			name:    "no values",
			dialect: dialect.PostgreSQL{},
			builder: sqlq.NewInsertClause(e).Columns(e.ID),
		},
		{
			name:    "returning",
			dialect: dialect.MySQL{},
			builder: sqlq.NewInsertClause(e).Set(e.ID, 1).Returning(e.ID),
		},
		{
			name:    "on duplicate key without update",
			dialect: dialect.MySQL{},
			builder: sqlq.NewInsertClause(e).Set(e.ID, 1).OnConflict(e.ID),
		},
		{
			name:    "on conflict",
			dialect: dialect.SQLServer{},
			builder: sqlq.NewInsertClause(e).Set(e.ID, 1).OnConflict(e.ID),
		},
		{
			name:    "update nothing",
			dialect: dialect.PostgreSQL{},
			builder: sqlq.NewUpdateClause(e).Where(e.ID.Eq(1)),
		},
		{
			name:    "update limit",
			dialect: dialect.SQLite{},
			builder: sqlq.NewUpdateClause(e).Set(e.ID, 1).Limit(1),
		},
		{
			name:    "do update set without conflict columns",
			dialect: dialect.PostgreSQL{},
			builder: sqlq.NewInsertClause(e).Set(e.ID, 1).DoUpdateSet(e.FirstName, "Jane"),
		},
		{
			name:    "insert default",
			dialect: dialect.SQLite{},
			builder: sqlq.NewInsertClause(e).Columns(e.ID, e.FirstName).Values(1, sqlq.Default),
		},
		{
			name:    "update from",
			dialect: dialect.MySQL{},
			builder: sqlq.NewUpdateClause(e).Set(e.Salary, v.ID).From(v).Where(v.ID.EqExpr(e.ID)),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := sqlq.NewContext(context.Background(), tc.dialect)
			if _, _, err := sqlq.Build(ctx, tc.builder); err == nil {
				t.Error("want error, got nil")
			}
		})
	}
}
