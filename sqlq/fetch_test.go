package sqlq_test

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ikonglong/querydsl"
	"github.com/ikonglong/querydsl/dialect"
	"github.com/ikonglong/querydsl/internal/testdomain"
	"github.com/ikonglong/querydsl/sqlq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const selectEmployees = `SELECT "e"."id", "e"."first_name", "e"."last_name", "e"."salary" FROM "employee" AS "e"`

var employeeColumns = []string{"id", "first_name", "last_name", "salary"}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func employeeQuery(e *testdomain.QEmployee) *sqlq.Query {
	return sqlq.NewQuery().
		Select(e.ID, e.FirstName, e.LastName, e.Salary).
		From(e)
}

func TestFetch(t *testing.T) {
	db, mock := newMock(t)
	e := testdomain.NewQEmployee("e")
	mock.ExpectQuery(selectEmployees+` WHERE "e"."salary" > $1`).
		WithArgs(float64(1000)).
		WillReturnRows(sqlmock.NewRows(employeeColumns).
			AddRow(int64(1), "Jane", "Doe", 2000.0).
			AddRow(int64(2), "John", "Doe", 3000.0),
		)

	ctx := sqlq.NewContext(context.Background(), dialect.PostgreSQL{})
	got, err := sqlq.Fetch(ctx, db, employeeQuery(e).Where(e.Salary.Gt(1000)), testdomain.NewEmployee)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Jane", got[0].FirstName)
	assert.Equal(t, 3000.0, got[1].Salary)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchSurplusColumns(t *testing.T) {
	db, mock := newMock(t)
	e := testdomain.NewQEmployee("e")
	mock.ExpectQuery(`SELECT "e"."id", "e"."first_name" FROM "employee" AS "e"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name"}).AddRow(int64(1), "Jane"))

	ctx := sqlq.NewContext(context.Background(), dialect.PostgreSQL{})
	q := sqlq.NewQuery().Select(e.ID, e.FirstName).From(e)
	got, err := sqlq.Fetch(ctx, db, q, func() (int64, []any) {
		var id int64
		return id, []any{&id}
	})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchOne(t *testing.T) {
	e := testdomain.NewQEmployee("e")
	ctx := sqlq.NewContext(context.Background(), dialect.PostgreSQL{})
	query := selectEmployees + ` WHERE "e"."id" = $1 LIMIT 2`

	t.Run("one", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(query).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(employeeColumns).AddRow(int64(1), "Jane", "Doe", 2000.0))
		got, err := sqlq.FetchOne(ctx, db, employeeQuery(e).Where(e.ID.Eq(1)), testdomain.NewEmployee)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})
	t.Run("none", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(query).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(employeeColumns))
		_, err := sqlq.FetchOne(ctx, db, employeeQuery(e).Where(e.ID.Eq(1)), testdomain.NewEmployee)
		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.True(t, errors.Is(err, querydsl.ErrNoResult))
		require.NoError(t, mock.ExpectationsWereMet())
	})
	t.Run("non unique", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(query).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(employeeColumns).
				AddRow(int64(1), "Jane", "Doe", 2000.0).
				AddRow(int64(1), "John", "Doe", 3000.0),
			)
		_, err := sqlq.FetchOne(ctx, db, employeeQuery(e).Where(e.ID.Eq(1)), testdomain.NewEmployee)
		assert.ErrorIs(t, err, querydsl.ErrNonUniqueResult)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFetchFirst(t *testing.T) {
	db, mock := newMock(t)
	e := testdomain.NewQEmployee("e")
	mock.ExpectQuery(selectEmployees + ` ORDER BY "e"."salary" DESC LIMIT 1`).
		WillReturnRows(sqlmock.NewRows(employeeColumns).AddRow(int64(2), "John", "Doe", 3000.0))

	ctx := sqlq.NewContext(context.Background(), dialect.PostgreSQL{})
	q := employeeQuery(e).OrderBy(e.Salary.Desc())
	got, err := sqlq.FetchFirst(ctx, db, q, testdomain.NewEmployee)
	require.NoError(t, err)
	assert.Equal(t, "John", got.FirstName)
	// the query itself is not modified
	assert.Zero(t, q.Metadata().Modifiers().Limit)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchCount(t *testing.T) {
	db, mock := newMock(t)
	e := testdomain.NewQEmployee("e")
	mock.ExpectQuery(`SELECT COUNT(*) FROM "employee" AS "e" WHERE "e"."last_name" = $1`).
		WithArgs("Doe").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(42)))

	ctx := sqlq.NewContext(context.Background(), dialect.PostgreSQL{})
	got, err := sqlq.FetchCount(ctx, db, employeeQuery(e).Where(e.LastName.Eq("Doe")).Limit(10))
	require.NoError(t, err)
	assert.Equal(t, int64(42), got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchResults(t *testing.T) {
	db, mock := newMock(t)
	mock.MatchExpectationsInOrder(false)
	e := testdomain.NewQEmployee("e")
	mock.ExpectQuery(`SELECT COUNT(*) FROM "employee" AS "e" WHERE "e"."last_name" = $1`).
		WithArgs("Doe").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))
	mock.ExpectQuery(selectEmployees+` WHERE "e"."last_name" = $1 LIMIT 2 OFFSET 2`).
		WithArgs("Doe").
		WillReturnRows(sqlmock.NewRows(employeeColumns).AddRow(int64(3), "Jim", "Doe", 1000.0))

	ctx := sqlq.NewContext(context.Background(), dialect.PostgreSQL{})
	q := employeeQuery(e).Where(e.LastName.Eq("Doe")).Restrict(querydsl.QueryModifiers{Limit: 2, Offset: 2})
	got, err := sqlq.FetchResults(ctx, db, q, testdomain.NewEmployee)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Total)
	assert.Equal(t, int64(2), got.Limit)
	assert.Equal(t, int64(2), got.Offset)
	require.Len(t, got.Results, 1)
	assert.Equal(t, "Jim", got.Results[0].FirstName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIterate(t *testing.T) {
	db, mock := newMock(t)
	e := testdomain.NewQEmployee("e")
	mock.ExpectQuery(selectEmployees).
		WillReturnRows(sqlmock.NewRows(employeeColumns).
			AddRow(int64(1), "Jane", "Doe", 2000.0).
			AddRow(int64(2), "John", "Doe", 3000.0),
		)

	ctx := sqlq.NewContext(context.Background(), dialect.PostgreSQL{})
	it, err := sqlq.Iterate(ctx, db, employeeQuery(e), testdomain.NewEmployee)
	require.NoError(t, err)
	var names []string
	for it.Next() {
		names = append(names, it.Value().FirstName)
	}
	require.NoError(t, it.Err())
	require.NoError(t, it.Close())
	assert.Equal(t, []string{"Jane", "John"}, names)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExec(t *testing.T) {
	db, mock := newMock(t)
	e := testdomain.NewQEmployee("e")
	mock.ExpectExec(`UPDATE "employee" SET "salary" = $1 WHERE "id" = $2`).
		WithArgs(float64(100), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "employee" WHERE "id" = $1`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx := sqlq.NewContext(context.Background(), dialect.PostgreSQL{})
	r, err := sqlq.NewUpdateClause(e).Set(e.Salary, 100.0).Where(e.ID.Eq(1)).Execute(ctx, db)
	require.NoError(t, err)
	n, err := r.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = sqlq.NewDeleteClause(e).Where(e.ID.Eq(1)).Execute(ctx, db)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchDebug(t *testing.T) {
	db, mock := newMock(t)
	e := testdomain.NewQEmployee("e")
	mock.ExpectQuery(selectEmployees+` WHERE "e"."id" = $1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(employeeColumns))

	buf := new(bytes.Buffer)
	logger := slog.New(slog.NewTextHandler(buf, nil))
	ctx := sqlq.NewContext(context.Background(), dialect.PostgreSQL{})
	_, err := sqlq.Fetch(ctx, db, employeeQuery(e).Where(e.ID.Eq(1)), testdomain.NewEmployee,
		sqlq.WithDebug(), sqlq.WithMeasureTime(), sqlq.WithLogger(logger),
	)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "query executed")
	assert.Contains(t, buf.String(), "Fetch(*testdomain.Employee)")
	assert.Contains(t, buf.String(), `WHERE \"e\".\"id\" = 1`)
	assert.NotContains(t, buf.String(), "$1")
	assert.Contains(t, buf.String(), "exec=")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchErrors(t *testing.T) {
	e := testdomain.NewQEmployee("e")
	ctx := sqlq.NewContext(context.Background(), dialect.PostgreSQL{})

	_, err := sqlq.Fetch(ctx, nil, employeeQuery(e), testdomain.NewEmployee)
	assert.ErrorIs(t, err, sqlq.ErrNilDB)

	db, _ := newMock(t)
	_, err = sqlq.Fetch(ctx, db, sqlq.NewQuery().From(e), testdomain.NewEmployee)
	assert.ErrorIs(t, err, sqlq.ErrNoProjection)
}
