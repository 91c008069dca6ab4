package sqlq_test

import (
	"context"
	"fmt"

	"github.com/ikonglong/querydsl/dialect"
	"github.com/ikonglong/querydsl/internal/testdomain"
	"github.com/ikonglong/querydsl/sqlq"
)

func ExampleQuery() {
	var (
		e = testdomain.NewQEmployee("e")
		s = testdomain.NewQEmployee("s")
	)
	q := sqlq.NewQuery().
		Select(e.FirstName, s.FirstName.As("superior")).
		From(e).
		LeftJoin(s).On(e.SuperiorID.EqExpr(s.ID)).
		Where(e.LastName.Eq("Doe"), e.Salary.Between(1000, 3000)).
		OrderBy(e.FirstName.Asc()).
		Limit(10)
	query, args, err := q.Build(sqlq.NewContext(context.Background(), dialect.PostgreSQL{}))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(query)
	fmt.Println(args)
	// Output:
	// SELECT "e"."first_name", "s"."first_name" AS "superior" FROM "employee" AS "e" LEFT JOIN "employee" AS "s" ON "e"."superior_id" = "s"."id" WHERE "e"."last_name" = $1 AND "e"."salary" BETWEEN $2 AND $3 ORDER BY "e"."first_name" ASC LIMIT 10
	// [Doe 1000 3000]
}

func ExampleQuery_CountBuilder() {
	e := testdomain.NewQEmployee("e")
	q := sqlq.NewQuery().
		Select(e.LastName).
		From(e).
		Distinct().
		Limit(10)
	query, _, err := sqlq.Build(
		sqlq.NewContext(context.Background(), dialect.PostgreSQL{}),
		q.CountBuilder(),
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(query)
	// Output:
	// SELECT COUNT(*) FROM (SELECT DISTINCT "e"."last_name" FROM "employee" AS "e") AS "q"
}

func ExampleInsertClause() {
	e := testdomain.NewQEmployee("e")
	b := sqlq.NewInsertClause(e).
		Columns(e.FirstName, e.LastName).
		Values("Jane", "Doe").
		Values("John", "Doe").
		Returning(e.ID)
	query, args, err := b.Build(sqlq.NewContext(context.Background(), dialect.PostgreSQL{}))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(query)
	fmt.Println(args)
	// Output:
	// INSERT INTO "employee" ("first_name", "last_name") VALUES ($1, $2), ($3, $2) RETURNING "id"
	// [Jane Doe John]
}
