package querydoc_test

import (
	"context"
	"strings"
	"testing"

	"github.com/ikonglong/querydsl/dialect"
	"github.com/ikonglong/querydsl/internal/querydoc"
	"github.com/ikonglong/querydsl/sqlq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const employeeDoc = `
name: doe family
from: {table: employee, alias: e}
joins:
  - type: left
    table: employee
    alias: s
    on:
      - {path: e.superior_id, op: eq, ref: s.id}
select: [e.first_name, s.first_name]
where:
  - {path: e.last_name, op: eq, value: Doe}
  - any:
      - {path: e.salary, op: gt, value: 1000}
      - {path: e.first_name, op: startsWith, value: J}
orderBy:
  - {path: e.first_name}
  - {path: e.salary, desc: true, nulls: last}
limit: 10
`

func TestSQLQuery(t *testing.T) {
	d, err := querydoc.Unmarshal([]byte(employeeDoc))
	require.NoError(t, err)
	assert.Equal(t, "doe family", d.Name)
	assert.False(t, d.IsCollection())

	q, err := d.SQLQuery()
	require.NoError(t, err)
	query, args, err := q.Build(sqlq.NewContext(context.Background(), dialect.PostgreSQL{}))
	require.NoError(t, err)
	assert.Equal(t,
		`SELECT "e"."first_name", "s"."first_name" FROM "employee" AS "e" `+
			`LEFT JOIN "employee" AS "s" ON "e"."superior_id" = "s"."id" `+
			`WHERE "e"."last_name" = $1 AND ("e"."salary" > $2 OR "e"."first_name" LIKE $3 ESCAPE '\') `+
			`ORDER BY "e"."first_name" ASC, "e"."salary" DESC NULLS LAST LIMIT 10`,
		query,
	)
	assert.Equal(t, []any{"Doe", 1000, "J%"}, args)
}

func TestSQLQueryDefaults(t *testing.T) {
	d, err := querydoc.Unmarshal([]byte(`
from: {table: employee}
where:
  - not: {path: employee.superior_id, op: isNull}
  - {path: employee.id, op: in, values: [1, 2]}
groupBy: [employee.last_name]
distinct: true
offset: 5
`))
	require.NoError(t, err)
	q, err := d.SQLQuery()
	require.NoError(t, err)
	query, args, err := q.Build(sqlq.NewContext(context.Background(), dialect.PostgreSQL{}))
	require.NoError(t, err)
	assert.Equal(t,
		`SELECT DISTINCT "employee".* FROM "employee" `+
			`WHERE "employee"."superior_id" IS NOT NULL AND "employee"."id" IN ($1, $2) `+
			`GROUP BY "employee"."last_name" OFFSET 5`,
		query,
	)
	assert.Equal(t, []any{1, 2}, args)
}

func TestMongoQuery(t *testing.T) {
	d, err := querydoc.Unmarshal([]byte(`
from: {collection: users}
select: [user.firstName]
where:
  - {path: user.age, op: between, values: [20, 30]}
  - {path: user.addresses.0.street, op: eq, value: Aakatu}
anyEmbedded:
  - path: user.friends
    alias: f
    on:
      - {path: f.name, op: startsWith, value: M}
orderBy:
  - {path: user.age, desc: true}
limit: 5
`))
	require.NoError(t, err)
	assert.True(t, d.IsCollection())

	q, err := d.MongoQuery(nil)
	require.NoError(t, err)
	assert.Equal(t,
		`{"age":{"$gte":20,"$lte":30},"addresses.0.street":"Aakatu",`+
			`"friends":{"$elemMatch":{"name":{"$regularExpression":{"pattern":"^M","options":""}}}}}`,
		q.String(),
	)
	assert.Equal(t, int64(5), q.Metadata().Modifiers().Limit)

	keys, err := d.Keys()
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Equal(t, "user.firstName", keys[0].String())
}

func TestConditionOperators(t *testing.T) {
	testCases := []struct {
		cond querydoc.Condition
		want string
	}{
		{querydoc.Condition{Path: "u.name", Op: "ne", Value: "a"}, "u.name != a"},
		{querydoc.Condition{Path: "u.age", Op: "loe", Ref: "u.limit"}, "u.age <= u.limit"},
		{querydoc.Condition{Path: "u.name", Op: "isEmpty"}, "empty(u.name)"},
		{
			querydoc.Condition{All: []querydoc.Condition{
				{Path: "u.a", Op: "eq", Value: 1},
				{Path: "u.b", Op: "eq", Value: 2},
			}},
			"u.a = 1 && u.b = 2",
		},
	}
	for _, tc := range testCases {
		got, err := tc.cond.Predicate()
		require.NoError(t, err)
		assert.Equal(t, tc.want, got.String())
	}
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
		want string
	}{
		{"empty", ``, "empty query document"},
		{"no source", `limit: 1`, "table or collection required"},
		{"both sources", `from: {table: a, collection: b}`, "exclusive"},
		{"unknown field", "from: {table: a}\nwhere2: []", "field where2 not found"},
		{"negative limit", "from: {table: a}\nlimit: -1", "must not be negative"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := querydoc.Parse(strings.NewReader(tc.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestBuildErrors(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
	}{
		{"unknown operator", "from: {table: a}\nwhere:\n  - {path: a.x, op: near, value: 1}"},
		{"between arity", "from: {table: a}\nwhere:\n  - {path: a.x, op: between, values: [1]}"},
		{"invalid path", "from: {table: a}\nwhere:\n  - {path: a..x, op: eq, value: 1}"},
		{"mixed group", "from: {table: a}\nwhere:\n  - {path: a.x, any: [{path: a.y, op: eq, value: 1}]}"},
		{"invalid join", "from: {table: a}\njoins:\n  - {type: outer, table: b}"},
		{"invalid nulls", "from: {table: a}\norderBy:\n  - {path: a.x, nulls: middle}"},
		{"embedded in sql", "from: {table: a}\nanyEmbedded:\n  - {path: a.x, alias: y}"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := querydoc.Unmarshal([]byte(tc.doc))
			require.NoError(t, err)
			_, err = d.SQLQuery()
			assert.Error(t, err)
		})
	}

	d, err := querydoc.Unmarshal([]byte("from: {collection: a}\njoins:\n  - {table: b}"))
	require.NoError(t, err)
	_, err = d.MongoQuery(nil)
	assert.Error(t, err)
}
