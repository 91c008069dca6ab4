package sqlq

import (
	"github.com/ikonglong/querydsl"
	"github.com/qjebbs/go-sqlf/v4"
)

// RelationalPath is an entity path backed by a database table.
type RelationalPath interface {
	querydsl.EntityPath
	// TableName returns the name of the table.
	TableName() string
}

var _ RelationalPath = (*Table)(nil)
var _ sqlf.Builder = (*Table)(nil)

// Table is a table with an alias, the root of column paths.
// It's embedded by table navigation types:
//
//	type QEmployee struct {
//		*sqlq.Table
//		ID        querydsl.NumberPath[int64]
//		FirstName querydsl.StringPath
//	}
//
//	func NewQEmployee(alias string) *QEmployee {
//		t := sqlq.NewTable("employee", alias)
//		return &QEmployee{
//			Table:     t,
//			ID:        sqlq.NumberColumn[int64](t, "id"),
//			FirstName: t.StringColumn("firstname"),
//		}
//	}
type Table struct {
	*querydsl.EntityPathBase
	name  string
	alias string
}

// NewTable returns a new Table. Column paths are rooted at the alias,
// or at the name if no alias is given.
func NewTable(name string, alias ...string) *Table {
	aliasName := ""
	if len(alias) > 0 {
		aliasName = alias[0]
	}
	applied := aliasName
	if applied == "" {
		applied = name
	}
	return &Table{
		EntityPathBase: querydsl.NewEntityPath(name, querydsl.NewVariable(applied)),
		name:           name,
		alias:          aliasName,
	}
}

// TableName returns the name of the table.
func (t *Table) TableName() string { return t.name }

// Alias returns the alias of the table, empty if none.
func (t *Table) Alias() string { return t.alias }

// AppliedName returns the alias if it is not empty, otherwise returns the name.
func (t *Table) AppliedName() string {
	if t.alias != "" {
		return t.alias
	}
	return t.name
}

// Column returns an untyped column path of the table.
func (t *Table) Column(name string) querydsl.SimplePath[any] {
	return querydsl.NewSimplePath[any](t.Path().Property(name))
}

// StringColumn returns a string column path of the table.
func (t *Table) StringColumn(name string) querydsl.StringPath {
	return querydsl.NewStringPath(t.Path().Property(name))
}

// BooleanColumn returns a boolean column path of the table.
func (t *Table) BooleanColumn(name string) querydsl.BooleanPath {
	return querydsl.NewBooleanPath(t.Path().Property(name))
}

// DateTimeColumn returns a time column path of the table.
func (t *Table) DateTimeColumn(name string) querydsl.DateTimePath {
	return querydsl.NewDateTimePath(t.Path().Property(name))
}

// AllColumns returns the path of all columns of the table, e.g.: "t.*".
func (t *Table) AllColumns() *querydsl.Path {
	return t.Path().Property("*")
}

// NumberColumn returns a numeric column path of t.
func NumberColumn[T querydsl.Number](t *Table, name string) querydsl.NumberPath[T] {
	return querydsl.NewNumberPath[T](t.Path().Property(name))
}

// ComparableColumn returns a column path of t with an ordered type.
func ComparableColumn[T any](t *Table, name string) querydsl.ComparablePath[T] {
	return querydsl.NewComparablePath[T](t.Path().Property(name))
}

// BuildTo implements sqlf.Builder, it builds the table into fragment like `table AS t`.
func (t *Table) BuildTo(ctx sqlf.Context) (query string, err error) {
	return tableAs(t).BuildTo(ctx)
}

func tableAs(t RelationalPath) sqlf.Builder {
	return sqlf.Func(func(ctx sqlf.Context) (query string, err error) {
		name := t.TableName()
		applied := t.Path().Root().Element()
		if applied == "" || applied == name {
			return sqlf.Identifier(name).BuildTo(ctx)
		}
		return sqlf.F(
			"? AS ?",
			sqlf.Identifier(name),
			sqlf.Identifier(applied),
		).BuildTo(ctx)
	})
}
