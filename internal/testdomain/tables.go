package testdomain

import (
	"github.com/ikonglong/querydsl"
	"github.com/ikonglong/querydsl/sqlq"
)

// QEmployee navigates the employee table.
type QEmployee struct {
	*sqlq.Table
	ID          querydsl.NumberPath[int64]
	FirstName   querydsl.StringPath
	LastName    querydsl.StringPath
	Salary      querydsl.NumberPath[float64]
	SuperiorID  querydsl.NumberPath[int64]
	DateOfBirth querydsl.DateTimePath
}

// NewQEmployee returns a QEmployee aliased as alias.
func NewQEmployee(alias string) *QEmployee {
	t := sqlq.NewTable("employee", alias)
	return &QEmployee{
		Table:       t,
		ID:          sqlq.NumberColumn[int64](t, "id"),
		FirstName:   t.StringColumn("first_name"),
		LastName:    t.StringColumn("last_name"),
		Salary:      sqlq.NumberColumn[float64](t, "salary"),
		SuperiorID:  sqlq.NumberColumn[int64](t, "superior_id"),
		DateOfBirth: t.DateTimeColumn("date_of_birth"),
	}
}

// QSurvey navigates the survey table.
type QSurvey struct {
	*sqlq.Table
	ID   querydsl.NumberPath[int64]
	Name querydsl.StringPath
}

// NewQSurvey returns a QSurvey aliased as alias.
func NewQSurvey(alias string) *QSurvey {
	t := sqlq.NewTable("survey", alias)
	return &QSurvey{
		Table: t,
		ID:    sqlq.NumberColumn[int64](t, "id"),
		Name:  t.StringColumn("name"),
	}
}

// Employee is a row of the employee table.
type Employee struct {
	ID         int64
	FirstName  string
	LastName   string
	Salary     float64
	SuperiorID *int64
}

// Fields returns the scan destinations of the columns
// id, first_name, last_name and salary.
func (e *Employee) Fields() []any {
	return []any{&e.ID, &e.FirstName, &e.LastName, &e.Salary}
}

// NewEmployee returns an Employee and its scan destinations, see Fields.
func NewEmployee() (*Employee, []any) {
	e := &Employee{}
	return e, e.Fields()
}
