package querydsl_test

import (
	"strings"
	"testing"

	"github.com/ikonglong/querydsl"
	"github.com/ikonglong/querydsl/internal/testdomain"
)

type testQuery struct {
	*querydsl.QueryBase[*testQuery]
}

func newTestQuery() *testQuery {
	q := &testQuery{}
	q.QueryBase = querydsl.NewQueryBase(q, nil)
	return q
}

func (q *testQuery) From(sources ...querydsl.Expression) *testQuery {
	return q.Mixin().From(sources...)
}

func (q *testQuery) LeftJoin(target querydsl.Expression) *testQuery {
	return q.Mixin().LeftJoin(target)
}

func (q *testQuery) On(conditions ...querydsl.Predicate) *testQuery {
	return q.Mixin().On(conditions...)
}

func (q *testQuery) Select(exprs ...querydsl.Expression) *testQuery {
	return q.Mixin().Select(exprs...)
}

func TestMetadataString(t *testing.T) {
	friend := testdomain.NewQUser("friend")
	q := newTestQuery().
		Select(user.FirstName, friend.FirstName).
		From(user).
		LeftJoin(friend).On(friend.ID.EqExpr(user.ID)).
		Where(user.Age.Gt(10), nil).
		Where(querydsl.NewBooleanBuilder()).
		OrderBy(user.LastName.Asc()).
		Limit(5).
		Offset(10)
	want := "select user.firstName, friend.firstName from User user " +
		"left join User friend on friend.id = user.id " +
		"where user.age > 10 order by user.lastName asc limit 5 offset 10"
	if got := q.Metadata().String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
	if err := q.Metadata().Err(); err != nil {
		t.Fatal(err)
	}
}

func TestMetadataWithoutProjection(t *testing.T) {
	q := newTestQuery().From(user).Where(user.FirstName.Eq("Jaakko"))
	want := "from User user where user.firstName = Jaakko"
	if got := q.Metadata().String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMetadataCollectsErrors(t *testing.T) {
	q := newTestQuery().
		On(user.Age.Gt(1)).
		Limit(-1)
	err := q.Metadata().Err()
	if err == nil {
		t.Fatal("want error")
	}
	for _, want := range []string{
		"collected errors",
		"on: no join to apply the condition to",
		"limit must be >= 0, got -1",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should contain %q", err, want)
		}
	}
}

func TestMetadataValidation(t *testing.T) {
	other := testdomain.NewQUser("other")
	md := querydsl.NewQueryMetadata().SetValidate(true)
	md.AddJoin(querydsl.JoinDefault, user)
	md.AddWhere(user.Age.Gt(1))
	if err := md.Err(); err != nil {
		t.Fatalf("declared path: %v", err)
	}
	md.AddWhere(other.FirstName.Eq("x"))
	err := md.Err()
	if err == nil || !strings.Contains(err.Error(), "undeclared path 'other'") {
		t.Fatalf("got %v, want undeclared path error", err)
	}
}

func TestMetadataZeroValue(t *testing.T) {
	var md querydsl.QueryMetadata
	md.SetValidate(true)
	md.AddJoin(querydsl.JoinDefault, user)
	md.AddWhere(user.Age.Gt(1))
	if err := md.Err(); err != nil {
		t.Fatalf("declared path: %v", err)
	}
	md.SetLimit(5)
	md.SetLimit(0)
	if got := md.Modifiers().Limit; got != 0 {
		t.Errorf("limit not cleared: %d", got)
	}
	md.SetOffset(-1)
	if err := md.Err(); err == nil || !strings.Contains(err.Error(), "offset must be >= 0, got -1") {
		t.Errorf("got %v, want offset error", err)
	}
}

func TestMetadataClone(t *testing.T) {
	q := newTestQuery().From(user).Where(user.Age.Gt(1))
	c := q.Metadata().Clone()
	c.AddWhere(user.Age.Lt(9))
	c.AddOrderBy(user.Age.Asc())
	if got, want := q.Metadata().String(), "from User user where user.age > 1"; got != want {
		t.Errorf("original changed: got %q, want %q", got, want)
	}
	if got, want := c.String(), "from User user where user.age > 1 && user.age < 9 order by user.age asc"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMixinSelf(t *testing.T) {
	q := newTestQuery()
	other := newTestQuery()
	q.Mixin().SetSelf(other)
	if got := q.Distinct(); got != other {
		t.Error("fluent methods should return the replaced self")
	}
	if !q.Metadata().IsDistinct() {
		t.Error("distinct should apply to the mixin metadata")
	}
}
