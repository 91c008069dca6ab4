package testdomain

import (
	"time"

	"github.com/ikonglong/querydsl"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QCity navigates City.
type QCity struct {
	*querydsl.EntityPathBase
	Name      querydsl.StringPath
	Latitude  querydsl.NumberPath[float64]
	Longitude querydsl.NumberPath[float64]
}

// NewQCity returns a QCity rooted at p.
func NewQCity(p *querydsl.Path) *QCity {
	return &QCity{
		EntityPathBase: querydsl.NewEntityPath("City", p),
		Name:           querydsl.NewStringPath(p.Property("name")),
		Latitude:       querydsl.NewNumberPath[float64](p.Property("latitude")),
		Longitude:      querydsl.NewNumberPath[float64](p.Property("longitude")),
	}
}

// QAddress navigates Address.
type QAddress struct {
	*querydsl.EntityPathBase
	Street   querydsl.StringPath
	PostCode querydsl.StringPath
}

// NewQAddress returns a QAddress rooted at p.
func NewQAddress(p *querydsl.Path) *QAddress {
	return &QAddress{
		EntityPathBase: querydsl.NewEntityPath("Address", p),
		Street:         querydsl.NewStringPath(p.Property("street")),
		PostCode:       querydsl.NewStringPath(p.Property("postCode")),
	}
}

// City navigates the city of the address.
func (a *QAddress) City() *QCity {
	return NewQCity(a.Path().Property("city"))
}

// QUser navigates User.
type QUser struct {
	*querydsl.EntityPathBase
	ID        querydsl.SimplePath[primitive.ObjectID]
	FirstName querydsl.StringPath
	LastName  querydsl.StringPath
	Age       querydsl.NumberPath[int]
	Created   querydsl.DateTimePath
	Gender    querydsl.EnumPath[Gender]
	Addresses querydsl.ListPath[Address, *QAddress]
	Friends   querydsl.ListPath[primitive.ObjectID, querydsl.SimplePath[primitive.ObjectID]]
}

// NewQUser returns a QUser for the variable name.
func NewQUser(variable string) *QUser {
	return newQUser(querydsl.NewVariable(variable))
}

func newQUser(p *querydsl.Path) *QUser {
	return &QUser{
		EntityPathBase: querydsl.NewEntityPath("User", p),
		ID:             querydsl.NewSimplePath[primitive.ObjectID](p.Property("id")),
		FirstName:      querydsl.NewStringPath(p.Property("firstName")),
		LastName:       querydsl.NewStringPath(p.Property("lastName")),
		Age:            querydsl.NewNumberPath[int](p.Property("age")),
		Created:        querydsl.NewDateTimePath(p.Property("created")),
		Gender:         querydsl.NewEnumPath[Gender](p.Property("gender")),
		Addresses:      querydsl.NewListPath[Address](p.Property("addresses"), NewQAddress),
		Friends: querydsl.NewListPath[primitive.ObjectID](
			p.Property("friends"), querydsl.NewSimplePath[primitive.ObjectID],
		),
	}
}

// MainAddress navigates the main address of the user.
func (u *QUser) MainAddress() *QAddress {
	return NewQAddress(u.Path().Property("mainAddress"))
}

// Friend navigates the friend reference of the user.
func (u *QUser) Friend() *QUser {
	return newQUser(u.Path().Property("friend"))
}

// QItem navigates Item.
type QItem struct {
	*querydsl.EntityPathBase
	Ctds querydsl.ListPath[primitive.ObjectID, querydsl.SimplePath[primitive.ObjectID]]
}

// NewQItem returns a QItem for the variable name.
func NewQItem(variable string) *QItem {
	p := querydsl.NewVariable(variable)
	return &QItem{
		EntityPathBase: querydsl.NewEntityPath("Item", p),
		Ctds: querydsl.NewListPath[primitive.ObjectID](
			p.Property("ctds"), querydsl.NewSimplePath[primitive.ObjectID],
		),
	}
}

// QMapEntity navigates MapEntity.
type QMapEntity struct {
	*querydsl.EntityPathBase
	Properties querydsl.MapPath[string, string, querydsl.StringPath]
}

// NewQMapEntity returns a QMapEntity for the variable name.
func NewQMapEntity(variable string) *QMapEntity {
	p := querydsl.NewVariable(variable)
	return &QMapEntity{
		EntityPathBase: querydsl.NewEntityPath("MapEntity", p),
		Properties: querydsl.NewMapPath[string, string](
			p.Property("properties"), querydsl.NewStringPath,
		),
	}
}

// QDates navigates a document with a date property.
type QDates struct {
	*querydsl.EntityPathBase
	Date querydsl.DateTimePath
}

// NewQDates returns a QDates for the variable name.
func NewQDates(variable string) *QDates {
	p := querydsl.NewVariable(variable)
	return &QDates{
		EntityPathBase: querydsl.NewEntityPath("Dates", p),
		Date:           querydsl.NewDateTimePath(p.Property("date")),
	}
}

// Dates is the document navigated by QDates.
type Dates struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Date time.Time          `bson:"date"`
}
