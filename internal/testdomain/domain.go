// Package testdomain holds the entities and hand written Q-types shared by tests.
package testdomain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Gender of a user.
type Gender string

// genders
const (
	Male   Gender = "MALE"
	Female Gender = "FEMALE"
)

// City is embedded in Address.
type City struct {
	Name      string  `bson:"name,omitempty"`
	Latitude  float64 `bson:"latitude,omitempty"`
	Longitude float64 `bson:"longitude,omitempty"`
}

// Address is embedded in User.
type Address struct {
	Street   string `bson:"street,omitempty"`
	PostCode string `bson:"postCode,omitempty"`
	City     *City  `bson:"city,omitempty"`
}

// User is the main test entity.
type User struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	FirstName   string               `bson:"firstName,omitempty"`
	LastName    string               `bson:"lastName,omitempty"`
	Age         int                  `bson:"age,omitempty"`
	Created     time.Time            `bson:"created,omitempty"`
	Gender      Gender               `bson:"gender,omitempty"`
	MainAddress *Address             `bson:"mainAddress,omitempty"`
	Addresses   []Address            `bson:"addresses,omitempty"`
	Friend      *primitive.ObjectID  `bson:"friend,omitempty"`
	Friends     []primitive.ObjectID `bson:"friends,omitempty"`
}

// Item references ids of other documents.
type Item struct {
	ID   primitive.ObjectID   `bson:"_id,omitempty"`
	Ctds []primitive.ObjectID `bson:"ctds,omitempty"`
}

// MapEntity holds a map property.
type MapEntity struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Properties map[string]string  `bson:"properties,omitempty"`
}
