package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer is a buyer tracked by a sales representative. Telephone numbers
// are unique across the collection.
type Customer struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Route          string             `bson:"route,omitempty" json:"route"`
	Telephone      string             `bson:"telephone" json:"telephone"`
	CreditLimit    float64            `bson:"creditLimit" json:"creditLimit"`
	CurrentCredits float64            `bson:"currentCredits" json:"currentCredits"`
	AddedBy        primitive.ObjectID `bson:"addedBy" json:"addedBy"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CustomerUpdate carries a partial update; nil fields are left untouched.
// CurrentCredits may only be set by admins, enforced in the service.
type CustomerUpdate struct {
	Name           *string  `json:"name"`
	Route          *string  `json:"route"`
	Telephone      *string  `json:"telephone"`
	CreditLimit    *float64 `json:"creditLimit"`
	CurrentCredits *float64 `json:"currentCredits"`
}
