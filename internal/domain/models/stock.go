package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stock is a sellable product with its current on-hand quantity.
// Quantity is never negative in a committed document; mutations that would
// take it below zero are rejected at the storage layer.
type Stock struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Barcode     string             `bson:"barcode,omitempty" json:"barcode"`
	Description string             `bson:"description,omitempty" json:"description"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Price       float64            `bson:"price" json:"price"`
	Category    string             `bson:"category" json:"category"`
	ImageURL    string             `bson:"imageUrl,omitempty" json:"imageUrl"`
	CreatedBy   primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// StockUpdate carries a partial update; nil fields are left untouched.
type StockUpdate struct {
	Name        *string  `json:"name"`
	Barcode     *string  `json:"barcode"`
	Description *string  `json:"description"`
	Quantity    *int     `json:"quantity"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	ImageURL    *string  `json:"imageUrl"`
}
