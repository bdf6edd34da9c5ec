package models

import "time"

// DailySalesReport is the nightly aggregate of completed sales for one
// calendar day, stored in MongoDB and optionally exported to a spreadsheet.
type DailySalesReport struct {
	Date        time.Time `bson:"date" json:"date"`
	OrderCount  int       `bson:"orderCount" json:"orderCount"`
	SalesTotal  float64   `bson:"salesTotal" json:"salesTotal"`
	GeneratedAt time.Time `bson:"generatedAt" json:"generatedAt"`
}
