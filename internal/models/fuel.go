package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FuelEntry represents one refueling event.
type FuelEntry struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VehicleID  string             `json:"vehicle_id" bson:"vehicle_id"`
	Date       Date               `json:"date" bson:"date"`
	OdometerKm int                `json:"odometer_km" bson:"odometer_km"`
	Liters     float64            `json:"liters" bson:"liters"`
	TotalCost  float64            `json:"total_cost" bson:"total_cost"` // in BRL
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}

// Validate checks the fuel entry fields.
func (f FuelEntry) Validate() error {
	if strings.TrimSpace(f.VehicleID) == "" {
		return validationError("vehicle_id is required")
	}
	if f.Date.IsZero() {
		return validationError("date is required")
	}
	if f.OdometerKm < 0 {
		return validationError("odometer_km must not be negative")
	}
	if f.Liters <= 0 {
		return validationError("liters must be positive")
	}
	if f.TotalCost < 0 {
		return validationError("total_cost must not be negative")
	}
	return nil
}
