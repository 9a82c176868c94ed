package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaintenanceRecord represents a vehicle maintenance expense.
type MaintenanceRecord struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VehicleID        string             `json:"vehicle_id" bson:"vehicle_id"`
	Date             Date               `json:"date" bson:"date"`
	Location         string             `json:"location" bson:"location"`
	IssueDescription string             `json:"issue_description" bson:"issue_description"`
	Cost             float64            `json:"cost" bson:"cost"` // in BRL
	OdometerKm       *int               `json:"odometer_km,omitempty" bson:"odometer_km,omitempty"`
	Notes            *string            `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" bson:"updated_at"`
}

// Validate checks the maintenance record fields.
func (m MaintenanceRecord) Validate() error {
	if strings.TrimSpace(m.VehicleID) == "" {
		return validationError("vehicle_id is required")
	}
	if m.Date.IsZero() {
		return validationError("date is required")
	}
	if strings.TrimSpace(m.Location) == "" {
		return validationError("location is required")
	}
	if strings.TrimSpace(m.IssueDescription) == "" {
		return validationError("issue_description is required")
	}
	if m.Cost < 0 {
		return validationError("cost must not be negative")
	}
	if m.OdometerKm != nil && *m.OdometerKm < 0 {
		return validationError("odometer_km must not be negative")
	}
	return nil
}
