package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vehicle represents a fleet vehicle.
type Vehicle struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Model             string             `bson:"model" json:"model"`
	LicensePlate      string             `bson:"license_plate" json:"license_plate"`
	Year              int                `bson:"year" json:"year"`
	IPVADueDate       *Date              `bson:"ipva_due_date,omitempty" json:"ipva_due_date,omitempty"`
	IPVAPaid          bool               `bson:"ipva_paid" json:"ipva_paid"`
	LastOilChangeDate *Date              `bson:"last_oil_change_date,omitempty" json:"last_oil_change_date,omitempty"`
	LastOilChangeKm   *int               `bson:"last_oil_change_km,omitempty" json:"last_oil_change_km,omitempty"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updated_at"`
}

// Label returns the "model (plate)" form used in reports.
func (v Vehicle) Label() string {
	return fmt.Sprintf("%s (%s)", v.Model, v.LicensePlate)
}

// Validate checks the vehicle fields a client is allowed to set.
func (v Vehicle) Validate() error {
	if strings.TrimSpace(v.Model) == "" {
		return validationError("model is required")
	}
	if strings.TrimSpace(v.LicensePlate) == "" {
		return validationError("license_plate is required")
	}
	if v.Year < 1900 || v.Year > time.Now().Year()+1 {
		return validationError("year %d is out of range", v.Year)
	}
	if v.LastOilChangeKm != nil && *v.LastOilChangeKm < 0 {
		return validationError("last_oil_change_km must not be negative")
	}
	if (v.LastOilChangeDate == nil) != (v.LastOilChangeKm == nil) {
		return validationError("last_oil_change_date and last_oil_change_km must be set together")
	}
	return nil
}

// OilChange is the payload for recording a completed oil change.
type OilChange struct {
	Date       Date `json:"date"`
	OdometerKm int  `json:"odometer_km"`
}

// Validate checks the oil change payload.
func (o OilChange) Validate() error {
	if o.Date.IsZero() {
		return validationError("date is required")
	}
	if o.OdometerKm <= 0 {
		return validationError("odometer_km must be positive")
	}
	return nil
}
