package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultServiceOrderValue is used until a unit value has been configured.
const DefaultServiceOrderValue = 90.0

// City is a service area technicians are dispatched to.
type City struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// Validate checks the city fields.
func (c City) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return validationError("name is required")
	}
	return nil
}

// TechnicianEntry is one day or period of a technician's fieldwork.
type TechnicianEntry struct {
	ID                   primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TechnicianName       string             `json:"technician_name" bson:"technician_name"`
	CityID               *string            `json:"city_id,omitempty" bson:"city_id,omitempty"`
	Date                 Date               `json:"date" bson:"date"`
	FoodExpense          float64            `json:"food_expense" bson:"food_expense"`
	FuelExpense          float64            `json:"fuel_expense" bson:"fuel_expense"`
	AccommodationExpense float64            `json:"accommodation_expense" bson:"accommodation_expense"`
	OtherExpense         float64            `json:"other_expense" bson:"other_expense"`
	ServiceOrders        int                `json:"service_orders" bson:"service_orders"`
	CreatedAt            time.Time          `json:"created_at" bson:"created_at"`
}

// TotalExpense sums all expense categories.
func (t TechnicianEntry) TotalExpense() float64 {
	return t.FoodExpense + t.FuelExpense + t.AccommodationExpense + t.OtherExpense
}

// Validate checks the technician entry fields.
func (t TechnicianEntry) Validate() error {
	if strings.TrimSpace(t.TechnicianName) == "" {
		return validationError("technician_name is required")
	}
	if t.Date.IsZero() {
		return validationError("date is required")
	}
	if t.FoodExpense < 0 || t.FuelExpense < 0 || t.AccommodationExpense < 0 || t.OtherExpense < 0 {
		return validationError("expenses must not be negative")
	}
	if t.ServiceOrders < 0 {
		return validationError("service_orders must not be negative")
	}
	return nil
}

// TechnicianConfig holds the revenue earned per service order.
type TechnicianConfig struct {
	ServiceOrderValue float64   `json:"service_order_value" bson:"service_order_value"`
	UpdatedAt         time.Time `json:"updated_at" bson:"updated_at"`
}

// Validate checks the unit value.
func (c TechnicianConfig) Validate() error {
	if c.ServiceOrderValue <= 0 {
		return validationError("service_order_value must be positive")
	}
	return nil
}
