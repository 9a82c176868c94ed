package report

import (
	"github.com/ukydev/fleet-control/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func date(s string) models.Date { return models.MustParseDate(s) }

func datePtr(s string) *models.Date {
	d := models.MustParseDate(s)
	return &d
}

func intPtr(v int) *int { return &v }

func month(s string) models.YearMonth {
	ym, err := models.ParseYearMonth(s)
	if err != nil {
		panic(err)
	}
	return ym
}

func fuel(vehicleID, day string, odometer int, liters, cost float64) models.FuelEntry {
	return models.FuelEntry{
		ID:         primitive.NewObjectID(),
		VehicleID:  vehicleID,
		Date:       date(day),
		OdometerKm: odometer,
		Liters:     liters,
		TotalCost:  cost,
	}
}

func vehicle(model, plate string) models.Vehicle {
	return models.Vehicle{ID: primitive.NewObjectID(), Model: model, LicensePlate: plate, Year: 2020}
}
