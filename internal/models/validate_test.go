package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestVehicle_Validate(t *testing.T) {
	d := MustParseDate("2024-01-10")
	valid := Vehicle{Model: "Fiat Strada", LicensePlate: "ABC1D23", Year: 2021}

	tests := []struct {
		name    string
		mutate  func(v *Vehicle)
		wantErr bool
	}{
		{"valid", func(v *Vehicle) {}, false},
		{"missing model", func(v *Vehicle) { v.Model = " " }, true},
		{"missing plate", func(v *Vehicle) { v.LicensePlate = "" }, true},
		{"year too old", func(v *Vehicle) { v.Year = 1800 }, true},
		{"oil change complete", func(v *Vehicle) { v.LastOilChangeDate = &d; v.LastOilChangeKm = intPtr(1000) }, false},
		{"oil change date without km", func(v *Vehicle) { v.LastOilChangeDate = &d }, true},
		{"negative oil km", func(v *Vehicle) { v.LastOilChangeDate = &d; v.LastOilChangeKm = intPtr(-1) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := valid
			tt.mutate(&v)
			err := v.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFuelEntry_Validate(t *testing.T) {
	valid := FuelEntry{VehicleID: "v1", Date: MustParseDate("2024-01-10"), OdometerKm: 1000, Liters: 40, TotalCost: 200}
	assert.NoError(t, valid.Validate())

	noLiters := valid
	noLiters.Liters = 0
	assert.ErrorIs(t, noLiters.Validate(), ErrValidation)

	noDate := valid
	noDate.Date = Date{}
	assert.ErrorIs(t, noDate.Validate(), ErrValidation)

	negativeCost := valid
	negativeCost.TotalCost = -1
	assert.ErrorIs(t, negativeCost.Validate(), ErrValidation)
}

func TestMaintenanceRecord_Validate(t *testing.T) {
	valid := MaintenanceRecord{
		VehicleID:        "v1",
		Date:             MustParseDate("2024-01-10"),
		Location:         "Oficina Central",
		IssueDescription: "Troca de pastilhas",
		Cost:             350,
	}
	assert.NoError(t, valid.Validate())

	noLocation := valid
	noLocation.Location = ""
	assert.ErrorIs(t, noLocation.Validate(), ErrValidation)

	negativeKm := valid
	negativeKm.OdometerKm = intPtr(-5)
	assert.ErrorIs(t, negativeKm.Validate(), ErrValidation)
}

func TestTechnicianEntry(t *testing.T) {
	e := TechnicianEntry{
		TechnicianName:       "Ana",
		Date:                 MustParseDate("2024-01-10"),
		FoodExpense:          10,
		FuelExpense:          20,
		AccommodationExpense: 30,
		OtherExpense:         5,
		ServiceOrders:        3,
	}
	assert.NoError(t, e.Validate())
	assert.Equal(t, 65.0, e.TotalExpense())

	e.ServiceOrders = -1
	assert.ErrorIs(t, e.Validate(), ErrValidation)

	assert.ErrorIs(t, TechnicianConfig{ServiceOrderValue: 0}.Validate(), ErrValidation)
	assert.NoError(t, TechnicianConfig{ServiceOrderValue: DefaultServiceOrderValue}.Validate())
}

func TestAttachment(t *testing.T) {
	assert.Equal(t, "pdf", FileTypeOf("Nota Fiscal.PDF"))
	assert.Equal(t, "unknown", FileTypeOf("README"))

	a := Attachment{FileName: "nf.pdf", FileSizeBytes: 2048}
	assert.NoError(t, a.Validate(10<<20))

	a.FileSizeBytes = 11 << 20
	assert.ErrorIs(t, a.Validate(10<<20), ErrValidation)
}

func TestVehicle_Label(t *testing.T) {
	assert.Equal(t, "Fiat Strada (ABC1D23)", Vehicle{Model: "Fiat Strada", LicensePlate: "ABC1D23"}.Label())
}
