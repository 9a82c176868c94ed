package report

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-control/internal/models"
)

func TestMonthlyFuelReport(t *testing.T) {
	tests := []struct {
		name     string
		entries  []models.FuelEntry
		month    string
		expected FuelReport
	}{
		{
			name:     "no entries",
			entries:  nil,
			month:    "2024-03",
			expected: FuelReport{Month: "2024-03", InsufficientData: true},
		},
		{
			name: "no entries in month",
			entries: []models.FuelEntry{
				fuel("v1", "2024-02-28", 1000, 40, 200),
				fuel("v1", "2024-04-01", 1400, 35, 180),
			},
			month:    "2024-03",
			expected: FuelReport{Month: "2024-03", InsufficientData: true},
		},
		{
			name:    "single entry",
			entries: []models.FuelEntry{fuel("v1", "2024-03-05", 1000, 40, 200)},
			month:   "2024-03",
			expected: FuelReport{
				Month:            "2024-03",
				EntryCount:       1,
				TotalCost:        200,
				TotalLiters:      40,
				AverageFuelPrice: 5,
				InsufficientData: true,
			},
		},
		{
			name: "two entries",
			entries: []models.FuelEntry{
				fuel("v1", "2024-03-06", 1400, 35, 180),
				fuel("v1", "2024-03-01", 1000, 40, 200),
			},
			month: "2024-03",
			expected: FuelReport{
				Month:              "2024-03",
				EntryCount:         2,
				TotalCost:          380,
				TotalLiters:        75,
				TotalDistanceKm:    400,
				AverageConsumption: 10,
				CostPerKm:          0.95,
				AverageFuelPrice:   380.0 / 75.0,
			},
		},
		{
			name: "same odometer is skipped",
			entries: []models.FuelEntry{
				fuel("v1", "2024-03-01", 1000, 40, 200),
				fuel("v1", "2024-03-02", 1000, 10, 50),
			},
			month: "2024-03",
			expected: FuelReport{
				Month:            "2024-03",
				EntryCount:       2,
				TotalCost:        250,
				TotalLiters:      50,
				AverageFuelPrice: 5,
				SkippedPairs:     1,
				InsufficientData: true,
			},
		},
		{
			name: "odometer going backwards is skipped",
			entries: []models.FuelEntry{
				fuel("v1", "2024-03-01", 1000, 40, 200),
				fuel("v1", "2024-03-10", 900, 30, 150),
				fuel("v1", "2024-03-20", 1500, 50, 250),
			},
			month: "2024-03",
			expected: FuelReport{
				Month:              "2024-03",
				EntryCount:         3,
				TotalCost:          600,
				TotalLiters:        120,
				TotalDistanceKm:    600,
				AverageConsumption: 20,
				CostPerKm:          1,
				AverageFuelPrice:   5,
				SkippedPairs:       1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyFuelReport(tt.entries, month(tt.month))
			assert.Equal(t, tt.expected.Month, got.Month)
			assert.Equal(t, tt.expected.EntryCount, got.EntryCount)
			assert.Equal(t, tt.expected.TotalDistanceKm, got.TotalDistanceKm)
			assert.Equal(t, tt.expected.SkippedPairs, got.SkippedPairs)
			assert.Equal(t, tt.expected.InsufficientData, got.InsufficientData)
			assert.InDelta(t, tt.expected.TotalCost, got.TotalCost, 1e-9)
			assert.InDelta(t, tt.expected.TotalLiters, got.TotalLiters, 1e-9)
			assert.InDelta(t, tt.expected.AverageConsumption, got.AverageConsumption, 1e-9)
			assert.InDelta(t, tt.expected.CostPerKm, got.CostPerKm, 1e-9)
			assert.InDelta(t, tt.expected.AverageFuelPrice, got.AverageFuelPrice, 1e-9)
		})
	}
}

func TestMonthlyFuelReport_NeverNaN(t *testing.T) {
	entries := []models.FuelEntry{
		fuel("v1", "2024-03-01", 1000, 0.0001, 0),
		fuel("v1", "2024-03-01", 1000, 0.0001, 0),
		fuel("v1", "2024-03-01", 1000, 0.0001, 0),
	}
	got := MonthlyFuelReport(entries, month("2024-03"))

	for _, v := range []float64{got.AverageConsumption, got.CostPerKm, got.AverageFuelPrice} {
		assert.False(t, math.IsNaN(v))
		assert.False(t, math.IsInf(v, 0))
	}
	assert.True(t, got.InsufficientData)
	assert.Equal(t, 2, got.SkippedPairs)
}

func TestMonthlyFuelReport_Idempotent(t *testing.T) {
	entries := []models.FuelEntry{
		fuel("v1", "2024-03-09", 1820, 38.2, 221.5),
		fuel("v1", "2024-03-01", 1000, 40, 200),
		fuel("v1", "2024-03-05", 1400, 35, 180),
	}
	snapshot := make([]models.FuelEntry, len(entries))
	copy(snapshot, entries)

	first := MonthlyFuelReport(entries, month("2024-03"))
	second := MonthlyFuelReport(entries, month("2024-03"))

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, entries, "input must not be reordered")
}

func TestConsumptionSeries(t *testing.T) {
	t.Run("fewer than two entries", func(t *testing.T) {
		assert.NotNil(t, ConsumptionSeries(nil))
		assert.Empty(t, ConsumptionSeries(nil))
		assert.Empty(t, ConsumptionSeries([]models.FuelEntry{fuel("v1", "2024-01-01", 1000, 40, 200)}))
	})

	t.Run("one point per pair across months", func(t *testing.T) {
		entries := []models.FuelEntry{
			fuel("v1", "2024-02-10", 1800, 30, 150),
			fuel("v1", "2024-01-01", 1000, 40, 200),
			fuel("v1", "2024-01-20", 1400, 40, 200),
		}
		points := ConsumptionSeries(entries)
		require.Len(t, points, 2)
		assert.Equal(t, date("2024-01-20"), points[0].Date)
		assert.InDelta(t, 10.0, points[0].KmPerLiter, 1e-9)
		assert.Equal(t, date("2024-02-10"), points[1].Date)
		assert.InDelta(t, 10.0, points[1].KmPerLiter, 1e-9)
	})

	t.Run("invalid pairs are skipped", func(t *testing.T) {
		entries := []models.FuelEntry{
			fuel("v1", "2024-01-01", 1000, 40, 200),
			fuel("v1", "2024-01-05", 900, 40, 200),
			fuel("v1", "2024-01-09", 1300, 40, 200),
		}
		points := ConsumptionSeries(entries)
		require.Len(t, points, 1)
		assert.InDelta(t, 10.0, points[0].KmPerLiter, 1e-9)
	})
}

func TestFleetMonthlyReports(t *testing.T) {
	strada := vehicle("Fiat Strada", "ABC1D23")
	saveiro := vehicle("VW Saveiro", "XYZ9K87")
	idle := vehicle("Renault Kangoo", "KGO0A00")

	entries := []models.FuelEntry{
		fuel(strada.ID.Hex(), "2024-03-01", 1000, 40, 200),
		fuel(strada.ID.Hex(), "2024-03-06", 1400, 35, 180),
		fuel(saveiro.ID.Hex(), "2024-02-10", 5000, 45, 230),
	}

	reports := FleetMonthlyReports([]models.Vehicle{strada, idle, saveiro}, entries, month("2024-03"))
	require.Len(t, reports, 2)

	assert.Equal(t, strada.ID.Hex(), reports[0].VehicleID)
	assert.Equal(t, 400, reports[0].Report.TotalDistanceKm)

	assert.Equal(t, saveiro.ID.Hex(), reports[1].VehicleID)
	assert.Equal(t, 0, reports[1].Report.EntryCount)
	assert.True(t, reports[1].Report.InsufficientData)
}
