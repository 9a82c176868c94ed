package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ukydev/fleet-control/internal/models"
)

func TestBuildDashboard(t *testing.T) {
	tech := []models.TechnicianEntry{
		techEntry("Ana", nil, 3),
		techEntry("Bruno", nil, 4),
	}
	tech[1].Date = date("2024-02-28")

	fuelEntries := []models.FuelEntry{
		fuel("v1", "2024-03-01", 1000, 40, 200),
		fuel("v2", "2024-03-15", 3000, 35.5, 190.25),
		fuel("v1", "2024-04-01", 1400, 35, 180),
	}

	stats := BuildDashboard(4, tech, fuelEntries, month("2024-03"))
	assert.Equal(t, "2024-03", stats.Month)
	assert.Equal(t, 4, stats.TotalCities)
	assert.Equal(t, 3, stats.TotalServiceOrders)
	assert.InDelta(t, 75.5, stats.TotalLiters, 1e-9)
	assert.InDelta(t, 390.25, stats.TotalFuelCost, 1e-9)
}
