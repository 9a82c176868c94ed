package report

import (
	"github.com/ukydev/fleet-control/internal/models"
)

// DashboardStats are the headline figures of a month.
type DashboardStats struct {
	Month              string  `json:"month"`
	TotalCities        int     `json:"total_cities"`
	TotalServiceOrders int     `json:"total_service_orders"`
	TotalLiters        float64 `json:"total_liters"`
	TotalFuelCost      float64 `json:"total_fuel_cost"`
}

// BuildDashboard sums the technician and fuel entries that fall in month.
func BuildDashboard(cityCount int, technicianEntries []models.TechnicianEntry, fuelEntries []models.FuelEntry, month models.YearMonth) DashboardStats {
	stats := DashboardStats{Month: month.String(), TotalCities: cityCount}
	for _, e := range technicianEntries {
		if month.Contains(e.Date) {
			stats.TotalServiceOrders += e.ServiceOrders
		}
	}
	for _, e := range fuelEntries {
		if month.Contains(e.Date) {
			stats.TotalLiters += e.Liters
			stats.TotalFuelCost += e.TotalCost
		}
	}
	return stats
}
