package report

import (
	"sort"

	"github.com/ukydev/fleet-control/internal/models"
)

// VehicleMaintenanceTotal is a vehicle's accumulated maintenance spend.
type VehicleMaintenanceTotal struct {
	VehicleID    string  `json:"vehicle_id"`
	Model        string  `json:"model"`
	LicensePlate string  `json:"license_plate"`
	TotalSpent   float64 `json:"total_spent"`
	RecordCount  int     `json:"record_count"`
}

// MaintenanceStats is the headline of the maintenance screen.
type MaintenanceStats struct {
	TotalSpent     float64                  `json:"total_spent"`
	RecordCount    int                      `json:"record_count"`
	MostExpensive  *VehicleMaintenanceTotal `json:"most_expensive"`
	LeastExpensive *VehicleMaintenanceTotal `json:"least_expensive"`
}

// MaintenanceTotals lists per-vehicle totals with the grand totals.
type MaintenanceTotals struct {
	Vehicles    []VehicleMaintenanceTotal `json:"vehicles"`
	TotalSpent  float64                   `json:"total_spent"`
	RecordCount int                       `json:"record_count"`
}

// MaintenanceMonthGroup holds one month of records, newest first.
type MaintenanceMonthGroup struct {
	Month    string                     `json:"month"`
	Records  []models.MaintenanceRecord `json:"records"`
	Subtotal float64                    `json:"subtotal"`
}

// BuildMaintenanceStats totals all records and picks the most and least
// expensive among existing vehicles with spend.
func BuildMaintenanceStats(records []models.MaintenanceRecord, vehicles []models.Vehicle) MaintenanceStats {
	stats := MaintenanceStats{RecordCount: len(records)}
	for _, r := range records {
		stats.TotalSpent += r.Cost
	}

	for _, t := range MaintenanceSummary(records, vehicles).Vehicles {
		if t.TotalSpent <= 0 {
			continue
		}
		if stats.MostExpensive == nil || t.TotalSpent > stats.MostExpensive.TotalSpent {
			stats.MostExpensive = &t
		}
		if stats.LeastExpensive == nil || t.TotalSpent < stats.LeastExpensive.TotalSpent {
			stats.LeastExpensive = &t
		}
	}
	return stats
}

// MaintenanceSummary totals records per vehicle in vehicle order, keeping
// vehicles that have records. Records of unknown vehicles only count in the
// grand totals.
func MaintenanceSummary(records []models.MaintenanceRecord, vehicles []models.Vehicle) MaintenanceTotals {
	type acc struct {
		spent float64
		count int
	}
	perVehicle := make(map[string]*acc)
	totals := MaintenanceTotals{Vehicles: []VehicleMaintenanceTotal{}}
	for _, r := range records {
		a, ok := perVehicle[r.VehicleID]
		if !ok {
			a = &acc{}
			perVehicle[r.VehicleID] = a
		}
		a.spent += r.Cost
		a.count++
		totals.TotalSpent += r.Cost
		totals.RecordCount++
	}

	for _, v := range vehicles {
		a, ok := perVehicle[v.ID.Hex()]
		if !ok {
			continue
		}
		totals.Vehicles = append(totals.Vehicles, VehicleMaintenanceTotal{
			VehicleID:    v.ID.Hex(),
			Model:        v.Model,
			LicensePlate: v.LicensePlate,
			TotalSpent:   a.spent,
			RecordCount:  a.count,
		})
	}
	return totals
}

// GroupMaintenanceByMonth groups records by month, newest month and record first.
func GroupMaintenanceByMonth(records []models.MaintenanceRecord) []MaintenanceMonthGroup {
	sorted := SortMaintenanceNewestFirst(records)

	groups := []MaintenanceMonthGroup{}
	for _, r := range sorted {
		month := r.Date.YearMonth().String()
		if n := len(groups); n == 0 || groups[n-1].Month != month {
			groups = append(groups, MaintenanceMonthGroup{Month: month})
		}
		g := &groups[len(groups)-1]
		g.Records = append(g.Records, r)
		g.Subtotal += r.Cost
	}
	return groups
}

// SortMaintenanceNewestFirst returns a copy of records sorted by date descending.
func SortMaintenanceNewestFirst(records []models.MaintenanceRecord) []models.MaintenanceRecord {
	sorted := make([]models.MaintenanceRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return sorted
}
