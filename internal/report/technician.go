package report

import (
	"strings"

	"github.com/ukydev/fleet-control/internal/models"
)

const (
	// UnmappedCityName labels entries with no known city.
	UnmappedCityName  = "Cidades não mapeadas"
	unnamedTechnician = "Sem nome"
)

// TechnicianLine is one field entry with its derived revenue and profit.
type TechnicianLine struct {
	EntryID              string      `json:"entry_id"`
	TechnicianName       string      `json:"technician_name"`
	Date                 models.Date `json:"date"`
	FoodExpense          float64     `json:"food_expense"`
	FuelExpense          float64     `json:"fuel_expense"`
	AccommodationExpense float64     `json:"accommodation_expense"`
	OtherExpense         float64     `json:"other_expense"`
	TotalExpense         float64     `json:"total_expense"`
	ServiceOrders        int         `json:"service_orders"`
	Revenue              float64     `json:"revenue"`
	Profit               float64     `json:"profit"`
}

// CityReport groups the field entries of one city.
type CityReport struct {
	CityID             string           `json:"city_id,omitempty"`
	CityName           string           `json:"city_name"`
	Unmapped           bool             `json:"unmapped"`
	Entries            []TechnicianLine `json:"entries"`
	TotalExpense       float64          `json:"total_expense"`
	TotalServiceOrders int              `json:"total_service_orders"`
	TotalRevenue       float64          `json:"total_revenue"`
	TotalProfit        float64          `json:"total_profit"`
}

// TechnicianTotals are the grand totals across all city reports.
type TechnicianTotals struct {
	TotalExpense       float64 `json:"total_expense"`
	TotalServiceOrders int     `json:"total_service_orders"`
	TotalRevenue       float64 `json:"total_revenue"`
	TotalProfit        float64 `json:"total_profit"`
	EntryCount         int     `json:"entry_count"`
}

// BuildCityReports buckets entries per city in city order. Known cities are
// always present; the unmapped bucket only when it has entries.
func BuildCityReports(entries []models.TechnicianEntry, cities []models.City, unitValue float64) []CityReport {
	reports := make([]CityReport, 0, len(cities)+1)
	index := make(map[string]int, len(cities))
	for _, c := range cities {
		id := c.ID.Hex()
		index[id] = len(reports)
		reports = append(reports, CityReport{CityID: id, CityName: c.Name, Entries: []TechnicianLine{}})
	}
	unmapped := CityReport{CityName: UnmappedCityName, Unmapped: true, Entries: []TechnicianLine{}}

	for _, e := range entries {
		line := technicianLine(e, unitValue)

		bucket := &unmapped
		if e.CityID != nil {
			if i, ok := index[*e.CityID]; ok {
				bucket = &reports[i]
			}
		}
		bucket.Entries = append(bucket.Entries, line)
		bucket.TotalExpense += line.TotalExpense
		bucket.TotalServiceOrders += line.ServiceOrders
		bucket.TotalRevenue += line.Revenue
		bucket.TotalProfit += line.Profit
	}

	if len(unmapped.Entries) > 0 {
		reports = append(reports, unmapped)
	}
	return reports
}

// SummarizeCityReports adds up the city totals.
func SummarizeCityReports(reports []CityReport) TechnicianTotals {
	var t TechnicianTotals
	for _, r := range reports {
		t.TotalExpense += r.TotalExpense
		t.TotalServiceOrders += r.TotalServiceOrders
		t.TotalRevenue += r.TotalRevenue
		t.TotalProfit += r.TotalProfit
		t.EntryCount += len(r.Entries)
	}
	return t
}

func technicianLine(e models.TechnicianEntry, unitValue float64) TechnicianLine {
	name := strings.TrimSpace(e.TechnicianName)
	if name == "" {
		name = unnamedTechnician
	}
	total := e.TotalExpense()
	revenue := float64(e.ServiceOrders) * unitValue
	return TechnicianLine{
		EntryID:              e.ID.Hex(),
		TechnicianName:       name,
		Date:                 e.Date,
		FoodExpense:          e.FoodExpense,
		FuelExpense:          e.FuelExpense,
		AccommodationExpense: e.AccommodationExpense,
		OtherExpense:         e.OtherExpense,
		TotalExpense:         total,
		ServiceOrders:        e.ServiceOrders,
		Revenue:              revenue,
		Profit:               revenue - total,
	}
}
