// Package report computes fleet reports from in-memory records. Every
// function is pure: inputs are never mutated and results are freshly allocated.
package report

import (
	"sort"

	"github.com/ukydev/fleet-control/internal/models"
)

// FuelReport summarizes one vehicle's refuelings within a month.
type FuelReport struct {
	Month              string  `json:"month"`
	EntryCount         int     `json:"entry_count"`
	TotalCost          float64 `json:"total_cost"`
	TotalLiters        float64 `json:"total_liters"`
	TotalDistanceKm    int     `json:"total_distance_km"`
	AverageConsumption float64 `json:"average_consumption_km_per_liter"`
	CostPerKm          float64 `json:"cost_per_km"`
	AverageFuelPrice   float64 `json:"average_fuel_price_per_liter"`
	SkippedPairs       int     `json:"skipped_pairs"`
	InsufficientData   bool    `json:"insufficient_data"`
}

// ConsumptionPoint is the km/l measured between two consecutive refuelings,
// dated at the later one.
type ConsumptionPoint struct {
	Date       models.Date `json:"date"`
	KmPerLiter float64     `json:"km_per_liter"`
}

// VehicleFuelReport pairs a vehicle with its monthly fuel report.
type VehicleFuelReport struct {
	VehicleID    string     `json:"vehicle_id"`
	Model        string     `json:"model"`
	LicensePlate string     `json:"license_plate"`
	Report       FuelReport `json:"report"`
}

// MonthlyFuelReport computes the fuel report of entries falling in month.
// Pairs whose distance is not positive, or whose earlier fill has no liters,
// are left out of distance and consumption and counted in SkippedPairs.
func MonthlyFuelReport(entries []models.FuelEntry, month models.YearMonth) FuelReport {
	r := FuelReport{Month: month.String()}

	inMonth := FilterMonth(entries, month)
	if len(inMonth) == 0 {
		r.InsufficientData = true
		return r
	}
	sorted := sortedByDate(inMonth)

	r.EntryCount = len(sorted)
	for _, e := range sorted {
		r.TotalCost += e.TotalCost
		r.TotalLiters += e.Liters
	}
	r.AverageFuelPrice = safeDiv(r.TotalCost, r.TotalLiters)

	if len(sorted) < 2 {
		r.InsufficientData = true
		return r
	}

	p := accumulatePairs(sorted)
	r.TotalDistanceKm = p.distance
	r.SkippedPairs = p.skipped
	r.AverageConsumption = safeDiv(float64(p.distance), p.liters)
	r.CostPerKm = safeDiv(r.TotalCost, float64(p.distance))
	if p.distance == 0 || p.liters == 0 || r.TotalLiters == 0 {
		r.InsufficientData = true
	}
	return r
}

// ConsumptionSeries returns one point per valid consecutive pair of the whole
// history. It is empty, never nil, when fewer than two entries exist.
func ConsumptionSeries(entries []models.FuelEntry) []ConsumptionPoint {
	points := []ConsumptionPoint{}
	if len(entries) < 2 {
		return points
	}
	sorted := sortedByDate(entries)
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		dist := cur.OdometerKm - prev.OdometerKm
		if !validPair(dist, prev.Liters) {
			continue
		}
		points = append(points, ConsumptionPoint{
			Date:       cur.Date,
			KmPerLiter: float64(dist) / prev.Liters,
		})
	}
	return points
}

// FleetMonthlyReports computes the monthly report of every vehicle that has
// at least one fuel entry in its history, in vehicle order.
func FleetMonthlyReports(vehicles []models.Vehicle, entries []models.FuelEntry, month models.YearMonth) []VehicleFuelReport {
	byVehicle := groupByVehicle(entries)

	reports := []VehicleFuelReport{}
	for _, v := range vehicles {
		own := byVehicle[v.ID.Hex()]
		if len(own) == 0 {
			continue
		}
		reports = append(reports, VehicleFuelReport{
			VehicleID:    v.ID.Hex(),
			Model:        v.Model,
			LicensePlate: v.LicensePlate,
			Report:       MonthlyFuelReport(own, month),
		})
	}
	return reports
}

type pairTotals struct {
	distance int
	liters   float64
	skipped  int
}

// accumulatePairs walks consecutive pairs of date-sorted entries and
// attributes each distance to the liters filled at the earlier entry.
func accumulatePairs(sorted []models.FuelEntry) pairTotals {
	var t pairTotals
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		dist := cur.OdometerKm - prev.OdometerKm
		if !validPair(dist, prev.Liters) {
			t.skipped++
			continue
		}
		t.distance += dist
		t.liters += prev.Liters
	}
	return t
}

func validPair(distance int, prevLiters float64) bool {
	return distance > 0 && prevLiters > 0
}

// sortedByDate returns a copy of entries stably sorted ascending by date.
func sortedByDate(entries []models.FuelEntry) []models.FuelEntry {
	sorted := make([]models.FuelEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

func groupByVehicle(entries []models.FuelEntry) map[string][]models.FuelEntry {
	grouped := make(map[string][]models.FuelEntry)
	for _, e := range entries {
		grouped[e.VehicleID] = append(grouped[e.VehicleID], e)
	}
	return grouped
}

// FilterMonth returns the entries dated within month, in input order.
func FilterMonth(entries []models.FuelEntry, month models.YearMonth) []models.FuelEntry {
	out := []models.FuelEntry{}
	for _, e := range entries {
		if month.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
