package report

import (
	"github.com/ukydev/fleet-control/internal/models"
)

// VehicleRank is a vehicle's standing over a period.
type VehicleRank struct {
	VehicleID    string  `json:"vehicle_id"`
	Model        string  `json:"model"`
	LicensePlate string  `json:"license_plate"`
	Efficiency   float64 `json:"efficiency_km_per_liter"`
	TotalSpent   float64 `json:"total_spent"`
	DistanceKm   int     `json:"distance_km"`
	Liters       float64 `json:"liters"`
	SkippedPairs int     `json:"skipped_pairs"`
}

// Ranking holds the fleet leaders; each is nil without a candidate.
type Ranking struct {
	MostEfficient *VehicleRank `json:"most_efficient"`
	MostExpensive *VehicleRank `json:"most_expensive"`
	MostDriven    *VehicleRank `json:"most_driven"`
}

// RankVehicles ranks vehicles by the entries of a period. Vehicles without
// entries are not ranked and ties keep the earliest vehicle.
func RankVehicles(vehicles []models.Vehicle, periodEntries []models.FuelEntry) Ranking {
	byVehicle := groupByVehicle(periodEntries)

	var ranking Ranking
	for _, v := range vehicles {
		own := byVehicle[v.ID.Hex()]
		if len(own) == 0 {
			continue
		}
		rank := rankVehicle(v, own)

		if rank.Efficiency > 0 && (ranking.MostEfficient == nil || rank.Efficiency > ranking.MostEfficient.Efficiency) {
			ranking.MostEfficient = rank
		}
		if ranking.MostExpensive == nil || rank.TotalSpent > ranking.MostExpensive.TotalSpent {
			ranking.MostExpensive = rank
		}
		if rank.DistanceKm > 0 && (ranking.MostDriven == nil || rank.DistanceKm > ranking.MostDriven.DistanceKm) {
			ranking.MostDriven = rank
		}
	}
	return ranking
}

func rankVehicle(v models.Vehicle, entries []models.FuelEntry) *VehicleRank {
	p := accumulatePairs(sortedByDate(entries))

	var spent float64
	for _, e := range entries {
		spent += e.TotalCost
	}
	return &VehicleRank{
		VehicleID:    v.ID.Hex(),
		Model:        v.Model,
		LicensePlate: v.LicensePlate,
		Efficiency:   safeDiv(float64(p.distance), p.liters),
		TotalSpent:   spent,
		DistanceKm:   p.distance,
		Liters:       p.liters,
		SkippedPairs: p.skipped,
	}
}
