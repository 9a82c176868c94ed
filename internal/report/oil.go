package report

import (
	"github.com/ukydev/fleet-control/internal/models"
)

// OilLevel classifies how urgently an oil change is needed.
type OilLevel string

const (
	OilOK      OilLevel = "ok"
	OilDueSoon OilLevel = "due_soon"
	OilDue     OilLevel = "due"
)

const (
	oilDueKm         = 8000
	oilDueSoonKm     = 7000
	oilDueMonths     = 12
	oilDueSoonMonths = 11
)

// OilChangeStatus is the classification rendered next to a vehicle.
type OilChangeStatus struct {
	Level             OilLevel `json:"level"`
	Message           string   `json:"message"`
	DistanceKm        int      `json:"distance_km"`
	MonthsSince       int      `json:"months_since"`
	OfferRegistration bool     `json:"offer_registration"`
}

// DistanceSinceOilChange returns the km driven since the last oil change,
// measured at the latest refueling on or after that change.
func DistanceSinceOilChange(entries []models.FuelEntry, lastChangeDate *models.Date, lastChangeKm *int) int {
	if lastChangeDate == nil || lastChangeKm == nil {
		return 0
	}

	var latest *models.FuelEntry
	for i := range entries {
		e := &entries[i]
		if e.Date.Before(*lastChangeDate) {
			continue
		}
		// later entries win on same-day ties
		if latest == nil || !e.Date.Before(latest.Date) {
			latest = e
		}
	}
	if latest == nil {
		return 0
	}
	return latest.OdometerKm - *lastChangeKm
}

// ClassifyOilStatus returns nil when no oil change has been recorded.
func ClassifyOilStatus(distance int, lastChangeDate *models.Date, today models.Date) *OilChangeStatus {
	if lastChangeDate == nil {
		return nil
	}
	months := today.MonthsSince(*lastChangeDate)

	status := &OilChangeStatus{
		DistanceKm:        distance,
		MonthsSince:       months,
		OfferRegistration: ShouldOfferOilChange(distance, months),
	}
	switch {
	case distance >= oilDueKm || months >= oilDueMonths:
		status.Level = OilDue
		status.Message = "Troca de óleo necessária"
	case distance >= oilDueSoonKm || months >= oilDueSoonMonths:
		status.Level = OilDueSoon
		status.Message = "Troca de óleo próxima"
	default:
		status.Level = OilOK
		status.Message = "Óleo em dia"
	}
	return status
}

// ShouldOfferOilChange reports whether the "register oil change" action applies.
func ShouldOfferOilChange(distance, months int) bool {
	return distance >= oilDueSoonKm || months >= oilDueSoonMonths
}

// SuggestedOilChangeKm returns the odometer of the latest refueling.
func SuggestedOilChangeKm(entries []models.FuelEntry) (int, bool) {
	if len(entries) == 0 {
		return 0, false
	}
	sorted := sortedByDate(entries)
	return sorted[len(sorted)-1].OdometerKm, true
}
