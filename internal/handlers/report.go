package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/ukydev/fleet-control/internal/db"
	"github.com/ukydev/fleet-control/internal/metrics"
	"github.com/ukydev/fleet-control/internal/models"
	"github.com/ukydev/fleet-control/internal/report"
)

// ReportSources are the collections the reports read from.
type ReportSources struct {
	Vehicles    db.VehicleCollection
	Fuel        db.FuelEntryCollection
	Maintenance db.MaintenanceCollection
	Cities      db.CityCollection
	Technicians db.TechnicianCollection
	Settings    db.SettingsCollection
}

// TechnicianReportResponse is the city report of a month plus its totals.
type TechnicianReportResponse struct {
	Month             string                  `json:"month"`
	ServiceOrderValue float64                 `json:"service_order_value"`
	Cities            []report.CityReport     `json:"cities"`
	Totals            report.TechnicianTotals `json:"totals"`
}

// MaintenanceReportResponse carries the spend stats, and the month groups
// when the whole history was requested.
type MaintenanceReportResponse struct {
	Month  string                         `json:"month,omitempty"`
	Stats  report.MaintenanceStats        `json:"stats"`
	Groups []report.MaintenanceMonthGroup `json:"groups,omitempty"`
}

// ReportHandler serves the computed reports.
type ReportHandler struct {
	src ReportSources
	now Clock
}

// NewReportHandler creates a new report handler
func NewReportHandler(src ReportSources, now Clock) *ReportHandler {
	return &ReportHandler{src: src, now: orNow(now)}
}

func computed(name string) {
	metrics.ReportComputations.WithLabelValues(name).Inc()
}

func (h *ReportHandler) FuelMonthly(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := requiredQuery(r, "vehicle_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	month, err := monthParam(r, h.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	entries, err := h.src.Fuel.FindFuelEntries(r.Context(), db.RecordFilter{VehicleID: vehicleID, Month: &month})
	if err != nil {
		writeError(w, r, err)
		return
	}
	computed("fuel_monthly")
	writeJSON(w, http.StatusOK, report.MonthlyFuelReport(entries, month))
}

func (h *ReportHandler) FuelConsumption(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := requiredQuery(r, "vehicle_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	entries, err := h.src.Fuel.FindFuelEntries(r.Context(), db.RecordFilter{VehicleID: vehicleID})
	if err != nil {
		writeError(w, r, err)
		return
	}
	computed("fuel_consumption")
	writeJSON(w, http.StatusOK, report.ConsumptionSeries(entries))
}

func (h *ReportHandler) FuelFleet(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r, h.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	reports, err := h.src.fleetReports(r.Context(), month)
	if err != nil {
		writeError(w, r, err)
		return
	}
	computed("fuel_fleet")
	writeJSON(w, http.StatusOK, reports)
}

func (h *ReportHandler) Ranking(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r, h.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	vehicles, err := h.src.Vehicles.FindVehicles(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	entries, err := h.src.Fuel.FindFuelEntries(r.Context(), db.RecordFilter{Month: &month})
	if err != nil {
		writeError(w, r, err)
		return
	}
	computed("ranking")
	writeJSON(w, http.StatusOK, report.RankVehicles(vehicles, entries))
}

func (h *ReportHandler) Technicians(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r, h.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := h.src.technicianReport(r.Context(), month)
	if err != nil {
		writeError(w, r, err)
		return
	}
	computed("technicians")
	writeJSON(w, http.StatusOK, resp)
}

func (h *ReportHandler) Maintenance(w http.ResponseWriter, r *http.Request) {
	month, err := optionalMonth(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	filter := db.RecordFilter{VehicleID: strings.TrimSpace(r.URL.Query().Get("vehicle_id")), Month: month}
	records, err := h.src.Maintenance.FindMaintenance(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	vehicles, err := h.src.Vehicles.FindVehicles(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := MaintenanceReportResponse{Stats: report.BuildMaintenanceStats(records, vehicles)}
	if month != nil {
		resp.Month = month.String()
	} else {
		resp.Groups = report.GroupMaintenanceByMonth(records)
	}
	computed("maintenance")
	writeJSON(w, http.StatusOK, resp)
}

func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r, h.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	ctx := r.Context()
	cities, err := h.src.Cities.FindCities(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	entries, err := h.src.Technicians.FindTechnicianEntries(ctx, db.RecordFilter{Month: &month})
	if err != nil {
		writeError(w, r, err)
		return
	}
	fuel, err := h.src.Fuel.FindFuelEntries(ctx, db.RecordFilter{Month: &month})
	if err != nil {
		writeError(w, r, err)
		return
	}
	computed("dashboard")
	writeJSON(w, http.StatusOK, report.BuildDashboard(len(cities), entries, fuel, month))
}

// fleetReports loads the full fuel history so that only vehicles that never
// refueled are left out.
func (s ReportSources) fleetReports(ctx context.Context, month models.YearMonth) ([]report.VehicleFuelReport, error) {
	vehicles, err := s.Vehicles.FindVehicles(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.Fuel.FindFuelEntries(ctx, db.RecordFilter{})
	if err != nil {
		return nil, err
	}
	return report.FleetMonthlyReports(vehicles, entries, month), nil
}

func (s ReportSources) technicianReport(ctx context.Context, month models.YearMonth) (*TechnicianReportResponse, error) {
	cfg, err := s.Settings.GetTechnicianConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load technician settings: %w", err)
	}
	cities, err := s.Cities.FindCities(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.Technicians.FindTechnicianEntries(ctx, db.RecordFilter{Month: &month})
	if err != nil {
		return nil, err
	}
	reports := report.BuildCityReports(entries, cities, cfg.ServiceOrderValue)
	return &TechnicianReportResponse{
		Month:             month.String(),
		ServiceOrderValue: cfg.ServiceOrderValue,
		Cities:            reports,
		Totals:            report.SummarizeCityReports(reports),
	}, nil
}
