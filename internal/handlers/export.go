package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/ukydev/fleet-control/internal/db"
	"github.com/ukydev/fleet-control/internal/export"
	"github.com/ukydev/fleet-control/internal/storage"
)

const (
	csvContentType  = "text/csv; charset=utf-8"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportHandler renders reports as downloadable files.
type ExportHandler struct {
	src ReportSources
	now Clock
}

// NewExportHandler creates a new export handler
func NewExportHandler(src ReportSources, now Clock) *ExportHandler {
	return &ExportHandler{src: src, now: orNow(now)}
}

func (h *ExportHandler) FuelCSV(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := requiredQuery(r, "vehicle_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	vehicle, err := h.src.Vehicles.FindVehicleByID(r.Context(), vehicleID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	entries, err := h.src.Fuel.FindFuelEntries(r.Context(), db.RecordFilter{VehicleID: vehicleID})
	if err != nil {
		writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.FuelCSV(&buf, entries); err != nil {
		writeError(w, r, fmt.Errorf("render fuel csv: %w", err))
		return
	}
	name := fmt.Sprintf("abastecimentos_%s.csv", storage.SanitizeFileName(vehicle.LicensePlate))
	sendFile(w, buf.Bytes(), csvContentType, name)
}

func (h *ExportHandler) TechniciansCSV(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r, h.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	rep, err := h.src.technicianReport(r.Context(), month)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.TechniciansCSV(&buf, rep.Cities); err != nil {
		writeError(w, r, fmt.Errorf("render technicians csv: %w", err))
		return
	}
	sendFile(w, buf.Bytes(), csvContentType, fmt.Sprintf("tecnicos_%s.csv", month))
}

// MaintenanceXLSX exports the month given, or the whole history.
func (h *ExportHandler) MaintenanceXLSX(w http.ResponseWriter, r *http.Request) {
	month, err := optionalMonth(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	records, err := h.src.Maintenance.FindMaintenance(r.Context(), db.RecordFilter{Month: month})
	if err != nil {
		writeError(w, r, err)
		return
	}
	vehicles, err := h.src.Vehicles.FindVehicles(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.MaintenanceWorkbook(&buf, records, vehicles, month, h.now()); err != nil {
		writeError(w, r, fmt.Errorf("render maintenance workbook: %w", err))
		return
	}
	period := "completo"
	if month != nil {
		period = fmt.Sprintf("%02d-%04d", int(month.Month), month.Year)
	}
	sendFile(w, buf.Bytes(), xlsxContentType, fmt.Sprintf("manutencao_veiculos_%s.xlsx", period))
}

func (h *ExportHandler) FleetXLSX(w http.ResponseWriter, r *http.Request) {
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

	var buf bytes.Buffer
	if err := export.FleetWorkbook(&buf, reports, month); err != nil {
		writeError(w, r, fmt.Errorf("render fleet workbook: %w", err))
		return
	}
	sendFile(w, buf.Bytes(), xlsxContentType, fmt.Sprintf("relatorio_frota_%s.xlsx", month))
}

func sendFile(w http.ResponseWriter, data []byte, contentType, name string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
