package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ukydev/fleet-control/internal/db"
	"github.com/ukydev/fleet-control/internal/middleware"
	"github.com/ukydev/fleet-control/internal/models"
	"github.com/ukydev/fleet-control/internal/report"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VehicleHandler serves the vehicle registry and its oil and IPVA status.
type VehicleHandler struct {
	vehicles db.VehicleCollection
	fuel     db.FuelEntryCollection
	now      Clock
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(vehicles db.VehicleCollection, fuel db.FuelEntryCollection, now Clock) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles, fuel: fuel, now: orNow(now)}
}

// OilStatusResponse is returned by GET /api/vehicles/{id}/oil-status.
type OilStatusResponse struct {
	DistanceSinceKm int                     `json:"distance_since_km"`
	Status          *report.OilChangeStatus `json:"status"`
	SuggestedKm     *int                    `json:"suggested_km,omitempty"`
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicles.FindVehicles(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var v models.Vehicle
	if err := decodeJSON(r, &v); err != nil {
		writeError(w, r, err)
		return
	}
	if err := v.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	now := h.now()
	v.ID = primitive.NewObjectID()
	v.CreatedAt = now
	v.UpdatedAt = now
	if err := h.vehicles.InsertVehicle(r.Context(), v); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	v, err := h.vehicles.FindVehicleByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := h.vehicles.FindVehicleByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var v models.Vehicle
	if err := decodeJSON(r, &v); err != nil {
		writeError(w, r, err)
		return
	}
	if err := v.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	v.ID = existing.ID
	v.CreatedAt = existing.CreatedAt
	v.UpdatedAt = h.now()
	if err := h.vehicles.UpdateVehicle(r.Context(), id, v); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// Delete removes the vehicle and its fuel history.
func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.vehicles.DeleteVehicle(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	removed, err := h.fuel.DeleteFuelEntriesByVehicle(r.Context(), id)
	if err != nil {
		writeError(w, r, fmt.Errorf("delete fuel entries of vehicle %s: %w", id, err))
		return
	}
	middleware.LoggerFromContext(r.Context()).WithField("vehicle_id", id).
		WithField("fuel_entries", removed).Info("Vehicle deleted")
	w.WriteHeader(http.StatusNoContent)
}

// RecordOilChange stores the date and odometer of the latest oil change.
func (h *VehicleHandler) RecordOilChange(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var change models.OilChange
	if err := decodeJSON(r, &change); err != nil {
		writeError(w, r, err)
		return
	}
	if err := change.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	v, err := h.vehicles.FindVehicleByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	date, km := change.Date, change.OdometerKm
	v.LastOilChangeDate = &date
	v.LastOilChangeKm = &km
	v.UpdatedAt = h.now()
	if err := h.vehicles.UpdateVehicle(r.Context(), id, *v); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *VehicleHandler) OilStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	v, err := h.vehicles.FindVehicleByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	entries, err := h.fuel.FindFuelEntries(r.Context(), db.RecordFilter{VehicleID: id})
	if err != nil {
		writeError(w, r, err)
		return
	}

	distance := report.DistanceSinceOilChange(entries, v.LastOilChangeDate, v.LastOilChangeKm)
	resp := OilStatusResponse{
		DistanceSinceKm: distance,
		Status:          report.ClassifyOilStatus(distance, v.LastOilChangeDate, models.DateOf(h.now())),
	}
	if km, ok := report.SuggestedOilChangeKm(entries); ok {
		resp.SuggestedKm = &km
	}
	writeJSON(w, http.StatusOK, resp)
}

// PayIPVA marks the tax as paid and moves the due date one year ahead.
func (h *VehicleHandler) PayIPVA(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	v, err := h.vehicles.FindVehicleByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if v.IPVADueDate == nil || v.IPVADueDate.IsZero() {
		writeError(w, r, fmt.Errorf("%w: vehicle has no IPVA due date", models.ErrValidation))
		return
	}

	next := report.NextIPVADueDate(*v.IPVADueDate)
	v.IPVADueDate = &next
	v.IPVAPaid = true
	v.UpdatedAt = h.now()
	if err := h.vehicles.UpdateVehicle(r.Context(), id, *v); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// IPVAStatus returns the tax status, or null when no due date is set.
func (h *VehicleHandler) IPVAStatus(w http.ResponseWriter, r *http.Request) {
	v, err := h.vehicles.FindVehicleByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report.ClassifyIPVA(v.IPVADueDate, models.DateOf(h.now())))
}
