package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/ukydev/fleet-control/internal/db"
	"github.com/ukydev/fleet-control/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaintenanceHandler serves maintenance expense records.
type MaintenanceHandler struct {
	records db.MaintenanceCollection
	now     Clock
}

// NewMaintenanceHandler creates a new maintenance handler
func NewMaintenanceHandler(records db.MaintenanceCollection, now Clock) *MaintenanceHandler {
	return &MaintenanceHandler{records: records, now: orNow(now)}
}

func (h *MaintenanceHandler) List(w http.ResponseWriter, r *http.Request) {
	month, err := optionalMonth(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	filter := db.RecordFilter{VehicleID: strings.TrimSpace(r.URL.Query().Get("vehicle_id")), Month: month}
	records, err := h.records.FindMaintenance(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *MaintenanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var rec models.MaintenanceRecord
	if err := decodeJSON(r, &rec); err != nil {
		writeError(w, r, err)
		return
	}
	if err := rec.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	now := h.now()
	rec.ID = primitive.NewObjectID()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if err := h.records.InsertMaintenance(r.Context(), rec); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *MaintenanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.records.FindMaintenanceByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *MaintenanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := h.records.FindMaintenanceByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var rec models.MaintenanceRecord
	if err := decodeJSON(r, &rec); err != nil {
		writeError(w, r, err)
		return
	}
	if err := rec.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	rec.ID = existing.ID
	rec.CreatedAt = existing.CreatedAt
	rec.UpdatedAt = h.now()
	if err := h.records.UpdateMaintenance(r.Context(), id, rec); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *MaintenanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.records.DeleteMaintenance(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
