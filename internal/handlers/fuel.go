package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/ukydev/fleet-control/internal/db"
	"github.com/ukydev/fleet-control/internal/middleware"
	"github.com/ukydev/fleet-control/internal/models"
	"github.com/ukydev/fleet-control/internal/notify"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OilChecker publishes oil-change alerts after refueling.
type OilChecker interface {
	CheckVehicle(ctx context.Context, vehicle models.Vehicle, entries []models.FuelEntry) (*notify.OilAlert, error)
}

// FuelHandler serves fuel log entries.
type FuelHandler struct {
	fuel     db.FuelEntryCollection
	vehicles db.VehicleCollection
	oil      OilChecker
	now      Clock
}

// NewFuelHandler creates a new fuel handler. oil may be nil.
func NewFuelHandler(fuel db.FuelEntryCollection, vehicles db.VehicleCollection, oil OilChecker, now Clock) *FuelHandler {
	return &FuelHandler{fuel: fuel, vehicles: vehicles, oil: oil, now: orNow(now)}
}

func (h *FuelHandler) List(w http.ResponseWriter, r *http.Request) {
	month, err := optionalMonth(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	filter := db.RecordFilter{VehicleID: strings.TrimSpace(r.URL.Query().Get("vehicle_id")), Month: month}
	entries, err := h.fuel.FindFuelEntries(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *FuelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var entry models.FuelEntry
	if err := decodeJSON(r, &entry); err != nil {
		writeError(w, r, err)
		return
	}
	if err := entry.Validate(); err != nil {
		writeError(w, r, err)
		return
	}
	vehicle, err := h.vehicleOf(r.Context(), entry.VehicleID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = h.now()
	if err := h.fuel.InsertFuelEntry(r.Context(), entry); err != nil {
		writeError(w, r, err)
		return
	}

	h.checkOil(r, *vehicle)
	writeJSON(w, http.StatusCreated, entry)
}

func (h *FuelHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := h.fuel.FindFuelEntryByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var entry models.FuelEntry
	if err := decodeJSON(r, &entry); err != nil {
		writeError(w, r, err)
		return
	}
	if err := entry.Validate(); err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := h.vehicleOf(r.Context(), entry.VehicleID); err != nil {
		writeError(w, r, err)
		return
	}

	entry.ID = existing.ID
	entry.CreatedAt = existing.CreatedAt
	if err := h.fuel.UpdateFuelEntry(r.Context(), id, entry); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *FuelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.fuel.DeleteFuelEntry(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// vehicleOf loads the vehicle an entry refers to. An unknown vehicle is a
// client error, not a missing resource.
func (h *FuelHandler) vehicleOf(ctx context.Context, id string) (*models.Vehicle, error) {
	v, err := h.vehicles.FindVehicleByID(ctx, id)
	if errors.Is(err, db.ErrNotFound) || errors.Is(err, db.ErrInvalidID) {
		return nil, fmt.Errorf("%w: unknown vehicle %q", models.ErrValidation, id)
	}
	return v, err
}

// checkOil runs the alert check. Failures are logged only.
func (h *FuelHandler) checkOil(r *http.Request, vehicle models.Vehicle) {
	if h.oil == nil {
		return
	}
	logger := middleware.LoggerFromContext(r.Context()).WithField("vehicle_id", vehicle.ID.Hex())

	entries, err := h.fuel.FindFuelEntries(r.Context(), db.RecordFilter{VehicleID: vehicle.ID.Hex()})
	if err != nil {
		logger.WithError(err).Warn("Oil alert check skipped")
		return
	}
	if _, err := h.oil.CheckVehicle(r.Context(), vehicle, entries); err != nil {
		logger.WithError(err).Warn("Oil alert check failed")
	}
}
