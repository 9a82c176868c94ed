package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/ukydev/fleet-control/internal/db"
	"github.com/ukydev/fleet-control/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TechnicianHandler serves cities, technician field entries and the
// service order unit value.
type TechnicianHandler struct {
	cities   db.CityCollection
	entries  db.TechnicianCollection
	settings db.SettingsCollection
	now      Clock
}

// NewTechnicianHandler creates a new technician handler
func NewTechnicianHandler(cities db.CityCollection, entries db.TechnicianCollection, settings db.SettingsCollection, now Clock) *TechnicianHandler {
	return &TechnicianHandler{cities: cities, entries: entries, settings: settings, now: orNow(now)}
}

func (h *TechnicianHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.cities.FindCities(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cities)
}

func (h *TechnicianHandler) CreateCity(w http.ResponseWriter, r *http.Request) {
	var city models.City
	if err := decodeJSON(r, &city); err != nil {
		writeError(w, r, err)
		return
	}
	city.Name = strings.TrimSpace(city.Name)
	if err := city.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	city.ID = primitive.NewObjectID()
	city.CreatedAt = h.now()
	if err := h.cities.InsertCity(r.Context(), city); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, city)
}

func (h *TechnicianHandler) UpdateCity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := h.cities.FindCityByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var city models.City
	if err := decodeJSON(r, &city); err != nil {
		writeError(w, r, err)
		return
	}
	city.Name = strings.TrimSpace(city.Name)
	if err := city.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	city.ID = existing.ID
	city.CreatedAt = existing.CreatedAt
	if err := h.cities.UpdateCity(r.Context(), id, city); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, city)
}

// DeleteCity removes the city. Its entries show up as unmapped afterwards.
func (h *TechnicianHandler) DeleteCity(w http.ResponseWriter, r *http.Request) {
	if err := h.cities.DeleteCity(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TechnicianHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	month, err := optionalMonth(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	entries, err := h.entries.FindTechnicianEntries(r.Context(), db.RecordFilter{Month: month})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *TechnicianHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var entry models.TechnicianEntry
	if err := decodeJSON(r, &entry); err != nil {
		writeError(w, r, err)
		return
	}
	if err := entry.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = h.now()
	if err := h.entries.InsertTechnicianEntry(r.Context(), entry); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *TechnicianHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := h.entries.FindTechnicianEntryByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var entry models.TechnicianEntry
	if err := decodeJSON(r, &entry); err != nil {
		writeError(w, r, err)
		return
	}
	if err := entry.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	entry.ID = existing.ID
	entry.CreatedAt = existing.CreatedAt
	if err := h.entries.UpdateTechnicianEntry(r.Context(), id, entry); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *TechnicianHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.entries.DeleteTechnicianEntry(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TechnicianHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.settings.GetTechnicianConfig(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (h *TechnicianHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var cfg models.TechnicianConfig
	if err := decodeJSON(r, &cfg); err != nil {
		writeError(w, r, err)
		return
	}
	if err := cfg.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	cfg.UpdatedAt = h.now()
	if err := h.settings.SaveTechnicianConfig(r.Context(), cfg); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}
