// Package handlers implements the REST resources of the fleet API.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ukydev/fleet-control/internal/db"
	"github.com/ukydev/fleet-control/internal/middleware"
	"github.com/ukydev/fleet-control/internal/models"
	"github.com/ukydev/fleet-control/internal/storage"
)

// Clock returns the current time. Handlers take one so tests can pin "today".
type Clock func() time.Time

func orNow(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to HTTP statuses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, db.ErrInvalidID):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, db.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, storage.ErrNotConfigured):
		http.Error(w, "Attachment storage is not configured", http.StatusServiceUnavailable)
	default:
		middleware.LoggerFromContext(r.Context()).WithError(err).Error("Request handler failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", models.ErrValidation, err)
	}
	return nil
}

// monthParam reads ?month=YYYY-MM, defaulting to the current month.
func monthParam(r *http.Request, now time.Time) (models.YearMonth, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("month"))
	if raw == "" {
		return models.CurrentYearMonth(now), nil
	}
	ym, err := models.ParseYearMonth(raw)
	if err != nil {
		return models.YearMonth{}, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}
	return ym, nil
}

// optionalMonth reads ?month=YYYY-MM and returns nil when it is absent.
func optionalMonth(r *http.Request) (*models.YearMonth, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("month"))
	if raw == "" {
		return nil, nil
	}
	ym, err := models.ParseYearMonth(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}
	return &ym, nil
}

func requiredQuery(r *http.Request, name string) (string, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return "", fmt.Errorf("%w: %s is required", models.ErrValidation, name)
	}
	return v, nil
}
