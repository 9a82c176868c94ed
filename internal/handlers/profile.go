package handlers

import (
	"net/http"
	"time"

	"github.com/ukydev/fleet-control/internal/middleware"
	"github.com/ukydev/fleet-control/internal/models"
)

var allActions = []string{
	models.ActionViewReports,
	models.ActionManageVehicles,
	models.ActionManageFuel,
	models.ActionManageMaintenance,
	models.ActionManageTechnicians,
	models.ActionManageSettings,
	models.ActionManageAttachments,
}

// ProfileHandler describes the caller behind the bearer token.
type ProfileHandler struct{}

// NewProfileHandler creates a new profile handler
func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{}
}

// ProfileResponse is the verified identity and what it may do.
type ProfileResponse struct {
	UserID      string      `json:"user_id"`
	Email       string      `json:"email"`
	Role        models.Role `json:"role"`
	ExpiresAt   time.Time   `json:"expires_at"`
	Permissions []string    `json:"permissions"`
}

// GetProfile returns the current caller's identity
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	resp := ProfileResponse{
		UserID:      claims.UserID,
		Email:       claims.Email,
		Role:        claims.Role,
		ExpiresAt:   time.Unix(claims.Exp, 0).UTC(),
		Permissions: []string{},
	}
	for _, action := range allActions {
		if claims.HasPermission(action) {
			resp.Permissions = append(resp.Permissions, action)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
