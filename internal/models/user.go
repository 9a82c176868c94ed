package models

// Role represents user roles in the system
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleOperator Role = "operator"
	RoleViewer   Role = "viewer"
)

// Actions checked by HasPermission.
const (
	ActionViewReports       = "view_reports"
	ActionManageVehicles    = "manage_vehicles"
	ActionManageFuel        = "manage_fuel"
	ActionManageMaintenance = "manage_maintenance"
	ActionManageTechnicians = "manage_technicians"
	ActionManageSettings    = "manage_settings"
	ActionManageAttachments = "manage_attachments"
)

// Claims represents the verified identity carried by a bearer token
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Exp    int64  `json:"exp"`
}

// IsValidRole checks if a role is valid
func IsValidRole(role Role) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleOperator, RoleViewer:
		return true
	default:
		return false
	}
}

// HasPermission checks if the caller may perform a specific action
func (c *Claims) HasPermission(action string) bool {
	switch c.Role {
	case RoleAdmin:
		return true
	case RoleManager:
		return action != ActionManageSettings
	case RoleOperator:
		return action == ActionViewReports || action == ActionManageFuel ||
			action == ActionManageMaintenance || action == ActionManageTechnicians ||
			action == ActionManageAttachments
	case RoleViewer:
		return action == ActionViewReports
	default:
		return false
	}
}
