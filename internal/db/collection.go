package db

import (
	"context"

	"github.com/ukydev/fleet-control/internal/models"
)

// VehicleCollection defines the interface for vehicle data operations.
type VehicleCollection interface {
	InsertVehicle(ctx context.Context, vehicle models.Vehicle) error
	FindVehicles(ctx context.Context) ([]models.Vehicle, error)
	FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error)
	UpdateVehicle(ctx context.Context, id string, vehicle models.Vehicle) error
	DeleteVehicle(ctx context.Context, id string) error
}

// FuelEntryCollection defines the interface for fuel log operations.
type FuelEntryCollection interface {
	InsertFuelEntry(ctx context.Context, entry models.FuelEntry) error
	FindFuelEntries(ctx context.Context, filter RecordFilter) ([]models.FuelEntry, error)
	FindFuelEntryByID(ctx context.Context, id string) (*models.FuelEntry, error)
	UpdateFuelEntry(ctx context.Context, id string, entry models.FuelEntry) error
	DeleteFuelEntry(ctx context.Context, id string) error
	DeleteFuelEntriesByVehicle(ctx context.Context, vehicleID string) (int64, error)
}

// MaintenanceCollection defines the interface for maintenance record operations.
type MaintenanceCollection interface {
	InsertMaintenance(ctx context.Context, record models.MaintenanceRecord) error
	FindMaintenance(ctx context.Context, filter RecordFilter) ([]models.MaintenanceRecord, error)
	FindMaintenanceByID(ctx context.Context, id string) (*models.MaintenanceRecord, error)
	UpdateMaintenance(ctx context.Context, id string, record models.MaintenanceRecord) error
	DeleteMaintenance(ctx context.Context, id string) error
}

// CityCollection defines the interface for city operations.
type CityCollection interface {
	InsertCity(ctx context.Context, city models.City) error
	FindCities(ctx context.Context) ([]models.City, error)
	FindCityByID(ctx context.Context, id string) (*models.City, error)
	UpdateCity(ctx context.Context, id string, city models.City) error
	DeleteCity(ctx context.Context, id string) error
}

// TechnicianCollection defines the interface for technician field entry operations.
type TechnicianCollection interface {
	InsertTechnicianEntry(ctx context.Context, entry models.TechnicianEntry) error
	FindTechnicianEntries(ctx context.Context, filter RecordFilter) ([]models.TechnicianEntry, error)
	FindTechnicianEntryByID(ctx context.Context, id string) (*models.TechnicianEntry, error)
	UpdateTechnicianEntry(ctx context.Context, id string, entry models.TechnicianEntry) error
	DeleteTechnicianEntry(ctx context.Context, id string) error
}

// SettingsCollection stores singleton configuration documents.
type SettingsCollection interface {
	GetTechnicianConfig(ctx context.Context) (models.TechnicianConfig, error)
	SaveTechnicianConfig(ctx context.Context, cfg models.TechnicianConfig) error
}

// AttachmentCollection defines the interface for attachment metadata operations.
type AttachmentCollection interface {
	InsertAttachment(ctx context.Context, attachment models.Attachment) error
	FindAttachments(ctx context.Context, filter AttachmentFilter) ([]models.Attachment, error)
	FindAttachmentByID(ctx context.Context, id string) (*models.Attachment, error)
	DeleteAttachment(ctx context.Context, id string) error
}
