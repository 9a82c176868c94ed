package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/ukydev/fleet-control/internal/db"
	"github.com/ukydev/fleet-control/internal/models"
	"github.com/ukydev/fleet-control/internal/notify"
	"github.com/ukydev/fleet-control/internal/storage"
)

// MockVehicleCollection is a mock implementation of VehicleCollection
type MockVehicleCollection struct {
	mock.Mock
}

func (m *MockVehicleCollection) InsertVehicle(ctx context.Context, vehicle models.Vehicle) error {
	return m.Called(ctx, vehicle).Error(0)
}

func (m *MockVehicleCollection) FindVehicles(ctx context.Context) ([]models.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vehicle), args.Error(1)
}

func (m *MockVehicleCollection) FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleCollection) UpdateVehicle(ctx context.Context, id string, vehicle models.Vehicle) error {
	return m.Called(ctx, id, vehicle).Error(0)
}

func (m *MockVehicleCollection) DeleteVehicle(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockFuelCollection is a mock implementation of FuelEntryCollection
type MockFuelCollection struct {
	mock.Mock
}

func (m *MockFuelCollection) InsertFuelEntry(ctx context.Context, entry models.FuelEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockFuelCollection) FindFuelEntries(ctx context.Context, filter db.RecordFilter) ([]models.FuelEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FuelEntry), args.Error(1)
}

func (m *MockFuelCollection) FindFuelEntryByID(ctx context.Context, id string) (*models.FuelEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FuelEntry), args.Error(1)
}

func (m *MockFuelCollection) UpdateFuelEntry(ctx context.Context, id string, entry models.FuelEntry) error {
	return m.Called(ctx, id, entry).Error(0)
}

func (m *MockFuelCollection) DeleteFuelEntry(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFuelCollection) DeleteFuelEntriesByVehicle(ctx context.Context, vehicleID string) (int64, error) {
	args := m.Called(ctx, vehicleID)
	return args.Get(0).(int64), args.Error(1)
}

// MockMaintenanceCollection is a mock implementation of MaintenanceCollection
type MockMaintenanceCollection struct {
	mock.Mock
}

func (m *MockMaintenanceCollection) InsertMaintenance(ctx context.Context, record models.MaintenanceRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockMaintenanceCollection) FindMaintenance(ctx context.Context, filter db.RecordFilter) ([]models.MaintenanceRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MaintenanceRecord), args.Error(1)
}

func (m *MockMaintenanceCollection) FindMaintenanceByID(ctx context.Context, id string) (*models.MaintenanceRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MaintenanceRecord), args.Error(1)
}

func (m *MockMaintenanceCollection) UpdateMaintenance(ctx context.Context, id string, record models.MaintenanceRecord) error {
	return m.Called(ctx, id, record).Error(0)
}

func (m *MockMaintenanceCollection) DeleteMaintenance(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockCityCollection is a mock implementation of CityCollection
type MockCityCollection struct {
	mock.Mock
}

func (m *MockCityCollection) InsertCity(ctx context.Context, city models.City) error {
	return m.Called(ctx, city).Error(0)
}

func (m *MockCityCollection) FindCities(ctx context.Context) ([]models.City, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.City), args.Error(1)
}

func (m *MockCityCollection) FindCityByID(ctx context.Context, id string) (*models.City, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.City), args.Error(1)
}

func (m *MockCityCollection) UpdateCity(ctx context.Context, id string, city models.City) error {
	return m.Called(ctx, id, city).Error(0)
}

func (m *MockCityCollection) DeleteCity(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockTechnicianCollection is a mock implementation of TechnicianCollection
type MockTechnicianCollection struct {
	mock.Mock
}

func (m *MockTechnicianCollection) InsertTechnicianEntry(ctx context.Context, entry models.TechnicianEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockTechnicianCollection) FindTechnicianEntries(ctx context.Context, filter db.RecordFilter) ([]models.TechnicianEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TechnicianEntry), args.Error(1)
}

func (m *MockTechnicianCollection) FindTechnicianEntryByID(ctx context.Context, id string) (*models.TechnicianEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TechnicianEntry), args.Error(1)
}

func (m *MockTechnicianCollection) UpdateTechnicianEntry(ctx context.Context, id string, entry models.TechnicianEntry) error {
	return m.Called(ctx, id, entry).Error(0)
}

func (m *MockTechnicianCollection) DeleteTechnicianEntry(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockSettingsCollection is a mock implementation of SettingsCollection
type MockSettingsCollection struct {
	mock.Mock
}

func (m *MockSettingsCollection) GetTechnicianConfig(ctx context.Context) (models.TechnicianConfig, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.TechnicianConfig), args.Error(1)
}

func (m *MockSettingsCollection) SaveTechnicianConfig(ctx context.Context, cfg models.TechnicianConfig) error {
	return m.Called(ctx, cfg).Error(0)
}

// MockAttachmentCollection is a mock implementation of AttachmentCollection
type MockAttachmentCollection struct {
	mock.Mock
}

func (m *MockAttachmentCollection) InsertAttachment(ctx context.Context, attachment models.Attachment) error {
	return m.Called(ctx, attachment).Error(0)
}

func (m *MockAttachmentCollection) FindAttachments(ctx context.Context, filter db.AttachmentFilter) ([]models.Attachment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Attachment), args.Error(1)
}

func (m *MockAttachmentCollection) FindAttachmentByID(ctx context.Context, id string) (*models.Attachment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Attachment), args.Error(1)
}

func (m *MockAttachmentCollection) DeleteAttachment(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockObjectStore is a mock implementation of storage.ObjectStore
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) PresignUpload(ctx context.Context, key, contentType string, size int64) (storage.PresignedURL, error) {
	args := m.Called(ctx, key, contentType, size)
	return args.Get(0).(storage.PresignedURL), args.Error(1)
}

func (m *MockObjectStore) PresignDownload(ctx context.Context, key, fileName string) (storage.PresignedURL, error) {
	args := m.Called(ctx, key, fileName)
	return args.Get(0).(storage.PresignedURL), args.Error(1)
}

func (m *MockObjectStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// MockOilChecker is a mock implementation of OilChecker
type MockOilChecker struct {
	mock.Mock
}

func (m *MockOilChecker) CheckVehicle(ctx context.Context, vehicle models.Vehicle, entries []models.FuelEntry) (*notify.OilAlert, error) {
	args := m.Called(ctx, vehicle, entries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notify.OilAlert), args.Error(1)
}

// withURLParam sets a chi route parameter the way the router would.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
