package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-control/internal/db"
	"github.com/ukydev/fleet-control/internal/models"
	"github.com/ukydev/fleet-control/internal/report"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var fixedNow = time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func datePtr(s string) *models.Date {
	d := models.MustParseDate(s)
	return &d
}

func intPtr(v int) *int { return &v }

func newVehicleHandler() (*VehicleHandler, *MockVehicleCollection, *MockFuelCollection) {
	vehicles := new(MockVehicleCollection)
	fuel := new(MockFuelCollection)
	return NewVehicleHandler(vehicles, fuel, fixedClock), vehicles, fuel
}

func TestVehicleHandler_Create(t *testing.T) {
	h, vehicles, _ := newVehicleHandler()
	vehicles.On("InsertVehicle", mock.Anything, mock.MatchedBy(func(v models.Vehicle) bool {
		return v.Model == "Gol" && !v.ID.IsZero() && v.CreatedAt.Equal(fixedNow)
	})).Return(nil)

	body := `{"model":"Gol","license_plate":"ABC1D23","year":2020,"ipva_due_date":"2024-09-10"}`
	req := httptest.NewRequest(http.MethodPost, "/api/vehicles", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	var got models.Vehicle
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, "ABC1D23", got.LicensePlate)
	require.NotNil(t, got.IPVADueDate)
	assert.Equal(t, "2024-09-10", got.IPVADueDate.String())
	vehicles.AssertExpectations(t)
}

func TestVehicleHandler_CreateRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad json", `{"model":`},
		{"missing plate", `{"model":"Gol","year":2020}`},
		{"year out of range", `{"model":"Gol","license_plate":"ABC1D23","year":1800}`},
		{"bad date", `{"model":"Gol","license_plate":"ABC1D23","year":2020,"ipva_due_date":"10/09/2024"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, vehicles, _ := newVehicleHandler()
			req := httptest.NewRequest(http.MethodPost, "/api/vehicles", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			h.Create(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			vehicles.AssertNotCalled(t, "InsertVehicle", mock.Anything, mock.Anything)
		})
	}
}

func TestVehicleHandler_Get(t *testing.T) {
	h, vehicles, _ := newVehicleHandler()
	id := primitive.NewObjectID()
	vehicles.On("FindVehicleByID", mock.Anything, id.Hex()).Return(&models.Vehicle{ID: id, Model: "Gol"}, nil)
	vehicles.On("FindVehicleByID", mock.Anything, "missing").Return(nil, db.ErrNotFound)
	vehicles.On("FindVehicleByID", mock.Anything, "zzz").Return(nil, db.ErrInvalidID)

	rr := httptest.NewRecorder()
	h.Get(rr, withURLParam(httptest.NewRequest(http.MethodGet, "/api/vehicles/"+id.Hex(), nil), "id", id.Hex()))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"model":"Gol"`)

	rr = httptest.NewRecorder()
	h.Get(rr, withURLParam(httptest.NewRequest(http.MethodGet, "/api/vehicles/missing", nil), "id", "missing"))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	h.Get(rr, withURLParam(httptest.NewRequest(http.MethodGet, "/api/vehicles/zzz", nil), "id", "zzz"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestVehicleHandler_UpdateKeepsCreatedAt(t *testing.T) {
	h, vehicles, _ := newVehicleHandler()
	id := primitive.NewObjectID()
	created := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	vehicles.On("FindVehicleByID", mock.Anything, id.Hex()).Return(&models.Vehicle{ID: id, CreatedAt: created}, nil)
	vehicles.On("UpdateVehicle", mock.Anything, id.Hex(), mock.MatchedBy(func(v models.Vehicle) bool {
		return v.ID == id && v.CreatedAt.Equal(created) && v.UpdatedAt.Equal(fixedNow) && v.Model == "Uno"
	})).Return(nil)

	body := `{"model":"Uno","license_plate":"XYZ9K88","year":2019}`
	req := withURLParam(httptest.NewRequest(http.MethodPut, "/api/vehicles/"+id.Hex(), strings.NewReader(body)), "id", id.Hex())
	rr := httptest.NewRecorder()
	h.Update(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	vehicles.AssertExpectations(t)
}

func TestVehicleHandler_DeleteCascadesFuel(t *testing.T) {
	h, vehicles, fuel := newVehicleHandler()
	vehicles.On("DeleteVehicle", mock.Anything, "v1").Return(nil)
	fuel.On("DeleteFuelEntriesByVehicle", mock.Anything, "v1").Return(int64(3), nil)

	rr := httptest.NewRecorder()
	h.Delete(rr, withURLParam(httptest.NewRequest(http.MethodDelete, "/api/vehicles/v1", nil), "id", "v1"))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	vehicles.AssertExpectations(t)
	fuel.AssertExpectations(t)
}

func TestVehicleHandler_DeleteUnknown(t *testing.T) {
	h, vehicles, fuel := newVehicleHandler()
	vehicles.On("DeleteVehicle", mock.Anything, "v1").Return(db.ErrNotFound)

	rr := httptest.NewRecorder()
	h.Delete(rr, withURLParam(httptest.NewRequest(http.MethodDelete, "/api/vehicles/v1", nil), "id", "v1"))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	fuel.AssertNotCalled(t, "DeleteFuelEntriesByVehicle", mock.Anything, mock.Anything)
}

func TestVehicleHandler_RecordOilChange(t *testing.T) {
	h, vehicles, _ := newVehicleHandler()
	vehicles.On("FindVehicleByID", mock.Anything, "v1").Return(&models.Vehicle{Model: "Gol"}, nil)
	vehicles.On("UpdateVehicle", mock.Anything, "v1", mock.MatchedBy(func(v models.Vehicle) bool {
		return v.LastOilChangeKm != nil && *v.LastOilChangeKm == 50000 &&
			v.LastOilChangeDate != nil && v.LastOilChangeDate.String() == "2024-06-01"
	})).Return(nil)

	body := `{"date":"2024-06-01","odometer_km":50000}`
	req := withURLParam(httptest.NewRequest(http.MethodPost, "/api/vehicles/v1/oil-change", strings.NewReader(body)), "id", "v1")
	rr := httptest.NewRecorder()
	h.RecordOilChange(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	vehicles.AssertExpectations(t)
}

func TestVehicleHandler_RecordOilChangeRejectsZeroKm(t *testing.T) {
	h, vehicles, _ := newVehicleHandler()

	body := `{"date":"2024-06-01","odometer_km":0}`
	req := withURLParam(httptest.NewRequest(http.MethodPost, "/api/vehicles/v1/oil-change", strings.NewReader(body)), "id", "v1")
	rr := httptest.NewRecorder()
	h.RecordOilChange(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	vehicles.AssertNotCalled(t, "FindVehicleByID", mock.Anything, mock.Anything)
}

func TestVehicleHandler_OilStatus(t *testing.T) {
	h, vehicles, fuel := newVehicleHandler()
	vehicles.On("FindVehicleByID", mock.Anything, "v1").Return(&models.Vehicle{
		LastOilChangeDate: datePtr("2024-05-01"),
		LastOilChangeKm:   intPtr(10000),
	}, nil)
	fuel.On("FindFuelEntries", mock.Anything, db.RecordFilter{VehicleID: "v1"}).Return([]models.FuelEntry{
		{VehicleID: "v1", Date: models.MustParseDate("2024-05-10"), OdometerKm: 10500, Liters: 40},
		{VehicleID: "v1", Date: models.MustParseDate("2024-06-10"), OdometerKm: 19800, Liters: 40},
	}, nil)

	rr := httptest.NewRecorder()
	h.OilStatus(rr, withURLParam(httptest.NewRequest(http.MethodGet, "/api/vehicles/v1/oil-status", nil), "id", "v1"))

	require.Equal(t, http.StatusOK, rr.Code)
	var got OilStatusResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, 9800, got.DistanceSinceKm)
	require.NotNil(t, got.Status)
	assert.Equal(t, report.OilDue, got.Status.Level)
	require.NotNil(t, got.SuggestedKm)
	assert.Equal(t, 19800, *got.SuggestedKm)
}

func TestVehicleHandler_OilStatusWithoutHistory(t *testing.T) {
	h, vehicles, fuel := newVehicleHandler()
	vehicles.On("FindVehicleByID", mock.Anything, "v1").Return(&models.Vehicle{}, nil)
	fuel.On("FindFuelEntries", mock.Anything, db.RecordFilter{VehicleID: "v1"}).Return([]models.FuelEntry{}, nil)

	rr := httptest.NewRecorder()
	h.OilStatus(rr, withURLParam(httptest.NewRequest(http.MethodGet, "/api/vehicles/v1/oil-status", nil), "id", "v1"))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"distance_since_km":0,"status":null}`, rr.Body.String())
}

func TestVehicleHandler_PayIPVA(t *testing.T) {
	h, vehicles, _ := newVehicleHandler()
	vehicles.On("FindVehicleByID", mock.Anything, "v1").Return(&models.Vehicle{IPVADueDate: datePtr("2024-05-10")}, nil)
	vehicles.On("UpdateVehicle", mock.Anything, "v1", mock.MatchedBy(func(v models.Vehicle) bool {
		return v.IPVAPaid && v.IPVADueDate.String() == "2025-05-10"
	})).Return(nil)

	rr := httptest.NewRecorder()
	h.PayIPVA(rr, withURLParam(httptest.NewRequest(http.MethodPost, "/api/vehicles/v1/ipva/pay", nil), "id", "v1"))

	assert.Equal(t, http.StatusOK, rr.Code)
	vehicles.AssertExpectations(t)
}

func TestVehicleHandler_PayIPVAWithoutDueDate(t *testing.T) {
	h, vehicles, _ := newVehicleHandler()
	vehicles.On("FindVehicleByID", mock.Anything, "v1").Return(&models.Vehicle{}, nil)

	rr := httptest.NewRecorder()
	h.PayIPVA(rr, withURLParam(httptest.NewRequest(http.MethodPost, "/api/vehicles/v1/ipva/pay", nil), "id", "v1"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	vehicles.AssertNotCalled(t, "UpdateVehicle", mock.Anything, mock.Anything, mock.Anything)
}

func TestVehicleHandler_IPVAStatus(t *testing.T) {
	h, vehicles, _ := newVehicleHandler()
	vehicles.On("FindVehicleByID", mock.Anything, "v1").Return(&models.Vehicle{IPVADueDate: datePtr("2024-07-20")}, nil)
	vehicles.On("FindVehicleByID", mock.Anything, "v2").Return(&models.Vehicle{}, nil)

	rr := httptest.NewRecorder()
	h.IPVAStatus(rr, withURLParam(httptest.NewRequest(http.MethodGet, "/api/vehicles/v1/ipva-status", nil), "id", "v1"))
	require.Equal(t, http.StatusOK, rr.Code)
	var got report.IPVAStatus
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, report.IPVAImminent, got.Level)
	assert.True(t, got.ShowPaymentAction)

	rr = httptest.NewRecorder()
	h.IPVAStatus(rr, withURLParam(httptest.NewRequest(http.MethodGet, "/api/vehicles/v2/ipva-status", nil), "id", "v2"))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "null", strings.TrimSpace(rr.Body.String()))
}

func TestVehicleHandler_ListStorageFailure(t *testing.T) {
	h, vehicles, _ := newVehicleHandler()
	vehicles.On("FindVehicles", mock.Anything).Return(nil, assert.AnError)

	rr := httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/api/vehicles", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), assert.AnError.Error())
}
