package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-control/internal/metrics"
	"github.com/ukydev/fleet-control/internal/models"
	"github.com/ukydev/fleet-control/internal/report"
)

// OilAlert is the message published when a vehicle needs an oil change.
type OilAlert struct {
	VehicleID       string          `json:"vehicle_id"`
	Model           string          `json:"model"`
	LicensePlate    string          `json:"license_plate"`
	Level           report.OilLevel `json:"level"`
	Message         string          `json:"message"`
	DistanceSinceKm int             `json:"distance_since_km"`
	MonthsSince     int             `json:"months_since"`
	GeneratedAt     time.Time       `json:"generated_at"`
}

// Notifier evaluates oil status and publishes alerts.
type Notifier struct {
	publisher Publisher
	topic     string
	now       func() time.Time
}

// NewNotifier creates a notifier publishing to topic.
func NewNotifier(publisher Publisher, topic string) *Notifier {
	return &Notifier{publisher: publisher, topic: topic, now: time.Now}
}

// CheckVehicle publishes an alert when the vehicle's oil change is due soon
// or due. It returns the alert that was published, or nil.
func (n *Notifier) CheckVehicle(ctx context.Context, vehicle models.Vehicle, entries []models.FuelEntry) (*OilAlert, error) {
	now := n.now()
	distance := report.DistanceSinceOilChange(entries, vehicle.LastOilChangeDate, vehicle.LastOilChangeKm)
	status := report.ClassifyOilStatus(distance, vehicle.LastOilChangeDate, models.DateOf(now))
	if status == nil || status.Level == report.OilOK {
		return nil, nil
	}

	alert := &OilAlert{
		VehicleID:       vehicle.ID.Hex(),
		Model:           vehicle.Model,
		LicensePlate:    vehicle.LicensePlate,
		Level:           status.Level,
		Message:         status.Message,
		DistanceSinceKm: status.DistanceKm,
		MonthsSince:     status.MonthsSince,
		GeneratedAt:     now.UTC(),
	}
	payload, err := json.Marshal(alert)
	if err != nil {
		return nil, fmt.Errorf("marshal oil alert: %w", err)
	}

	entry := log.WithFields(log.Fields{
		"vehicle_id": alert.VehicleID,
		"level":      alert.Level,
		"topic":      n.topic,
	})
	if err := n.publisher.Publish(ctx, n.topic, payload); err != nil {
		metrics.OilAlerts.WithLabelValues(string(alert.Level), "failed").Inc()
		entry.WithError(err).Error("Failed to publish oil alert")
		return nil, fmt.Errorf("publish oil alert: %w", err)
	}
	metrics.OilAlerts.WithLabelValues(string(alert.Level), "published").Inc()
	entry.Info("Oil alert published")
	return alert, nil
}
