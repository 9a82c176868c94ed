package db

import (
	"context"

	"github.com/ukydev/fleet-control/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InsertMaintenance inserts a maintenance record into the collection.
func (c *MongoCollection) InsertMaintenance(ctx context.Context, record models.MaintenanceRecord) error {
	return c.insert(ctx, record)
}

// FindMaintenance returns the matching records, newest first.
func (c *MongoCollection) FindMaintenance(ctx context.Context, filter RecordFilter) ([]models.MaintenanceRecord, error) {
	records := []models.MaintenanceRecord{}
	if err := c.find(ctx, filter.BSON(), &records, sortBy("date", -1)); err != nil {
		return nil, err
	}
	return records, nil
}

// FindMaintenanceByID finds a maintenance record by its ID.
func (c *MongoCollection) FindMaintenanceByID(ctx context.Context, id string) (*models.MaintenanceRecord, error) {
	var record models.MaintenanceRecord
	if err := c.findByID(ctx, id, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateMaintenance updates a maintenance record by its ID.
func (c *MongoCollection) UpdateMaintenance(ctx context.Context, id string, record models.MaintenanceRecord) error {
	record.ID = primitive.NilObjectID
	return c.replaceByID(ctx, id, record)
}

// DeleteMaintenance deletes a maintenance record by its ID.
func (c *MongoCollection) DeleteMaintenance(ctx context.Context, id string) error {
	return c.deleteByID(ctx, id)
}
