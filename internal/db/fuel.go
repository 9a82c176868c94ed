package db

import (
	"context"

	"github.com/ukydev/fleet-control/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InsertFuelEntry inserts a fuel entry into the collection.
func (c *MongoCollection) InsertFuelEntry(ctx context.Context, entry models.FuelEntry) error {
	return c.insert(ctx, entry)
}

// FindFuelEntries returns the matching entries sorted by date ascending.
func (c *MongoCollection) FindFuelEntries(ctx context.Context, filter RecordFilter) ([]models.FuelEntry, error) {
	entries := []models.FuelEntry{}
	if err := c.find(ctx, filter.BSON(), &entries, sortBy("date", 1)); err != nil {
		return nil, err
	}
	return entries, nil
}

// FindFuelEntryByID finds a fuel entry by its ID.
func (c *MongoCollection) FindFuelEntryByID(ctx context.Context, id string) (*models.FuelEntry, error) {
	var entry models.FuelEntry
	if err := c.findByID(ctx, id, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateFuelEntry updates a fuel entry by its ID.
func (c *MongoCollection) UpdateFuelEntry(ctx context.Context, id string, entry models.FuelEntry) error {
	entry.ID = primitive.NilObjectID
	return c.replaceByID(ctx, id, entry)
}

// DeleteFuelEntry deletes a fuel entry by its ID.
func (c *MongoCollection) DeleteFuelEntry(ctx context.Context, id string) error {
	return c.deleteByID(ctx, id)
}

// DeleteFuelEntriesByVehicle removes every fuel entry of a vehicle.
func (c *MongoCollection) DeleteFuelEntriesByVehicle(ctx context.Context, vehicleID string) (int64, error) {
	if c.Collection == nil {
		return 0, errNilCollection
	}
	result, err := c.Collection.DeleteMany(ctx, bson.M{"vehicle_id": vehicleID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
