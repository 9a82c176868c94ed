package db

import (
	"context"

	"github.com/ukydev/fleet-control/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InsertVehicle inserts a vehicle record into the collection.
func (c *MongoCollection) InsertVehicle(ctx context.Context, vehicle models.Vehicle) error {
	return c.insert(ctx, vehicle)
}

// FindVehicles returns all vehicles in creation order.
func (c *MongoCollection) FindVehicles(ctx context.Context) ([]models.Vehicle, error) {
	vehicles := []models.Vehicle{}
	if err := c.find(ctx, bson.M{}, &vehicles, sortBy("created_at", 1)); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// FindVehicleByID finds a vehicle by its ID.
func (c *MongoCollection) FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := c.findByID(ctx, id, &vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// UpdateVehicle updates a vehicle by its ID.
func (c *MongoCollection) UpdateVehicle(ctx context.Context, id string, vehicle models.Vehicle) error {
	vehicle.ID = primitive.NilObjectID
	return c.replaceByID(ctx, id, vehicle)
}

// DeleteVehicle deletes a vehicle by its ID.
func (c *MongoCollection) DeleteVehicle(ctx context.Context, id string) error {
	return c.deleteByID(ctx, id)
}
