package db

import (
	"context"
	"errors"
	"time"

	"github.com/ukydev/fleet-control/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const technicianConfigID = "technician"

// InsertCity inserts a city into the collection.
func (c *MongoCollection) InsertCity(ctx context.Context, city models.City) error {
	return c.insert(ctx, city)
}

// FindCities returns all cities sorted by name.
func (c *MongoCollection) FindCities(ctx context.Context) ([]models.City, error) {
	cities := []models.City{}
	if err := c.find(ctx, bson.M{}, &cities, sortBy("name", 1)); err != nil {
		return nil, err
	}
	return cities, nil
}

// FindCityByID finds a city by its ID.
func (c *MongoCollection) FindCityByID(ctx context.Context, id string) (*models.City, error) {
	var city models.City
	if err := c.findByID(ctx, id, &city); err != nil {
		return nil, err
	}
	return &city, nil
}

// UpdateCity updates a city by its ID.
func (c *MongoCollection) UpdateCity(ctx context.Context, id string, city models.City) error {
	city.ID = primitive.NilObjectID
	return c.replaceByID(ctx, id, city)
}

// DeleteCity deletes a city by its ID. Entries pointing at it become unmapped.
func (c *MongoCollection) DeleteCity(ctx context.Context, id string) error {
	return c.deleteByID(ctx, id)
}

// InsertTechnicianEntry inserts a field entry into the collection.
func (c *MongoCollection) InsertTechnicianEntry(ctx context.Context, entry models.TechnicianEntry) error {
	return c.insert(ctx, entry)
}

// FindTechnicianEntries returns the matching entries sorted by date ascending.
func (c *MongoCollection) FindTechnicianEntries(ctx context.Context, filter RecordFilter) ([]models.TechnicianEntry, error) {
	entries := []models.TechnicianEntry{}
	if err := c.find(ctx, filter.BSON(), &entries, sortBy("date", 1)); err != nil {
		return nil, err
	}
	return entries, nil
}

// FindTechnicianEntryByID finds a field entry by its ID.
func (c *MongoCollection) FindTechnicianEntryByID(ctx context.Context, id string) (*models.TechnicianEntry, error) {
	var entry models.TechnicianEntry
	if err := c.findByID(ctx, id, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateTechnicianEntry updates a field entry by its ID.
func (c *MongoCollection) UpdateTechnicianEntry(ctx context.Context, id string, entry models.TechnicianEntry) error {
	entry.ID = primitive.NilObjectID
	return c.replaceByID(ctx, id, entry)
}

// DeleteTechnicianEntry deletes a field entry by its ID.
func (c *MongoCollection) DeleteTechnicianEntry(ctx context.Context, id string) error {
	return c.deleteByID(ctx, id)
}

// GetTechnicianConfig returns the stored unit value, or the default when
// it has never been configured.
func (c *MongoCollection) GetTechnicianConfig(ctx context.Context) (models.TechnicianConfig, error) {
	if c.Collection == nil {
		return models.TechnicianConfig{}, errNilCollection
	}
	var cfg models.TechnicianConfig
	err := c.Collection.FindOne(ctx, bson.M{"_id": technicianConfigID}).Decode(&cfg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.TechnicianConfig{ServiceOrderValue: models.DefaultServiceOrderValue}, nil
	}
	if err != nil {
		return models.TechnicianConfig{}, err
	}
	return cfg, nil
}

// SaveTechnicianConfig upserts the unit value.
func (c *MongoCollection) SaveTechnicianConfig(ctx context.Context, cfg models.TechnicianConfig) error {
	if c.Collection == nil {
		return errNilCollection
	}
	update := bson.M{"$set": bson.M{
		"service_order_value": cfg.ServiceOrderValue,
		"updated_at":          time.Now().UTC(),
	}}
	_, err := c.Collection.UpdateOne(ctx, bson.M{"_id": technicianConfigID}, update, options.Update().SetUpsert(true))
	return err
}
