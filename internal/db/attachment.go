package db

import (
	"context"

	"github.com/ukydev/fleet-control/internal/models"
)

// InsertAttachment inserts attachment metadata into the collection.
func (c *MongoCollection) InsertAttachment(ctx context.Context, attachment models.Attachment) error {
	return c.insert(ctx, attachment)
}

// FindAttachments returns the matching attachments, newest upload first.
func (c *MongoCollection) FindAttachments(ctx context.Context, filter AttachmentFilter) ([]models.Attachment, error) {
	attachments := []models.Attachment{}
	if err := c.find(ctx, filter.BSON(), &attachments, sortBy("uploaded_at", -1)); err != nil {
		return nil, err
	}
	return attachments, nil
}

// FindAttachmentByID finds attachment metadata by its ID.
func (c *MongoCollection) FindAttachmentByID(ctx context.Context, id string) (*models.Attachment, error) {
	var attachment models.Attachment
	if err := c.findByID(ctx, id, &attachment); err != nil {
		return nil, err
	}
	return &attachment, nil
}

// DeleteAttachment deletes attachment metadata by its ID.
func (c *MongoCollection) DeleteAttachment(ctx context.Context, id string) error {
	return c.deleteByID(ctx, id)
}
