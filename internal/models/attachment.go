package models

import (
	"path/filepath"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attachment is the metadata of a file kept in the object store.
type Attachment struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FileName      string             `json:"file_name" bson:"file_name"`
	Description   string             `json:"description" bson:"description"`
	FileType      string             `json:"file_type" bson:"file_type"`
	FileSizeBytes int64              `json:"file_size_bytes" bson:"file_size_bytes"`
	ObjectKey     string             `json:"-" bson:"object_key"`
	UploadedAt    time.Time          `json:"uploaded_at" bson:"uploaded_at"`
}

// FileTypeOf returns the lowercase extension of name without the dot, or "unknown".
func FileTypeOf(name string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "" {
		return "unknown"
	}
	return ext
}

// Validate checks the attachment metadata against the size limit.
func (a Attachment) Validate(maxBytes int64) error {
	if strings.TrimSpace(a.FileName) == "" {
		return validationError("file_name is required")
	}
	if a.FileSizeBytes <= 0 {
		return validationError("file_size_bytes must be positive")
	}
	if maxBytes > 0 && a.FileSizeBytes > maxBytes {
		return validationError("file exceeds the %d byte limit", maxBytes)
	}
	return nil
}
