package db

import (
	"regexp"
	"strings"

	"github.com/ukydev/fleet-control/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// RecordFilter narrows dated records by vehicle and month.
type RecordFilter struct {
	VehicleID string
	Month     *models.YearMonth
}

// BSON builds the query document. Dates are stored as "YYYY-MM-DD" strings,
// so a month is a lexicographic range.
func (f RecordFilter) BSON() bson.M {
	query := bson.M{}
	if f.VehicleID != "" {
		query["vehicle_id"] = f.VehicleID
	}
	if f.Month != nil {
		query["date"] = bson.M{
			"$gte": f.Month.FirstDay().String(),
			"$lte": f.Month.LastDay().String(),
		}
	}
	return query
}

// AttachmentFilter searches attachment metadata.
type AttachmentFilter struct {
	Query    string
	FileType string
}

// BSON builds a case-insensitive search over file name and description.
func (f AttachmentFilter) BSON() bson.M {
	query := bson.M{}
	if q := strings.TrimSpace(f.Query); q != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(q), "$options": "i"}
		query["$or"] = bson.A{
			bson.M{"file_name": pattern},
			bson.M{"description": pattern},
		}
	}
	if t := strings.TrimSpace(f.FileType); t != "" && t != "all" {
		query["file_type"] = strings.ToLower(t)
	}
	return query
}
