package databases

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MaxListLimit bounds every list query. There is no pagination cursor.
const MaxListLimit int64 = 200

// BoundedLimit clamps limit to (0, MaxListLimit]; zero or negative means the maximum
func BoundedLimit(limit int64) int64 {
	if limit <= 0 || limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// newestFirstOpts returns find options sorted by timestamp descending and
// limited to the bounded limit
func newestFirstOpts(limit int64) *options.FindOptions {
	return options.Find().
		SetLimit(BoundedLimit(limit)).
		SetSort(bson.D{{Key: "timestamp", Value: -1}})
}
