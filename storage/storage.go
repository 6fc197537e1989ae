// Package storage keeps report photos and hands back a URL for each one.
package storage

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/rashtra/rashtra-api/models"
)

// DefaultFolder is the top level folder for report photos
const DefaultFolder = "pothole-images"

// ImageStore keeps an image and returns its durable URL
type ImageStore interface {
	Upload(ctx context.Context, userID string, image models.Image) (string, error)
}

// objectKey lays photos out per user as <folder>/<userId>/<unix>_<uuid>
func objectKey(folder, userID string, now time.Time) string {
	if folder == "" {
		folder = DefaultFolder
	}
	return path.Join(folder, userID, fmt.Sprintf("%d_%s", now.Unix(), uuid.New().String()))
}
