package detection

import (
	"context"

	"github.com/rashtra/rashtra-api/models"
)

// Detector inspects an image for road damage. A zero latitude/longitude
// means the photo carried no GPS fix.
type Detector interface {
	Detect(ctx context.Context, image models.Image, lat, lon float64) (models.DetectionResult, error)
}
