package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rashtra/rashtra-api/detection"
	"github.com/rashtra/rashtra-api/models"
)

var (
	// ErrMissingImage rejects a report that carries no photo
	ErrMissingImage = errors.New("an image is required")
	// ErrMissingUser rejects a report with no submitting user
	ErrMissingUser = errors.New("a user id is required")
)

// PendingReviewDescription is stored when neither model found damage
const PendingReviewDescription = "No clear damage detected by AI systems. Pending manual review."

// PendingReviewScore marks a complaint that was checked but inconclusive
const PendingReviewScore = 0.5

// ImageStore keeps the photo and returns a durable URL for it
type ImageStore interface {
	Upload(ctx context.Context, userID string, image models.Image) (string, error)
}

// ComplaintStore persists a finished complaint
type ComplaintStore interface {
	Create(ctx context.Context, complaint *models.Complaint) (string, error)
}

// Location is a GPS fix in decimal degrees
type Location struct {
	Latitude  float64
	Longitude float64
}

// Report is a citizen submission before classification
type Report struct {
	UserID        string
	Image         models.Image
	Location      *Location
	ManualAddress string
}

// Pipeline turns reports into complaints. Pothole is always asked first and
// Damage only when Pothole finds nothing.
type Pipeline struct {
	Pothole detection.Detector
	Damage  detection.Detector
	Images  ImageStore
	Store   ComplaintStore
}

// ResolveAddress prefers the manual address, then the GPS fix, then the
// unknown placeholder
func ResolveAddress(manual string, loc *Location) string {
	if a := strings.TrimSpace(manual); a != "" {
		return a
	}
	if loc != nil {
		return fmt.Sprintf("%.4f, %.4f (GPS Detected)", loc.Latitude, loc.Longitude)
	}
	return models.UnknownAddress
}

// SubmitReport classifies the report, uploads its image and persists the
// resulting complaint. A detector error other than unavailability aborts the
// submission before anything is stored.
func (p *Pipeline) SubmitReport(ctx context.Context, r Report) (*models.Complaint, error) {
	if r.Image.Empty() {
		return nil, ErrMissingImage
	}
	if r.UserID == "" {
		return nil, ErrMissingUser
	}

	complaint := &models.Complaint{
		UserID:  r.UserID,
		Address: ResolveAddress(r.ManualAddress, r.Location),
	}
	if r.Location != nil {
		complaint.Latitude = r.Location.Latitude
		complaint.Longitude = r.Location.Longitude
	}

	if err := p.classify(ctx, r.Image, complaint); err != nil {
		return nil, err
	}

	url, err := p.Images.Upload(ctx, r.UserID, r.Image)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}
	complaint.ImageURL = url

	if _, err = p.Store.Create(ctx, complaint); err != nil {
		return nil, err
	}

	zap.S().Infow("complaint created",
		"id", complaint.ID,
		"user", complaint.UserID,
		"status", complaint.Status,
		"severity", complaint.Severity,
		"simulated", complaint.Simulated,
	)
	return complaint, nil
}

func (p *Pipeline) classify(ctx context.Context, image models.Image, c *models.Complaint) error {
	first, err := p.Pothole.Detect(ctx, image, c.Latitude, c.Longitude)
	if err != nil {
		return fmt.Errorf("pothole detection failed: %w", err)
	}
	if first.Detected {
		verified(c, first)
		return nil
	}

	second, err := p.Damage.Detect(ctx, image, c.Latitude, c.Longitude)
	if err != nil {
		return fmt.Errorf("damage detection failed: %w", err)
	}
	if second.Detected {
		verified(c, second)
		return nil
	}

	c.Status = models.StatusWaitingList
	c.Severity = models.SeverityLow
	c.SeverityScore = PendingReviewScore
	c.Description = PendingReviewDescription
	c.Simulated = first.Simulated || second.Simulated
	return nil
}

func verified(c *models.Complaint, r models.DetectionResult) {
	c.Status = models.StatusAutoVerified
	c.Severity = r.Severity
	c.SeverityScore = clampScore(r.SeverityScore)
	c.Description = r.Label
	c.Simulated = r.Simulated
}

func clampScore(s float64) float64 {
	switch {
	case s < 0:
		return 0
	case s > 10:
		return 10
	}
	return s
}
