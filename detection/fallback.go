package detection

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/rashtra/rashtra-api/config"
	"github.com/rashtra/rashtra-api/models"
)

// FallbackDetector asks Primary first and answers from Fallback when
// Primary is unavailable. Any other Primary error is returned as is.
type FallbackDetector struct {
	Model    Model
	Primary  Detector
	Fallback Detector
	// Metrics is optional
	Metrics *Metrics
}

// Detect implements Detector
func (f *FallbackDetector) Detect(ctx context.Context, image models.Image, lat, lon float64) (models.DetectionResult, error) {
	start := time.Now()
	result, err := f.Primary.Detect(ctx, image, lat, lon)
	if err == nil {
		f.Metrics.recordRemote(f.Model, time.Since(start))
		return result, nil
	}
	if !errors.Is(err, ErrServiceUnavailable) {
		f.Metrics.recordFailed(f.Model)
		return models.DetectionResult{}, err
	}

	zap.S().Warnw("detection service offline, switching to simulation",
		"model", f.Model,
		"error", err,
	)
	result, err = f.Fallback.Detect(ctx, image, lat, lon)
	if err != nil {
		f.Metrics.recordFailed(f.Model)
		return models.DetectionResult{}, err
	}
	f.Metrics.recordSimulated(f.Model)
	return result, nil
}

// New builds the detector for profile: the remote service at url backed by
// a seeded simulation
func New(profile Profile, url string, timeout time.Duration, seed int64) *FallbackDetector {
	return &FallbackDetector{
		Model:    profile.Model,
		Primary:  NewRemoteDetector(profile, url, timeout),
		Fallback: NewSimulatedDetector(profile, seed),
	}
}

// FromConfig builds the pothole and general damage detectors. Both share
// the service URL and timeout. A fixed seed is offset for the second model
// so the two simulations do not draw the same sequence. Both record into metrics.
func FromConfig(conf *config.Config, metrics *Metrics) (pothole, damage *FallbackDetector) {
	damageSeed := conf.SimulationSeed
	if damageSeed != 0 {
		damageSeed++
	}
	pothole = New(PotholeProfile, conf.DetectionURL, conf.DetectionTimeout, conf.SimulationSeed)
	damage = New(GeneralDamageProfile, conf.DetectionURL, conf.DetectionTimeout, damageSeed)
	pothole.Metrics = metrics
	damage.Metrics = metrics
	return pothole, damage
}
