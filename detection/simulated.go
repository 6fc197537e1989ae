package detection

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rashtra/rashtra-api/models"
)

// SimulatedDetector stands in for the detection service while it is
// offline. Every label it produces contains "Simulated".
type SimulatedDetector struct {
	Profile Profile

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSimulatedDetector returns a simulation for profile. A zero seed seeds
// from the clock.
func NewSimulatedDetector(profile Profile, seed int64) *SimulatedDetector {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &SimulatedDetector{
		Profile: profile,
		rnd:     rand.New(rand.NewSource(seed)),
	}
}

// Detect ignores the image and draws a result from the profile's odds
func (s *SimulatedDetector) Detect(ctx context.Context, _ models.Image, _, _ float64) (models.DetectionResult, error) {
	if err := ctx.Err(); err != nil {
		return models.DetectionResult{}, err
	}

	s.mu.Lock()
	draw := s.rnd.Float64()
	spread := s.rnd.Float64()
	s.mu.Unlock()

	p := s.Profile
	if draw <= p.SimulatedPositiveAbove {
		return models.DetectionResult{
			Detected:      false,
			Confidence:    p.SimulatedNegativeConfidence,
			Severity:      models.SeverityLow,
			SeverityScore: 0,
			Label:         p.SimulatedNegativeLabel,
			Simulated:     true,
		}, nil
	}

	confidence := p.SimulatedMinConfidence + spread*(p.SimulatedMaxConfidence-p.SimulatedMinConfidence)
	severity := p.Severity(confidence)
	return models.DetectionResult{
		Detected:      true,
		Confidence:    confidence,
		Severity:      severity,
		SeverityScore: ScoreFromConfidence(confidence),
		Label:         p.SimulatedPositiveLabel(severity),
		Simulated:     true,
	}, nil
}
