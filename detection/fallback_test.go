package detection

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rashtra/rashtra-api/config"
	"github.com/rashtra/rashtra-api/models"
)

type stubDetector struct {
	result models.DetectionResult
	err    error
	calls  int
}

func (s *stubDetector) Detect(context.Context, models.Image, float64, float64) (models.DetectionResult, error) {
	s.calls++
	return s.result, s.err
}

func TestFallbackDetector_PrimaryAnswers(t *testing.T) {
	primary := &stubDetector{result: models.DetectionResult{Detected: true, Label: "Pothole"}}
	fallback := &stubDetector{}
	d := &FallbackDetector{Model: ModelPothole, Primary: primary, Fallback: fallback}

	got, err := d.Detect(context.Background(), testImage, 0, 0)

	require.NoError(t, err)
	assert.Equal(t, "Pothole", got.Label)
	assert.Equal(t, 0, fallback.calls)
}

func TestFallbackDetector_UnavailableUsesFallback(t *testing.T) {
	primary := &stubDetector{err: unavailable(ModelPothole, assert.AnError)}
	fallback := &stubDetector{result: models.DetectionResult{Label: "No Pothole Found (Simulated)", Simulated: true}}
	d := &FallbackDetector{Model: ModelPothole, Primary: primary, Fallback: fallback}

	got, err := d.Detect(context.Background(), testImage, 0, 0)

	require.NoError(t, err)
	assert.True(t, got.Simulated)
	assert.Equal(t, 1, fallback.calls)
}

func TestFallbackDetector_ContractViolationPropagates(t *testing.T) {
	primary := &stubDetector{err: contractViolation(ModelGeneralDamage, assert.AnError)}
	fallback := &stubDetector{}
	d := &FallbackDetector{Model: ModelGeneralDamage, Primary: primary, Fallback: fallback}

	_, err := d.Detect(context.Background(), testImage, 0, 0)

	assert.ErrorIs(t, err, ErrContractViolation)
	assert.Equal(t, 0, fallback.calls)
}

func TestFallbackDetector_OfflineServiceEndToEnd(t *testing.T) {
	srv := detectionServer(t, http.StatusBadGateway, "")
	d := New(GeneralDamageProfile, srv.URL, time.Second, 5)

	got, err := d.Detect(context.Background(), testImage, 0, 0)

	require.NoError(t, err)
	assert.True(t, got.Simulated)
}

func TestFromConfig(t *testing.T) {
	conf := &config.Config{DetectionURL: "http://127.0.0.1:1/detect", DetectionTimeout: time.Second, SimulationSeed: 3}

	metrics := NewMetrics()
	pothole, damage := FromConfig(conf, metrics)

	assert.Equal(t, ModelPothole, pothole.Model)
	assert.Equal(t, ModelGeneralDamage, damage.Model)
	assert.Equal(t, conf.DetectionURL, pothole.Primary.(*RemoteDetector).URL)
	assert.Equal(t, time.Second, damage.Primary.(*RemoteDetector).Client.Timeout)
	assert.Same(t, metrics, pothole.Metrics)
	assert.Same(t, metrics, damage.Metrics)
}

func TestFallbackDetector_RecordsMetrics(t *testing.T) {
	metrics := NewMetrics()
	fallback := &stubDetector{result: models.DetectionResult{Simulated: true}}

	online := &FallbackDetector{Model: ModelPothole, Primary: &stubDetector{}, Fallback: fallback, Metrics: metrics}
	offline := &FallbackDetector{Model: ModelGeneralDamage, Primary: &stubDetector{err: unavailable(ModelGeneralDamage, assert.AnError)}, Fallback: fallback, Metrics: metrics}
	broken := &FallbackDetector{Model: ModelPothole, Primary: &stubDetector{err: contractViolation(ModelPothole, assert.AnError)}, Fallback: fallback, Metrics: metrics}

	for i := 0; i < 3; i++ {
		_, err := online.Detect(context.Background(), testImage, 0, 0)
		require.NoError(t, err)
	}
	_, err := offline.Detect(context.Background(), testImage, 0, 0)
	require.NoError(t, err)
	_, err = offline.Detect(context.Background(), testImage, 0, 0)
	require.NoError(t, err)
	_, err = broken.Detect(context.Background(), testImage, 0, 0)
	require.Error(t, err)

	snap := metrics.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, ModelGeneralDamage, snap[0].Model)
	assert.Equal(t, int64(2), snap[0].Simulated)
	assert.Equal(t, int64(0), snap[0].Remote)
	assert.False(t, snap[0].LastFallback.IsZero())
	assert.Equal(t, ModelPothole, snap[1].Model)
	assert.Equal(t, int64(3), snap[1].Remote)
	assert.Equal(t, int64(1), snap[1].Failed)
	assert.True(t, snap[1].LastFallback.IsZero())
}

func TestMetrics_NilRecordsNothing(t *testing.T) {
	d := &FallbackDetector{Model: ModelPothole, Primary: &stubDetector{}, Fallback: &stubDetector{}}

	_, err := d.Detect(context.Background(), testImage, 0, 0)

	require.NoError(t, err)
	var m *Metrics
	assert.Empty(t, m.Snapshot())
}
