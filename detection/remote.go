package detection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rashtra/rashtra-api/models"
)

// DefaultTimeout bounds a single call to the detection service
const DefaultTimeout = 12 * time.Second

const (
	mainListStatus = "MAIN_LIST"
	unknownLabel   = "Unknown"
	// maxResponseBytes caps how much of a response body is read
	maxResponseBytes = 1 << 20
)

var validate = validator.New()

// detectResponse is the wire shape of the detection service. Pointer fields
// let the validator tell a missing field from a zero value.
type detectResponse struct {
	Status        *string  `json:"status" validate:"required"`
	Confidence    *float64 `json:"confidence" validate:"required,gte=0,lte=1"`
	SeverityScore *float64 `json:"severity_score" validate:"omitempty,gte=0,lte=10"`
	Label         *string  `json:"label"`
}

// RemoteDetector calls the HTTP detection service
type RemoteDetector struct {
	Profile Profile
	URL     string
	Client  *http.Client
}

// NewRemoteDetector returns a detector for profile that posts to url. A
// non-positive timeout uses DefaultTimeout.
func NewRemoteDetector(profile Profile, url string, timeout time.Duration) *RemoteDetector {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &RemoteDetector{
		Profile: profile,
		URL:     url,
		Client:  &http.Client{Timeout: timeout},
	}
}

// Detect posts the image as multipart form data. Any failure to get a 2xx
// answer is reported as ErrServiceUnavailable, a 2xx answer that does not
// match the schema as ErrContractViolation.
func (d *RemoteDetector) Detect(ctx context.Context, image models.Image, lat, lon float64) (models.DetectionResult, error) {
	body, contentType, err := encodeForm(image, lat, lon)
	if err != nil {
		return models.DetectionResult{}, fmt.Errorf("failed to encode detection request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.URL, body)
	if err != nil {
		return models.DetectionResult{}, unavailable(d.Profile.Model, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := d.Client.Do(req)
	if err != nil {
		return models.DetectionResult{}, unavailable(d.Profile.Model, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return models.DetectionResult{}, unavailable(d.Profile.Model, fmt.Errorf("server returned %d", resp.StatusCode))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return models.DetectionResult{}, unavailable(d.Profile.Model, err)
	}

	var parsed detectResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return models.DetectionResult{}, contractViolation(d.Profile.Model, err)
	}
	if err := validate.Struct(parsed); err != nil {
		return models.DetectionResult{}, contractViolation(d.Profile.Model, err)
	}

	return d.interpret(parsed), nil
}

func (d *RemoteDetector) interpret(r detectResponse) models.DetectionResult {
	confidence := *r.Confidence
	score := ScoreFromConfidence(confidence)
	if r.SeverityScore != nil && *r.SeverityScore > 0 {
		score = *r.SeverityScore
	}
	label := unknownLabel
	if r.Label != nil && *r.Label != "" {
		label = *r.Label
	}
	return models.DetectionResult{
		Detected:      *r.Status == mainListStatus,
		Confidence:    confidence,
		Severity:      d.Profile.Severity(confidence),
		SeverityScore: score,
		Label:         label,
	}
}

func encodeForm(image models.Image, lat, lon float64) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	filename := image.Filename
	if filename == "" {
		filename = "capture.jpg"
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", err
	}
	if _, err = part.Write(image.Data); err != nil {
		return nil, "", err
	}
	if err = w.WriteField("lat", strconv.FormatFloat(lat, 'f', -1, 64)); err != nil {
		return nil, "", err
	}
	if err = w.WriteField("lon", strconv.FormatFloat(lon, 'f', -1, 64)); err != nil {
		return nil, "", err
	}
	if err = w.Close(); err != nil {
		return nil, "", err
	}
	return body, w.FormDataContentType(), nil
}
