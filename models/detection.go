package models

// DetectionResult is what a single detection model reports for an image.
// It only lives for the duration of a report submission.
type DetectionResult struct {
	Detected      bool     `json:"detected"`
	Confidence    float64  `json:"confidence"`
	Severity      Severity `json:"severity"`
	SeverityScore float64  `json:"severityScore"`
	Label         string   `json:"label"`
	// Simulated is set when the result came from the offline simulation
	Simulated bool `json:"simulated"`
}

// Image is a captured photo as uploaded by the citizen
type Image struct {
	Data        []byte
	Filename    string
	ContentType string
}

// Empty reports whether the image carries no bytes
func (i Image) Empty() bool {
	return len(i.Data) == 0
}
