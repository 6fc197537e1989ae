package models

// HealthCheckResponse is the body of the health endpoint
type HealthCheckResponse struct {
	Alive   bool   `json:"alive"`
	Store   string `json:"store,omitempty"`
	Version string `json:"version,omitempty"`
}
