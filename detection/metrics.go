package detection

import (
	"sort"
	"sync"
	"time"
)

// ModelMetrics aggregates how one model has been answering
type ModelMetrics struct {
	Model Model `json:"model"`
	// Remote counts answers from the detection service
	Remote int64 `json:"remote"`
	// Simulated counts answers from the offline simulation
	Simulated int64 `json:"simulated"`
	// Failed counts calls that aborted a submission
	Failed        int64         `json:"failed"`
	RemoteTime    time.Duration `json:"remoteTime"`
	AvgRemoteTime time.Duration `json:"avgRemoteTime"`
	MaxRemoteTime time.Duration `json:"maxRemoteTime"`
	LastFallback  time.Time     `json:"lastFallback,omitempty"`
}

// Metrics collects per model detection counts. A nil *Metrics records nothing.
type Metrics struct {
	mu     sync.RWMutex
	models map[Model]*ModelMetrics
	now    func() time.Time
}

// NewMetrics returns an empty collector
func NewMetrics() *Metrics {
	return &Metrics{
		models: make(map[Model]*ModelMetrics),
		now:    time.Now,
	}
}

func (m *Metrics) get(model Model) *ModelMetrics {
	mm, ok := m.models[model]
	if !ok {
		mm = &ModelMetrics{Model: model}
		m.models[model] = mm
	}
	return mm
}

func (m *Metrics) recordRemote(model Model, took time.Duration) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	mm := m.get(model)
	mm.Remote++
	mm.RemoteTime += took
	mm.AvgRemoteTime = mm.RemoteTime / time.Duration(mm.Remote)
	if took > mm.MaxRemoteTime {
		mm.MaxRemoteTime = took
	}
}

func (m *Metrics) recordSimulated(model Model) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	mm := m.get(model)
	mm.Simulated++
	mm.LastFallback = m.now().UTC()
}

func (m *Metrics) recordFailed(model Model) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.get(model).Failed++
}

// Snapshot returns a copy of the counters ordered by model name
func (m *Metrics) Snapshot() []ModelMetrics {
	if m == nil {
		return []ModelMetrics{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]ModelMetrics, 0, len(m.models))
	for _, mm := range m.models {
		out = append(out, *mm)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Model < out[j].Model })
	return out
}
