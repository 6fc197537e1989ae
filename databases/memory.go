package databases

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rashtra/rashtra-api/models"
)

// MemoryComplaintDatabase is a process-local ComplaintDatabase. It starts
// empty and keeps nothing across restarts.
type MemoryComplaintDatabase struct {
	mu         sync.RWMutex
	complaints map[string]models.Complaint
	// seq breaks timestamp ties in insertion order
	seq  map[string]uint64
	next uint64
	now  func() time.Time
}

// NewMemoryComplaintDatabase returns an empty in-memory complaint store
func NewMemoryComplaintDatabase() *MemoryComplaintDatabase {
	return &MemoryComplaintDatabase{
		complaints: make(map[string]models.Complaint),
		seq:        make(map[string]uint64),
		now:        time.Now,
	}
}

// Create stores a copy of complaint under a fresh id
func (m *MemoryComplaintDatabase) Create(ctx context.Context, complaint *models.Complaint) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	complaint.ID = uuid.New().String()
	complaint.Timestamp = m.now().UTC()
	m.complaints[complaint.ID] = *complaint
	m.next++
	m.seq[complaint.ID] = m.next
	return complaint.ID, nil
}

// FindByID returns a copy of the stored complaint
func (m *MemoryComplaintDatabase) FindByID(ctx context.Context, id string) (*models.Complaint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.complaints[id]
	if !ok {
		return nil, ErrComplaintNotFound
	}
	return &c, nil
}

// ListAll returns complaints created at or after since, newest first
func (m *MemoryComplaintDatabase) ListAll(ctx context.Context, limit int64, since time.Time) ([]models.Complaint, error) {
	return m.list(limit, func(c models.Complaint) bool {
		return since.IsZero() || !c.Timestamp.Before(since)
	}), nil
}

// ListByUser returns the complaints owned by userID, newest first
func (m *MemoryComplaintDatabase) ListByUser(ctx context.Context, userID string, limit int64) ([]models.Complaint, error) {
	return m.list(limit, func(c models.Complaint) bool {
		return c.UserID == userID
	}), nil
}

func (m *MemoryComplaintDatabase) list(limit int64, keep func(models.Complaint) bool) []models.Complaint {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.Complaint{}
	for _, c := range m.complaints {
		if keep(c) {
			out = append(out, c)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return m.seq[out[i].ID] > m.seq[out[j].ID]
	})
	if n := BoundedLimit(limit); int64(len(out)) > n {
		out = out[:n]
	}
	return out
}

// UpdateStatus sets the status of an existing complaint
func (m *MemoryComplaintDatabase) UpdateStatus(ctx context.Context, id string, status models.ComplaintStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.complaints[id]
	if !ok {
		return ErrComplaintNotFound
	}
	c.Status = status
	m.complaints[id] = c
	return nil
}

// Delete removes the complaint for good
func (m *MemoryComplaintDatabase) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.complaints[id]; !ok {
		return ErrComplaintNotFound
	}
	delete(m.complaints, id)
	delete(m.seq, id)
	return nil
}

// MemoryAdminLogDatabase is a process-local, append-only AdminLogDatabase
type MemoryAdminLogDatabase struct {
	mu   sync.RWMutex
	logs []models.AdminLog
	now  func() time.Time
}

// NewMemoryAdminLogDatabase returns an empty in-memory admin log
func NewMemoryAdminLogDatabase() *MemoryAdminLogDatabase {
	return &MemoryAdminLogDatabase{now: time.Now}
}

// Append records entry with a fresh id and timestamp
func (m *MemoryAdminLogDatabase) Append(ctx context.Context, entry *models.AdminLog) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	entry.ID = uuid.New().String()
	entry.Timestamp = m.now().UTC()
	m.logs = append(m.logs, *entry)
	return entry.ID, nil
}

// ListRecent returns the newest entries first
func (m *MemoryAdminLogDatabase) ListRecent(ctx context.Context, limit int64) ([]models.AdminLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := BoundedLimit(limit)
	out := make([]models.AdminLog, 0, n)
	for i := len(m.logs) - 1; i >= 0 && int64(len(out)) < n; i-- {
		out = append(out, m.logs[i])
	}
	return out, nil
}
