package storage

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rashtra/rashtra-api/models"
)

// MemoryScheme prefixes the URLs handed out by MemoryStore
const MemoryScheme = "memory://"

// ErrImageNotFound is returned by MemoryStore.Get for an unknown URL
var ErrImageNotFound = errors.New("image not found")

// MemoryStore keeps photos in process memory. Nothing survives a restart.
type MemoryStore struct {
	mu     sync.RWMutex
	images map[string]models.Image
	folder string
	now    func() time.Time
}

// NewMemoryStore returns an empty in-memory image store
func NewMemoryStore(folder string) *MemoryStore {
	return &MemoryStore{
		images: make(map[string]models.Image),
		folder: folder,
		now:    time.Now,
	}
}

// Upload copies the image and returns a memory:// URL for it
func (s *MemoryStore) Upload(ctx context.Context, userID string, image models.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if image.Empty() {
		return "", errors.New("empty image")
	}
	data := make([]byte, len(image.Data))
	copy(data, image.Data)
	image.Data = data

	key := objectKey(s.folder, userID, s.now())
	s.mu.Lock()
	s.images[key] = image
	s.mu.Unlock()
	return MemoryScheme + key, nil
}

// Get returns the image stored under url
func (s *MemoryStore) Get(url string) (models.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	img, ok := s.images[strings.TrimPrefix(url, MemoryScheme)]
	if !ok {
		return models.Image{}, ErrImageNotFound
	}
	return img, nil
}
