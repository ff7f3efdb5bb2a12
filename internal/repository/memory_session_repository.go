package repository

import (
	"context"
	"sync"

	"github.com/noah-isme/tsma-calendar-client/internal/models"
)

// MemorySessionRepository keeps the session in process memory. It survives
// re-creating the session service but not a process restart.
type MemorySessionRepository struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemorySessionRepository constructs an empty repository.
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{values: map[string]string{}}
}

// Load returns the stored session or nil.
func (r *MemorySessionRepository) Load(ctx context.Context) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	copied := make(map[string]string, len(r.values))
	for k, v := range r.values {
		copied[k] = v
	}
	return sessionFromValues(copied), nil
}

// Save replaces the stored session.
func (r *MemorySessionRepository) Save(ctx context.Context, s models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = sessionValues(s)
	return nil
}

// Clear removes every session key.
func (r *MemorySessionRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = map[string]string{}
	return nil
}

// Has reports whether key is currently stored.
func (r *MemorySessionRepository) Has(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.values[key]
	return ok
}

// Close is a no-op.
func (r *MemorySessionRepository) Close() error {
	return nil
}
