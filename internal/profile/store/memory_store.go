package store

import (
	"context"
	"sync"

	"github.com/MorningZephyr/zhen-bot/internal/models"
)

// MemoryStore is an in-process SessionStore for tests and standalone runs.
// It clones on both Get and Put so callers never share mutable state with
// the store.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]*models.Profile
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]*models.Profile)}
}

// Get implements SessionStore.
func (s *MemoryStore) Get(ctx context.Context, appName, ownerID string) (*models.Profile, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[profileKey(appName, ownerID)]
	if !ok {
		return nil, false, nil
	}
	return p.Clone(), true, nil
}

// Put implements SessionStore.
func (s *MemoryStore) Put(ctx context.Context, appName, ownerID string, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[profileKey(appName, ownerID)] = profile.Clone()
	return nil
}

// ListSessions implements SessionStore.
func (s *MemoryStore) ListSessions(ctx context.Context, ownerID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	suffix := ":" + ownerID
	var keys []string
	for k := range s.profiles {
		if len(k) >= len(suffix) && k[len(k)-len(suffix):] == suffix {
			keys = append(keys, k)
		}
	}
	return keys, nil
}
