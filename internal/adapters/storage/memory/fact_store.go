package memory

import (
	"context"
	"sync"

	"github.com/concilio-labs/concilio/internal/domain"
)

// FactStore is a simple in-memory implementation of domain.FactStore.
// It is NOT persistent: a process restart loses all recorded stories. Only
// suitable for development, tests, and single-run local mode.
type FactStore struct {
	mu      sync.RWMutex
	records map[string]domain.StoryRecord // "namespace/key"
}

// NewFactStore creates a new in-memory FactStore.
func NewFactStore() *FactStore {
	return &FactStore{
		records: make(map[string]domain.StoryRecord),
	}
}

// Put stores a record; the newest write for a key wins.
func (s *FactStore) Put(_ context.Context, namespace, key string, rec domain.StoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[namespace+"/"+key] = rec
	return nil
}

// Get returns the record for (namespace, key), or ok=false when absent.
func (s *FactStore) Get(_ context.Context, namespace, key string) (domain.StoryRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[namespace+"/"+key]
	return rec, ok, nil
}
