package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps attempt sequences in a process-local map. Keys whose
// sequence prunes to empty are dropped so steady-state growth tracks active
// clients only.
type MemoryStore struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{attempts: make(map[string][]time.Time)}
}

func (s *MemoryStore) Attempts(_ context.Context, key string) ([]time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := s.attempts[key]
	out := make([]time.Time, len(stored))
	copy(out, stored)
	return out, nil
}

func (s *MemoryStore) SetAttempts(_ context.Context, key string, attempts []time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(attempts) == 0 {
		delete(s.attempts, key)
		return nil
	}
	stored := make([]time.Time, len(attempts))
	copy(stored, attempts)
	s.attempts[key] = stored
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.attempts, key)
	return nil
}
