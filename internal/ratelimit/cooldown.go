package ratelimit

import (
	"context"
	"sync"
	"time"
)

// CooldownStore rejects a repeated action from the same identifier within a
// window. The store is injected so multi-instance deployments can share one
// backend.
type CooldownStore interface {
	// Hit records an attempt for key and reports whether it is allowed, i.e.
	// no prior attempt exists inside the window.
	Hit(ctx context.Context, key string, window time.Duration) (bool, error)
}

// MemoryStore keeps cooldowns in process memory. Suitable for tests and
// single-instance deployments.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (s *MemoryStore) Hit(_ context.Context, key string, window time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if until, ok := s.entries[key]; ok && now.Before(until) {
		return false, nil
	}
	s.entries[key] = now.Add(window)

	// Opportunistic sweep of stale entries.
	for k, until := range s.entries {
		if now.After(until) {
			delete(s.entries, k)
		}
	}
	return true, nil
}
