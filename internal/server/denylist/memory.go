package denylist

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the single-process fallback used when no Redis address is
// configured. Expired entries are dropped lazily on lookup.
type MemoryStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{revoked: map[string]time.Time{}}
}

func (s *MemoryStore) Revoke(_ context.Context, token string, expiresAt time.Time) error {
	if !expiresAt.After(time.Now()) {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[hashToken(token)] = expiresAt
	return nil
}

func (s *MemoryStore) IsRevoked(_ context.Context, token string) (bool, error) {
	key := hashToken(token)

	s.mu.RLock()
	expiresAt, ok := s.revoked[key]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if !expiresAt.After(time.Now()) {
		s.mu.Lock()
		delete(s.revoked, key)
		s.mu.Unlock()
		return false, nil
	}
	return true, nil
}
