package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a process-local Store used by tests and by local development
// without redis. Semantics match RedisStore, including the sliding expiry.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	data      Data
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, scope string, data Data, ttl time.Duration) (string, error) {
	token, err := NewToken()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionKey(scope, token)] = memoryEntry{data: data, expiresAt: s.now().Add(ttl)}
	return token, nil
}

func (s *MemoryStore) Get(_ context.Context, scope, token string, ttl time.Duration) (*Data, error) {
	if token == "" {
		return nil, ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := sessionKey(scope, token)
	entry, ok := s.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, key)
		return nil, ErrNotFound
	}

	entry.expiresAt = s.now().Add(ttl)
	s.entries[key] = entry

	data := entry.data
	return &data, nil
}

func (s *MemoryStore) Destroy(_ context.Context, scope, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionKey(scope, token))
	return nil
}
