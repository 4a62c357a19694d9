package tokenstore

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process TokenStore for tests and single-node
// development runs.
type MemoryStore struct {
	mu        sync.Mutex
	refresh   map[string]memoryEntry
	blacklist map[string]time.Time
}

type memoryEntry struct {
	userID    string
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		refresh:   make(map[string]memoryEntry),
		blacklist: make(map[string]time.Time),
	}
}

func (s *MemoryStore) SaveRefresh(_ context.Context, token, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh[token] = memoryEntry{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) ConsumeRefresh(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.refresh[token]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.refresh, token)
		return "", ErrRefreshNotFound
	}
	delete(s.refresh, token)
	return entry.userID, nil
}

func (s *MemoryStore) BlacklistAccess(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blacklist[token] = time.Now().Add(ttl)
	return nil
}

func (s *MemoryStore) IsBlacklisted(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.blacklist[token]
	if !ok {
		return false, nil
	}
	if time.Now().After(until) {
		delete(s.blacklist, token)
		return false, nil
	}
	return true, nil
}
