package auth

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionStore maps opaque session tokens to user ids. Both
// implementations enforce the TTL; Delete is idempotent.
type SessionStore interface {
	Put(ctx context.Context, token, userID string, ttl time.Duration) error
	Get(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
	Stop()
}

type sessionEntry struct {
	userID    string
	expiresAt time.Time
}

// memorySessionStore is the default registry: a mutex-guarded map with a
// janitor goroutine evicting expired entries. Lookups also check expiry so
// a stale entry is never served between janitor runs.
type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]sessionEntry
	done     chan struct{}
	stopOnce sync.Once
}

func NewMemorySessionStore(cleanupInterval time.Duration) SessionStore {
	s := &memorySessionStore{
		sessions: make(map[string]sessionEntry),
		done:     make(chan struct{}),
	}
	go s.janitor(cleanupInterval)
	return s
}

func (s *memorySessionStore) Put(_ context.Context, token, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = sessionEntry{
		userID:    userID,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (s *memorySessionStore) Get(_ context.Context, token string) (string, error) {
	s.mu.RLock()
	entry, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return "", ErrSessionNotFound
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return "", ErrSessionNotFound
	}
	return entry.userID, nil
}

func (s *memorySessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *memorySessionStore) janitor(interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.evictExpired()
		}
	}
}

func (s *memorySessionStore) evictExpired() {
	cutoff := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, entry := range s.sessions {
		if cutoff.After(entry.expiresAt) {
			delete(s.sessions, token)
		}
	}
}

func (s *memorySessionStore) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
}
