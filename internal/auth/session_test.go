package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemorySessionStore_PutGet(t *testing.T) {
	store := NewMemorySessionStore(time.Minute)
	defer store.Stop()
	ctx := context.Background()

	if err := store.Put(ctx, "token-1", "user-1", time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userID, err := store.Get(ctx, "token-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("expected user-1, got %s", userID)
	}
}

func TestMemorySessionStore_UnknownToken(t *testing.T) {
	store := NewMemorySessionStore(time.Minute)
	defer store.Stop()

	_, err := store.Get(context.Background(), "never-stored")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestMemorySessionStore_ExpiredToken(t *testing.T) {
	store := NewMemorySessionStore(time.Hour)
	defer store.Stop()
	ctx := context.Background()

	// Already expired on arrival; the lookup must evict it without
	// waiting for the janitor.
	if err := store.Put(ctx, "token-1", "user-1", -time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := store.Get(ctx, "token-1")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound for expired token, got %v", err)
	}
}

func TestMemorySessionStore_DeleteIsIdempotent(t *testing.T) {
	store := NewMemorySessionStore(time.Minute)
	defer store.Stop()
	ctx := context.Background()

	if err := store.Put(ctx, "token-1", "user-1", time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Delete(ctx, "token-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Delete(ctx, "token-1"); err != nil {
		t.Fatalf("second delete should succeed, got %v", err)
	}

	if _, err := store.Get(ctx, "token-1"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
	}
}

func TestMemorySessionStore_StopIsSafeTwice(t *testing.T) {
	store := NewMemorySessionStore(time.Minute)
	store.Stop()
	store.Stop()
}

func TestMemorySessionStore_JanitorEvictsExpired(t *testing.T) {
	s := &memorySessionStore{
		sessions: make(map[string]sessionEntry),
		done:     make(chan struct{}),
	}
	ctx := context.Background()

	s.Put(ctx, "stale", "user-1", -time.Second)
	s.Put(ctx, "fresh", "user-2", time.Hour)

	s.evictExpired()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.sessions["stale"]; ok {
		t.Error("expected stale session to be evicted")
	}
	if _, ok := s.sessions["fresh"]; !ok {
		t.Error("expected fresh session to survive eviction")
	}
}
