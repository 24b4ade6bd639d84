package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// redisSessionStore backs the registry with Redis so sessions survive
// restarts and can be shared between replicas. Expiry is delegated to
// Redis TTLs.
type redisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) SessionStore {
	return &redisSessionStore{client: client}
}

func (s *redisSessionStore) Put(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, sessionKeyPrefix+token, userID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *redisSessionStore) Get(ctx context.Context, token string) (string, error) {
	userID, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrSessionNotFound
		}
		return "", fmt.Errorf("failed to look up session: %w", err)
	}
	return userID, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Stop is a no-op; the Redis client is owned and closed by the app client.
func (s *redisSessionStore) Stop() {}
