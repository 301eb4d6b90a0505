package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyKeyPrefix = "pos:idempotency:"

// IdempotencyStoreInterface guards addItems against double submission of the
// same ticket.
type IdempotencyStoreInterface interface {
	// Reserve returns false when the key was already used.
	Reserve(ctx context.Context, staffID int64, key string) (bool, error)
	Forget(ctx context.Context, staffID int64, key string) error
}

type RedisIdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisIdempotencyStore(client *redis.Client, ttl time.Duration) IdempotencyStoreInterface {
	return &RedisIdempotencyStore{client: client, ttl: ttl}
}

func idempotencyKey(staffID int64, key string) string {
	return fmt.Sprintf("%s%d:%s", idempotencyKeyPrefix, staffID, key)
}

func (s *RedisIdempotencyStore) Reserve(ctx context.Context, staffID int64, key string) (bool, error) {
	ok, err := s.client.SetNX(ctx, idempotencyKey(staffID, key), 1, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to reserve idempotency key: %w", err)
	}
	return ok, nil
}

func (s *RedisIdempotencyStore) Forget(ctx context.Context, staffID int64, key string) error {
	if err := s.client.Del(ctx, idempotencyKey(staffID, key)).Err(); err != nil {
		return fmt.Errorf("failed to release idempotency key: %w", err)
	}
	return nil
}

// NoopIdempotencyStore accepts every key. Used when Redis is not configured.
type NoopIdempotencyStore struct{}

func (NoopIdempotencyStore) Reserve(context.Context, int64, string) (bool, error) {
	return true, nil
}

func (NoopIdempotencyStore) Forget(context.Context, int64, string) error { return nil }
