package repository

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("POS_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("POS_TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestRedisIdempotency_ConcurrentReserve(t *testing.T) {
	client := getRedisClient(t)
	ctx := context.Background()
	store := NewRedisIdempotencyStore(client, time.Minute)
	client.Del(ctx, idempotencyKey(1, "ticket-race"))

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.Reserve(ctx, 1, "ticket-race")
			if err != nil {
				t.Errorf("reserve: %v", err)
				return
			}
			if ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	if wins.Load() != 1 {
		t.Errorf("expected exactly one reservation, got %d", wins.Load())
	}
}

func TestRedisIdempotency_ForgetAndScope(t *testing.T) {
	client := getRedisClient(t)
	ctx := context.Background()
	store := NewRedisIdempotencyStore(client, time.Minute)
	client.Del(ctx, idempotencyKey(1, "ticket-2"), idempotencyKey(2, "ticket-2"))

	if ok, _ := store.Reserve(ctx, 1, "ticket-2"); !ok {
		t.Fatal("first reserve should succeed")
	}
	if ok, _ := store.Reserve(ctx, 2, "ticket-2"); !ok {
		t.Error("keys are scoped per staff member")
	}
	if err := store.Forget(ctx, 1, "ticket-2"); err != nil {
		t.Fatal(err)
	}
	if ok, _ := store.Reserve(ctx, 1, "ticket-2"); !ok {
		t.Error("forgotten key should be reusable")
	}
	ttl := client.TTL(ctx, idempotencyKey(1, "ticket-2")).Val()
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("unexpected ttl %v", ttl)
	}
}
