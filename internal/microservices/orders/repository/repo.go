package repository

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Repository struct {
	OrderRepo   OrderRepositoryInterface
	Idempotency IdempotencyStoreInterface
}

// New wires the order storage. A nil redis client disables the duplicate
// submission guard.
func New(db *pgxpool.Pool, rdb *redis.Client, keyTTL time.Duration) *Repository {
	var idem IdempotencyStoreInterface = NoopIdempotencyStore{}
	if rdb != nil {
		idem = NewRedisIdempotencyStore(rdb, keyTTL)
	}
	return &Repository{
		OrderRepo:   NewOrderRepository(db),
		Idempotency: idem,
	}
}
