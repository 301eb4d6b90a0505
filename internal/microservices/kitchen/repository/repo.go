package repository

import "github.com/jackc/pgx/v5/pgxpool"

type Repository struct {
	QueueRepo QueueRepositoryInterface
}

func New(db *pgxpool.Pool) *Repository {
	return &Repository{
		QueueRepo: NewQueueRepository(db),
	}
}
