package repository

import "github.com/jackc/pgx/v5/pgxpool"

type Repository struct {
	TableRepo TableRepositoryInterface
}

func New(db *pgxpool.Pool) *Repository {
	return &Repository{
		TableRepo: NewTableRepository(db),
	}
}
