package repository

import "github.com/jackc/pgx/v5/pgxpool"

type Repository struct {
	BillingRepo BillingRepositoryInterface
}

func New(db *pgxpool.Pool) *Repository {
	return &Repository{
		BillingRepo: NewBillingRepository(db),
	}
}
