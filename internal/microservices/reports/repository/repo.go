package repository

import "github.com/jackc/pgx/v5/pgxpool"

type Repository struct {
	ReportsRepo ReportsRepoInterface
}

func New(db *pgxpool.Pool) *Repository {
	return &Repository{
		ReportsRepo: NewReportsRepo(db),
	}
}
