package repository

import "github.com/jackc/pgx/v5/pgxpool"

type Repository struct {
	ShiftRepo ShiftRepositoryInterface
}

func New(db *pgxpool.Pool) *Repository {
	return &Repository{
		ShiftRepo: NewShiftRepository(db),
	}
}
