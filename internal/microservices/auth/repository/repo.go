package repository

import "github.com/jackc/pgx/v5/pgxpool"

type Repository struct {
	StaffRepo StaffRepositoryInterface
}

func New(db *pgxpool.Pool) *Repository {
	return &Repository{
		StaffRepo: NewStaffRepository(db),
	}
}
