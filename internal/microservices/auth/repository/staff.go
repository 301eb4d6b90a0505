package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"restaurant-pos/internal/domain"
)

type StaffRepositoryInterface interface {
	// FindByEmail returns only active staff; a miss is NotFound.
	FindByEmail(ctx context.Context, email string) (domain.Staff, error)
}

type StaffRepository struct {
	db *pgxpool.Pool
}

func NewStaffRepository(db *pgxpool.Pool) StaffRepositoryInterface {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) FindByEmail(ctx context.Context, email string) (domain.Staff, error) {
	var s domain.Staff
	err := r.db.QueryRow(ctx, `
		SELECT id, name, email, role, password_hash
		FROM staff
		WHERE lower(email) = $1 AND active`, strings.ToLower(strings.TrimSpace(email))).
		Scan(&s.ID, &s.Name, &s.Email, &s.Role, &s.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Staff{}, domain.NotFound("staff %s not found", email)
	}
	if err != nil {
		return domain.Staff{}, fmt.Errorf("failed to find staff: %w", err)
	}
	return s, nil
}
