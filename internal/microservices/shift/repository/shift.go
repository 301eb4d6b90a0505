package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"restaurant-pos/internal/connections/database"
	"restaurant-pos/internal/domain"
	tables "restaurant-pos/internal/microservices/tables/repository"
)

const uniqueViolation = "23505"

type ShiftRepositoryInterface interface {
	Current(ctx context.Context) (*domain.Shift, error)
	Open(ctx context.Context, adminID int64) (domain.Shift, error)

	// Close ends the open shift and force-releases every table in the same
	// transaction. closedBy is nil for the scheduled close.
	Close(ctx context.Context, closedBy *int64) (domain.Shift, int64, error)
	Report(ctx context.Context, shift domain.Shift) (domain.ShiftReport, error)
}

type ShiftRepository struct {
	db *pgxpool.Pool
}

func NewShiftRepository(db *pgxpool.Pool) ShiftRepositoryInterface {
	return &ShiftRepository{db: db}
}

const shiftColumns = `id, opened_by, opened_at, closed_at, closed_by`

func scanShift(row pgx.Row) (domain.Shift, error) {
	var s domain.Shift
	err := row.Scan(&s.ID, &s.OpenedBy, &s.OpenedAt, &s.ClosedAt, &s.ClosedBy)
	return s, err
}

func (r *ShiftRepository) Current(ctx context.Context) (*domain.Shift, error) {
	s, err := scanShift(r.db.QueryRow(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE closed_at IS NULL`))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get current shift: %w", err)
	}
	return &s, nil
}

func (r *ShiftRepository) Open(ctx context.Context, adminID int64) (domain.Shift, error) {
	s, err := scanShift(r.db.QueryRow(ctx,
		`INSERT INTO shifts (opened_by) VALUES ($1) RETURNING `+shiftColumns, adminID))
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.Shift{}, domain.Conflict("a shift is already open")
	}
	if err != nil {
		return domain.Shift{}, fmt.Errorf("failed to open shift: %w", err)
	}
	return s, nil
}

func (r *ShiftRepository) Close(ctx context.Context, closedBy *int64) (domain.Shift, int64, error) {
	var (
		s        domain.Shift
		released int64
	)
	err := database.InTx(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		s, err = scanShift(tx.QueryRow(ctx, `
			UPDATE shifts SET closed_at = now(), closed_by = $1
			WHERE closed_at IS NULL
			RETURNING `+shiftColumns, closedBy))
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Conflict("no shift is open")
		}
		if err != nil {
			return fmt.Errorf("failed to close shift: %w", err)
		}
		released, err = tables.ForceReleaseAll(ctx, tx)
		return err
	})
	if err != nil {
		return domain.Shift{}, 0, err
	}
	return s, released, nil
}

func (r *ShiftRepository) Report(ctx context.Context, shift domain.Shift) (domain.ShiftReport, error) {
	rep := domain.ShiftReport{Shift: shift, ByMethod: map[domain.PaymentMethod]int64{}}
	rows, err := r.db.Query(ctx, `
		SELECT status, payment_method, COUNT(*), COALESCE(SUM(total), 0)::bigint, COALESCE(SUM(tip), 0)::bigint
		FROM orders
		WHERE shift_id = $1
		GROUP BY status, payment_method`, shift.ID)
	if err != nil {
		return rep, fmt.Errorf("failed to build report of shift %d: %w", shift.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status      domain.OrderStatus
			method      *domain.PaymentMethod
			count       int
			total, tips int64
		)
		if err := rows.Scan(&status, &method, &count, &total, &tips); err != nil {
			return rep, fmt.Errorf("failed to scan report row: %w", err)
		}
		if status == domain.OrderOpen {
			rep.OpenOrders += count
			continue
		}
		rep.PaidOrders += count
		rep.Revenue += total
		rep.Tips += tips
		if method != nil {
			rep.ByMethod[*method] += total
		}
	}
	return rep, rows.Err()
}
