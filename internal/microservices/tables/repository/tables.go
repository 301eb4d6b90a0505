package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"restaurant-pos/internal/connections/database"
	"restaurant-pos/internal/domain"
)

type TableRepositoryInterface interface {
	List(ctx context.Context) ([]domain.Table, error)
	ListMine(ctx context.Context, staffID int64) ([]domain.MyTable, error)

	// Claim is a single conditional update: of two racing waiters exactly
	// one gets the row back.
	Claim(ctx context.Context, tableID, staffID int64) (domain.Table, error)
	Release(ctx context.Context, tableID int64, actor domain.Actor) (domain.Table, error)
}

type TableRepository struct {
	db *pgxpool.Pool
}

func NewTableRepository(db *pgxpool.Pool) TableRepositoryInterface {
	return &TableRepository{db: db}
}

const tableColumns = `t.id, t.label, t.seat_capacity, t.owner_staff_id, COALESCE(s.name, '')`

func scanTable(row pgx.Row) (domain.Table, error) {
	var t domain.Table
	err := row.Scan(&t.ID, &t.Label, &t.SeatCapacity, &t.OwnerStaffID, &t.OwnerName)
	return t, err
}

func (r *TableRepository) List(ctx context.Context) ([]domain.Table, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+tableColumns+`
		FROM dining_tables t
		LEFT JOIN staff s ON s.id = t.owner_staff_id
		ORDER BY t.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Table, 0)
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TableRepository) ListMine(ctx context.Context, staffID int64) ([]domain.MyTable, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+tableColumns+`,
		       o.id,
		       COUNT(li.id),
		       COUNT(li.id) FILTER (WHERE li.status <> 'delivered')
		FROM dining_tables t
		LEFT JOIN staff s ON s.id = t.owner_staff_id
		LEFT JOIN orders o ON o.table_id = t.id AND o.status = 'open'
		LEFT JOIN line_items li ON li.order_id = o.id
		WHERE t.owner_staff_id = $1
		GROUP BY t.id, s.name, o.id
		ORDER BY t.id`, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables of staff %d: %w", staffID, err)
	}
	defer rows.Close()

	out := make([]domain.MyTable, 0)
	for rows.Next() {
		var m domain.MyTable
		if err := rows.Scan(&m.ID, &m.Label, &m.SeatCapacity, &m.OwnerStaffID, &m.OwnerName,
			&m.OpenOrderID, &m.OpenItemCount, &m.PendingHandoff); err != nil {
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *TableRepository) Claim(ctx context.Context, tableID, staffID int64) (domain.Table, error) {
	t, err := scanTable(r.db.QueryRow(ctx, `
		WITH claimed AS (
			UPDATE dining_tables SET owner_staff_id = $2, updated_at = now()
			WHERE id = $1 AND owner_staff_id IS NULL
			RETURNING id, label, seat_capacity, owner_staff_id
		)
		SELECT `+tableColumns+`
		FROM claimed t
		LEFT JOIN staff s ON s.id = t.owner_staff_id`, tableID, staffID))
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Table{}, fmt.Errorf("failed to claim table %d: %w", tableID, err)
	}

	// строка не обновилась: либо стола нет, либо он уже занят
	cur, err := getTable(ctx, r.db, tableID, false)
	if err != nil {
		return domain.Table{}, err
	}
	return domain.Table{}, domain.Conflict("table %s is occupied by %s", cur.Label, cur.OwnerName)
}

func (r *TableRepository) Release(ctx context.Context, tableID int64, actor domain.Actor) (domain.Table, error) {
	var out domain.Table
	err := database.InTx(ctx, r.db, func(tx pgx.Tx) error {
		cur, err := getTable(ctx, tx, tableID, true)
		if err != nil {
			return err
		}
		open, err := openOrderSummary(ctx, tx, tableID)
		if err != nil {
			return err
		}
		if err := domain.CheckRelease(cur, actor, open); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`UPDATE dining_tables SET owner_staff_id = NULL, updated_at = now() WHERE id = $1`, tableID); err != nil {
			return fmt.Errorf("failed to release table %d: %w", tableID, err)
		}
		cur.OwnerStaffID = nil
		cur.OwnerName = ""
		out = cur
		return nil
	})
	return out, err
}

// ForceReleaseAll frees every table regardless of open orders. Only shift
// close calls it, inside its own transaction.
func ForceReleaseAll(ctx context.Context, q database.Querier) (int64, error) {
	tag, err := q.Exec(ctx,
		`UPDATE dining_tables SET owner_staff_id = NULL, updated_at = now() WHERE owner_staff_id IS NOT NULL`)
	if err != nil {
		return 0, fmt.Errorf("failed to release all tables: %w", err)
	}
	return tag.RowsAffected(), nil
}

func getTable(ctx context.Context, q database.Querier, tableID int64, lock bool) (domain.Table, error) {
	sql := `SELECT ` + tableColumns + ` FROM dining_tables t LEFT JOIN staff s ON s.id = t.owner_staff_id WHERE t.id = $1`
	if lock {
		sql += ` FOR UPDATE OF t`
	}
	t, err := scanTable(q.QueryRow(ctx, sql, tableID))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Table{}, domain.NotFound("table %d not found", tableID)
	}
	if err != nil {
		return domain.Table{}, fmt.Errorf("failed to load table %d: %w", tableID, err)
	}
	return t, nil
}

func openOrderSummary(ctx context.Context, q database.Querier, tableID int64) (*domain.OpenOrderSummary, error) {
	var s domain.OpenOrderSummary
	err := q.QueryRow(ctx, `
		SELECT o.id, COUNT(li.id), COUNT(li.id) FILTER (WHERE li.status <> 'delivered')
		FROM orders o
		LEFT JOIN line_items li ON li.order_id = o.id
		WHERE o.table_id = $1 AND o.status = 'open'
		GROUP BY o.id`, tableID).Scan(&s.OrderID, &s.Items, &s.NotDelivered)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to inspect open order of table %d: %w", tableID, err)
	}
	return &s, nil
}
