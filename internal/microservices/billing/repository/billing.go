package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"restaurant-pos/internal/connections/database"
	"restaurant-pos/internal/domain"
	orders "restaurant-pos/internal/microservices/orders/repository"
)

type BillingRepositoryInterface interface {
	// OpenOrder returns the order being billed with its items.
	OpenOrder(ctx context.Context, tableID int64) (domain.Order, error)

	// Settle marks the open order paid and frees the table in one
	// transaction. It bypasses the release rules.
	Settle(ctx context.Context, tableID int64, s domain.Settlement) (domain.Order, error)
}

type BillingRepository struct {
	db *pgxpool.Pool
}

func NewBillingRepository(db *pgxpool.Pool) BillingRepositoryInterface {
	return &BillingRepository{db: db}
}

func (r *BillingRepository) OpenOrder(ctx context.Context, tableID int64) (domain.Order, error) {
	o, err := orders.ScanOrder(r.db.QueryRow(ctx, `
		SELECT `+orders.OrderColumns+`
		FROM orders o
		JOIN dining_tables t ON t.id = o.table_id
		WHERE o.table_id = $1 AND o.status = 'open'`, tableID))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, domain.NotFound("table %d has no open order", tableID)
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("failed to load open order of table %d: %w", tableID, err)
	}
	items, err := orders.ItemsOf(ctx, r.db, []int64{o.ID})
	if err != nil {
		return domain.Order{}, err
	}
	o.Items = items[o.ID]
	return o, nil
}

func (r *BillingRepository) Settle(ctx context.Context, tableID int64, s domain.Settlement) (domain.Order, error) {
	var out domain.Order
	err := database.InTx(ctx, r.db, func(tx pgx.Tx) error {
		var orderID int64
		err := tx.QueryRow(ctx,
			`SELECT id FROM orders WHERE table_id = $1 AND status = 'open' FOR UPDATE`, tableID).Scan(&orderID)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NotFound("table %d has no open order", tableID)
		}
		if err != nil {
			return fmt.Errorf("failed to lock open order of table %d: %w", tableID, err)
		}

		if _, err := tx.Exec(ctx, `
			UPDATE orders
			SET status = 'paid', total = $2, tip = $3, payment_method = $4, closed_at = now()
			WHERE id = $1`, orderID, s.TotalWithTip, s.Tip, string(s.PaymentMethod)); err != nil {
			return fmt.Errorf("failed to mark order %d paid: %w", orderID, err)
		}
		if _, err := tx.Exec(ctx,
			`UPDATE dining_tables SET owner_staff_id = NULL, updated_at = now() WHERE id = $1`, tableID); err != nil {
			return fmt.Errorf("failed to free table %d: %w", tableID, err)
		}

		out, err = orders.ScanOrder(tx.QueryRow(ctx, `
			SELECT `+orders.OrderColumns+`
			FROM orders o
			JOIN dining_tables t ON t.id = o.table_id
			WHERE o.id = $1`, orderID))
		if err != nil {
			return fmt.Errorf("failed to reload order %d: %w", orderID, err)
		}
		return nil
	})
	return out, err
}
