package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"restaurant-pos/internal/domain"
)

type QueueRepositoryInterface interface {
	// ListQueue returns every item the kitchen still owns, first ordered first.
	ListQueue(ctx context.Context) ([]domain.QueueItem, error)
	Depth(ctx context.Context) (int, error)
}

type QueueRepository struct {
	db *pgxpool.Pool
}

func NewQueueRepository(db *pgxpool.Pool) QueueRepositoryInterface {
	return &QueueRepository{db: db}
}

// одно условие на оба запроса, чтобы очередь и метрика не расходились.
// Оплаченный заказ уходит с доски целиком, даже если кухня его не закрыла.
const onBoard = `p.station <> 'bar' AND li.status IN ('pending', 'in_preparation', 'ready') AND o.status = 'open'`

func (r *QueueRepository) ListQueue(ctx context.Context) ([]domain.QueueItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT li.id, o.id, t.id, t.label, p.name, li.quantity, li.comment, li.status, s.name, li.created_at
		FROM line_items li
		JOIN products p ON p.id = li.product_id
		JOIN orders o ON o.id = li.order_id
		JOIN dining_tables t ON t.id = o.table_id
		JOIN staff s ON s.id = o.owner_staff_id
		WHERE `+onBoard+`
		ORDER BY li.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list kitchen queue: %w", err)
	}
	defer rows.Close()

	out := make([]domain.QueueItem, 0)
	for rows.Next() {
		var q domain.QueueItem
		if err := rows.Scan(&q.LineItemID, &q.OrderID, &q.TableID, &q.TableLabel, &q.ProductName,
			&q.Quantity, &q.Comment, &q.Status, &q.WaiterName, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan queue item: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *QueueRepository) Depth(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM line_items li
		JOIN products p ON p.id = li.product_id
		JOIN orders o ON o.id = li.order_id
		WHERE `+onBoard).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count kitchen queue: %w", err)
	}
	return n, nil
}
