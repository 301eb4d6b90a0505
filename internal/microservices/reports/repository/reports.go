package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"restaurant-pos/internal/domain"
	orders "restaurant-pos/internal/microservices/orders/repository"
	"restaurant-pos/internal/microservices/reports/models"
)

const topPerCategory = 5

type ReportsRepoInterface interface {
	History(ctx context.Context, limit int) ([]domain.Order, error)
	Dashboard(ctx context.Context, since time.Time) (models.Dashboard, error)
}

type ReportsRepo struct {
	db *pgxpool.Pool
}

func NewReportsRepo(db *pgxpool.Pool) ReportsRepoInterface { return &ReportsRepo{db: db} }

func (r *ReportsRepo) History(ctx context.Context, limit int) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+orders.OrderColumns+`
		FROM orders o
		JOIN dining_tables t ON t.id = o.table_id
		WHERE o.status = 'paid'
		ORDER BY o.closed_at DESC, o.id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales history: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Order, 0, limit)
	ids := make([]int64, 0, limit)
	for rows.Next() {
		o, err := orders.ScanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		out = append(out, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	items, err := orders.ItemsOf(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Items = items[out[i].ID]
	}
	return out, nil
}

func (r *ReportsRepo) Dashboard(ctx context.Context, since time.Time) (models.Dashboard, error) {
	d := models.Dashboard{Since: since, TopProducts: map[string][]models.TopProduct{}}

	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(total), 0)::bigint, COALESCE(SUM(tip), 0)::bigint, COUNT(*)
		FROM orders
		WHERE status = 'paid' AND closed_at >= $1`, since).Scan(&d.SalesToday, &d.TipsToday, &d.OrdersToday)
	if err != nil {
		return d, fmt.Errorf("failed to sum sales: %w", err)
	}

	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(owner_staff_id) FROM dining_tables`).Scan(&d.TablesTotal, &d.TablesOccupied)
	if err != nil {
		return d, fmt.Errorf("failed to count tables: %w", err)
	}

	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM line_items li
		JOIN products p ON p.id = li.product_id
		WHERE p.station <> 'bar' AND li.status IN ('pending', 'in_preparation')`).Scan(&d.KitchenPending)
	if err != nil {
		return d, fmt.Errorf("failed to count kitchen load: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT category, name, qty
		FROM (
			SELECT p.category, p.name, SUM(li.quantity)::bigint AS qty,
			       ROW_NUMBER() OVER (PARTITION BY p.category ORDER BY SUM(li.quantity) DESC, p.name) AS rn
			FROM line_items li
			JOIN products p ON p.id = li.product_id
			JOIN orders o ON o.id = li.order_id
			WHERE o.status = 'paid' AND o.closed_at >= $1
			GROUP BY p.category, p.name
		) ranked
		WHERE rn <= $2
		ORDER BY category, rn`, since, topPerCategory)
	if err != nil {
		return d, fmt.Errorf("failed to rank products: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var category string
		var tp models.TopProduct
		if err := rows.Scan(&category, &tp.Name, &tp.Quantity); err != nil {
			return d, fmt.Errorf("failed to scan top product: %w", err)
		}
		d.TopProducts[category] = append(d.TopProducts[category], tp)
	}
	return d, rows.Err()
}
