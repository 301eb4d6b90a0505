package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"restaurant-pos/internal/domain"
)

type ProductRepositoryInterface interface {
	ListAvailable(ctx context.Context) ([]domain.Product, error)
}

type ProductRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) ProductRepositoryInterface {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) ListAvailable(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, unit_price, category, station
		FROM products
		WHERE available
		ORDER BY category, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.UnitPrice, &p.Category, &p.Station); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
