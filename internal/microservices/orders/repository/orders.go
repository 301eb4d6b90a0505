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

// Decide maps the locked current status of an item to its next status.
type Decide func(current domain.ItemStatus, station domain.Station) (domain.ItemStatus, error)

type OrderRepositoryInterface interface {
	GetOpenOrder(ctx context.Context, tableID int64) (*domain.Order, error)

	// AddItems appends a ticket to the table's open order, creating the order
	// when there is none. All items land or none do.
	AddItems(ctx context.Context, tableID, staffID int64, items []domain.NewItem) (domain.Order, error)

	// ApplyTransition locks the item row, asks decide for the next status and
	// writes it together with a status log row.
	ApplyTransition(ctx context.Context, itemID, actorID int64, decide Decide) (domain.LineItem, domain.Transition, error)
	Timeline(ctx context.Context, itemID int64) ([]domain.StatusChange, error)
}

type OrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepositoryInterface {
	return &OrderRepository{db: db}
}

// OrderColumns selects an order joined with its table as "o" and "t".
const OrderColumns = `o.id, o.table_id, t.label, o.owner_staff_id, o.shift_id, o.status,
	o.total, o.tip, o.payment_method, o.created_at, o.closed_at`

func ScanOrder(row pgx.Row) (domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.TableID, &o.TableLabel, &o.OwnerStaffID, &o.ShiftID, &o.Status,
		&o.Total, &o.Tip, &o.PaymentMethod, &o.CreatedAt, &o.ClosedAt)
	return o, err
}

const itemColumns = `li.id, li.order_id, li.product_id, p.name, p.station, li.quantity,
	li.unit_price, li.comment, li.status, li.created_at`

func scanItem(row pgx.Row) (domain.LineItem, error) {
	var it domain.LineItem
	err := row.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Station, &it.Quantity,
		&it.UnitPrice, &it.Comment, &it.Status, &it.CreatedAt)
	return it, err
}

// ItemsOf loads the line items of the given orders, each slice in id order.
func ItemsOf(ctx context.Context, q database.Querier, orderIDs []int64) (map[int64][]domain.LineItem, error) {
	out := make(map[int64][]domain.LineItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return out, nil
	}
	rows, err := q.Query(ctx, `
		SELECT `+itemColumns+`
		FROM line_items li
		JOIN products p ON p.id = li.product_id
		WHERE li.order_id = ANY($1)
		ORDER BY li.id`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load line items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, rows.Err()
}

func (r *OrderRepository) GetOpenOrder(ctx context.Context, tableID int64) (*domain.Order, error) {
	o, err := ScanOrder(r.db.QueryRow(ctx, `
		SELECT `+OrderColumns+`
		FROM orders o
		JOIN dining_tables t ON t.id = o.table_id
		WHERE o.table_id = $1 AND o.status = 'open'`, tableID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get open order of table %d: %w", tableID, err)
	}
	if err := attachItems(ctx, r.db, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func attachItems(ctx context.Context, q database.Querier, o *domain.Order) error {
	items, err := ItemsOf(ctx, q, []int64{o.ID})
	if err != nil {
		return err
	}
	o.Items = items[o.ID]
	if o.Items == nil {
		o.Items = []domain.LineItem{}
	}
	return nil
}

func (r *OrderRepository) AddItems(ctx context.Context, tableID, staffID int64, items []domain.NewItem) (domain.Order, error) {
	var out domain.Order
	err := database.InTx(ctx, r.db, func(tx pgx.Tx) error {
		// FOR SHARE держит смену открытой до конца транзакции
		var shiftID int64
		err := tx.QueryRow(ctx, `SELECT id FROM shifts WHERE closed_at IS NULL FOR SHARE`).Scan(&shiftID)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrShiftClosed
		}
		if err != nil {
			return fmt.Errorf("failed to check shift: %w", err)
		}

		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM dining_tables WHERE id = $1)`, tableID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check table %d: %w", tableID, err)
		}
		if !exists {
			return domain.NotFound("table %d not found", tableID)
		}

		orderID, err := openOrderFor(ctx, tx, tableID, staffID, shiftID)
		if err != nil {
			return err
		}

		var added int64
		for i, item := range items {
			var name string
			var price int64
			err := tx.QueryRow(ctx, `SELECT name, unit_price FROM products WHERE id = $1`, item.ProductID).Scan(&name, &price)
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.NotFound("product %d not found", item.ProductID)
			}
			if err != nil {
				return fmt.Errorf("failed to load product %d: %w", item.ProductID, err)
			}
			if item.UnitPrice != nil {
				price = *item.UnitPrice
			}

			var itemID int64
			if err := tx.QueryRow(ctx, `
				INSERT INTO line_items (order_id, product_id, quantity, unit_price, comment, status)
				VALUES ($1, $2, $3, $4, $5, 'pending')
				RETURNING id`,
				orderID, item.ProductID, item.Quantity, price, item.Comment).Scan(&itemID); err != nil {
				return fmt.Errorf("failed to insert line item %d (%s): %w", i, name, err)
			}
			if _, err := tx.Exec(ctx, `
				INSERT INTO line_item_status_log (line_item_id, from_status, to_status, changed_by)
				VALUES ($1, NULL, 'pending', $2)`, itemID, staffID); err != nil {
				return fmt.Errorf("failed to insert status log: %w", err)
			}
			added += price * int64(item.Quantity)
		}

		if _, err := tx.Exec(ctx, `UPDATE orders SET total = total + $2 WHERE id = $1`, orderID, added); err != nil {
			return fmt.Errorf("failed to update order total: %w", err)
		}

		out, err = ScanOrder(tx.QueryRow(ctx, `
			SELECT `+OrderColumns+`
			FROM orders o
			JOIN dining_tables t ON t.id = o.table_id
			WHERE o.id = $1`, orderID))
		if err != nil {
			return fmt.Errorf("failed to reload order %d: %w", orderID, err)
		}
		return attachItems(ctx, tx, &out)
	})
	return out, err
}

// openOrderFor returns the table's open order, creating it if needed. The
// partial unique index turns a concurrent create into DO NOTHING, after which
// the winner's row is visible and gets locked.
func openOrderFor(ctx context.Context, tx pgx.Tx, tableID, staffID, shiftID int64) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, `
		INSERT INTO orders (table_id, owner_staff_id, shift_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (table_id) WHERE status = 'open' DO NOTHING
		RETURNING id`, tableID, staffID, shiftID).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("failed to create order for table %d: %w", tableID, err)
	}
	err = tx.QueryRow(ctx,
		`SELECT id FROM orders WHERE table_id = $1 AND status = 'open' FOR UPDATE`, tableID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to lock open order of table %d: %w", tableID, err)
	}
	return id, nil
}

func (r *OrderRepository) ApplyTransition(ctx context.Context, itemID, actorID int64, decide Decide) (domain.LineItem, domain.Transition, error) {
	var (
		item domain.LineItem
		tr   domain.Transition
	)
	err := database.InTx(ctx, r.db, func(tx pgx.Tx) error {
		var orderStatus domain.OrderStatus
		err := tx.QueryRow(ctx, `
			SELECT `+itemColumns+`, o.status, o.table_id, t.label, o.owner_staff_id
			FROM line_items li
			JOIN products p ON p.id = li.product_id
			JOIN orders o ON o.id = li.order_id
			JOIN dining_tables t ON t.id = o.table_id
			WHERE li.id = $1
			FOR UPDATE OF li`, itemID).Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.Station, &item.Quantity,
			&item.UnitPrice, &item.Comment, &item.Status, &item.CreatedAt,
			&orderStatus, &tr.TableID, &tr.TableLabel, &tr.OwnerStaffID)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NotFound("line item %d not found", itemID)
		}
		if err != nil {
			return fmt.Errorf("failed to lock line item %d: %w", itemID, err)
		}
		if orderStatus != domain.OrderOpen {
			return domain.Conflict("order %d is already %s", item.OrderID, orderStatus)
		}

		next, err := decide(item.Status, item.Station)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`UPDATE line_items SET status = $2, updated_at = now() WHERE id = $1`, itemID, string(next)); err != nil {
			return fmt.Errorf("failed to update line item %d: %w", itemID, err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO line_item_status_log (line_item_id, from_status, to_status, changed_by)
			VALUES ($1, $2, $3, $4)`, itemID, string(item.Status), string(next), actorID); err != nil {
			return fmt.Errorf("failed to insert status log: %w", err)
		}

		tr.LineItemID = item.ID
		tr.OrderID = item.OrderID
		tr.ProductName = item.ProductName
		tr.Station = item.Station
		tr.From = item.Status
		tr.To = next
		tr.ChangedBy = actorID
		item.Status = next
		return nil
	})
	if err != nil {
		return domain.LineItem{}, domain.Transition{}, err
	}
	return item, tr, nil
}

func (r *OrderRepository) Timeline(ctx context.Context, itemID int64) ([]domain.StatusChange, error) {
	rows, err := r.db.Query(ctx, `
		SELECT line_item_id, from_status, to_status, changed_by, changed_at
		FROM line_item_status_log
		WHERE line_item_id = $1
		ORDER BY id`, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load timeline of line item %d: %w", itemID, err)
	}
	defer rows.Close()

	out := make([]domain.StatusChange, 0)
	for rows.Next() {
		var c domain.StatusChange
		if err := rows.Scan(&c.LineItemID, &c.From, &c.To, &c.ChangedBy, &c.ChangedAt); err != nil {
			return nil, fmt.Errorf("failed to scan status change: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, domain.NotFound("line item %d not found", itemID)
	}
	return out, nil
}
