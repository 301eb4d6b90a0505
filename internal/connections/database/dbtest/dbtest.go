// Package dbtest opens a migrated, empty Postgres for integration tests.
// Tests are skipped unless POS_TEST_DATABASE_URL is set.
package dbtest

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"restaurant-pos/internal/common/auth"
	"restaurant-pos/internal/connections/database"
	"restaurant-pos/internal/domain"
)

func Open(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("POS_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("POS_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		t.Skipf("Postgres not available: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Skipf("Postgres not available: %v", err)
	}
	// пакеты тестов идут параллельно и делят одну базу: сериализуем их
	lock, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if _, err := lock.Exec(ctx, `SELECT pg_advisory_lock(7301)`); err != nil {
		t.Fatalf("advisory lock: %v", err)
	}
	t.Cleanup(func() {
		_, _ = lock.Exec(context.Background(), `SELECT pg_advisory_unlock(7301)`)
		lock.Release()
		pool.Close()
	})

	if _, err := database.Migrate(ctx, pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE line_item_status_log, line_items, orders, shifts, dining_tables, products, staff RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return pool
}

// Fixture holds the ids created by Seed.
type Fixture struct {
	Admin, WaiterA, WaiterB, Cook int64
	Table1, Table2                int64
	KitchenProduct, BarProduct    int64
}

// Seed inserts a minimal restaurant: four staff, two tables, two products.
// No shift is opened.
func Seed(t *testing.T, pool *pgxpool.Pool) Fixture {
	t.Helper()
	ctx := context.Background()
	hash, err := auth.HashPassword("secret")
	if err != nil {
		t.Fatal(err)
	}

	var f Fixture
	staff := []struct {
		dst   *int64
		name  string
		email string
		role  domain.Role
	}{
		{&f.Admin, "Admin", "admin@test", domain.RoleAdmin},
		{&f.WaiterA, "Waiter A", "a@test", domain.RoleWaiter},
		{&f.WaiterB, "Waiter B", "b@test", domain.RoleWaiter},
		{&f.Cook, "Cook", "cook@test", domain.RoleKitchen},
	}
	for _, s := range staff {
		if err := pool.QueryRow(ctx,
			`INSERT INTO staff (name, email, password_hash, role) VALUES ($1,$2,$3,$4) RETURNING id`,
			s.name, s.email, hash, string(s.role)).Scan(s.dst); err != nil {
			t.Fatalf("seed staff: %v", err)
		}
	}
	for label, dst := range map[string]*int64{"T1": &f.Table1, "T2": &f.Table2} {
		if err := pool.QueryRow(ctx,
			`INSERT INTO dining_tables (label, seat_capacity) VALUES ($1, 4) RETURNING id`, label).Scan(dst); err != nil {
			t.Fatalf("seed tables: %v", err)
		}
	}
	if err := pool.QueryRow(ctx,
		`INSERT INTO products (name, unit_price, category, station) VALUES ('Cazuela', 1000, 'main', 'hot_kitchen') RETURNING id`).
		Scan(&f.KitchenProduct); err != nil {
		t.Fatalf("seed products: %v", err)
	}
	if err := pool.QueryRow(ctx,
		`INSERT INTO products (name, unit_price, category, station) VALUES ('Pisco Sour', 3500, 'drink', 'bar') RETURNING id`).
		Scan(&f.BarProduct); err != nil {
		t.Fatalf("seed products: %v", err)
	}
	return f
}

// OpenShift opens a shift as the fixture admin and returns its id.
func OpenShift(t *testing.T, pool *pgxpool.Pool, admin int64) int64 {
	t.Helper()
	var id int64
	if err := pool.QueryRow(context.Background(),
		`INSERT INTO shifts (opened_by) VALUES ($1) RETURNING id`, admin).Scan(&id); err != nil {
		t.Fatalf("open shift: %v", err)
	}
	return id
}
