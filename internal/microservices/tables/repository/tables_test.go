package repository

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"restaurant-pos/internal/connections/database/dbtest"
	"restaurant-pos/internal/domain"
)

func TestClaim_RaceOnPostgres(t *testing.T) {
	pool := dbtest.Open(t)
	f := dbtest.Seed(t, pool)
	repo := NewTableRepository(pool)

	var wins atomic.Int32
	var wg sync.WaitGroup
	for _, staff := range []int64{f.WaiterA, f.WaiterB, f.WaiterA, f.WaiterB, f.Admin} {
		wg.Add(1)
		go func(staff int64) {
			defer wg.Done()
			_, err := repo.Claim(context.Background(), f.Table1, staff)
			if err == nil {
				wins.Add(1)
				return
			}
			if !errors.Is(err, domain.ErrConflict) {
				t.Errorf("unexpected error: %v", err)
			}
		}(staff)
	}
	wg.Wait()
	if wins.Load() != 1 {
		t.Fatalf("expected exactly one successful claim, got %d", wins.Load())
	}
}

func TestClaim_NotFound(t *testing.T) {
	pool := dbtest.Open(t)
	f := dbtest.Seed(t, pool)
	_, err := NewTableRepository(pool).Claim(context.Background(), 9999, f.WaiterA)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestRelease_Rules(t *testing.T) {
	pool := dbtest.Open(t)
	f := dbtest.Seed(t, pool)
	shift := dbtest.OpenShift(t, pool, f.Admin)
	repo := NewTableRepository(pool)
	ctx := context.Background()

	if _, err := repo.Claim(ctx, f.Table1, f.WaiterA); err != nil {
		t.Fatal(err)
	}
	var orderID, itemID int64
	if err := pool.QueryRow(ctx,
		`INSERT INTO orders (table_id, owner_staff_id, shift_id, total) VALUES ($1,$2,$3,1000) RETURNING id`,
		f.Table1, f.WaiterA, shift).Scan(&orderID); err != nil {
		t.Fatal(err)
	}
	if err := pool.QueryRow(ctx,
		`INSERT INTO line_items (order_id, product_id, quantity, unit_price, status) VALUES ($1,$2,1,1000,'ready') RETURNING id`,
		orderID, f.KitchenProduct).Scan(&itemID); err != nil {
		t.Fatal(err)
	}

	if _, err := repo.Release(ctx, f.Table1, domain.Actor{ID: f.WaiterB, Role: domain.RoleWaiter}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected forbidden, got %v", err)
	}
	if _, err := repo.Release(ctx, f.Table1, domain.Actor{ID: f.WaiterA, Role: domain.RoleWaiter}); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected conflict while item is ready, got %v", err)
	}

	mine, err := repo.ListMine(ctx, f.WaiterA)
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 1 || mine[0].OpenItemCount != 1 || mine[0].PendingHandoff != 1 {
		t.Errorf("unexpected ListMine result %+v", mine)
	}

	n, err := ForceReleaseAll(ctx, pool)
	if err != nil || n != 1 {
		t.Fatalf("force release: n=%d err=%v", n, err)
	}
	tables, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, tbl := range tables {
		if !tbl.Free() {
			t.Errorf("table %s still occupied after force release", tbl.Label)
		}
	}
}
