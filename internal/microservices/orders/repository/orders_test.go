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

func next(target domain.ItemStatus) Decide {
	return func(cur domain.ItemStatus, station domain.Station) (domain.ItemStatus, error) {
		return domain.Next(cur, target, station)
	}
}

func TestAddItems_ShiftClosed(t *testing.T) {
	pool := dbtest.Open(t)
	f := dbtest.Seed(t, pool)
	repo := NewOrderRepository(pool)

	_, err := repo.AddItems(context.Background(), f.Table1, f.WaiterA, []domain.NewItem{{ProductID: f.KitchenProduct, Quantity: 1}})
	if !errors.Is(err, domain.ErrShiftClosed) {
		t.Fatalf("expected shift closed, got %v", err)
	}
}

func TestAddItems_UnknownProductRollsBack(t *testing.T) {
	pool := dbtest.Open(t)
	f := dbtest.Seed(t, pool)
	dbtest.OpenShift(t, pool, f.Admin)
	repo := NewOrderRepository(pool)
	ctx := context.Background()

	_, err := repo.AddItems(ctx, f.Table1, f.WaiterA, []domain.NewItem{
		{ProductID: f.KitchenProduct, Quantity: 1},
		{ProductID: 9999, Quantity: 1},
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	o, err := repo.GetOpenOrder(ctx, f.Table1)
	if err != nil {
		t.Fatal(err)
	}
	if o != nil {
		t.Errorf("partial ticket must not persist, got order %+v", o)
	}
}

func TestAddItems_ConcurrentFirstTicketsShareOneOrder(t *testing.T) {
	pool := dbtest.Open(t)
	f := dbtest.Seed(t, pool)
	dbtest.OpenShift(t, pool, f.Admin)
	repo := NewOrderRepository(pool)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.AddItems(ctx, f.Table1, f.WaiterA, []domain.NewItem{{ProductID: f.KitchenProduct, Quantity: 1}}); err != nil {
				t.Errorf("add items: %v", err)
			}
		}()
	}
	wg.Wait()

	var orders int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE table_id = $1`, f.Table1).Scan(&orders); err != nil {
		t.Fatal(err)
	}
	if orders != 1 {
		t.Fatalf("expected one open order, got %d", orders)
	}
	o, err := repo.GetOpenOrder(ctx, f.Table1)
	if err != nil {
		t.Fatal(err)
	}
	if o.Total != 8000 || len(o.Items) != 8 {
		t.Errorf("expected 8 items totalling 8000, got %d items, total %d", len(o.Items), o.Total)
	}
	for i := 1; i < len(o.Items); i++ {
		if o.Items[i-1].ID >= o.Items[i].ID {
			t.Fatal("items must come back in id order")
		}
	}
}

func TestApplyTransition_KitchenChainAndTimeline(t *testing.T) {
	pool := dbtest.Open(t)
	f := dbtest.Seed(t, pool)
	dbtest.OpenShift(t, pool, f.Admin)
	repo := NewOrderRepository(pool)
	ctx := context.Background()

	price := int64(1000)
	o, err := repo.AddItems(ctx, f.Table1, f.WaiterA, []domain.NewItem{{ProductID: f.KitchenProduct, Quantity: 2, UnitPrice: &price, Comment: "sin sal"}})
	if err != nil {
		t.Fatal(err)
	}
	if o.Total != 2000 || len(o.Items) != 1 || o.Items[0].Status != domain.ItemPending {
		t.Fatalf("unexpected order %+v", o)
	}
	id := o.Items[0].ID

	_, tr, err := repo.ApplyTransition(ctx, id, f.Cook, next(domain.ItemInPreparation))
	if err != nil {
		t.Fatal(err)
	}
	if tr.OwnerStaffID != f.WaiterA || tr.TableLabel != "T1" || tr.From != domain.ItemPending {
		t.Errorf("unexpected transition %+v", tr)
	}
	if _, _, err := repo.ApplyTransition(ctx, id, f.Cook, next(domain.ItemPickedUp)); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("skipping ready must fail, got %v", err)
	}

	for _, st := range []domain.ItemStatus{domain.ItemReady, domain.ItemPickedUp, domain.ItemDelivered} {
		if _, _, err := repo.ApplyTransition(ctx, id, f.WaiterA, next(st)); err != nil {
			t.Fatalf("%s: %v", st, err)
		}
	}

	changes, err := repo.Timeline(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	want := []domain.ItemStatus{domain.ItemPending, domain.ItemInPreparation, domain.ItemReady, domain.ItemPickedUp, domain.ItemDelivered}
	if len(changes) != len(want) {
		t.Fatalf("expected %d timeline rows, got %d", len(want), len(changes))
	}
	for i, c := range changes {
		if c.To != want[i] {
			t.Errorf("row %d: expected %s, got %s", i, want[i], c.To)
		}
	}
	if changes[0].From != nil {
		t.Error("first timeline row has no previous status")
	}
}

func TestApplyTransition_ConcurrentReadyAppliesOnce(t *testing.T) {
	pool := dbtest.Open(t)
	f := dbtest.Seed(t, pool)
	dbtest.OpenShift(t, pool, f.Admin)
	repo := NewOrderRepository(pool)
	ctx := context.Background()

	o, err := repo.AddItems(ctx, f.Table1, f.WaiterA, []domain.NewItem{{ProductID: f.KitchenProduct, Quantity: 1}})
	if err != nil {
		t.Fatal(err)
	}
	id := o.Items[0].ID
	if _, _, err := repo.ApplyTransition(ctx, id, f.Cook, next(domain.ItemInPreparation)); err != nil {
		t.Fatal(err)
	}

	var ok, invalid atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := repo.ApplyTransition(ctx, id, f.Cook, next(domain.ItemReady))
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, domain.ErrInvalidTransition):
				invalid.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()
	if ok.Load() != 1 || invalid.Load() != 4 {
		t.Errorf("expected 1 success and 4 invalid, got %d/%d", ok.Load(), invalid.Load())
	}
}

func TestApplyTransition_BarItem(t *testing.T) {
	pool := dbtest.Open(t)
	f := dbtest.Seed(t, pool)
	dbtest.OpenShift(t, pool, f.Admin)
	repo := NewOrderRepository(pool)
	ctx := context.Background()

	o, err := repo.AddItems(ctx, f.Table2, f.WaiterB, []domain.NewItem{{ProductID: f.BarProduct, Quantity: 1}})
	if err != nil {
		t.Fatal(err)
	}
	id := o.Items[0].ID
	if o.Items[0].UnitPrice != 3500 {
		t.Errorf("missing unit price should default to the menu price, got %d", o.Items[0].UnitPrice)
	}
	if _, _, err := repo.ApplyTransition(ctx, id, f.Cook, next(domain.ItemInPreparation)); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("bar item must not enter preparation, got %v", err)
	}
	item, _, err := repo.ApplyTransition(ctx, id, f.WaiterB, next(domain.ItemDelivered))
	if err != nil {
		t.Fatal(err)
	}
	if item.Status != domain.ItemDelivered {
		t.Errorf("expected delivered, got %s", item.Status)
	}
}

func TestTimeline_UnknownItem(t *testing.T) {
	pool := dbtest.Open(t)
	dbtest.Seed(t, pool)
	if _, err := NewOrderRepository(pool).Timeline(context.Background(), 12345); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
