package repository

import (
	"context"
	"errors"
	"testing"

	"restaurant-pos/internal/connections/database/dbtest"
	"restaurant-pos/internal/domain"
	billing "restaurant-pos/internal/microservices/billing/repository"
	orders "restaurant-pos/internal/microservices/orders/repository"
)

func TestQueue_RoundTrip(t *testing.T) {
	pool := dbtest.Open(t)
	f := dbtest.Seed(t, pool)
	dbtest.OpenShift(t, pool, f.Admin)
	ctx := context.Background()
	ledger := orders.NewOrderRepository(pool)
	queue := NewQueueRepository(pool)

	first, err := ledger.AddItems(ctx, f.Table1, f.WaiterA, []domain.NewItem{
		{ProductID: f.KitchenProduct, Quantity: 2, Comment: "sin cebolla"},
		{ProductID: f.BarProduct, Quantity: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ledger.AddItems(ctx, f.Table2, f.WaiterB, []domain.NewItem{{ProductID: f.KitchenProduct, Quantity: 1}}); err != nil {
		t.Fatal(err)
	}

	items, err := queue.ListQueue(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("bar items never reach the kitchen: expected 2 queue items, got %d", len(items))
	}
	if items[0].TableLabel != "T1" || items[0].Comment != "sin cebolla" || items[0].WaiterName != "Waiter A" {
		t.Errorf("unexpected head of queue %+v", items[0])
	}
	if items[0].LineItemID >= items[1].LineItemID {
		t.Error("queue must be FIFO by line item id")
	}
	if items[0].Status != domain.ItemPending {
		t.Errorf("new items start pending, got %s", items[0].Status)
	}

	id := first.Items[0].ID
	for _, st := range []domain.ItemStatus{domain.ItemInPreparation, domain.ItemReady, domain.ItemPickedUp} {
		if _, _, err := ledger.ApplyTransition(ctx, id, f.Admin, func(cur domain.ItemStatus, station domain.Station) (domain.ItemStatus, error) {
			return domain.Next(cur, st, station)
		}); err != nil {
			t.Fatalf("%s: %v", st, err)
		}
	}

	items, err = queue.ListQueue(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, it := range items {
		if it.LineItemID == id {
			t.Error("picked up item must leave the kitchen queue")
		}
	}
	n, err := queue.Depth(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(items) || n != 1 {
		t.Errorf("depth %d does not match queue length %d", n, len(items))
	}
}

func TestQueue_PaidOrderLeavesTheBoard(t *testing.T) {
	pool := dbtest.Open(t)
	f := dbtest.Seed(t, pool)
	dbtest.OpenShift(t, pool, f.Admin)
	ctx := context.Background()
	ledger := orders.NewOrderRepository(pool)
	queue := NewQueueRepository(pool)

	order, err := ledger.AddItems(ctx, f.Table1, f.WaiterA, []domain.NewItem{{ProductID: f.KitchenProduct, Quantity: 1}})
	if err != nil {
		t.Fatal(err)
	}
	id := order.Items[0].ID
	for _, to := range []domain.ItemStatus{domain.ItemInPreparation, domain.ItemReady} {
		to := to
		if _, _, err := ledger.ApplyTransition(ctx, id, f.Cook, func(cur domain.ItemStatus, st domain.Station) (domain.ItemStatus, error) {
			return domain.Next(cur, to, st)
		}); err != nil {
			t.Fatalf("%s: %v", to, err)
		}
	}

	if _, err := billing.NewBillingRepository(pool).Settle(ctx, f.Table1, domain.Settlement{
		TotalWithTip: 1000, PaymentMethod: domain.PaymentCash,
	}); err != nil {
		t.Fatal(err)
	}

	items, err := queue.ListQueue(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Errorf("paid order must leave the queue, got %+v", items)
	}
	depth, err := queue.Depth(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if depth != 0 {
		t.Errorf("expected depth 0 after settlement, got %d", depth)
	}

	_, _, err = ledger.ApplyTransition(ctx, id, f.WaiterA, func(cur domain.ItemStatus, st domain.Station) (domain.ItemStatus, error) {
		return domain.Next(cur, domain.ItemPickedUp, st)
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("transition on a paid order: expected conflict, got %v", err)
	}
}
