package repository

import (
	"context"
	"errors"
	"testing"

	"restaurant-pos/internal/connections/database/dbtest"
	"restaurant-pos/internal/domain"
	orders "restaurant-pos/internal/microservices/orders/repository"
	tables "restaurant-pos/internal/microservices/tables/repository"
)

func TestSettle_PaysAndFreesTable(t *testing.T) {
	pool := dbtest.Open(t)
	f := dbtest.Seed(t, pool)
	dbtest.OpenShift(t, pool, f.Admin)
	ctx := context.Background()
	tableRepo := tables.NewTableRepository(pool)
	repo := NewBillingRepository(pool)

	if _, err := tableRepo.Claim(ctx, f.Table1, f.WaiterA); err != nil {
		t.Fatal(err)
	}
	if _, err := orders.NewOrderRepository(pool).AddItems(ctx, f.Table1, f.WaiterA,
		[]domain.NewItem{{ProductID: f.KitchenProduct, Quantity: 2}}); err != nil {
		t.Fatal(err)
	}

	o, err := repo.OpenOrder(ctx, f.Table1)
	if err != nil {
		t.Fatal(err)
	}
	if domain.Consumption(o.Items) != 2000 {
		t.Errorf("expected consumption 2000, got %d", domain.Consumption(o.Items))
	}

	paid, err := repo.Settle(ctx, f.Table1, domain.Settlement{TotalWithTip: 2200, Tip: 200, PaymentMethod: domain.PaymentCash})
	if err != nil {
		t.Fatal(err)
	}
	if paid.Status != domain.OrderPaid || paid.Total != 2200 || paid.Tip != 200 || paid.ClosedAt == nil {
		t.Errorf("unexpected paid order %+v", paid)
	}
	if paid.PaymentMethod == nil || *paid.PaymentMethod != domain.PaymentCash {
		t.Errorf("payment method not stored: %v", paid.PaymentMethod)
	}

	if _, err := tableRepo.Claim(ctx, f.Table1, f.WaiterB); err != nil {
		t.Errorf("table should be claimable after settlement: %v", err)
	}
	if _, err := repo.Settle(ctx, f.Table1, domain.Settlement{TotalWithTip: 1, PaymentMethod: domain.PaymentCard}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found for a table without open order, got %v", err)
	}
}
