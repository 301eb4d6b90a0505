package repository

import (
	"context"
	"testing"
	"time"

	"restaurant-pos/internal/connections/database/dbtest"
	"restaurant-pos/internal/domain"
	billing "restaurant-pos/internal/microservices/billing/repository"
	orders "restaurant-pos/internal/microservices/orders/repository"
	tables "restaurant-pos/internal/microservices/tables/repository"
)

func TestDashboardAndHistory(t *testing.T) {
	pool := dbtest.Open(t)
	f := dbtest.Seed(t, pool)
	dbtest.OpenShift(t, pool, f.Admin)
	ctx := context.Background()
	since := time.Now().Add(-time.Hour)

	ledger := orders.NewOrderRepository(pool)
	if _, err := tables.NewTableRepository(pool).Claim(ctx, f.Table2, f.WaiterB); err != nil {
		t.Fatal(err)
	}
	if _, err := ledger.AddItems(ctx, f.Table1, f.WaiterA, []domain.NewItem{
		{ProductID: f.KitchenProduct, Quantity: 3},
		{ProductID: f.BarProduct, Quantity: 1},
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := billing.NewBillingRepository(pool).Settle(ctx, f.Table1,
		domain.Settlement{TotalWithTip: 7150, Tip: 650, PaymentMethod: domain.PaymentCash}); err != nil {
		t.Fatal(err)
	}
	if _, err := ledger.AddItems(ctx, f.Table2, f.WaiterB, []domain.NewItem{{ProductID: f.KitchenProduct, Quantity: 1}}); err != nil {
		t.Fatal(err)
	}

	repo := NewReportsRepo(pool)
	d, err := repo.Dashboard(ctx, since)
	if err != nil {
		t.Fatal(err)
	}
	if d.SalesToday != 7150 || d.TipsToday != 650 || d.OrdersToday != 1 {
		t.Errorf("unexpected sales %+v", d)
	}
	if d.TablesTotal != 2 || d.TablesOccupied != 1 {
		t.Errorf("unexpected table counts %+v", d)
	}
	// the paid order's kitchen items are still pending, plus one on table 2
	if d.KitchenPending != 2 {
		t.Errorf("expected 2 pending kitchen items, got %d", d.KitchenPending)
	}
	if top := d.TopProducts["main"]; len(top) != 1 || top[0].Name != "Cazuela" || top[0].Quantity != 3 {
		t.Errorf("unexpected top products %+v", d.TopProducts)
	}

	history, err := repo.History(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 || len(history[0].Items) != 2 || history[0].Status != domain.OrderPaid {
		t.Errorf("unexpected history %+v", history)
	}
}
