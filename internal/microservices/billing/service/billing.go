package service

import (
	"context"

	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/common/metrics"
	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/microservices/billing/repository"
)

// BillView is the bill preview shown before payment.
type BillView struct {
	OrderID int64             `json:"orderId"`
	TableID int64             `json:"tableId"`
	Items   []domain.LineItem `json:"items"`
	domain.Bill
}

type BillingServiceInterface interface {
	Bill(ctx context.Context, tableID int64, includeTip bool) (BillView, error)
	Pay(ctx context.Context, tableID int64, actor domain.Actor, s domain.Settlement) error
}

type BillingService struct {
	db       repository.BillingRepositoryInterface
	notifier domain.Notifier
	tipRate  float64
	lg       *logger.Logger
}

func NewBillingService(db repository.BillingRepositoryInterface, notifier domain.Notifier, tipRate float64, lg *logger.Logger) BillingServiceInterface {
	return &BillingService{db: db, notifier: notifier, tipRate: tipRate, lg: lg}
}

func (s *BillingService) Bill(ctx context.Context, tableID int64, includeTip bool) (BillView, error) {
	o, err := s.db.OpenOrder(ctx, tableID)
	if err != nil {
		return BillView{}, err
	}
	items := o.Items
	if items == nil {
		items = []domain.LineItem{}
	}
	return BillView{
		OrderID: o.ID,
		TableID: o.TableID,
		Items:   items,
		Bill:    domain.ComputeTotal(domain.Consumption(o.Items), s.tipRate, includeTip),
	}, nil
}

func (s *BillingService) Pay(ctx context.Context, tableID int64, actor domain.Actor, st domain.Settlement) error {
	if err := st.Validate(); err != nil {
		return err
	}
	o, err := s.db.Settle(ctx, tableID, st)
	if err != nil {
		return err
	}
	metrics.OrdersSettled.WithLabelValues(string(st.PaymentMethod)).Inc()
	s.lg.Info("order_settled", map[string]any{
		"order_id":       o.ID,
		"table_id":       tableID,
		"total":          st.TotalWithTip,
		"tip":            st.Tip,
		"payment_method": st.PaymentMethod,
		"staff_id":       actor.ID,
	})
	s.notifier.Notify(ctx, domain.PlanSettled(tableID)...)
	return nil
}
