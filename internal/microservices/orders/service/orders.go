package service

import (
	"context"

	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/common/metrics"
	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/microservices/orders/repository"
)

type OrderServiceInterface interface {
	GetOpenOrder(ctx context.Context, tableID int64) (*domain.Order, error)
	AddItems(ctx context.Context, tableID int64, actor domain.Actor, idempotencyKey string, items []domain.NewItem) (domain.Order, error)
	UpdateItemStatus(ctx context.Context, itemID int64, actor domain.Actor, status string) (domain.LineItem, error)
	Timeline(ctx context.Context, itemID int64) ([]domain.StatusChange, error)
}

type OrderService struct {
	db       repository.OrderRepositoryInterface
	idem     repository.IdempotencyStoreInterface
	notifier domain.Notifier
	lg       *logger.Logger
}

func NewOrderService(db repository.OrderRepositoryInterface, idem repository.IdempotencyStoreInterface, notifier domain.Notifier, lg *logger.Logger) OrderServiceInterface {
	return &OrderService{db: db, idem: idem, notifier: notifier, lg: lg}
}

func (s *OrderService) GetOpenOrder(ctx context.Context, tableID int64) (*domain.Order, error) {
	return s.db.GetOpenOrder(ctx, tableID)
}

func (s *OrderService) AddItems(ctx context.Context, tableID int64, actor domain.Actor, idempotencyKey string, items []domain.NewItem) (domain.Order, error) {
	if err := domain.ValidateItems(items); err != nil {
		return domain.Order{}, err
	}

	if idempotencyKey != "" {
		ok, err := s.idem.Reserve(ctx, actor.ID, idempotencyKey)
		if err != nil {
			return domain.Order{}, err
		}
		if !ok {
			return domain.Order{}, domain.Conflict("ticket %q was already submitted", idempotencyKey)
		}
	}

	order, err := s.db.AddItems(ctx, tableID, actor.ID, items)
	if err != nil {
		if idempotencyKey != "" {
			// ключ освобождается, чтобы повтор после ошибки прошёл
			if ferr := s.idem.Forget(context.WithoutCancel(ctx), actor.ID, idempotencyKey); ferr != nil {
				s.lg.Warn("idempotency_release_failed", ferr, map[string]any{"staff_id": actor.ID})
			}
		}
		return domain.Order{}, err
	}

	s.lg.Info("items_added", map[string]any{
		"order_id": order.ID,
		"table_id": tableID,
		"staff_id": actor.ID,
		"items":    len(items),
		"total":    order.Total,
	})
	s.notifier.Notify(ctx, domain.PlanItemsAdded(order, len(items))...)
	return order, nil
}

func (s *OrderService) UpdateItemStatus(ctx context.Context, itemID int64, actor domain.Actor, status string) (domain.LineItem, error) {
	target, err := domain.ParseItemStatus(status)
	if err != nil {
		return domain.LineItem{}, err
	}

	// сначала состояние, потом роль: шаг назад всегда invalid_transition
	item, tr, err := s.db.ApplyTransition(ctx, itemID, actor.ID, func(cur domain.ItemStatus, station domain.Station) (domain.ItemStatus, error) {
		next, err := domain.Next(cur, target, station)
		if err != nil {
			return "", err
		}
		return next, domain.MayRequest(actor.Role, next)
	})
	if err != nil {
		return domain.LineItem{}, err
	}

	metrics.LineItemTransitions.WithLabelValues(string(tr.To)).Inc()
	s.lg.Debug("line_item_transition", map[string]any{
		"line_item_id": tr.LineItemID,
		"from":         tr.From,
		"to":           tr.To,
		"changed_by":   actor.ID,
	})
	s.notifier.Notify(ctx, domain.PlanTransition(tr)...)
	return item, nil
}

func (s *OrderService) Timeline(ctx context.Context, itemID int64) ([]domain.StatusChange, error) {
	return s.db.Timeline(ctx, itemID)
}
