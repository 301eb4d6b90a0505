package service

import (
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/microservices/orders/repository"
)

type Service struct {
	OrderService OrderServiceInterface
}

func New(db *repository.Repository, notifier domain.Notifier, lg *logger.Logger) *Service {
	return &Service{
		OrderService: NewOrderService(db.OrderRepo, db.Idempotency, notifier, lg),
	}
}
