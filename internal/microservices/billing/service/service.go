package service

import (
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/microservices/billing/repository"
)

type Service struct {
	BillingService BillingServiceInterface
}

func New(db *repository.Repository, notifier domain.Notifier, tipRate float64, lg *logger.Logger) *Service {
	return &Service{
		BillingService: NewBillingService(db.BillingRepo, notifier, tipRate, lg),
	}
}
