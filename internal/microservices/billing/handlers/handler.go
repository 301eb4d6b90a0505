package handlers

import (
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/microservices/billing/service"
)

type Handler struct {
	BillingHandler *BillingHandler
}

func New(s *service.Service, lg *logger.Logger) *Handler {
	return &Handler{
		BillingHandler: NewBillingHandler(s.BillingService, lg),
	}
}
