package handlers

import (
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/microservices/reports/service"
)

type Handler struct {
	ReportsHandler *ReportsHandler
}

func New(s *service.Service, lg *logger.Logger) *Handler {
	return &Handler{
		ReportsHandler: NewReportsHandler(s.ReportsService, lg),
	}
}
