package handlers

import (
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/microservices/tables/service"
)

type Handler struct {
	TableHandler *TableHandler
}

func New(s *service.Service, lg *logger.Logger) *Handler {
	return &Handler{
		TableHandler: NewTableHandler(s.TableService, lg),
	}
}
