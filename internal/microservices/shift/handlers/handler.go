package handlers

import (
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/microservices/shift/service"
)

type Handler struct {
	ShiftHandler *ShiftHandler
}

func New(s *service.Service, lg *logger.Logger) *Handler {
	return &Handler{
		ShiftHandler: NewShiftHandler(s.ShiftService, lg),
	}
}
