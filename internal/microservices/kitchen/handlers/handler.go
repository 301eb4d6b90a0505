package handlers

import (
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/microservices/kitchen/service"
)

type Handler struct {
	QueueHandler *QueueHandler
}

func New(s *service.Service, lg *logger.Logger) *Handler {
	return &Handler{
		QueueHandler: NewQueueHandler(s.QueueService, lg),
	}
}
