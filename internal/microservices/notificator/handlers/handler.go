package handlers

import (
	"time"

	"restaurant-pos/internal/microservices/notificator/service"
)

type Handler struct {
	EventsHandler *EventsHandler
}

func New(s *service.Service, heartbeat time.Duration) *Handler {
	return &Handler{
		EventsHandler: NewEventsHandler(s.Hub, heartbeat),
	}
}
