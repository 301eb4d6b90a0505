package handlers

import (
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/microservices/auth/service"
)

type Handler struct {
	LoginHandler *LoginHandler
}

func New(s *service.Service, lg *logger.Logger) *Handler {
	return &Handler{
		LoginHandler: NewLoginHandler(s.LoginService, lg),
	}
}
