package service

import (
	"restaurant-pos/internal/common/auth"
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/microservices/auth/repository"
)

type Service struct {
	LoginService LoginServiceInterface
}

func New(db *repository.Repository, gate ShiftGate, tokens *auth.Tokens, lg *logger.Logger) *Service {
	return &Service{
		LoginService: NewLoginService(db.StaffRepo, gate, tokens, lg),
	}
}
