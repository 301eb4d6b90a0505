package service

import (
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/microservices/shift/repository"
)

type Service struct {
	ShiftService ShiftServiceInterface
}

func New(db *repository.Repository, notifier domain.Notifier, mailer ReportMailer, lg *logger.Logger) *Service {
	return &Service{
		ShiftService: NewShiftService(db.ShiftRepo, notifier, mailer, lg),
	}
}
