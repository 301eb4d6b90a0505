package service

import (
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/microservices/tables/repository"
)

type Service struct {
	TableService TableServiceInterface
}

func New(db *repository.Repository, notifier domain.Notifier, lg *logger.Logger) *Service {
	return &Service{
		TableService: NewTableService(db.TableRepo, notifier, lg),
	}
}
