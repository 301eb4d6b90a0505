package service

import (
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/microservices/kitchen/repository"
)

type Service struct {
	QueueService QueueServiceInterface
}

func New(db *repository.Repository, lg *logger.Logger) *Service {
	return &Service{
		QueueService: NewQueueService(db.QueueRepo, lg),
	}
}
