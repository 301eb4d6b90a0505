package service

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/common/metrics"
	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/microservices/kitchen/repository"
)

type QueueServiceInterface interface {
	ListQueue(ctx context.Context) ([]domain.QueueItem, error)
	RefreshDepth(ctx context.Context) error
}

type QueueService struct {
	db repository.QueueRepositoryInterface
	lg *logger.Logger
}

func NewQueueService(db repository.QueueRepositoryInterface, lg *logger.Logger) QueueServiceInterface {
	return &QueueService{db: db, lg: lg}
}

func (s *QueueService) ListQueue(ctx context.Context) ([]domain.QueueItem, error) {
	items, err := s.db.ListQueue(ctx)
	if err != nil {
		return nil, err
	}
	metrics.KitchenQueueDepth.Set(float64(len(items)))
	return items, nil
}

// RefreshDepth updates the queue depth gauge.
func (s *QueueService) RefreshDepth(ctx context.Context) error {
	n, err := s.db.Depth(ctx)
	if err != nil {
		return err
	}
	metrics.KitchenQueueDepth.Set(float64(n))
	return nil
}

// ScheduleDepth refreshes the gauge every interval on s.
func ScheduleDepth(s *gocron.Scheduler, svc QueueServiceInterface, every time.Duration, lg *logger.Logger) error {
	_, err := s.Every(every).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := svc.RefreshDepth(ctx); err != nil {
			lg.Warn("kitchen_depth_refresh_failed", err, nil)
		}
	})
	return err
}
