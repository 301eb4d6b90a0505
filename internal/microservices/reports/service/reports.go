package service

import (
	"context"
	"time"

	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/microservices/reports/models"
	"restaurant-pos/internal/microservices/reports/repository"
)

const (
	DefaultHistoryLimit = 100
	MaxHistoryLimit     = 500
)

type ReportsServiceInterface interface {
	History(ctx context.Context, limit int) ([]domain.Order, error)
	Dashboard(ctx context.Context) (models.Dashboard, error)
}

type ReportsService struct {
	repo repository.ReportsRepoInterface
	loc  *time.Location
	now  func() time.Time
}

func NewReportsService(repo repository.ReportsRepoInterface, loc *time.Location) *ReportsService {
	if loc == nil {
		loc = time.Local
	}
	return &ReportsService{repo: repo, loc: loc, now: time.Now}
}

func (s *ReportsService) History(ctx context.Context, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	return s.repo.History(ctx, limit)
}

func (s *ReportsService) Dashboard(ctx context.Context) (models.Dashboard, error) {
	return s.repo.Dashboard(ctx, startOfDay(s.now(), s.loc))
}

// startOfDay is local midnight of t in loc.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
