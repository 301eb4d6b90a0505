package service

import (
	"context"

	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/common/metrics"
	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/microservices/tables/repository"
)

type TableServiceInterface interface {
	List(ctx context.Context) ([]domain.Table, error)
	ListMine(ctx context.Context, staffID int64) ([]domain.MyTable, error)
	Claim(ctx context.Context, tableID int64, actor domain.Actor) (domain.Table, error)
	Release(ctx context.Context, tableID int64, actor domain.Actor) (domain.Table, error)
}

type TableService struct {
	db       repository.TableRepositoryInterface
	notifier domain.Notifier
	lg       *logger.Logger
}

func NewTableService(db repository.TableRepositoryInterface, notifier domain.Notifier, lg *logger.Logger) TableServiceInterface {
	return &TableService{db: db, notifier: notifier, lg: lg}
}

func (s *TableService) List(ctx context.Context) ([]domain.Table, error) {
	return s.db.List(ctx)
}

func (s *TableService) ListMine(ctx context.Context, staffID int64) ([]domain.MyTable, error) {
	return s.db.ListMine(ctx, staffID)
}

func (s *TableService) Claim(ctx context.Context, tableID int64, actor domain.Actor) (domain.Table, error) {
	t, err := s.db.Claim(ctx, tableID, actor.ID)
	if err != nil {
		metrics.TableClaims.WithLabelValues(outcome(err)).Inc()
		return domain.Table{}, err
	}
	metrics.TableClaims.WithLabelValues("claimed").Inc()
	s.lg.Info("table_claimed", map[string]any{"table_id": t.ID, "staff_id": actor.ID})
	s.notifier.Notify(ctx, domain.TablesChanged())
	return t, nil
}

func (s *TableService) Release(ctx context.Context, tableID int64, actor domain.Actor) (domain.Table, error) {
	t, err := s.db.Release(ctx, tableID, actor)
	if err != nil {
		return domain.Table{}, err
	}
	s.lg.Info("table_released", map[string]any{"table_id": t.ID, "staff_id": actor.ID, "role": actor.Role})
	s.notifier.Notify(ctx, domain.TablesChanged())
	return t, nil
}

func outcome(err error) string {
	if k := domain.KindOf(err); k != "" {
		return string(k)
	}
	return "error"
}
