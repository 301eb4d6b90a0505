package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/common/metrics"
	"restaurant-pos/internal/domain"
)

type mockQueueRepo struct {
	items []domain.QueueItem
	err   error
}

func (m *mockQueueRepo) ListQueue(ctx context.Context) ([]domain.QueueItem, error) {
	return m.items, m.err
}

func (m *mockQueueRepo) Depth(ctx context.Context) (int, error) {
	return len(m.items), m.err
}

func TestQueueService_UpdatesDepthGauge(t *testing.T) {
	repo := &mockQueueRepo{items: []domain.QueueItem{{LineItemID: 1}, {LineItemID: 2}, {LineItemID: 3}}}
	svc := NewQueueService(repo, logger.NewWithWriter("kitchen-test", &bytes.Buffer{}))

	if err := svc.RefreshDepth(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := testutil.ToFloat64(metrics.KitchenQueueDepth); got != 3 {
		t.Errorf("expected gauge 3, got %v", got)
	}

	repo.items = repo.items[:1]
	items, err := svc.ListQueue(context.Background())
	if err != nil || len(items) != 1 {
		t.Fatalf("unexpected queue %v, err %v", items, err)
	}
	if got := testutil.ToFloat64(metrics.KitchenQueueDepth); got != 1 {
		t.Errorf("listing should refresh the gauge, got %v", got)
	}
}

func TestQueueService_PropagatesErrors(t *testing.T) {
	boom := errors.New("db down")
	svc := NewQueueService(&mockQueueRepo{err: boom}, logger.NewWithWriter("kitchen-test", &bytes.Buffer{}))
	if _, err := svc.ListQueue(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected db error, got %v", err)
	}
}
