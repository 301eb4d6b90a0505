// Package notifytest records notifications for service tests.
package notifytest

import (
	"context"
	"sync"

	"restaurant-pos/internal/domain"
)

type Recorder struct {
	mu  sync.Mutex
	got []domain.Notification
}

func (r *Recorder) Notify(_ context.Context, ns ...domain.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, ns...)
}

func (r *Recorder) All() []domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Notification(nil), r.got...)
}

// Events returns the event names in the order they were sent.
func (r *Recorder) Events() []string {
	var out []string
	for _, n := range r.All() {
		out = append(out, n.Event)
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = nil
}
