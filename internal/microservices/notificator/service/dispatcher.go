package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/common/metrics"
	"restaurant-pos/internal/domain"
)

// Bus carries messages to every hub, in this process or across instances.
type Bus interface {
	Publish(ctx context.Context, m Message) error
	// Run feeds incoming messages to the local hub until ctx is done.
	Run(ctx context.Context) error
}

const publishTimeout = 5 * time.Second

// Dispatcher implements domain.Notifier. Notify only enqueues; a single
// goroutine in Run publishes, so mutations never wait on the bus.
type Dispatcher struct {
	bus   Bus
	queue chan Message
	lg    *logger.Logger
	now   func() time.Time
}

func NewDispatcher(bus Bus, queueSize int, lg *logger.Logger) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 256
	}
	return &Dispatcher{bus: bus, queue: make(chan Message, queueSize), lg: lg, now: time.Now}
}

func (d *Dispatcher) Notify(_ context.Context, ns ...domain.Notification) {
	for _, n := range ns {
		m, err := d.encode(n)
		if err != nil {
			metrics.NotificationsPublished.WithLabelValues(n.Event, "failed").Inc()
			d.lg.Error("notification_encode_failed", err, map[string]any{"event": n.Event})
			continue
		}
		select {
		case d.queue <- m:
		default:
			metrics.NotificationsPublished.WithLabelValues(n.Event, "dropped").Inc()
			d.lg.Warn("notification_queue_full", nil, map[string]any{"event": n.Event})
		}
	}
}

func (d *Dispatcher) encode(n domain.Notification) (Message, error) {
	m := Message{ID: uuid.NewString(), Event: n.Event, Room: n.Target.Room(), At: d.now().UTC()}
	if n.Data != nil {
		b, err := json.Marshal(n.Data)
		if err != nil {
			return Message{}, err
		}
		m.Data = b
	}
	return m, nil
}

// Run publishes queued messages until ctx is cancelled, then drains what is
// left with a short deadline.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case m := <-d.queue:
			d.publish(ctx, m)
		case <-ctx.Done():
			dctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
			defer cancel()
			for {
				select {
				case m := <-d.queue:
					d.publish(dctx, m)
				default:
					return nil
				}
			}
		}
	}
}

func (d *Dispatcher) publish(ctx context.Context, m Message) {
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := d.bus.Publish(pctx, m); err != nil {
		metrics.NotificationsPublished.WithLabelValues(m.Event, "failed").Inc()
		d.lg.Error("notification_publish_failed", err, map[string]any{"event": m.Event, "room": m.Room})
		return
	}
	metrics.NotificationsPublished.WithLabelValues(m.Event, "published").Inc()
}
