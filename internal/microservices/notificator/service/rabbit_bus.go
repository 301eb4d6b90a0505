package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	amqp "github.com/rabbitmq/amqp091-go"

	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/common/metrics"
)

// Publisher and Subscriber are the parts of rabbitmq.Client the bus needs.
type Publisher interface {
	Publish(ctx context.Context, exchange, key string, body []byte, headers amqp.Table, contentType string, persistent bool) error
}

type Subscriber interface {
	SubscribeFanout(exchange, consumer string) (<-chan amqp.Delivery, func(), error)
}

// RabbitBus publishes to a fanout exchange; every API instance consumes the
// exchange through its own exclusive queue and feeds its hub.
type RabbitBus struct {
	pub      Publisher
	sub      Subscriber
	exchange string
	hub      *Hub
	lg       *logger.Logger
}

func NewRabbitBus(pub Publisher, sub Subscriber, exchange string, hub *Hub, lg *logger.Logger) *RabbitBus {
	return &RabbitBus{pub: pub, sub: sub, exchange: exchange, hub: hub, lg: lg}
}

func (b *RabbitBus) Publish(ctx context.Context, m Message) error {
	body, err := json.Marshal(m)
	if err != nil {
		return err
	}
	// realtime-события не переживают рестарт брокера: transient
	return b.pub.Publish(ctx, b.exchange, "", body, amqp.Table{"x-source": "restaurant-pos", "x-event": m.Event}, "application/json", false)
}

func (b *RabbitBus) Run(ctx context.Context) error {
	host, _ := os.Hostname()
	consumer := fmt.Sprintf("notificator-%s-%d", host, os.Getpid())
	msgs, stop, err := b.sub.SubscribeFanout(b.exchange, consumer)
	if err != nil {
		return err
	}
	defer stop()
	b.lg.Info("bus_subscribed", map[string]any{"exchange": b.exchange, "consumer": consumer})

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("notification consumer on %s closed", b.exchange)
			}
			var m Message
			if err := json.Unmarshal(d.Body, &m); err != nil {
				metrics.NotificationsPublished.WithLabelValues("unknown", "failed").Inc()
				b.lg.Error("bus_message_invalid", err, map[string]any{"message_id": d.MessageId})
				continue
			}
			b.hub.Deliver(m)
		}
	}
}
