package rabbitmq

import (
	"context"
	"os"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"restaurant-pos/internal/common/config"
)

func TestURL(t *testing.T) {
	cfg := config.MQ{Host: "mq", Port: 5672, User: "guest", Pass: "p@ss", VHost: "/"}
	if got := URL(cfg, false); got != "amqp://guest:p%40ss@mq:5672" {
		t.Errorf("unexpected url %q", got)
	}
	cfg.VHost = "pos"
	if got := URL(cfg, true); got != "amqps://guest:p%40ss@mq:5672/pos" {
		t.Errorf("unexpected url %q", got)
	}
}

func TestFanout_EverySubscriberGetsEveryMessage(t *testing.T) {
	uri := os.Getenv("POS_TEST_AMQP_URL")
	if uri == "" {
		t.Skip("POS_TEST_AMQP_URL not set")
	}
	c, err := dial(uri, false)
	if err != nil {
		t.Skipf("RabbitMQ not available: %v", err)
	}
	defer c.Close()
	if err := c.Ping(); err != nil {
		t.Fatal(err)
	}

	const exchange = "pos_test_fanout"
	if err := c.DeclareFanout(exchange); err != nil {
		t.Fatal(err)
	}
	first, stopFirst, err := c.SubscribeFanout(exchange, "instance-1")
	if err != nil {
		t.Fatal(err)
	}
	defer stopFirst()
	second, stopSecond, err := c.SubscribeFanout(exchange, "instance-2")
	if err != nil {
		t.Fatal(err)
	}
	defer stopSecond()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Publish(ctx, exchange, "", []byte(`{"event":"tables_changed"}`), nil, "application/json", false); err != nil {
		t.Fatalf("publish: %v", err)
	}

	for name, ch := range map[string]<-chan amqp.Delivery{"first": first, "second": second} {
		select {
		case d := <-ch:
			if string(d.Body) != `{"event":"tables_changed"}` {
				t.Errorf("%s: unexpected body %s", name, d.Body)
			}
		case <-ctx.Done():
			t.Fatalf("%s subscriber got nothing", name)
		}
	}
}
