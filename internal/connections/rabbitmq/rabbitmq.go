package rabbitmq

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"restaurant-pos/internal/common/config"
)

type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel

	acks <-chan amqp.Confirmation // для publisher confirms
	mu   sync.Mutex               // сериализуем Publish при использовании confirms
}

func (c *Client) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// URL без пути означает vhost "/" по умолчанию.
func URL(cfg config.MQ, useTLS bool) string {
	scheme := "amqp"
	if useTLS {
		scheme = "amqps"
	}
	u := fmt.Sprintf("%s://%s:%s@%s:%d", scheme, url.QueryEscape(cfg.User), url.QueryEscape(cfg.Pass), cfg.Host, cfg.Port)
	if cfg.VHost != "" && cfg.VHost != "/" {
		u += "/" + url.PathEscape(cfg.VHost)
	}
	return u
}

func Dial(cfg config.MQ) (*Client, error) {
	return dial(URL(cfg, false), false)
}

func DialTLS(cfg config.MQ) (*Client, error) {
	return dial(URL(cfg, true), true)
}

func dial(uri string, useTLS bool) (*Client, error) {
	var (
		conn *amqp.Connection
		err  error
	)
	if useTLS {
		conn, err = amqp.DialTLS(uri, &tls.Config{MinVersion: tls.VersionTLS12})
	} else {
		conn, err = amqp.Dial(uri)
	}
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	// Включаем publisher confirms и подписываемся на подтверждения
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	acks := ch.NotifyPublish(make(chan amqp.Confirmation, 1))

	return &Client{conn: conn, ch: ch, acks: acks}, nil
}

// Ping is the health probe: it only looks at the connection state.
func (c *Client) Ping() error {
	if c.conn == nil || c.conn.IsClosed() {
		return errors.New("rabbitmq connection is closed")
	}
	return nil
}

// NotifyClose fires once when the underlying connection drops.
func (c *Client) NotifyClose() <-chan *amqp.Error {
	return c.conn.NotifyClose(make(chan *amqp.Error, 1))
}

func (c *Client) DeclareFanout(exchange string) error {
	return c.ch.ExchangeDeclare(exchange, "fanout", true, false, false, false, nil)
}

// SubscribeFanout binds a server-named exclusive queue to exchange on its own
// channel. Every process gets every message; the queue disappears with the
// connection.
func (c *Client) SubscribeFanout(exchange, consumer string) (<-chan amqp.Delivery, func(), error) {
	ch, err := c.conn.Channel()
	if err != nil {
		return nil, nil, fmt.Errorf("open consume channel: %w", err)
	}
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		_ = ch.Close()
		return nil, nil, fmt.Errorf("declare queue: %w", err)
	}
	if err := ch.QueueBind(q.Name, "", exchange, false, nil); err != nil {
		_ = ch.Close()
		return nil, nil, fmt.Errorf("bind %s to %s: %w", q.Name, exchange, err)
	}
	msgs, err := ch.Consume(q.Name, consumer, true, true, false, false, nil)
	if err != nil {
		_ = ch.Close()
		return nil, nil, fmt.Errorf("consume %s: %w", q.Name, err)
	}
	stop := func() {
		_ = ch.Cancel(consumer, false)
		_ = ch.Close()
	}
	return msgs, stop, nil
}

// Publish публикует сообщение и ждёт ack/nack от брокера.
// Не вызывает горутинно одновременно (сериализуется mutex-ом).
func (c *Client) Publish(ctx context.Context, exchange, key string,
	body []byte, headers amqp.Table, contentType string, persistent bool) error {

	c.mu.Lock()
	defer c.mu.Unlock()

	mode := amqp.Transient
	if persistent {
		mode = amqp.Persistent
	}

	if err := c.ch.PublishWithContext(
		ctx,
		exchange,
		key,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: mode,
			ContentType:  contentType,
			Timestamp:    time.Now(),
			Headers:      headers,
			Body:         body,
		},
	); err != nil {
		return err
	}

	// ждём publisher confirm или отмену контекста
	select {
	case conf := <-c.acks:
		if conf.Ack {
			return nil
		}
		return errors.New("publish NACK from broker")
	case <-ctx.Done():
		return ctx.Err()
	}
}
