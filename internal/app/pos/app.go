package pos

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"github.com/redis/go-redis/v9"

	"restaurant-pos/internal/common/config"
	"restaurant-pos/internal/common/httpx"
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/connections/database"
	"restaurant-pos/internal/connections/rabbitmq"
	redisconn "restaurant-pos/internal/connections/redis"
	kitchensvc "restaurant-pos/internal/microservices/kitchen/service"
	notifsvc "restaurant-pos/internal/microservices/notificator/service"
	shiftsvc "restaurant-pos/internal/microservices/shift/service"
)

const (
	clientBuffer = 64
	queueSize    = 1024
	depthEvery   = 15 * time.Second
)

type Options struct {
	MaxConcurrent int
	Heartbeat     time.Duration
}

// Run serves the API until ctx is cancelled or a background loop fails.
func Run(ctx context.Context, cfg config.App, opts Options) error {
	lg := logger.New("pos-api")
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	loc, err := time.LoadLocation(cfg.Shift.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", cfg.Shift.Timezone, err)
	}

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()
	lg.Info("db_connected", map[string]any{"host": cfg.Database.Host, "database": cfg.Database.Name})

	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		rdb, err = redisconn.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer rdb.Close()
		lg.Info("redis_connected", map[string]any{"addr": cfg.Redis.Addr})
	}

	var broker Pinger
	newBus := func(h *notifsvc.Hub) notifsvc.Bus { return notifsvc.NewLocalBus(h) }
	if cfg.Rabbit.Enabled() {
		mq, err := dialRabbit(cfg.Rabbit)
		if err != nil {
			return err
		}
		defer mq.Close()
		if err := mq.DeclareFanout(cfg.Rabbit.Exchange); err != nil {
			return err
		}
		broker = mq
		go logConnectionLoss(ctx, mq, lg)
		newBus = func(h *notifsvc.Hub) notifsvc.Bus {
			return notifsvc.NewRabbitBus(mq, mq, cfg.Rabbit.Exchange, h, lg.Named("notificator"))
		}
		lg.Info("rabbitmq_connected", map[string]any{"host": cfg.Rabbit.Host, "exchange": cfg.Rabbit.Exchange})
	}
	notifier := notifsvc.New(lg.Named("notificator"), clientBuffer, queueSize, newBus)

	var mailer shiftsvc.ReportMailer = shiftsvc.NoopMailer{}
	if cfg.SMTP.Enabled() {
		mailer = shiftsvc.NewSMTPMailer(cfg.SMTP)
	}

	api := Build(Deps{
		Pool:          pool,
		Redis:         rdb,
		Notifier:      notifier,
		Mailer:        mailer,
		Config:        cfg,
		Location:      loc,
		Broker:        broker,
		MaxConcurrent: opts.MaxConcurrent,
		Heartbeat:     opts.Heartbeat,
	}, lg)

	sched := gocron.NewScheduler(loc)
	if err := kitchensvc.ScheduleDepth(sched, api.Kitchen.QueueService, depthEvery, lg.Named("kitchen")); err != nil {
		return fmt.Errorf("schedule queue depth: %w", err)
	}
	if at := cfg.Shift.AutoCloseAt; at != "" {
		if err := shiftsvc.ScheduleAutoClose(sched, api.Shift.ShiftService, at, lg.Named("shift")); err != nil {
			return fmt.Errorf("schedule shift auto close: %w", err)
		}
		lg.Info("shift_auto_close_scheduled", map[string]any{"at": at, "timezone": loc.String()})
	}
	sched.StartAsync()
	defer sched.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srv := httpx.New(cfg.HTTP.Addr, api.Router)
	srv.OnShutdown(notifier.Hub.CloseAll)

	errCh := make(chan error, 2)
	go func() { errCh <- notifier.Run(ctx) }()
	go func() { errCh <- srv.Run(ctx) }()
	lg.Info("http_listening", map[string]any{"addr": cfg.HTTP.Addr, "max_concurrent": opts.MaxConcurrent})

	// первая ошибка (или nil после отмены) останавливает оба цикла
	first := <-errCh
	cancel()
	second := <-errCh
	if first != nil {
		return first
	}
	return second
}

// logConnectionLoss records why the broker went away. The consumer sees the
// same loss and stops Run.
func logConnectionLoss(ctx context.Context, mq *rabbitmq.Client, lg *logger.Logger) {
	select {
	case amqpErr, ok := <-mq.NotifyClose():
		if ok && amqpErr != nil {
			lg.Error("rabbitmq_connection_lost", amqpErr, map[string]any{"code": amqpErr.Code, "reason": amqpErr.Reason})
		}
	case <-ctx.Done():
	}
}

func dialRabbit(cfg config.MQ) (*rabbitmq.Client, error) {
	if cfg.TLS {
		return rabbitmq.DialTLS(cfg)
	}
	return rabbitmq.Dial(cfg)
}
