package pos

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"restaurant-pos/internal/common/auth"
	"restaurant-pos/internal/common/config"
	"restaurant-pos/internal/common/httpx"
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/common/metrics"
	authms "restaurant-pos/internal/microservices/auth"
	authhandlers "restaurant-pos/internal/microservices/auth/handlers"
	authrepo "restaurant-pos/internal/microservices/auth/repository"
	authsvc "restaurant-pos/internal/microservices/auth/service"
	"restaurant-pos/internal/microservices/billing"
	billinghandlers "restaurant-pos/internal/microservices/billing/handlers"
	billingrepo "restaurant-pos/internal/microservices/billing/repository"
	billingsvc "restaurant-pos/internal/microservices/billing/service"
	"restaurant-pos/internal/microservices/catalog"
	cataloghandlers "restaurant-pos/internal/microservices/catalog/handlers"
	catalogrepo "restaurant-pos/internal/microservices/catalog/repository"
	catalogsvc "restaurant-pos/internal/microservices/catalog/service"
	"restaurant-pos/internal/microservices/kitchen"
	kitchenhandlers "restaurant-pos/internal/microservices/kitchen/handlers"
	kitchenrepo "restaurant-pos/internal/microservices/kitchen/repository"
	kitchensvc "restaurant-pos/internal/microservices/kitchen/service"
	"restaurant-pos/internal/microservices/notificator"
	notifhandlers "restaurant-pos/internal/microservices/notificator/handlers"
	notifsvc "restaurant-pos/internal/microservices/notificator/service"
	"restaurant-pos/internal/microservices/orders"
	ordershandlers "restaurant-pos/internal/microservices/orders/handlers"
	ordersrepo "restaurant-pos/internal/microservices/orders/repository"
	orderssvc "restaurant-pos/internal/microservices/orders/service"
	"restaurant-pos/internal/microservices/reports"
	reportshandlers "restaurant-pos/internal/microservices/reports/handlers"
	reportsrepo "restaurant-pos/internal/microservices/reports/repository"
	reportssvc "restaurant-pos/internal/microservices/reports/service"
	"restaurant-pos/internal/microservices/shift"
	shifthandlers "restaurant-pos/internal/microservices/shift/handlers"
	shiftrepo "restaurant-pos/internal/microservices/shift/repository"
	shiftsvc "restaurant-pos/internal/microservices/shift/service"
	"restaurant-pos/internal/microservices/tables"
	tableshandlers "restaurant-pos/internal/microservices/tables/handlers"
	tablesrepo "restaurant-pos/internal/microservices/tables/repository"
	tablessvc "restaurant-pos/internal/microservices/tables/service"
)

// Deps are the connections and settings the API is assembled from.
// Redis may be nil: idempotency keys are then not enforced.
type Deps struct {
	Pool     *pgxpool.Pool
	Redis    *redis.Client
	Notifier *notifsvc.Service
	Mailer   shiftsvc.ReportMailer
	Config   config.App
	Location *time.Location
	// Broker is probed by /health when set.
	Broker Pinger

	MaxConcurrent int
	Heartbeat     time.Duration
}

type Pinger interface {
	Ping() error
}

// API is the assembled HTTP surface plus the services background jobs need.
type API struct {
	Router  *gin.Engine
	Kitchen *kitchensvc.Service
	Shift   *shiftsvc.Service
}

func Build(d Deps, lg *logger.Logger) *API {
	metrics.Init()
	notifier := d.Notifier.Dispatcher
	tokens := auth.NewTokens(d.Config.Auth.JWTSecret, d.Config.Auth.TokenTTL)
	loc := d.Location
	if loc == nil {
		loc = time.Local
	}

	shiftService := shiftsvc.New(shiftrepo.New(d.Pool), notifier, d.Mailer, lg.Named("shift"))
	kitchenService := kitchensvc.New(kitchenrepo.New(d.Pool), lg.Named("kitchen"))
	authService := authsvc.New(authrepo.New(d.Pool), shiftService.ShiftService, tokens, lg.Named("auth"))
	tablesService := tablessvc.New(tablesrepo.New(d.Pool), notifier, lg.Named("tables"))
	ordersService := orderssvc.New(ordersrepo.New(d.Pool, d.Redis, d.Config.Redis.IdempotencyTTL), notifier, lg.Named("orders"))
	billingService := billingsvc.New(billingrepo.New(d.Pool), notifier, d.Config.Billing.TipRate, lg.Named("billing"))
	reportsService := reportssvc.New(reportsrepo.New(d.Pool), loc)
	catalogService := catalogsvc.New(catalogrepo.New(d.Pool))

	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.AccessLog(lg.Named("http")), metrics.PrometheusMiddleware(), corsFor(d.Config.HTTP))

	r.GET("/health", health(d.Pool, d.Broker))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	limit := httpx.MaxConcurrent(d.MaxConcurrent)
	authms.Mount(api.Group("", limit), authhandlers.New(authService, lg.Named("auth")))

	private := api.Group("", auth.Middleware(tokens))
	// SSE держит соединение часами, лимит на него не распространяется
	notificator.Mount(private, notifhandlers.New(d.Notifier, d.Heartbeat))

	limited := private.Group("", limit)
	catalog.Mount(limited, cataloghandlers.New(catalogService, lg.Named("catalog")))
	tables.Mount(limited, tableshandlers.New(tablesService, lg.Named("tables")))
	orders.Mount(limited, ordershandlers.New(ordersService, lg.Named("orders")))
	billing.Mount(limited, billinghandlers.New(billingService, lg.Named("billing")))
	kitchen.Mount(limited, kitchenhandlers.New(kitchenService, lg.Named("kitchen")))
	shift.Mount(limited, shifthandlers.New(shiftService, lg.Named("shift")))
	reports.Mount(limited, reportshandlers.New(reportsService, lg.Named("reports")))

	return &API{Router: r, Kitchen: kitchenService, Shift: shiftService}
}

func corsFor(cfg config.HTTP) gin.HandlerFunc {
	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key", httpx.HeaderRequestID},
		ExposeHeaders: []string{httpx.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range cfg.AllowOrigins {
		if o == "*" {
			cc.AllowAllOrigins = true
			return cors.New(cc)
		}
	}
	if len(cfg.AllowOrigins) == 0 {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = cfg.AllowOrigins
	}
	return cors.New(cc)
}

func health(pool *pgxpool.Pool, broker Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			httpx.WriteProblem(c, http.StatusServiceUnavailable, "unavailable", "database unreachable")
			return
		}
		if broker != nil {
			if err := broker.Ping(); err != nil {
				httpx.WriteProblem(c, http.StatusServiceUnavailable, "unavailable", "broker unreachable")
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
