package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurant-pos/internal/app/pos"
	"restaurant-pos/internal/common/config"
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/connections/database"
)

func main() {
	mode := flag.String("mode", "api", "api | migrate | seed")
	configPath := flag.String("config", "config.yaml", "path to YAML config (optional)")
	maxConc := flag.Int("max-concurrent", 50, "api: max concurrent requests, 0 disables the cap")
	heartbeat := flag.Int("heartbeat-interval", 25, "api: realtime stream heartbeat seconds")
	flag.Parse()

	lg := logger.New("bootstrap")
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(*configPath)
	if err != nil {
		lg.Error("config_load_failed", err, map[string]any{"path": *configPath})
		os.Exit(2)
	}
	logger.SetLevel(cfg.Log.Level)

	switch *mode {
	case "api":
		lg.Info("service_started", map[string]any{"service": "pos-api", "addr": cfg.HTTP.Addr, "max_concurrent": *maxConc})
		if err := migrate(ctx, cfg, lg); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}
		if err := pos.Run(ctx, cfg, pos.Options{
			MaxConcurrent: *maxConc,
			Heartbeat:     time.Duration(*heartbeat) * time.Second,
		}); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}
		lg.Info("service_stopped", map[string]any{"service": "pos-api"})
	case "migrate":
		if err := migrate(ctx, cfg, lg); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}
	case "seed":
		if err := seed(ctx, cfg, lg); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "--mode must be one of: api | migrate | seed")
		os.Exit(2)
	}
}

func migrate(ctx context.Context, cfg config.App, lg *logger.Logger) error {
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()
	applied, err := database.Migrate(ctx, pool)
	if err != nil {
		return err
	}
	lg.Info("migrations_applied", map[string]any{"files": applied})
	return nil
}

func seed(ctx context.Context, cfg config.App, lg *logger.Logger) error {
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()
	if _, err := database.Migrate(ctx, pool); err != nil {
		return err
	}
	res, err := pos.Seed(ctx, pool)
	if err != nil {
		return err
	}
	lg.Info("seed_done", map[string]any{"staff": res.Staff, "tables": res.Tables, "products": res.Products})
	return nil
}
