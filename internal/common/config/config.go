package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type HTTP struct {
	Addr         string   `yaml:"addr"`
	AllowOrigins []string `yaml:"allow_origins"`
}

type DB struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Pass     string `yaml:"password"`
	Name     string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
	MaxConns int32  `yaml:"max_conns"`
}

func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s", d.User, d.Pass, d.Host, d.Port, d.Name, d.SSLMode)
}

// MQ пустой Host означает работу без брокера: уведомления ходят внутри процесса.
type MQ struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Pass     string `yaml:"password"`
	VHost    string `yaml:"vhost"`
	Exchange string `yaml:"exchange"`
	TLS      bool   `yaml:"tls"`
}

func (m MQ) Enabled() bool { return m.Host != "" }

type Redis struct {
	Addr           string        `yaml:"addr"`
	Password       string        `yaml:"password"`
	DB             int           `yaml:"db"`
	IdempotencyTTL time.Duration `yaml:"idempotency_ttl"`
}

func (r Redis) Enabled() bool { return r.Addr != "" }

type Auth struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

type Billing struct {
	TipRate float64 `yaml:"tip_rate"`
}

type Shift struct {
	// AutoCloseAt is a wall-clock "HH:MM"; empty disables automatic close.
	AutoCloseAt string `yaml:"auto_close_at"`
	Timezone    string `yaml:"timezone"`
}

type SMTP struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	User string `yaml:"user"`
	Pass string `yaml:"password"`
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

func (s SMTP) Enabled() bool { return s.Host != "" && s.To != "" }

type Log struct {
	Level string `yaml:"level"`
}

type App struct {
	HTTP     HTTP    `yaml:"http"`
	Database DB      `yaml:"database"`
	Rabbit   MQ      `yaml:"rabbitmq"`
	Redis    Redis   `yaml:"redis"`
	Auth     Auth    `yaml:"auth"`
	Billing  Billing `yaml:"billing"`
	Shift    Shift   `yaml:"shift"`
	SMTP     SMTP    `yaml:"smtp"`
	Log      Log     `yaml:"log"`
}

func Defaults() App {
	return App{
		HTTP:     HTTP{Addr: ":8080", AllowOrigins: []string{"http://localhost:5173"}},
		Database: DB{Host: "localhost", Port: 5432, User: "postgres", Name: "restaurant", SSLMode: "disable", MaxConns: 10},
		Rabbit:   MQ{Port: 5672, User: "guest", Pass: "guest", VHost: "/", Exchange: "notifications_fanout"},
		Redis:    Redis{IdempotencyTTL: 24 * time.Hour},
		Auth:     Auth{TokenTTL: 24 * time.Hour},
		Billing:  Billing{TipRate: 0.10},
		Shift:    Shift{Timezone: "Local"},
		SMTP:     SMTP{Port: 465},
		Log:      Log{Level: "info"},
	}
}

// Load reads path (a missing file is fine), then .env, then POS_* variables.
// Later sources win.
func Load(path string) (App, error) {
	a := Defaults()
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return App{}, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(b, &a); err != nil {
				return App{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	_ = godotenv.Load()
	if err := applyEnv(&a); err != nil {
		return App{}, err
	}
	if err := a.Validate(); err != nil {
		return App{}, err
	}
	return a, nil
}

func (a App) Validate() error {
	if a.Database.Host == "" {
		return errors.New("invalid config: missing database host")
	}
	if a.Auth.JWTSecret == "" {
		return errors.New("invalid config: auth.jwt_secret (POS_JWT_SECRET) is required")
	}
	if a.Billing.TipRate < 0 || a.Billing.TipRate > 1 {
		return fmt.Errorf("invalid config: billing.tip_rate %v out of [0,1]", a.Billing.TipRate)
	}
	if a.Shift.AutoCloseAt != "" {
		if _, err := time.Parse("15:04", a.Shift.AutoCloseAt); err != nil {
			return fmt.Errorf("invalid config: shift.auto_close_at %q: want HH:MM", a.Shift.AutoCloseAt)
		}
	}
	return nil
}

func applyEnv(a *App) error {
	str := func(dst *string, key string) { *dst = getEnv(key, *dst) }
	num := func(dst *int, key string) error {
		v := os.Getenv(key)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
		return nil
	}

	str(&a.HTTP.Addr, "POS_HTTP_ADDR")
	if v := os.Getenv("POS_HTTP_ALLOW_ORIGINS"); v != "" {
		a.HTTP.AllowOrigins = splitCSV(v)
	}

	str(&a.Database.Host, "POS_DB_HOST")
	str(&a.Database.User, "POS_DB_USER")
	str(&a.Database.Pass, "POS_DB_PASSWORD")
	str(&a.Database.Name, "POS_DB_NAME")
	str(&a.Database.SSLMode, "POS_DB_SSLMODE")

	str(&a.Rabbit.Host, "POS_RABBITMQ_HOST")
	str(&a.Rabbit.User, "POS_RABBITMQ_USER")
	str(&a.Rabbit.Pass, "POS_RABBITMQ_PASSWORD")

	str(&a.Redis.Addr, "POS_REDIS_ADDR")
	str(&a.Redis.Password, "POS_REDIS_PASSWORD")

	str(&a.Auth.JWTSecret, "POS_JWT_SECRET")
	str(&a.Shift.AutoCloseAt, "POS_SHIFT_AUTO_CLOSE_AT")
	str(&a.Shift.Timezone, "POS_SHIFT_TIMEZONE")

	str(&a.SMTP.Host, "POS_SMTP_HOST")
	str(&a.SMTP.User, "POS_SMTP_USER")
	str(&a.SMTP.Pass, "POS_SMTP_PASSWORD")
	str(&a.SMTP.From, "POS_SMTP_FROM")
	str(&a.SMTP.To, "POS_SMTP_TO")

	str(&a.Log.Level, "POS_LOG_LEVEL")

	for key, dst := range map[string]*int{
		"POS_DB_PORT":       &a.Database.Port,
		"POS_RABBITMQ_PORT": &a.Rabbit.Port,
		"POS_REDIS_DB":      &a.Redis.DB,
		"POS_SMTP_PORT":     &a.SMTP.Port,
	} {
		if err := num(dst, key); err != nil {
			return err
		}
	}

	if v := os.Getenv("POS_TIP_RATE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("POS_TIP_RATE: %w", err)
		}
		a.Billing.TipRate = f
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
