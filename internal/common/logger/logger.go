package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

func init() {
	zerolog.TimestampFieldName = "timestamp"
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.LevelFieldMarshalFunc = func(l zerolog.Level) string { return strings.ToUpper(l.String()) }
}

// Logger пишет JSON-строки: timestamp, level, service, action, message, hostname.
type Logger struct {
	service string
	out     io.Writer
	zl      zerolog.Logger
}

func New(service string) *Logger { return NewWithWriter(service, os.Stdout) }

func NewWithWriter(service string, w io.Writer) *Logger {
	zl := zerolog.New(w).With().
		Timestamp().
		Str("service", service).
		Str("hostname", hostname()).
		Logger()
	return &Logger{service: service, out: w, zl: zl}
}

// SetLevel applies globally; unknown names fall back to info.
func SetLevel(level string) {
	lv, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lv == zerolog.NoLevel {
		lv = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lv)
}

// Named returns a logger for another service sharing the same output.
func (l *Logger) Named(service string) *Logger {
	return NewWithWriter(service, l.out)
}

func (l *Logger) WithRequestID(id string) *Logger {
	if id == "" {
		return l
	}
	return &Logger{service: l.service, out: l.out, zl: l.zl.With().Str("request_id", id).Logger()}
}

func (l *Logger) log(ev *zerolog.Event, action string, fields map[string]any, err error) {
	ev = ev.Str("action", action)
	if len(fields) > 0 {
		ev = ev.Fields(fields)
	}
	if err != nil {
		ev = ev.Dict("error", zerolog.Dict().Str("msg", err.Error()).Str("type", fmt.Sprintf("%T", err)))
	}
	ev.Msg(action)
}

func (l *Logger) Info(action string, fields map[string]any) {
	l.log(l.zl.Info(), action, fields, nil)
}
func (l *Logger) Debug(action string, fields map[string]any) {
	l.log(l.zl.Debug(), action, fields, nil)
}
func (l *Logger) Warn(action string, err error, fields map[string]any) {
	l.log(l.zl.Warn(), action, fields, err)
}
func (l *Logger) Error(action string, err error, fields map[string]any) {
	l.log(l.zl.Error(), action, fields, err)
}

func hostname() string { h, _ := os.Hostname(); return h }
