package service

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"restaurant-pos/internal/common/config"
	"restaurant-pos/internal/domain"
)

// ReportMailer delivers the shift close report.
type ReportMailer interface {
	Send(ctx context.Context, r domain.ShiftReport) error
}

type NoopMailer struct{}

func (NoopMailer) Send(context.Context, domain.ShiftReport) error { return nil }

type SMTPMailer struct {
	cfg    config.SMTP
	dialer *gomail.Dialer
}

func NewSMTPMailer(cfg config.SMTP) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)}
}

func (m *SMTPMailer) message(r domain.ShiftReport) *gomail.Message {
	msg := gomail.NewMessage()
	from := m.cfg.From
	if from == "" {
		from = m.cfg.User
	}
	msg.SetHeader("From", from)
	msg.SetHeader("To", m.cfg.To)
	msg.SetHeader("Subject", r.Subject())
	msg.SetBody("text/plain", r.Text())
	return msg
}

// Send dials per message; shift reports are rare. gomail has no context
// support, so ctx only short-circuits a send that is already too late.
func (m *SMTPMailer) Send(ctx context.Context, r domain.ShiftReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.dialer.DialAndSend(m.message(r)); err != nil {
		return fmt.Errorf("failed to send shift report: %w", err)
	}
	return nil
}
