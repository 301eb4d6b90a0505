package service

import (
	"context"
	"time"

	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/microservices/shift/repository"
)

type ShiftServiceInterface interface {
	Current(ctx context.Context) (*domain.Shift, error)
	IsOpen(ctx context.Context) (bool, error)
	Open(ctx context.Context, actor domain.Actor) (domain.Shift, error)
	Close(ctx context.Context, actor domain.Actor) (domain.ShiftReport, error)

	// AutoClose closes the open shift, if any, on behalf of the scheduler.
	AutoClose(ctx context.Context) error
}

type ShiftService struct {
	db       repository.ShiftRepositoryInterface
	notifier domain.Notifier
	mailer   ReportMailer
	lg       *logger.Logger
}

func NewShiftService(db repository.ShiftRepositoryInterface, notifier domain.Notifier, mailer ReportMailer, lg *logger.Logger) ShiftServiceInterface {
	if mailer == nil {
		mailer = NoopMailer{}
	}
	return &ShiftService{db: db, notifier: notifier, mailer: mailer, lg: lg}
}

func (s *ShiftService) Current(ctx context.Context) (*domain.Shift, error) {
	return s.db.Current(ctx)
}

func (s *ShiftService) IsOpen(ctx context.Context) (bool, error) {
	cur, err := s.db.Current(ctx)
	if err != nil {
		return false, err
	}
	return cur != nil, nil
}

func (s *ShiftService) Open(ctx context.Context, actor domain.Actor) (domain.Shift, error) {
	if !actor.IsAdmin() {
		return domain.Shift{}, domain.Forbidden("only an admin may open the shift")
	}
	sh, err := s.db.Open(ctx, actor.ID)
	if err != nil {
		return domain.Shift{}, err
	}
	s.lg.Info("shift_opened", map[string]any{"shift_id": sh.ID, "staff_id": actor.ID})
	return sh, nil
}

func (s *ShiftService) Close(ctx context.Context, actor domain.Actor) (domain.ShiftReport, error) {
	if !actor.IsAdmin() {
		return domain.ShiftReport{}, domain.Forbidden("only an admin may close the shift")
	}
	id := actor.ID
	return s.close(ctx, &id)
}

func (s *ShiftService) AutoClose(ctx context.Context) error {
	open, err := s.IsOpen(ctx)
	if err != nil || !open {
		return err
	}
	_, err = s.close(ctx, nil)
	return err
}

func (s *ShiftService) close(ctx context.Context, closedBy *int64) (domain.ShiftReport, error) {
	sh, released, err := s.db.Close(ctx, closedBy)
	if err != nil {
		return domain.ShiftReport{}, err
	}
	s.notifier.Notify(ctx, domain.TablesChanged())

	rep, err := s.db.Report(ctx, sh)
	if err != nil {
		// смена уже закрыта, отчёт не критичен
		s.lg.Error("shift_report_failed", err, map[string]any{"shift_id": sh.ID})
		rep = domain.ShiftReport{Shift: sh}
	}
	rep.TablesReleased = released

	s.lg.Info("shift_closed", map[string]any{
		"shift_id":        sh.ID,
		"paid_orders":     rep.PaidOrders,
		"revenue":         rep.Revenue,
		"tips":            rep.Tips,
		"open_orders":     rep.OpenOrders,
		"tables_released": released,
	})

	go func() {
		mctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
		defer cancel()
		if err := s.mailer.Send(mctx, rep); err != nil {
			s.lg.Warn("shift_report_mail_failed", err, map[string]any{"shift_id": sh.ID})
		}
	}()
	return rep, nil
}
