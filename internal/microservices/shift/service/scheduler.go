package service

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"restaurant-pos/internal/common/logger"
)

// ScheduleAutoClose closes the open shift every day at "HH:MM" in the
// scheduler's location.
func ScheduleAutoClose(s *gocron.Scheduler, svc ShiftServiceInterface, at string, lg *logger.Logger) error {
	_, err := s.Every(1).Day().At(at).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := svc.AutoClose(ctx); err != nil {
			lg.Error("shift_auto_close_failed", err, nil)
			return
		}
		lg.Info("shift_auto_close_checked", map[string]any{"at": at})
	})
	return err
}
