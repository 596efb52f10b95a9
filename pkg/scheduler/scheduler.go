package scheduler

import (
	"context"
	"time"

	"medreminder/internal/service"

	"github.com/sirupsen/logrus"
)

// Scheduler fires the reminder tick on a fixed cadence. A tick that overruns
// the interval is not cancelled; the next tick simply starts alongside it and
// the dispatch gate keeps the overlap from double-sending.
type Scheduler struct {
	reminderService service.ReminderService
	interval        time.Duration
}

func NewScheduler(reminderService service.ReminderService, interval time.Duration) *Scheduler {
	return &Scheduler{
		reminderService: reminderService,
		interval:        interval,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	logrus.Infof("Reminder scheduler started, tick every %s", s.interval)

	for {
		select {
		case <-ticker.C:
			go func() {
				if err := s.reminderService.ProcessTick(ctx); err != nil {
					logrus.Errorf("Reminder tick failed: %v", err)
				}
			}()
		case <-ctx.Done():
			logrus.Info("Reminder scheduler stopped")
			return
		}
	}
}
