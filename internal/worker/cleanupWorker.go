package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// ClaimSweeper drops dispatch claims whose calendar day has passed. The Redis
// gate expires keys on its own; the in-memory gate needs this periodic pass.
type ClaimSweeper interface {
	Sweep(now time.Time) int
}

type ClaimCleanupWorker struct {
	sweeper  ClaimSweeper
	interval time.Duration
}

func NewClaimCleanupWorker(sweeper ClaimSweeper, interval time.Duration) *ClaimCleanupWorker {
	return &ClaimCleanupWorker{
		sweeper:  sweeper,
		interval: interval,
	}
}

func (w *ClaimCleanupWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Info("Claim cleanup worker started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Claim cleanup worker stopped")
			return
		case <-ticker.C:
			removed := w.sweeper.Sweep(time.Now())
			if removed > 0 {
				logrus.Infof("Claim cleanup removed %d expired dispatch claims", removed)
			}
		}
	}
}
