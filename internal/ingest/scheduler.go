package ingest

import (
	"context"
	"log/slog"
	"time"
)

const defaultSyncInterval = 2 * time.Minute

// Scheduler re-runs the reconciler on a fixed interval. Background sync
// errors are logged and swallowed; the feed keeps serving the last good set.
type Scheduler struct {
	reconciler *Reconciler
	interval   time.Duration
}

func NewScheduler(reconciler *Reconciler, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = defaultSyncInterval
	}
	return &Scheduler{reconciler: reconciler, interval: interval}
}

// Run blocks until ctx is cancelled. The first sync fires immediately.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.syncOnce(ctx)

	slog.Info("Sync scheduler running", "interval", s.interval)
	for {
		select {
		case <-ctx.Done():
			slog.Info("Sync scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.syncOnce(ctx)
		}
	}
}

func (s *Scheduler) syncOnce(ctx context.Context) {
	if _, err := s.reconciler.Sync(ctx); err != nil {
		slog.Error("Background sync failed, serving stale data", "error", err)
	}
}
