package ingest

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/stockbrief/stock-shorts/internal/storage"
)

const defaultRefreshWait = 3 * time.Second

// Refresher triggers a sync from the read path when the store has gone stale,
// waiting at most a bounded time before letting the caller serve the stale
// set. Concurrent callers share a single in-flight sync.
type Refresher struct {
	reconciler *Reconciler
	store      storage.Store
	staleAfter time.Duration
	maxWait    time.Duration

	mu       sync.Mutex
	inFlight chan struct{}
}

func NewRefresher(reconciler *Reconciler, store storage.Store, staleAfter, maxWait time.Duration) *Refresher {
	if staleAfter <= 0 {
		staleAfter = defaultSyncInterval
	}
	if maxWait <= 0 {
		maxWait = defaultRefreshWait
	}
	return &Refresher{
		reconciler: reconciler,
		store:      store,
		staleAfter: staleAfter,
		maxWait:    maxWait,
	}
}

// EnsureFresh returns once the store is fresh, or after the bounded wait
// elapses, whichever comes first. It never returns an error: a failed or slow
// refresh means the caller serves what it has.
func (f *Refresher) EnsureFresh(ctx context.Context) {
	if time.Since(f.store.LastSyncedAt()) < f.staleAfter {
		return
	}

	f.mu.Lock()
	done := f.inFlight
	if done == nil {
		done = make(chan struct{})
		f.inFlight = done
		go func() {
			defer func() {
				f.mu.Lock()
				f.inFlight = nil
				f.mu.Unlock()
				close(done)
			}()
			if _, err := f.reconciler.Sync(context.WithoutCancel(ctx)); err != nil {
				slog.Warn("Staleness-triggered sync failed", "error", err)
			}
		}()
	}
	f.mu.Unlock()

	select {
	case <-done:
	case <-time.After(f.maxWait):
		slog.Debug("Refresh still running, serving stale data")
	case <-ctx.Done():
	}
}
