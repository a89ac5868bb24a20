package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/stockbrief/stock-shorts/internal/reader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefresher_SyncsWhenStale(t *testing.T) {
	source := &reader.StaticSource{Rows: [][]string{
		{"1", "Fresh row", "Body", "nifty"},
	}}
	rec, store := newTestReconciler(source)
	refresher := NewRefresher(rec, store, time.Minute, 2*time.Second)

	// Store has never synced, so it is stale.
	refresher.EnsureFresh(t.Context())

	all, err := store.GetArticles(t.Context(), "all")
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.False(t, store.LastSyncedAt().IsZero())
}

func TestRefresher_FreshStoreSkipsSync(t *testing.T) {
	source := &reader.StaticSource{Rows: [][]string{
		{"1", "Row", "Body", "nifty"},
	}}
	rec, store := newTestReconciler(source)

	_, err := rec.Sync(t.Context())
	require.NoError(t, err)
	syncedAt := store.LastSyncedAt()

	refresher := NewRefresher(rec, store, time.Hour, time.Second)
	refresher.EnsureFresh(t.Context())

	assert.Equal(t, syncedAt, store.LastSyncedAt(), "fresh store must not re-sync")
}

func TestRefresher_BoundedWaitServesStaleOnSlowSource(t *testing.T) {
	slow := &slowSource{delay: 500 * time.Millisecond, rows: [][]string{
		{"1", "Slow row", "Body", "nifty"},
	}}
	rec, store := newTestReconciler(slow)
	refresher := NewRefresher(rec, store, time.Minute, 50*time.Millisecond)

	start := time.Now()
	refresher.EnsureFresh(t.Context())
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 400*time.Millisecond, "caller must not wait for the slow fetch")
}

type slowSource struct {
	delay time.Duration
	rows  [][]string
}

func (s *slowSource) FetchRows(ctx context.Context) ([][]string, error) {
	select {
	case <-time.After(s.delay):
		return s.rows, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
