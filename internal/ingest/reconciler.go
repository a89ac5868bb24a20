package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stockbrief/stock-shorts/internal/apperr"
	"github.com/stockbrief/stock-shorts/internal/domain"
	"github.com/stockbrief/stock-shorts/internal/reader"
	"github.com/stockbrief/stock-shorts/internal/storage"
	"github.com/stockbrief/stock-shorts/internal/storage/pg"
)

// Reconciler runs one full ingestion pass: fetch raw rows, map them to
// articles with in-batch content dedup, and atomically replace the stored set
// while the store carries per-article view counts forward. A failed fetch or
// an unusable batch leaves the store untouched.
type Reconciler struct {
	source  reader.RowSource
	mapper  *reader.Mapper
	store   storage.Store
	archive *pg.Archive

	// Syncs never interleave.
	mu sync.Mutex
}

type ReconcilerOption func(*Reconciler)

// WithArchive mirrors each successful sync to the Postgres snapshot archive.
// Archive failures are logged, never surfaced: the in-memory swap has already
// committed.
func WithArchive(archive *pg.Archive) ReconcilerOption {
	return func(r *Reconciler) {
		r.archive = archive
	}
}

func NewReconciler(source reader.RowSource, mapper *reader.Mapper, store storage.Store, opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{
		source: source,
		mapper: mapper,
		store:  store,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Sync is idempotent and safe to call repeatedly from a timer, a staleness
// check or an explicit admin request.
func (r *Reconciler) Sync(ctx context.Context) (domain.SyncResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runID := uuid.New()
	start := time.Now()
	log := slog.With("syncRun", runID)

	rows, err := r.source.FetchRows(ctx)
	if err != nil {
		log.Error("Sync aborted, fetch failed", "error", err)
		var se *apperr.SourceError
		if errors.As(err, &se) {
			return domain.SyncResult{}, err
		}
		return domain.SyncResult{}, apperr.NewSource("fetch", err)
	}

	if len(rows) == 0 {
		log.Info("Source returned no rows, keeping current article set")
		current, err := r.store.GetArticles(ctx, domain.QueryAll)
		if err != nil {
			return domain.SyncResult{}, err
		}
		return domain.SyncResult{Added: 0, Total: len(current)}, nil
	}

	articles, err := r.mapBatch(log, rows)
	if err != nil {
		log.Error("Sync aborted, batch unusable", "error", err)
		return domain.SyncResult{}, err
	}

	result, err := r.store.ReplaceAll(ctx, articles)
	if err != nil {
		log.Error("Sync aborted, store replace failed", "error", err)
		return domain.SyncResult{}, err
	}

	r.archiveSnapshot(ctx, log)

	log.Info("Sync completed",
		"rows", len(rows),
		"total", result.Total,
		"added", result.Added,
		"duration", time.Since(start))
	return result, nil
}

// mapBatch turns raw rows into articles. Structurally unusable rows are
// skipped; rows whose raw content duplicates an earlier row get synthesized
// bodies, and final bodies are re-checked so two filler rows can never land
// on identical text.
func (r *Reconciler) mapBatch(log *slog.Logger, rows [][]string) ([]domain.Article, error) {
	seenRaw := make(map[string]struct{}, len(rows))
	seenFinal := make(map[string]struct{}, len(rows))
	seenIDs := make(map[int]struct{}, len(rows))

	articles := make([]domain.Article, 0, len(rows))
	for i, cells := range rows {
		parsed, err := reader.ParseRow(cells, i)
		if err != nil {
			var re *apperr.RowError
			if errors.As(err, &re) {
				log.Warn("Skipping unusable row", "row", i, "missing", re.Missing)
				continue
			}
			return nil, err
		}

		_, duplicate := seenRaw[parsed.Content]
		duplicate = duplicate && parsed.Content != ""

		article := r.mapper.MapRow(parsed, i, duplicate)

		if _, taken := seenIDs[article.ID]; taken {
			log.Warn("Skipping row with duplicate id", "row", i, "id", article.ID)
			continue
		}

		if _, collision := seenFinal[article.Content]; collision {
			r.mapper.Disambiguate(&article, i)
		}

		seenIDs[article.ID] = struct{}{}
		seenFinal[article.Content] = struct{}{}
		if parsed.Content != "" {
			seenRaw[parsed.Content] = struct{}{}
		}
		articles = append(articles, article)
	}

	if len(articles) == 0 {
		return nil, fmt.Errorf("no usable rows in batch of %d", len(rows))
	}
	return articles, nil
}

func (r *Reconciler) archiveSnapshot(ctx context.Context, log *slog.Logger) {
	if r.archive == nil {
		return
	}
	snapshot, err := r.store.GetArticles(ctx, domain.QueryAll)
	if err != nil {
		log.Error("Skipping archive write, snapshot read failed", "error", err)
		return
	}
	if err := r.archive.SaveSnapshot(ctx, snapshot, r.store.LastSyncedAt()); err != nil {
		log.Error("Archive write failed", "error", err)
	}
}
