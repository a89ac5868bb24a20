package factory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stockbrief/stock-shorts/internal/content"
	"github.com/stockbrief/stock-shorts/internal/storage"
	"github.com/stockbrief/stock-shorts/internal/storage/in_mem"
	"github.com/stockbrief/stock-shorts/internal/storage/pg"
)

// Build assembles the article store per config. The in-memory store always
// serves reads; the "archived" type additionally wires a Postgres snapshot
// archive and warm-starts the store from it so view counts survive restarts.
func Build(ctx context.Context, cfg *StorageConfig, normalizer *content.Normalizer, images *content.ImageSelector) (*in_mem.Store, *pg.Archive, error) {
	store := in_mem.NewStore(normalizer, images)

	switch cfg.Type {
	case storage.InMem:
		return store, nil, nil

	case storage.Archived:
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		archive := pg.NewArchive(pool)
		if err := archive.Init(ctx); err != nil {
			return nil, nil, err
		}

		articles, syncedAt, err := archive.LoadSnapshot(ctx)
		if err != nil {
			return nil, nil, err
		}
		if len(articles) > 0 {
			store.Restore(ctx, articles, syncedAt)
			slog.Info("Warm-started store from archive", "articles", len(articles), "syncedAt", syncedAt)
		}
		return store, archive, nil

	default:
		return nil, nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
