// One-shot feed sync. Fetches the sheet, reconciles the article store and,
// when archived storage is configured, persists a snapshot before exiting.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/stockbrief/stock-shorts/internal/content"
	"github.com/stockbrief/stock-shorts/internal/ingest"
	"github.com/stockbrief/stock-shorts/internal/reader"
	"github.com/stockbrief/stock-shorts/internal/storage/factory"
	"github.com/stockbrief/stock-shorts/pkg/config/env"
)

const syncTimeout = 60 * time.Second

func main() {
	slog.SetLogLoggerLevel(slog.LevelDebug)
	env.LoadDotEnv(".env")

	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	normalizer := content.NewNormalizer()
	images := content.NewImageSelector()
	mapper := reader.NewMapper(normalizer, content.NewSynthesizer(), images)

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage config", "error", err)
		os.Exit(1)
	}
	store, archive, err := factory.Build(ctx, storageCfg, normalizer, images)
	if err != nil {
		slog.Error("Failed to build article store", "error", err)
		os.Exit(1)
	}

	sheetsCfg, err := reader.LoadSheetsConfig()
	if err != nil {
		slog.Error("Failed to load sheets config", "error", err)
		os.Exit(1)
	}
	source, err := reader.NewSheetsSource(ctx, sheetsCfg)
	if err != nil {
		slog.Error("Failed to create sheets source", "error", err)
		os.Exit(1)
	}

	var opts []ingest.ReconcilerOption
	if archive != nil {
		opts = append(opts, ingest.WithArchive(archive))
	}
	reconciler := ingest.NewReconciler(source, mapper, store, opts...)

	result, err := reconciler.Sync(ctx)
	if err != nil {
		slog.Error("Sync failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Sync finished", "added", result.Added, "total", result.Total)
}
