package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stockbrief/stock-shorts/internal/content"
	"github.com/stockbrief/stock-shorts/internal/ingest"
	"github.com/stockbrief/stock-shorts/internal/reader"
	"github.com/stockbrief/stock-shorts/internal/router"
	"github.com/stockbrief/stock-shorts/internal/server"
	"github.com/stockbrief/stock-shorts/internal/storage/factory"
	"github.com/stockbrief/stock-shorts/internal/storage/in_mem"
	"github.com/stockbrief/stock-shorts/internal/translate"
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelDebug)

	srvCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	normalizer, err := buildNormalizer()
	if err != nil {
		slog.Error("Failed to load category aliases", "error", err)
		os.Exit(1)
	}
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

	var recOpts []ingest.ReconcilerOption
	if archive != nil {
		recOpts = append(recOpts, ingest.WithArchive(archive))
	}
	reconciler := ingest.NewReconciler(source, mapper, store, recOpts...)

	syncInterval := durationEnv("SYNC_INTERVAL", 2*time.Minute)
	schedulerCtx, stopScheduler := context.WithCancel(ctx)
	defer stopScheduler()
	go func() {
		_ = ingest.NewScheduler(reconciler, syncInterval).Run(schedulerCtx)
	}()

	refresher := ingest.NewRefresher(reconciler, store, syncInterval, 3*time.Second)

	e := echo.New()
	e.HideBanner = true
	s := server.NewServer(e, srvCfg)

	routerOpts := []router.ArticleRouterOption{router.WithFreshener(refresher)}
	if openAICfg, ok := translate.LoadOpenAIConfig(); ok {
		svc := translate.NewService(store, translate.NewOpenAIClient(openAICfg))
		routerOpts = append(routerOpts, router.WithTranslator(svc))
		slog.Info("Translation enabled")
	} else {
		slog.Info("Translation disabled, OPENAI_API_KEY not set")
	}

	router.NewArticleRouter(e, store, reconciler, routerOpts...).Bind()
	router.NewSavedRouter(e, "/api/bookmarks", in_mem.NewSavedStore("bookmark"), store).Bind()
	router.NewSavedRouter(e, "/api/read-later", in_mem.NewSavedStore("read-later"), store).Bind()

	if err := s.Start(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func buildNormalizer() (*content.Normalizer, error) {
	path := os.Getenv("CATEGORY_ALIAS_FILE")
	if path == "" {
		return content.NewNormalizer(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := content.NewAliasConfigLoader(f).Load()
	if err != nil {
		return nil, err
	}
	slog.Info("Loaded category alias overrides", "file", path, "count", len(cfg.Aliases))
	return content.NewNormalizerWithOverrides(cfg.Overrides()), nil
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("Invalid duration, using default", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	return d
}
