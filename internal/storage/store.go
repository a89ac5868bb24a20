package storage

import (
	"context"
	"time"

	"github.com/stockbrief/stock-shorts/internal/domain"
)

// Store is the article storage surface consumed by the serving layer and the
// sync reconciler. Reads never block on a sync in progress: they observe
// either the fully-old or the fully-new article set.
type Store interface {
	// GetArticles returns all articles for "" or "all", the trending view
	// for "trending", and an exact category filter otherwise.
	GetArticles(ctx context.Context, category string) ([]domain.Article, error)
	GetArticle(ctx context.Context, id int) (domain.Article, error)
	GetTrendingArticles(ctx context.Context) ([]domain.Article, error)

	// CreateArticle is the test/demo injection path: it synthesizes id,
	// createdAt, the premium flag and the image URL.
	CreateArticle(ctx context.Context, draft domain.ArticleDraft) (domain.Article, error)

	// IncrementViewCount is a no-op for an unknown id.
	IncrementViewCount(ctx context.Context, id int)

	// ReplaceAll atomically swaps in a freshly synced article set, carrying
	// forward view counts and creation times for ids that persist, and
	// advances the next-id counter past the new maximum.
	ReplaceAll(ctx context.Context, articles []domain.Article) (domain.SyncResult, error)

	// SetTranslation caches lazily computed translations on an article.
	SetTranslation(ctx context.Context, id int, titleHi, contentHi string) error

	LastSyncedAt() time.Time
}

// Type selects the storage wiring built by the factory.
type Type string

const (
	InMem    Type = "in_mem"
	Archived Type = "archived"
)
