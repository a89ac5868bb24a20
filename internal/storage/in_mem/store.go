package in_mem

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stockbrief/stock-shorts/internal/apperr"
	"github.com/stockbrief/stock-shorts/internal/content"
	"github.com/stockbrief/stock-shorts/internal/domain"
	"github.com/stockbrief/stock-shorts/internal/ranking"
)

// Store keeps the article set in memory behind a RWMutex. View counters live
// outside the article records as atomics, so concurrent increments on
// different articles never contend and increments on the same article never
// lose updates.
type Store struct {
	mu       sync.RWMutex
	articles map[int]domain.Article
	order    []int
	views    map[int]*atomic.Int64
	nextID   int
	lastSync time.Time

	normalizer *content.Normalizer
	images     *content.ImageSelector
	now        func() time.Time
}

func NewStore(normalizer *content.Normalizer, images *content.ImageSelector) *Store {
	return &Store{
		articles:   make(map[int]domain.Article),
		views:      make(map[int]*atomic.Int64),
		nextID:     1,
		normalizer: normalizer,
		images:     images,
		now:        time.Now,
	}
}

func (s *Store) GetArticles(ctx context.Context, category string) ([]domain.Article, error) {
	if category == domain.QueryTrending {
		return s.GetTrendingArticles(ctx)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	all := category == "" || category == domain.QueryAll
	out := make([]domain.Article, 0, len(s.order))
	for _, id := range s.order {
		a := s.articles[id]
		if !all && string(a.Category) != category {
			continue
		}
		a.ViewCount = s.views[id].Load()
		out = append(out, a)
	}
	return out, nil
}

func (s *Store) GetArticle(ctx context.Context, id int) (domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.articles[id]
	if !ok {
		return domain.Article{}, apperr.NewNotFound("article", id)
	}
	a.ViewCount = s.views[id].Load()
	return a, nil
}

func (s *Store) GetTrendingArticles(ctx context.Context) ([]domain.Article, error) {
	snapshot, err := s.GetArticles(ctx, domain.QueryAll)
	if err != nil {
		return nil, err
	}
	return ranking.Rank(snapshot), nil
}

func (s *Store) CreateArticle(ctx context.Context, draft domain.ArticleDraft) (domain.Article, error) {
	if draft.Title == "" {
		return domain.Article{}, apperr.NewValidation("title is required")
	}
	if draft.Content == "" {
		return domain.Article{}, apperr.NewValidation("content is required")
	}

	category := s.normalizer.Normalize(draft.Category)
	premium := category.Premium()
	if draft.IsPremium != nil {
		premium = *draft.IsPremium || premium
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	article := domain.Article{
		ID:          s.nextID,
		Title:       draft.Title,
		Content:     draft.Content,
		Category:    category,
		StockSymbol: draft.StockSymbol,
		StockPrice:  draft.StockPrice,
		PriceChange: draft.PriceChange,
		Exchange:    draft.Exchange,
		IsPremium:   premium,
		TimeAgo:     "Just now",
		Source:      draft.Source,
		Sentiment:   draft.Sentiment,
		CreatedAt:   s.now(),
	}
	article.ImageURL = s.images.Select(article.ID, article.Title, article.Content, article.Category, article.StockSymbol)

	s.nextID++
	s.articles[article.ID] = article
	s.order = append(s.order, article.ID)
	s.views[article.ID] = &atomic.Int64{}

	return article, nil
}

func (s *Store) IncrementViewCount(ctx context.Context, id int) {
	s.mu.RLock()
	counter, ok := s.views[id]
	s.mu.RUnlock()
	if !ok {
		return
	}
	counter.Add(1)
}

func (s *Store) ReplaceAll(ctx context.Context, articles []domain.Article) (domain.SyncResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[int]domain.Article, len(articles))
	order := make([]int, 0, len(articles))
	views := make(map[int]*atomic.Int64, len(articles))
	added := 0
	maxID := 0

	for _, a := range articles {
		if prev, ok := s.articles[a.ID]; ok {
			// createdAt is set once at first creation, never on re-sync.
			a.CreatedAt = prev.CreatedAt
			counter := &atomic.Int64{}
			counter.Store(s.views[a.ID].Load())
			views[a.ID] = counter
		} else {
			views[a.ID] = &atomic.Int64{}
			added++
		}
		next[a.ID] = a
		order = append(order, a.ID)
		if a.ID > maxID {
			maxID = a.ID
		}
	}

	s.articles = next
	s.order = order
	s.views = views
	s.nextID = maxID + 1
	s.lastSync = s.now()

	slog.Info("Article set replaced", "total", len(next), "added", added)
	return domain.SyncResult{Added: added, Total: len(next)}, nil
}

// Restore seeds the store from an archived snapshot at startup, keeping the
// persisted view counts. It must not run after traffic starts.
func (s *Store) Restore(ctx context.Context, articles []domain.Article, syncedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.articles = make(map[int]domain.Article, len(articles))
	s.order = s.order[:0]
	s.views = make(map[int]*atomic.Int64, len(articles))
	maxID := 0
	for _, a := range articles {
		s.articles[a.ID] = a
		s.order = append(s.order, a.ID)
		counter := &atomic.Int64{}
		counter.Store(a.ViewCount)
		s.views[a.ID] = counter
		if a.ID > maxID {
			maxID = a.ID
		}
	}
	s.nextID = maxID + 1
	s.lastSync = syncedAt
}

func (s *Store) SetTranslation(ctx context.Context, id int, titleHi, contentHi string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.articles[id]
	if !ok {
		return apperr.NewNotFound("article", id)
	}
	a.TitleHi = titleHi
	a.ContentHi = contentHi
	s.articles[id] = a
	return nil
}

func (s *Store) LastSyncedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSync
}
