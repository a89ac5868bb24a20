package in_mem

import (
	"sync"
	"testing"
	"time"

	"github.com/stockbrief/stock-shorts/internal/apperr"
	"github.com/stockbrief/stock-shorts/internal/content"
	"github.com/stockbrief/stock-shorts/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *Store {
	return NewStore(content.NewNormalizer(), content.NewImageSelector())
}

func seed(t *testing.T, s *Store, articles ...domain.Article) {
	t.Helper()
	_, err := s.ReplaceAll(t.Context(), articles)
	require.NoError(t, err)
}

func art(id int, category domain.Category) domain.Article {
	return domain.Article{
		ID:        id,
		Title:     "title",
		Content:   "content",
		Category:  category,
		ImageURL:  "https://example.com/a.jpg",
		CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestStore_GetArticlesFilters(t *testing.T) {
	s := newTestStore()
	seed(t, s, art(1, domain.CategoryNifty), art(2, domain.CategoryIPO), art(3, domain.CategoryNifty))

	all, err := s.GetArticles(t.Context(), "all")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	nifty, err := s.GetArticles(t.Context(), "nifty")
	require.NoError(t, err)
	assert.Len(t, nifty, 2)

	empty, err := s.GetArticles(t.Context(), "warrant")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStore_GetArticle_NotFound(t *testing.T) {
	s := newTestStore()

	_, err := s.GetArticle(t.Context(), 99)
	var nfe *apperr.NotFoundError
	require.ErrorAs(t, err, &nfe)
}

func TestStore_CreateArticle_SynthesizesFields(t *testing.T) {
	s := newTestStore()

	created, err := s.CreateArticle(t.Context(), domain.ArticleDraft{
		Title:    "Demo article",
		Content:  "Demo body",
		Category: "warrant",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, created.ID)
	assert.Equal(t, domain.CategoryWarrant, created.Category)
	assert.True(t, created.IsPremium, "warrant implies premium")
	assert.NotEmpty(t, created.ImageURL)
	assert.False(t, created.CreatedAt.IsZero())

	second, err := s.CreateArticle(t.Context(), domain.ArticleDraft{Title: "Another", Content: "x", Category: "nifty"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)
	assert.False(t, second.IsPremium)
}

func TestStore_CreateArticle_Validation(t *testing.T) {
	s := newTestStore()

	_, err := s.CreateArticle(t.Context(), domain.ArticleDraft{Content: "body"})
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestStore_IncrementViewCount(t *testing.T) {
	s := newTestStore()
	seed(t, s, art(1, domain.CategoryNifty))

	s.IncrementViewCount(t.Context(), 1)
	s.IncrementViewCount(t.Context(), 1)
	s.IncrementViewCount(t.Context(), 404) // unknown id is a no-op

	got, err := s.GetArticle(t.Context(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.ViewCount)
}

func TestStore_IncrementViewCount_Concurrent(t *testing.T) {
	s := newTestStore()
	seed(t, s, art(1, domain.CategoryNifty), art(2, domain.CategoryIPO))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.IncrementViewCount(t.Context(), 1)
		}()
		go func() {
			defer wg.Done()
			s.IncrementViewCount(t.Context(), 2)
		}()
	}
	wg.Wait()

	a1, err := s.GetArticle(t.Context(), 1)
	require.NoError(t, err)
	a2, err := s.GetArticle(t.Context(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(50), a1.ViewCount)
	assert.Equal(t, int64(50), a2.ViewCount)
}

func TestStore_ReplaceAll_CarriesViewCountForward(t *testing.T) {
	s := newTestStore()
	seed(t, s, art(7, domain.CategoryNifty))

	for i := 0; i < 42; i++ {
		s.IncrementViewCount(t.Context(), 7)
	}

	replacement := art(7, domain.CategoryNifty)
	replacement.Content = "refreshed content"
	res, err := s.ReplaceAll(t.Context(), []domain.Article{replacement, art(8, domain.CategoryIPO)})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 2, res.Total)

	got, err := s.GetArticle(t.Context(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ViewCount)
	assert.Equal(t, "refreshed content", got.Content)

	fresh, err := s.GetArticle(t.Context(), 8)
	require.NoError(t, err)
	assert.Equal(t, int64(0), fresh.ViewCount)
}

func TestStore_ReplaceAll_KeepsOriginalCreatedAt(t *testing.T) {
	s := newTestStore()
	original := art(1, domain.CategoryNifty)
	seed(t, s, original)

	updated := art(1, domain.CategoryNifty)
	updated.CreatedAt = original.CreatedAt.Add(48 * time.Hour)
	seed(t, s, updated)

	got, err := s.GetArticle(t.Context(), 1)
	require.NoError(t, err)
	assert.Equal(t, original.CreatedAt, got.CreatedAt)
}

func TestStore_ReplaceAll_AdvancesNextID(t *testing.T) {
	s := newTestStore()
	seed(t, s, art(11, domain.CategoryNifty), art(4, domain.CategoryIPO))

	created, err := s.CreateArticle(t.Context(), domain.ArticleDraft{Title: "new", Content: "body", Category: "others"})
	require.NoError(t, err)
	assert.Equal(t, 12, created.ID)
}

func TestStore_SetTranslation(t *testing.T) {
	s := newTestStore()
	seed(t, s, art(1, domain.CategoryNifty))

	require.NoError(t, s.SetTranslation(t.Context(), 1, "शीर्षक", "सामग्री"))

	got, err := s.GetArticle(t.Context(), 1)
	require.NoError(t, err)
	assert.Equal(t, "शीर्षक", got.TitleHi)

	err = s.SetTranslation(t.Context(), 123, "x", "y")
	var nfe *apperr.NotFoundError
	assert.ErrorAs(t, err, &nfe)
}

func TestStore_Restore_KeepsArchivedViewCounts(t *testing.T) {
	s := newTestStore()

	archived := art(3, domain.CategoryResults)
	archived.ViewCount = 17
	syncedAt := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	s.Restore(t.Context(), []domain.Article{archived}, syncedAt)

	got, err := s.GetArticle(t.Context(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(17), got.ViewCount)
	assert.Equal(t, syncedAt, s.LastSyncedAt())
}
