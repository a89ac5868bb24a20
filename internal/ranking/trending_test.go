package ranking

import (
	"testing"
	"time"

	"github.com/stockbrief/stock-shorts/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeArticle(id int, views int64, category domain.Category, created time.Time) domain.Article {
	return domain.Article{
		ID:        id,
		Title:     "article",
		Content:   "body",
		Category:  category,
		ViewCount: views,
		CreatedAt: created,
	}
}

func TestRank_TopViewedFirst(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	var articles []domain.Article
	for i := 1; i <= 20; i++ {
		articles = append(articles, makeArticle(i, int64(i*10), domain.CategoryOthers, base))
	}

	ranked := Rank(articles)
	require.Len(t, ranked, 20)

	// Head: 15 highest view counts in descending order.
	for i := 0; i < 15; i++ {
		assert.Equal(t, int64((20-i)*10), ranked[i].ViewCount)
	}
	for i := 1; i < 15; i++ {
		assert.GreaterOrEqual(t, ranked[i-1].ViewCount, ranked[i].ViewCount)
	}
}

func TestRank_TieBreakByRecency(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	articles := []domain.Article{
		makeArticle(1, 5, domain.CategoryOthers, base),
		makeArticle(2, 5, domain.CategoryOthers, base.Add(time.Hour)),
	}

	ranked := Rank(articles)
	assert.Equal(t, 2, ranked[0].ID)
	assert.Equal(t, 1, ranked[1].ID)
}

func TestRank_Deterministic(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	var articles []domain.Article
	for i := 1; i <= 30; i++ {
		cat := domain.AllCategories[i%len(domain.AllCategories)]
		articles = append(articles, makeArticle(i, int64(i%7), cat, base.Add(time.Duration(i)*time.Minute)))
	}

	first := Rank(articles)
	second := Rank(articles)
	assert.Equal(t, first, second)
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	articles := []domain.Article{
		makeArticle(1, 1, domain.CategoryOthers, base),
		makeArticle(2, 9, domain.CategoryOthers, base),
	}

	Rank(articles)
	assert.Equal(t, 1, articles[0].ID)
}

func TestRank_TailQuotas(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	var articles []domain.Article
	id := 1
	// 15 high-view fillers occupy the head.
	for ; id <= 15; id++ {
		articles = append(articles, makeArticle(id, 1000+int64(id), domain.CategoryGlobal, base))
	}
	// Remainder: 4 nifty, 4 others-category.
	for i := 0; i < 4; i++ {
		articles = append(articles, makeArticle(id, int64(10-i), domain.CategoryNifty, base))
		id++
	}
	for i := 0; i < 4; i++ {
		articles = append(articles, makeArticle(id, int64(5-i), domain.CategoryOthers, base))
		id++
	}

	ranked := Rank(articles)
	tail := ranked[15:]

	nifty, others := 0, 0
	for _, a := range tail {
		switch a.Category {
		case domain.CategoryNifty:
			nifty++
		default:
			others++
		}
	}
	assert.Equal(t, 2, nifty, "priority category capped at 2 in the tail")
	assert.LessOrEqual(t, others, 5)
}

func TestRank_ShortInputPassesThroughSorted(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	articles := []domain.Article{
		makeArticle(1, 3, domain.CategoryOthers, base),
		makeArticle(2, 7, domain.CategoryOthers, base),
	}

	ranked := Rank(articles)
	require.Len(t, ranked, 2)
	assert.Equal(t, 2, ranked[0].ID)
}
