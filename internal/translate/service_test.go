package translate

import (
	"context"
	"testing"

	"github.com/stockbrief/stock-shorts/internal/content"
	"github.com/stockbrief/stock-shorts/internal/domain"
	"github.com/stockbrief/stock-shorts/internal/storage/in_mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTranslator struct {
	calls int
}

func (c *countingTranslator) Translate(ctx context.Context, text string) (string, error) {
	c.calls++
	return "हिंदी: " + text, nil
}

func TestService_TranslatesOnceThenServesCache(t *testing.T) {
	store := in_mem.NewStore(content.NewNormalizer(), content.NewImageSelector())
	_, err := store.ReplaceAll(t.Context(), []domain.Article{{
		ID: 1, Title: "Nifty up", Content: "Body", Category: domain.CategoryNifty, ImageURL: "u",
	}})
	require.NoError(t, err)

	translator := &countingTranslator{}
	svc := NewService(store, translator)

	first, err := svc.ArticleHindi(t.Context(), 1)
	require.NoError(t, err)
	assert.Equal(t, "हिंदी: Nifty up", first.TitleHi)
	assert.Equal(t, 2, translator.calls, "one call per field")

	second, err := svc.ArticleHindi(t.Context(), 1)
	require.NoError(t, err)
	assert.Equal(t, first.TitleHi, second.TitleHi)
	assert.Equal(t, 2, translator.calls, "second request served from cache")
}

func TestService_UnknownArticle(t *testing.T) {
	store := in_mem.NewStore(content.NewNormalizer(), content.NewImageSelector())
	svc := NewService(store, &countingTranslator{})

	_, err := svc.ArticleHindi(t.Context(), 42)
	assert.Error(t, err)
}
