package translate

import (
	"context"
	"log/slog"

	"github.com/stockbrief/stock-shorts/internal/domain"
	"github.com/stockbrief/stock-shorts/internal/storage"
)

// Service lazily translates an article and caches the result on the record.
// The cache is best-effort: a re-sync may drop it, and the next request
// repopulates it.
type Service struct {
	store      storage.Store
	translator Translator
}

func NewService(store storage.Store, translator Translator) *Service {
	return &Service{store: store, translator: translator}
}

// ArticleHindi returns the article with TitleHi/ContentHi populated,
// translating on first access.
func (s *Service) ArticleHindi(ctx context.Context, id int) (domain.Article, error) {
	article, err := s.store.GetArticle(ctx, id)
	if err != nil {
		return domain.Article{}, err
	}
	if article.TitleHi != "" && article.ContentHi != "" {
		return article, nil
	}

	titleHi, err := s.translator.Translate(ctx, article.Title)
	if err != nil {
		return domain.Article{}, err
	}
	contentHi, err := s.translator.Translate(ctx, article.Content)
	if err != nil {
		return domain.Article{}, err
	}

	if err := s.store.SetTranslation(ctx, id, titleHi, contentHi); err != nil {
		// The article vanished under a concurrent re-sync; still serve the
		// translation we just computed.
		slog.Warn("Could not cache translation", "id", id, "error", err)
	}
	article.TitleHi = titleHi
	article.ContentHi = contentHi
	return article, nil
}
