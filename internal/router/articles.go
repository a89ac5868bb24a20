package router

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/stockbrief/stock-shorts/internal/apperr"
	"github.com/stockbrief/stock-shorts/internal/domain"
	"github.com/stockbrief/stock-shorts/internal/storage"
	"github.com/stockbrief/stock-shorts/internal/translate"
)

// Syncer runs one ingestion pass on demand.
type Syncer interface {
	Sync(ctx context.Context) (domain.SyncResult, error)
}

// Freshener lets the read path trigger a staleness-based refresh with a
// bounded wait.
type Freshener interface {
	EnsureFresh(ctx context.Context)
}

type ArticleRouter struct {
	e          *echo.Echo
	store      storage.Store
	syncer     Syncer
	freshener  Freshener
	translator *translate.Service
}

type ArticleRouterOption func(*ArticleRouter)

func WithFreshener(f Freshener) ArticleRouterOption {
	return func(r *ArticleRouter) {
		r.freshener = f
	}
}

func WithTranslator(svc *translate.Service) ArticleRouterOption {
	return func(r *ArticleRouter) {
		r.translator = svc
	}
}

func NewArticleRouter(e *echo.Echo, store storage.Store, syncer Syncer, opts ...ArticleRouterOption) *ArticleRouter {
	r := &ArticleRouter{
		e:      e,
		store:  store,
		syncer: syncer,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *ArticleRouter) Bind() {
	r.e.GET("/health", r.healthHandler)
	r.e.GET("/api/articles", r.listHandler)
	r.e.GET("/api/articles/trending", r.trendingHandler)
	r.e.GET("/api/articles/:id", r.getHandler)
	r.e.POST("/api/articles", r.createHandler)
	r.e.POST("/api/articles/:id/view", r.viewHandler)
	r.e.POST("/api/sync", r.syncHandler)
	if r.translator != nil {
		r.e.GET("/api/articles/:id/translate", r.translateHandler)
	}
}

func (r *ArticleRouter) healthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (r *ArticleRouter) listHandler(c echo.Context) error {
	ctx := c.Request().Context()
	if r.freshener != nil {
		r.freshener.EnsureFresh(ctx)
	}

	articles, err := r.store.GetArticles(ctx, c.QueryParam("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, articles)
}

func (r *ArticleRouter) trendingHandler(c echo.Context) error {
	ctx := c.Request().Context()
	if r.freshener != nil {
		r.freshener.EnsureFresh(ctx)
	}

	articles, err := r.store.GetTrendingArticles(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, articles)
}

func (r *ArticleRouter) getHandler(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return err
	}

	article, err := r.store.GetArticle(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, article)
}

func (r *ArticleRouter) createHandler(c echo.Context) error {
	var draft domain.ArticleDraft
	if err := c.Bind(&draft); err != nil {
		return apperr.NewValidationWrap("invalid article payload", err)
	}

	article, err := r.store.CreateArticle(c.Request().Context(), draft)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, article)
}

func (r *ArticleRouter) viewHandler(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return err
	}

	// Unknown ids are a no-op, never an error.
	r.store.IncrementViewCount(c.Request().Context(), id)
	return c.NoContent(http.StatusNoContent)
}

func (r *ArticleRouter) syncHandler(c echo.Context) error {
	result, err := r.syncer.Sync(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (r *ArticleRouter) translateHandler(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return err
	}

	article, err := r.translator.ArticleHindi(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, article)
}

func articleID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, apperr.NewValidation("article id must be a positive integer")
	}
	return id, nil
}
