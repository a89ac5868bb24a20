package router

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/stockbrief/stock-shorts/internal/apperr"
	"github.com/stockbrief/stock-shorts/internal/domain"
	"github.com/stockbrief/stock-shorts/internal/storage"
	"github.com/stockbrief/stock-shorts/internal/storage/in_mem"
)

// SavedRouter exposes one user/article list (bookmarks or read-later) under a
// base path.
type SavedRouter struct {
	e        *echo.Echo
	basePath string
	saved    *in_mem.SavedStore
	articles storage.Store
}

func NewSavedRouter(e *echo.Echo, basePath string, saved *in_mem.SavedStore, articles storage.Store) *SavedRouter {
	return &SavedRouter{
		e:        e,
		basePath: basePath,
		saved:    saved,
		articles: articles,
	}
}

func (r *SavedRouter) Bind() {
	r.e.GET(r.basePath, r.listHandler)
	r.e.POST(r.basePath, r.addHandler)
	r.e.DELETE(r.basePath+"/:articleId", r.removeHandler)
}

type savedPayload struct {
	UserID    string `json:"userId"`
	ArticleID int    `json:"articleId"`
}

func (r *SavedRouter) addHandler(c echo.Context) error {
	var payload savedPayload
	if err := c.Bind(&payload); err != nil {
		return apperr.NewValidationWrap("invalid payload", err)
	}

	if payload.UserID == "" {
		return apperr.NewValidation("userId is required")
	}
	if payload.ArticleID <= 0 {
		return apperr.NewValidation("articleId must be a positive integer")
	}

	ctx := c.Request().Context()
	if _, err := r.articles.GetArticle(ctx, payload.ArticleID); err != nil {
		return err
	}

	entry, err := r.saved.Add(ctx, payload.UserID, payload.ArticleID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entry)
}

func (r *SavedRouter) listHandler(c echo.Context) error {
	userID := c.QueryParam("userId")
	if userID == "" {
		return apperr.NewValidation("userId query parameter is required")
	}

	ctx := c.Request().Context()
	entries := r.saved.List(ctx, userID)

	// Resolve entries to full articles; pairings whose article disappeared
	// in a re-sync are filtered out rather than erroring the whole list.
	articles := make([]domain.Article, 0, len(entries))
	for _, entry := range entries {
		article, err := r.articles.GetArticle(ctx, entry.ArticleID)
		if err != nil {
			continue
		}
		articles = append(articles, article)
	}
	return c.JSON(http.StatusOK, articles)
}

func (r *SavedRouter) removeHandler(c echo.Context) error {
	userID := c.QueryParam("userId")
	if userID == "" {
		return apperr.NewValidation("userId query parameter is required")
	}
	articleID, err := strconv.Atoi(c.Param("articleId"))
	if err != nil || articleID <= 0 {
		return apperr.NewValidation("articleId must be a positive integer")
	}

	if err := r.saved.Remove(c.Request().Context(), userID, articleID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
