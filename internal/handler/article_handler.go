package handler

import (
	"net/http"

	"go-blog-app/internal/data"
	"go-blog-app/internal/middleware"
	"go-blog-app/internal/service"
	"go-blog-app/internal/slug"

	"github.com/go-chi/chi/v5"
)

// ArticleHandler holds the dependencies for article endpoints.
type ArticleHandler struct {
	content *service.ContentService
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(content *service.ContentService) *ArticleHandler {
	return &ArticleHandler{content: content}
}

// recentHandler returns published articles, newest publication first.
func (h *ArticleHandler) recentHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	limit := queryLimit(r, 10)
	return writeJSON(w, http.StatusOK, h.content.RecentArticles(r.Context(), limit))
}

// bySlugHandler returns one article by slug, bumping its view count.
func (h *ArticleHandler) bySlugHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	articleSlug := chi.URLParam(r, "slug")
	article := h.content.ArticleBySlug(r.Context(), articleSlug)
	if article == nil {
		return &middleware.AppError{Error: data.ErrNotFound, Message: "Article not found", Code: http.StatusNotFound}
	}
	return writeJSON(w, http.StatusOK, article)
}

// byCategoryHandler returns a category's articles.
func (h *ArticleHandler) byCategoryHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	categoryID, appErr := urlID(r, "categoryID")
	if appErr != nil {
		return appErr
	}
	limit := queryLimit(r, 10)
	return writeJSON(w, http.StatusOK, h.content.ArticlesByCategory(r.Context(), categoryID, limit))
}

// listHandler returns every article for the admin console.
func (h *ArticleHandler) listHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	articles, err := h.content.ListArticles(r.Context())
	if err != nil {
		return storageError(err, "Failed to list articles")
	}
	return writeJSON(w, http.StatusOK, articles)
}

type articleCreateRequest struct {
	Title         string  `json:"title"`
	Slug          string  `json:"slug"`
	Content       string  `json:"content"`
	Excerpt       *string `json:"excerpt"`
	CategoryID    *int64  `json:"categoryId"`
	FeaturedImage *string `json:"featuredImage"`
	IsPublished   *bool   `json:"isPublished"`
}

// createHandler persists a new article. The author is always the
// session user, never a client-supplied id.
func (h *ArticleHandler) createHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req articleCreateRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		return appErr
	}
	if req.Title == "" {
		return badRequest("title is required")
	}
	if req.Content == "" {
		return badRequest("content is required")
	}
	if req.Slug != "" && !slug.IsValid(req.Slug) {
		return badRequest("slug must contain only lowercase letters, digits and hyphens")
	}

	// Articles default to published at creation, matching the admin
	// editor's behavior.
	published := true
	if req.IsPublished != nil {
		published = *req.IsPublished
	}

	userInfo := middleware.GetUserInfo(r.Context())
	article, err := h.content.CreateArticle(r.Context(), data.ArticleCreate{
		Title:         req.Title,
		Slug:          req.Slug,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		CategoryID:    req.CategoryID,
		AuthorID:      userInfo.ID,
		FeaturedImage: req.FeaturedImage,
		IsPublished:   published,
	})
	if err != nil {
		return storageError(err, "Failed to create article")
	}
	return writeJSON(w, http.StatusCreated, article)
}

type articleUpdateRequest struct {
	Title         *string `json:"title"`
	Slug          *string `json:"slug"`
	Content       *string `json:"content"`
	Excerpt       *string `json:"excerpt"`
	CategoryID    *int64  `json:"categoryId"`
	FeaturedImage *string `json:"featuredImage"`
	IsPublished   *bool   `json:"isPublished"`
}

// updateHandler applies a partial update to an article.
func (h *ArticleHandler) updateHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := urlID(r, "id")
	if appErr != nil {
		return appErr
	}
	var req articleUpdateRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		return appErr
	}
	if req.Slug != nil && !slug.IsValid(*req.Slug) {
		return badRequest("slug must contain only lowercase letters, digits and hyphens")
	}

	err := h.content.UpdateArticle(r.Context(), id, data.ArticleUpdate{
		Title:         req.Title,
		Slug:          req.Slug,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		CategoryID:    req.CategoryID,
		FeaturedImage: req.FeaturedImage,
		IsPublished:   req.IsPublished,
	})
	if err != nil {
		return storageError(err, "Failed to update article")
	}
	return writeSuccess(w)
}

// deleteHandler removes an article.
func (h *ArticleHandler) deleteHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := urlID(r, "id")
	if appErr != nil {
		return appErr
	}
	if err := h.content.DeleteArticle(r.Context(), id); err != nil {
		return storageError(err, "Failed to delete article")
	}
	return writeSuccess(w)
}
