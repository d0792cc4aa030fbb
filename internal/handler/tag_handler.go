package handler

import (
	"net/http"

	"go-blog-app/internal/middleware"
	"go-blog-app/internal/service"
	"go-blog-app/internal/slug"
)

// TagHandler holds the dependencies for tag endpoints.
type TagHandler struct {
	content *service.ContentService
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(content *service.ContentService) *TagHandler {
	return &TagHandler{content: content}
}

// listHandler returns every tag.
func (h *TagHandler) listHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return writeJSON(w, http.StatusOK, h.content.Tags(r.Context()))
}

// byArticleHandler returns an article's tags.
func (h *TagHandler) byArticleHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	articleID, appErr := urlID(r, "articleID")
	if appErr != nil {
		return appErr
	}
	return writeJSON(w, http.StatusOK, h.content.ArticleTags(r.Context(), articleID))
}

type tagCreateRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (h *TagHandler) createHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req tagCreateRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		return appErr
	}
	if req.Name == "" {
		return badRequest("name is required")
	}
	if req.Slug != "" && !slug.IsValid(req.Slug) {
		return badRequest("slug must contain only lowercase letters, digits and hyphens")
	}

	tag, err := h.content.CreateTag(r.Context(), req.Name, req.Slug)
	if err != nil {
		return storageError(err, "Failed to create tag")
	}
	return writeJSON(w, http.StatusCreated, tag)
}

func (h *TagHandler) deleteHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := urlID(r, "id")
	if appErr != nil {
		return appErr
	}
	if err := h.content.DeleteTag(r.Context(), id); err != nil {
		return storageError(err, "Failed to delete tag")
	}
	return writeSuccess(w)
}

// attachHandler links a tag to an article.
func (h *TagHandler) attachHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	articleID, appErr := urlID(r, "id")
	if appErr != nil {
		return appErr
	}
	tagID, appErr := urlID(r, "tagID")
	if appErr != nil {
		return appErr
	}
	if err := h.content.AttachTag(r.Context(), articleID, tagID); err != nil {
		return storageError(err, "Failed to attach tag")
	}
	return writeSuccess(w)
}

// detachHandler removes a tag from an article.
func (h *TagHandler) detachHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	articleID, appErr := urlID(r, "id")
	if appErr != nil {
		return appErr
	}
	tagID, appErr := urlID(r, "tagID")
	if appErr != nil {
		return appErr
	}
	if err := h.content.DetachTag(r.Context(), articleID, tagID); err != nil {
		return storageError(err, "Failed to detach tag")
	}
	return writeSuccess(w)
}
