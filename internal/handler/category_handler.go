package handler

import (
	"net/http"

	"go-blog-app/internal/data"
	"go-blog-app/internal/middleware"
	"go-blog-app/internal/service"
	"go-blog-app/internal/slug"

	"github.com/go-chi/chi/v5"
)

// CategoryHandler holds the dependencies for category endpoints.
type CategoryHandler struct {
	content *service.ContentService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(content *service.ContentService) *CategoryHandler {
	return &CategoryHandler{content: content}
}

// publicListHandler returns categories in display order.
func (h *CategoryHandler) publicListHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return writeJSON(w, http.StatusOK, h.content.Categories(r.Context()))
}

// bySlugHandler returns one category by slug.
func (h *CategoryHandler) bySlugHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	categorySlug := chi.URLParam(r, "slug")
	category := h.content.CategoryBySlug(r.Context(), categorySlug)
	if category == nil {
		return &middleware.AppError{Error: data.ErrNotFound, Message: "Category not found", Code: http.StatusNotFound}
	}
	return writeJSON(w, http.StatusOK, category)
}

// listHandler returns every category for the admin console.
func (h *CategoryHandler) listHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	categories, err := h.content.ListCategories(r.Context())
	if err != nil {
		return storageError(err, "Failed to list categories")
	}
	return writeJSON(w, http.StatusOK, categories)
}

type categoryCreateRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Color       *string `json:"color"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"isActive"`
}

func (h *CategoryHandler) createHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req categoryCreateRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		return appErr
	}
	if req.Name == "" {
		return badRequest("name is required")
	}
	if req.Slug != "" && !slug.IsValid(req.Slug) {
		return badRequest("slug must contain only lowercase letters, digits and hyphens")
	}

	category, err := h.content.CreateCategory(r.Context(), data.CategoryCreate{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
		Order:       req.Order,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return storageError(err, "Failed to create category")
	}
	return writeJSON(w, http.StatusCreated, category)
}

type categoryUpdateRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Color       *string `json:"color"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"isActive"`
}

func (h *CategoryHandler) updateHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := urlID(r, "id")
	if appErr != nil {
		return appErr
	}
	var req categoryUpdateRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		return appErr
	}
	if req.Slug != nil && !slug.IsValid(*req.Slug) {
		return badRequest("slug must contain only lowercase letters, digits and hyphens")
	}

	err := h.content.UpdateCategory(r.Context(), id, data.CategoryUpdate{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
		Order:       req.Order,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return storageError(err, "Failed to update category")
	}
	return writeSuccess(w)
}

func (h *CategoryHandler) deleteHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := urlID(r, "id")
	if appErr != nil {
		return appErr
	}
	if err := h.content.DeleteCategory(r.Context(), id); err != nil {
		return storageError(err, "Failed to delete category")
	}
	return writeSuccess(w)
}
