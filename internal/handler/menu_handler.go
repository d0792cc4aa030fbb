package handler

import (
	"net/http"

	"go-blog-app/internal/data"
	"go-blog-app/internal/middleware"
	"go-blog-app/internal/service"
)

// MenuHandler holds the dependencies for navigation menu endpoints.
type MenuHandler struct {
	site *service.SiteService
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(site *service.SiteService) *MenuHandler {
	return &MenuHandler{site: site}
}

// publicListHandler returns active menu items in display order.
func (h *MenuHandler) publicListHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return writeJSON(w, http.StatusOK, h.site.MenuItems(r.Context()))
}

// listHandler returns every menu item for the admin console.
func (h *MenuHandler) listHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	items, err := h.site.ListMenuItems(r.Context())
	if err != nil {
		return storageError(err, "Failed to list menu items")
	}
	return writeJSON(w, http.StatusOK, items)
}

type menuCreateRequest struct {
	Label      string  `json:"label"`
	URL        string  `json:"url"`
	Icon       *string `json:"icon"`
	ParentID   *int64  `json:"parentId"`
	Order      *int    `json:"order"`
	IsActive   *bool   `json:"isActive"`
	IsExternal *bool   `json:"isExternal"`
}

func (h *MenuHandler) createHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req menuCreateRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		return appErr
	}
	if req.Label == "" {
		return badRequest("label is required")
	}
	if req.URL == "" {
		return badRequest("url is required")
	}

	item, err := h.site.CreateMenuItem(r.Context(), data.MenuItemCreate{
		Label:      req.Label,
		URL:        req.URL,
		Icon:       req.Icon,
		ParentID:   req.ParentID,
		Order:      req.Order,
		IsActive:   req.IsActive,
		IsExternal: req.IsExternal,
	})
	if err != nil {
		return storageError(err, "Failed to create menu item")
	}
	return writeJSON(w, http.StatusCreated, item)
}

type menuUpdateRequest struct {
	Label      *string `json:"label"`
	URL        *string `json:"url"`
	Icon       *string `json:"icon"`
	ParentID   *int64  `json:"parentId"`
	Order      *int    `json:"order"`
	IsActive   *bool   `json:"isActive"`
	IsExternal *bool   `json:"isExternal"`
}

func (h *MenuHandler) updateHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := urlID(r, "id")
	if appErr != nil {
		return appErr
	}
	var req menuUpdateRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		return appErr
	}

	err := h.site.UpdateMenuItem(r.Context(), id, data.MenuItemUpdate{
		Label:      req.Label,
		URL:        req.URL,
		Icon:       req.Icon,
		ParentID:   req.ParentID,
		Order:      req.Order,
		IsActive:   req.IsActive,
		IsExternal: req.IsExternal,
	})
	if err != nil {
		return storageError(err, "Failed to update menu item")
	}
	return writeSuccess(w)
}

func (h *MenuHandler) deleteHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := urlID(r, "id")
	if appErr != nil {
		return appErr
	}
	if err := h.site.DeleteMenuItem(r.Context(), id); err != nil {
		return storageError(err, "Failed to delete menu item")
	}
	return writeSuccess(w)
}
