package handler

import (
	"net/http"

	"go-blog-app/internal/data"
	"go-blog-app/internal/middleware"
	"go-blog-app/internal/service"
)

// QuoteHandler holds the dependencies for quote endpoints.
type QuoteHandler struct {
	site *service.SiteService
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(site *service.SiteService) *QuoteHandler {
	return &QuoteHandler{site: site}
}

// randomHandler returns published quotes for the rotating widget.
func (h *QuoteHandler) randomHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	limit := queryLimit(r, 5)
	return writeJSON(w, http.StatusOK, h.site.PublishedQuotes(r.Context(), limit))
}

// listHandler returns every quote for the admin console.
func (h *QuoteHandler) listHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	quotes, err := h.site.ListQuotes(r.Context())
	if err != nil {
		return storageError(err, "Failed to list quotes")
	}
	return writeJSON(w, http.StatusOK, quotes)
}

type quoteCreateRequest struct {
	Text        string  `json:"text"`
	Author      string  `json:"author"`
	Source      *string `json:"source"`
	CategoryID  *int64  `json:"categoryId"`
	IsPublished *bool   `json:"isPublished"`
	Order       *int    `json:"order"`
}

func (h *QuoteHandler) createHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req quoteCreateRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		return appErr
	}
	if req.Text == "" {
		return badRequest("text is required")
	}
	if req.Author == "" {
		return badRequest("author is required")
	}

	quote, err := h.site.CreateQuote(r.Context(), data.QuoteCreate{
		Text:        req.Text,
		Author:      req.Author,
		Source:      req.Source,
		CategoryID:  req.CategoryID,
		IsPublished: req.IsPublished,
		Order:       req.Order,
	})
	if err != nil {
		return storageError(err, "Failed to create quote")
	}
	return writeJSON(w, http.StatusCreated, quote)
}

type quoteUpdateRequest struct {
	Text        *string `json:"text"`
	Author      *string `json:"author"`
	Source      *string `json:"source"`
	CategoryID  *int64  `json:"categoryId"`
	IsPublished *bool   `json:"isPublished"`
	Order       *int    `json:"order"`
}

func (h *QuoteHandler) updateHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := urlID(r, "id")
	if appErr != nil {
		return appErr
	}
	var req quoteUpdateRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		return appErr
	}

	err := h.site.UpdateQuote(r.Context(), id, data.QuoteUpdate{
		Text:        req.Text,
		Author:      req.Author,
		Source:      req.Source,
		CategoryID:  req.CategoryID,
		IsPublished: req.IsPublished,
		Order:       req.Order,
	})
	if err != nil {
		return storageError(err, "Failed to update quote")
	}
	return writeSuccess(w)
}

func (h *QuoteHandler) deleteHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := urlID(r, "id")
	if appErr != nil {
		return appErr
	}
	if err := h.site.DeleteQuote(r.Context(), id); err != nil {
		return storageError(err, "Failed to delete quote")
	}
	return writeSuccess(w)
}
