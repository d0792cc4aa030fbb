package handler

import (
	"net/http"

	"go-blog-app/internal/middleware"
	"go-blog-app/internal/service"

	"github.com/go-chi/chi/v5"
)

// SettingHandler holds the dependencies for site setting endpoints.
type SettingHandler struct {
	site *service.SiteService
}

// NewSettingHandler creates a new SettingHandler.
func NewSettingHandler(site *service.SiteService) *SettingHandler {
	return &SettingHandler{site: site}
}

// publicListHandler returns every setting for the public site shell.
func (h *SettingHandler) publicListHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return writeJSON(w, http.StatusOK, h.site.Settings(r.Context()))
}

// byKeyHandler returns one setting value, null when the key is absent.
func (h *SettingHandler) byKeyHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	key := chi.URLParam(r, "key")
	return writeJSON(w, http.StatusOK, map[string]*string{"value": h.site.Setting(r.Context(), key)})
}

// listHandler returns every setting for the admin console.
func (h *SettingHandler) listHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return h.publicListHandler(w, r)
}

type settingUpsertRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// upsertHandler creates or replaces one key's value.
func (h *SettingHandler) upsertHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req settingUpsertRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		return appErr
	}
	if req.Key == "" {
		return badRequest("key is required")
	}
	if err := h.site.UpsertSetting(r.Context(), req.Key, req.Value); err != nil {
		return storageError(err, "Failed to save setting")
	}
	return writeSuccess(w)
}
