package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go-blog-app/internal/data"
	"go-blog-app/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// writeJSON writes data as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, data interface{}) *middleware.AppError {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to encode response", Code: http.StatusInternalServerError}
	}
	return nil
}

// writeSuccess writes the uniform success marker used by deletions and
// other operations with no row to return.
func writeSuccess(w http.ResponseWriter) *middleware.AppError {
	return writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// decodeJSON decodes the request body into dst, rejecting unknown fields
// so a mistyped field name fails loudly instead of being ignored.
func decodeJSON(r *http.Request, dst interface{}) *middleware.AppError {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid request body", Code: http.StatusBadRequest}
	}
	return nil
}

// badRequest builds a validation failure. Validation always happens
// before any storage access.
func badRequest(msg string) *middleware.AppError {
	return &middleware.AppError{Error: errors.New(msg), Message: msg, Code: http.StatusBadRequest}
}

// storageError maps a repository error to the right status: 404 for a
// mutation that matched no row, 500 otherwise. Writes always surface
// failure to the caller.
func storageError(err error, msg string) *middleware.AppError {
	code := http.StatusInternalServerError
	if errors.Is(err, data.ErrNotFound) {
		code = http.StatusNotFound
	}
	return &middleware.AppError{Error: err, Message: msg, Code: code}
}

// urlID parses a numeric id URL parameter.
func urlID(r *http.Request, name string) (int64, *middleware.AppError) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest(fmt.Sprintf("invalid %s", name))
	}
	return id, nil
}

// queryLimit parses the limit query parameter, falling back to def and
// capping at 100 so a client cannot request the whole table.
func queryLimit(r *http.Request, def int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return def
	}
	if limit > 100 {
		return 100
	}
	return limit
}
