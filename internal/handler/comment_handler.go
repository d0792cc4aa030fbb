package handler

import (
	"net/http"
	"strings"

	"go-blog-app/internal/middleware"
	"go-blog-app/internal/service"
)

// CommentHandler holds the dependencies for comment endpoints.
type CommentHandler struct {
	comments *service.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(comments *service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// byArticleHandler returns an article's approved comments.
func (h *CommentHandler) byArticleHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	articleID, appErr := urlID(r, "articleID")
	if appErr != nil {
		return appErr
	}
	return writeJSON(w, http.StatusOK, h.comments.ArticleComments(r.Context(), articleID))
}

type commentCreateRequest struct {
	ArticleID int64  `json:"articleId"`
	Content   string `json:"content"`
}

// createHandler submits a comment for moderation. The author is always
// the session user.
func (h *CommentHandler) createHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req commentCreateRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		return appErr
	}
	if req.ArticleID <= 0 {
		return badRequest("articleId is required")
	}
	if strings.TrimSpace(req.Content) == "" {
		return badRequest("content is required")
	}

	userInfo := middleware.GetUserInfo(r.Context())
	comment, err := h.comments.CreateComment(r.Context(), req.ArticleID, userInfo.ID, req.Content)
	if err != nil {
		return storageError(err, "Failed to create comment")
	}
	return writeJSON(w, http.StatusCreated, comment)
}

// listHandler returns every comment, approved or not, for moderation.
func (h *CommentHandler) listHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	comments, err := h.comments.ListComments(r.Context())
	if err != nil {
		return storageError(err, "Failed to list comments")
	}
	return writeJSON(w, http.StatusOK, comments)
}

type commentModerateRequest struct {
	IsApproved bool `json:"isApproved"`
}

// moderateHandler approves or rejects a comment.
func (h *CommentHandler) moderateHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := urlID(r, "id")
	if appErr != nil {
		return appErr
	}
	var req commentModerateRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		return appErr
	}
	if err := h.comments.SetApproved(r.Context(), id, req.IsApproved); err != nil {
		return storageError(err, "Failed to moderate comment")
	}
	return writeSuccess(w)
}

func (h *CommentHandler) deleteHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := urlID(r, "id")
	if appErr != nil {
		return appErr
	}
	if err := h.comments.DeleteComment(r.Context(), id); err != nil {
		return storageError(err, "Failed to delete comment")
	}
	return writeSuccess(w)
}
