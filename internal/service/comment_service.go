package service

import (
	"context"
	"fmt"

	"go-blog-app/internal/data"
	"go-blog-app/internal/logger"

	"github.com/microcosm-cc/bluemonday"
)

// CommentStore defines the interface for database operations on comments.
type CommentStore interface {
	Create(ctx context.Context, in data.CommentCreate) (*data.Comment, error)
	ListByArticle(ctx context.Context, articleID int64, approvedOnly bool) ([]*data.Comment, error)
	ListAll(ctx context.Context) ([]*data.Comment, error)
	SetApproved(ctx context.Context, id int64, approved bool) error
	Delete(ctx context.Context, id int64) error
}

// CommentService provides business logic for article comments. Comment
// bodies are the only user-generated markup in the system, so they get
// sanitized on the way in; every new comment starts unapproved.
type CommentService struct {
	repo      CommentStore
	sanitizer *bluemonday.Policy
	log       logger.Logger
}

// NewCommentService creates a new CommentService.
func NewCommentService(repo CommentStore, log logger.Logger) *CommentService {
	// UGCPolicy allows basic formatting like links, lists and bold while
	// stripping out dangerous HTML.
	return &CommentService{
		repo:      repo,
		sanitizer: bluemonday.UGCPolicy(),
		log:       log,
	}
}

// ArticleComments returns an article's approved comments, newest first.
// Storage failure degrades to an empty list.
func (s *CommentService) ArticleComments(ctx context.Context, articleID int64) []*data.Comment {
	comments, err := s.repo.ListByArticle(ctx, articleID, true)
	if err != nil {
		s.log.Warn(fmt.Sprintf("Comments unavailable for article %d: %v", articleID, err))
		return []*data.Comment{}
	}
	return comments
}

// CreateComment stores a new comment from authorID on an article. The
// body is sanitized and the comment starts unapproved regardless of input.
func (s *CommentService) CreateComment(ctx context.Context, articleID, authorID int64, content string) (*data.Comment, error) {
	return s.repo.Create(ctx, data.CommentCreate{
		ArticleID: articleID,
		AuthorID:  authorID,
		Content:   s.sanitizer.Sanitize(content),
	})
}

// ListComments returns every comment for the moderation queue.
func (s *CommentService) ListComments(ctx context.Context) ([]*data.Comment, error) {
	return s.repo.ListAll(ctx)
}

// SetApproved flips a comment's moderation gate.
func (s *CommentService) SetApproved(ctx context.Context, id int64, approved bool) error {
	return s.repo.SetApproved(ctx, id, approved)
}

// DeleteComment removes a comment.
func (s *CommentService) DeleteComment(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
