package data

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// CommentCreate carries the fields for a new comment. AuthorID comes
// from the authenticated session; IsApproved is forced false upstream.
type CommentCreate struct {
	ArticleID int64
	AuthorID  int64
	Content   string
}

// CommentRepository handles database operations for comments.
type CommentRepository struct {
	db *sqlx.DB
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(db *sqlx.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a new, unapproved comment and returns the stored row.
func (r *CommentRepository) Create(ctx context.Context, in CommentCreate) (*Comment, error) {
	query := `INSERT INTO comments (article_id, author_id, content, is_approved) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, in.ArticleID, in.AuthorID, in.Content, false)
	if err != nil {
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted comment id: %w", err)
	}

	var comment Comment
	if err := r.db.GetContext(ctx, &comment, `SELECT * FROM comments WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to reload inserted comment: %w", err)
	}
	return &comment, nil
}

// ListByArticle returns an article's comments, newest first. When
// approvedOnly is set, unmoderated comments are filtered out.
func (r *CommentRepository) ListByArticle(ctx context.Context, articleID int64, approvedOnly bool) ([]*Comment, error) {
	var comments []*Comment
	query := `SELECT * FROM comments WHERE article_id = ? ORDER BY created_at DESC`
	args := []interface{}{articleID}
	if approvedOnly {
		query = `SELECT * FROM comments WHERE article_id = ? AND is_approved = ? ORDER BY created_at DESC`
		args = append(args, true)
	}
	if err := r.db.SelectContext(ctx, &comments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list comments by article: %w", err)
	}
	return comments, nil
}

// ListAll returns every comment newest first, for moderation.
func (r *CommentRepository) ListAll(ctx context.Context) ([]*Comment, error) {
	var comments []*Comment
	if err := r.db.SelectContext(ctx, &comments, `SELECT * FROM comments ORDER BY created_at DESC`); err != nil {
		return nil, fmt.Errorf("failed to list all comments: %w", err)
	}
	return comments, nil
}

// SetApproved flips the moderation gate on a comment.
func (r *CommentRepository) SetApproved(ctx context.Context, id int64, approved bool) error {
	query := `UPDATE comments SET is_approved = ?, updated_at = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, approved, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set comment approval: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("comment %d: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes a comment by its ID.
func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("comment %d: %w", id, ErrNotFound)
	}
	return nil
}
