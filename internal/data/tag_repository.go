package data

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// TagRepository handles database operations for tags and the
// article/tag junction table.
type TagRepository struct {
	db *sqlx.DB
}

// NewTagRepository creates a new TagRepository.
func NewTagRepository(db *sqlx.DB) *TagRepository {
	return &TagRepository{db: db}
}

// Create inserts a new tag and returns the stored row.
func (r *TagRepository) Create(ctx context.Context, name, slug string) (*Tag, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO tags (name, slug) VALUES (?, ?)`, name, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to insert tag: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted tag id: %w", err)
	}

	var tag Tag
	if err := r.db.GetContext(ctx, &tag, `SELECT * FROM tags WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to reload inserted tag: %w", err)
	}
	return &tag, nil
}

// Delete removes a tag and its article links.
func (r *TagRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM article_tags WHERE tag_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete tag links: %w", err)
	}
	result, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("tag %d: %w", id, ErrNotFound)
	}
	return nil
}

// ListAll returns every tag.
func (r *TagRepository) ListAll(ctx context.Context) ([]*Tag, error) {
	var tags []*Tag
	if err := r.db.SelectContext(ctx, &tags, `SELECT * FROM tags`); err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// ListByArticle returns the tags attached to an article.
func (r *TagRepository) ListByArticle(ctx context.Context, articleID int64) ([]*Tag, error) {
	var tags []*Tag
	query := `SELECT t.* FROM tags t
		JOIN article_tags at ON at.tag_id = t.id
		WHERE at.article_id = ?`
	if err := r.db.SelectContext(ctx, &tags, query, articleID); err != nil {
		return nil, fmt.Errorf("failed to list tags by article: %w", err)
	}
	return tags, nil
}

// Attach links a tag to an article. The unique pair index makes a
// duplicate attach fail rather than duplicate the link.
func (r *TagRepository) Attach(ctx context.Context, articleID, tagID int64) error {
	if _, err := r.db.ExecContext(ctx, `INSERT INTO article_tags (article_id, tag_id) VALUES (?, ?)`, articleID, tagID); err != nil {
		return fmt.Errorf("failed to attach tag: %w", err)
	}
	return nil
}

// Detach removes a tag link from an article.
func (r *TagRepository) Detach(ctx context.Context, articleID, tagID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM article_tags WHERE article_id = ? AND tag_id = ?`, articleID, tagID)
	if err != nil {
		return fmt.Errorf("failed to detach tag: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("tag link %d/%d: %w", articleID, tagID, ErrNotFound)
	}
	return nil
}
