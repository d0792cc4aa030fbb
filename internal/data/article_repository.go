package data

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// ArticleCreate carries the validated fields for a new article. AuthorID
// comes from the authenticated session, never from the client.
type ArticleCreate struct {
	Title         string
	Slug          string
	Content       string
	Excerpt       *string
	CategoryID    *int64
	AuthorID      int64
	FeaturedImage *string
	IsPublished   bool
}

// ArticleUpdate is a partial update; nil fields are left unchanged.
type ArticleUpdate struct {
	Title         *string
	Slug          *string
	Content       *string
	Excerpt       *string
	CategoryID    *int64
	FeaturedImage *string
	IsPublished   *bool
}

// ArticleRepository handles database operations for articles.
type ArticleRepository struct {
	db *sqlx.DB
}

// NewArticleRepository creates a new ArticleRepository.
func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// Create inserts a new article and returns the stored row. published_at
// is stamped at creation time iff the article is created published.
func (r *ArticleRepository) Create(ctx context.Context, in ArticleCreate) (*Article, error) {
	var publishedAt *time.Time
	if in.IsPublished {
		now := time.Now()
		publishedAt = &now
	}

	query := `INSERT INTO articles (title, slug, content, excerpt, category_id, author_id, featured_image, is_published, published_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		in.Title, in.Slug, in.Content, in.Excerpt, in.CategoryID, in.AuthorID, in.FeaturedImage, in.IsPublished, publishedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert article: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted article id: %w", err)
	}
	return r.GetByID(ctx, id)
}

// Update applies a partial update to an article. Setting is_published to
// true re-stamps published_at to now; unpublishing leaves published_at
// untouched.
func (r *ArticleRepository) Update(ctx context.Context, id int64, in ArticleUpdate) error {
	sets := []string{}
	args := []interface{}{}
	if in.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *in.Title)
	}
	if in.Slug != nil {
		sets = append(sets, "slug = ?")
		args = append(args, *in.Slug)
	}
	if in.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *in.Content)
	}
	if in.Excerpt != nil {
		sets = append(sets, "excerpt = ?")
		args = append(args, *in.Excerpt)
	}
	if in.CategoryID != nil {
		sets = append(sets, "category_id = ?")
		args = append(args, *in.CategoryID)
	}
	if in.FeaturedImage != nil {
		sets = append(sets, "featured_image = ?")
		args = append(args, *in.FeaturedImage)
	}
	if in.IsPublished != nil {
		sets = append(sets, "is_published = ?")
		args = append(args, *in.IsPublished)
		if *in.IsPublished {
			sets = append(sets, "published_at = ?")
			args = append(args, time.Now())
		}
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now())
	args = append(args, id)

	query := fmt.Sprintf("UPDATE articles SET %s WHERE id = ?", strings.Join(sets, ", "))
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update article: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("article %d: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes an article by its ID. Comments and tag links referring
// to it are left in place.
func (r *ArticleRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("article %d: %w", id, ErrNotFound)
	}
	return nil
}

// GetByID retrieves a single article. Missing rows are not an error.
func (r *ArticleRepository) GetByID(ctx context.Context, id int64) (*Article, error) {
	var article Article
	query := `SELECT * FROM articles WHERE id = ?`
	if err := r.db.GetContext(ctx, &article, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get article by id: %w", err)
	}
	return &article, nil
}

// GetBySlug retrieves a single article by slug. Missing rows are not an error.
func (r *ArticleRepository) GetBySlug(ctx context.Context, slug string) (*Article, error) {
	var article Article
	query := `SELECT * FROM articles WHERE slug = ?`
	if err := r.db.GetContext(ctx, &article, query, slug); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get article by slug: %w", err)
	}
	return &article, nil
}

// ListRecent returns published articles, newest publication first.
func (r *ArticleRepository) ListRecent(ctx context.Context, limit int) ([]*Article, error) {
	var articles []*Article
	query := `SELECT * FROM articles WHERE is_published = ? ORDER BY published_at DESC LIMIT ?`
	if err := r.db.SelectContext(ctx, &articles, query, true, limit); err != nil {
		return nil, fmt.Errorf("failed to list recent articles: %w", err)
	}
	return articles, nil
}

// ListByCategory returns articles in a category, newest publication first.
func (r *ArticleRepository) ListByCategory(ctx context.Context, categoryID int64, limit int) ([]*Article, error) {
	var articles []*Article
	query := `SELECT * FROM articles WHERE category_id = ? ORDER BY published_at DESC LIMIT ?`
	if err := r.db.SelectContext(ctx, &articles, query, categoryID, limit); err != nil {
		return nil, fmt.Errorf("failed to list articles by category: %w", err)
	}
	return articles, nil
}

// ListAll returns every article regardless of publication state, newest
// creation first. Used by the admin console.
func (r *ArticleRepository) ListAll(ctx context.Context) ([]*Article, error) {
	var articles []*Article
	query := `SELECT * FROM articles ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &articles, query); err != nil {
		return nil, fmt.Errorf("failed to list all articles: %w", err)
	}
	return articles, nil
}

// IncrementViewCount bumps an article's view counter.
func (r *ArticleRepository) IncrementViewCount(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE articles SET view_count = view_count + 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}
	return nil
}
