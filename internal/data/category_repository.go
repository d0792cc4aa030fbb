package data

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// CategoryCreate carries the validated fields for a new category.
type CategoryCreate struct {
	Name        string
	Slug        string
	Description *string
	Icon        *string
	Color       *string
	Order       *int
	IsActive    *bool
}

// CategoryUpdate is a partial update; nil fields are left unchanged.
type CategoryUpdate struct {
	Name        *string
	Slug        *string
	Description *string
	Icon        *string
	Color       *string
	Order       *int
	IsActive    *bool
}

// CategoryRepository handles database operations for categories.
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts a new category and returns the stored row.
func (r *CategoryRepository) Create(ctx context.Context, in CategoryCreate) (*Category, error) {
	color := "#3b82f6"
	if in.Color != nil {
		color = *in.Color
	}
	order := 0
	if in.Order != nil {
		order = *in.Order
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	query := `INSERT INTO categories (name, slug, description, icon, color, display_order, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, in.Name, in.Slug, in.Description, in.Icon, color, order, active)
	if err != nil {
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted category id: %w", err)
	}
	return r.GetByID(ctx, id)
}

// Update applies a partial update to a category.
func (r *CategoryRepository) Update(ctx context.Context, id int64, in CategoryUpdate) error {
	sets := []string{}
	args := []interface{}{}
	if in.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *in.Name)
	}
	if in.Slug != nil {
		sets = append(sets, "slug = ?")
		args = append(args, *in.Slug)
	}
	if in.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *in.Description)
	}
	if in.Icon != nil {
		sets = append(sets, "icon = ?")
		args = append(args, *in.Icon)
	}
	if in.Color != nil {
		sets = append(sets, "color = ?")
		args = append(args, *in.Color)
	}
	if in.Order != nil {
		sets = append(sets, "display_order = ?")
		args = append(args, *in.Order)
	}
	if in.IsActive != nil {
		sets = append(sets, "is_active = ?")
		args = append(args, *in.IsActive)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now())
	args = append(args, id)

	query := fmt.Sprintf("UPDATE categories SET %s WHERE id = ?", strings.Join(sets, ", "))
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("category %d: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes a category row. Articles and quotes keep their
// category_id reference; there is no cascade.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("category %d: %w", id, ErrNotFound)
	}
	return nil
}

// GetByID finds a category by its ID. Missing rows are not an error.
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*Category, error) {
	var category Category
	if err := r.db.GetContext(ctx, &category, `SELECT * FROM categories WHERE id = ?`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category by id: %w", err)
	}
	return &category, nil
}

// GetBySlug finds a category by its slug. Missing rows are not an error.
func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	var category Category
	if err := r.db.GetContext(ctx, &category, `SELECT * FROM categories WHERE slug = ?`, slug); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category by slug: %w", err)
	}
	return &category, nil
}

// ListOrdered returns every category in display order, for the public site.
func (r *CategoryRepository) ListOrdered(ctx context.Context) ([]*Category, error) {
	var categories []*Category
	if err := r.db.SelectContext(ctx, &categories, `SELECT * FROM categories ORDER BY display_order ASC`); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// ListAll returns every category newest first, for the admin console.
func (r *CategoryRepository) ListAll(ctx context.Context) ([]*Category, error) {
	var categories []*Category
	if err := r.db.SelectContext(ctx, &categories, `SELECT * FROM categories ORDER BY created_at DESC`); err != nil {
		return nil, fmt.Errorf("failed to list all categories: %w", err)
	}
	return categories, nil
}
