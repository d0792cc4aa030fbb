package data

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// MenuItemCreate carries the validated fields for a new menu item.
type MenuItemCreate struct {
	Label      string
	URL        string
	Icon       *string
	ParentID   *int64
	Order      *int
	IsActive   *bool
	IsExternal *bool
}

// MenuItemUpdate is a partial update; nil fields are left unchanged.
type MenuItemUpdate struct {
	Label      *string
	URL        *string
	Icon       *string
	ParentID   *int64
	Order      *int
	IsActive   *bool
	IsExternal *bool
}

// MenuRepository handles database operations for navigation menu items.
type MenuRepository struct {
	db *sqlx.DB
}

// NewMenuRepository creates a new MenuRepository.
func NewMenuRepository(db *sqlx.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

// Create inserts a new menu item and returns the stored row.
func (r *MenuRepository) Create(ctx context.Context, in MenuItemCreate) (*MenuItem, error) {
	order := 0
	if in.Order != nil {
		order = *in.Order
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	external := false
	if in.IsExternal != nil {
		external = *in.IsExternal
	}

	query := `INSERT INTO menu_items (label, url, icon, parent_id, display_order, is_active, is_external)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, in.Label, in.URL, in.Icon, in.ParentID, order, active, external)
	if err != nil {
		return nil, fmt.Errorf("failed to insert menu item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted menu item id: %w", err)
	}

	var item MenuItem
	if err := r.db.GetContext(ctx, &item, `SELECT * FROM menu_items WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to reload inserted menu item: %w", err)
	}
	return &item, nil
}

// Update applies a partial update to a menu item.
func (r *MenuRepository) Update(ctx context.Context, id int64, in MenuItemUpdate) error {
	sets := []string{}
	args := []interface{}{}
	if in.Label != nil {
		sets = append(sets, "label = ?")
		args = append(args, *in.Label)
	}
	if in.URL != nil {
		sets = append(sets, "url = ?")
		args = append(args, *in.URL)
	}
	if in.Icon != nil {
		sets = append(sets, "icon = ?")
		args = append(args, *in.Icon)
	}
	if in.ParentID != nil {
		sets = append(sets, "parent_id = ?")
		args = append(args, *in.ParentID)
	}
	if in.Order != nil {
		sets = append(sets, "display_order = ?")
		args = append(args, *in.Order)
	}
	if in.IsActive != nil {
		sets = append(sets, "is_active = ?")
		args = append(args, *in.IsActive)
	}
	if in.IsExternal != nil {
		sets = append(sets, "is_external = ?")
		args = append(args, *in.IsExternal)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now())
	args = append(args, id)

	query := fmt.Sprintf("UPDATE menu_items SET %s WHERE id = ?", strings.Join(sets, ", "))
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update menu item: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("menu item %d: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes a menu item by its ID. Child items keep their parent_id.
func (r *MenuRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("menu item %d: %w", id, ErrNotFound)
	}
	return nil
}

// ListActive returns active menu items in display order, for the public site.
func (r *MenuRepository) ListActive(ctx context.Context) ([]*MenuItem, error) {
	var items []*MenuItem
	query := `SELECT * FROM menu_items WHERE is_active = ? ORDER BY display_order ASC`
	if err := r.db.SelectContext(ctx, &items, query, true); err != nil {
		return nil, fmt.Errorf("failed to list active menu items: %w", err)
	}
	return items, nil
}

// ListAll returns every menu item newest first, for the admin console.
func (r *MenuRepository) ListAll(ctx context.Context) ([]*MenuItem, error) {
	var items []*MenuItem
	if err := r.db.SelectContext(ctx, &items, `SELECT * FROM menu_items ORDER BY created_at DESC`); err != nil {
		return nil, fmt.Errorf("failed to list all menu items: %w", err)
	}
	return items, nil
}
