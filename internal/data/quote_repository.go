package data

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// QuoteCreate carries the validated fields for a new quote.
type QuoteCreate struct {
	Text        string
	Author      string
	Source      *string
	CategoryID  *int64
	IsPublished *bool
	Order       *int
}

// QuoteUpdate is a partial update; nil fields are left unchanged.
type QuoteUpdate struct {
	Text        *string
	Author      *string
	Source      *string
	CategoryID  *int64
	IsPublished *bool
	Order       *int
}

// QuoteRepository handles database operations for quotes.
type QuoteRepository struct {
	db *sqlx.DB
}

// NewQuoteRepository creates a new QuoteRepository.
func NewQuoteRepository(db *sqlx.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// Create inserts a new quote and returns the stored row. Quotes default
// to published, matching the schema default.
func (r *QuoteRepository) Create(ctx context.Context, in QuoteCreate) (*Quote, error) {
	published := true
	if in.IsPublished != nil {
		published = *in.IsPublished
	}
	order := 0
	if in.Order != nil {
		order = *in.Order
	}

	query := `INSERT INTO quotes (text, author, source, category_id, is_published, display_order)
		VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, in.Text, in.Author, in.Source, in.CategoryID, published, order)
	if err != nil {
		return nil, fmt.Errorf("failed to insert quote: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted quote id: %w", err)
	}

	var quote Quote
	if err := r.db.GetContext(ctx, &quote, `SELECT * FROM quotes WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to reload inserted quote: %w", err)
	}
	return &quote, nil
}

// Update applies a partial update to a quote.
func (r *QuoteRepository) Update(ctx context.Context, id int64, in QuoteUpdate) error {
	sets := []string{}
	args := []interface{}{}
	if in.Text != nil {
		sets = append(sets, "text = ?")
		args = append(args, *in.Text)
	}
	if in.Author != nil {
		sets = append(sets, "author = ?")
		args = append(args, *in.Author)
	}
	if in.Source != nil {
		sets = append(sets, "source = ?")
		args = append(args, *in.Source)
	}
	if in.CategoryID != nil {
		sets = append(sets, "category_id = ?")
		args = append(args, *in.CategoryID)
	}
	if in.IsPublished != nil {
		sets = append(sets, "is_published = ?")
		args = append(args, *in.IsPublished)
	}
	if in.Order != nil {
		sets = append(sets, "display_order = ?")
		args = append(args, *in.Order)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now())
	args = append(args, id)

	query := fmt.Sprintf("UPDATE quotes SET %s WHERE id = ?", strings.Join(sets, ", "))
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update quote: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("quote %d: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes a quote by its ID.
func (r *QuoteRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM quotes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete quote: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("quote %d: %w", id, ErrNotFound)
	}
	return nil
}

// ListPublished returns published quotes in display order, limited.
// The public procedure exposing this is historically named "random",
// but the ordering has always been deterministic.
func (r *QuoteRepository) ListPublished(ctx context.Context, limit int) ([]*Quote, error) {
	var quotes []*Quote
	query := `SELECT * FROM quotes WHERE is_published = ? ORDER BY display_order ASC LIMIT ?`
	if err := r.db.SelectContext(ctx, &quotes, query, true, limit); err != nil {
		return nil, fmt.Errorf("failed to list published quotes: %w", err)
	}
	return quotes, nil
}

// ListAll returns every quote newest first, for the admin console.
func (r *QuoteRepository) ListAll(ctx context.Context) ([]*Quote, error) {
	var quotes []*Quote
	if err := r.db.SelectContext(ctx, &quotes, `SELECT * FROM quotes ORDER BY created_at DESC`); err != nil {
		return nil, fmt.Errorf("failed to list all quotes: %w", err)
	}
	return quotes, nil
}
