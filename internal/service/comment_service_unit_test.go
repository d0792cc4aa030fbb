//go:build unit

package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go-blog-app/internal/data"
)

// mockCommentStore is a mock implementation of the CommentStore interface.
type mockCommentStore struct {
	errToReturn      error
	commentsToReturn []*data.Comment

	createCalled      int
	lastCreatePassed  data.CommentCreate
	lastApprovedOnly  bool
}

var _ CommentStore = (*mockCommentStore)(nil)

func (m *mockCommentStore) Create(ctx context.Context, in data.CommentCreate) (*data.Comment, error) {
	m.createCalled++
	m.lastCreatePassed = in
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	return &data.Comment{ID: 1, ArticleID: in.ArticleID, AuthorID: in.AuthorID, Content: in.Content}, nil
}

func (m *mockCommentStore) ListByArticle(ctx context.Context, articleID int64, approvedOnly bool) ([]*data.Comment, error) {
	m.lastApprovedOnly = approvedOnly
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	return m.commentsToReturn, nil
}

func (m *mockCommentStore) ListAll(ctx context.Context) ([]*data.Comment, error) {
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	return m.commentsToReturn, nil
}

func (m *mockCommentStore) SetApproved(ctx context.Context, id int64, approved bool) error {
	return m.errToReturn
}

func (m *mockCommentStore) Delete(ctx context.Context, id int64) error {
	return m.errToReturn
}

func TestCommentService_CreateComment(t *testing.T) {
	ctx := context.Background()

	t.Run("sanitizes markup", func(t *testing.T) {
		store := &mockCommentStore{}
		svc := NewCommentService(store, newTestLogger())

		_, err := svc.CreateComment(ctx, 1, 2, `Nice <script>alert("x")</script>post`)
		if err != nil {
			t.Fatalf("CreateComment failed: %v", err)
		}
		if strings.Contains(store.lastCreatePassed.Content, "<script>") {
			t.Errorf("expected script tags to be stripped, got %q", store.lastCreatePassed.Content)
		}
		if !strings.Contains(store.lastCreatePassed.Content, "Nice") {
			t.Errorf("expected text to survive sanitizing, got %q", store.lastCreatePassed.Content)
		}
	})

	t.Run("keeps benign formatting", func(t *testing.T) {
		store := &mockCommentStore{}
		svc := NewCommentService(store, newTestLogger())

		_, err := svc.CreateComment(ctx, 1, 2, "<b>bold</b> text")
		if err != nil {
			t.Fatalf("CreateComment failed: %v", err)
		}
		if !strings.Contains(store.lastCreatePassed.Content, "<b>bold</b>") {
			t.Errorf("expected bold tag to survive, got %q", store.lastCreatePassed.Content)
		}
	})

	t.Run("propagates storage errors", func(t *testing.T) {
		store := &mockCommentStore{errToReturn: errors.New("db down")}
		svc := NewCommentService(store, newTestLogger())

		if _, err := svc.CreateComment(ctx, 1, 2, "hi"); err == nil {
			t.Fatal("expected error from storage")
		}
	})
}

func TestCommentService_ArticleComments(t *testing.T) {
	ctx := context.Background()

	t.Run("requests approved comments only", func(t *testing.T) {
		store := &mockCommentStore{commentsToReturn: []*data.Comment{{ID: 1, IsApproved: true}}}
		svc := NewCommentService(store, newTestLogger())

		got := svc.ArticleComments(ctx, 1)
		if len(got) != 1 {
			t.Fatalf("expected 1 comment, got %d", len(got))
		}
		if !store.lastApprovedOnly {
			t.Error("expected approved-only listing")
		}
	})

	t.Run("degrades to empty list on storage failure", func(t *testing.T) {
		store := &mockCommentStore{errToReturn: errors.New("db down")}
		svc := NewCommentService(store, newTestLogger())

		got := svc.ArticleComments(ctx, 1)
		if got == nil || len(got) != 0 {
			t.Errorf("expected empty slice, got %v", got)
		}
	})
}
