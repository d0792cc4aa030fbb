//go:build unit

package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-blog-app/internal/cache"
	"go-blog-app/internal/config"
	"go-blog-app/internal/data"
	"go-blog-app/internal/middleware"
	"go-blog-app/internal/service"

	"github.com/go-chi/chi/v5"
)

// mockArticleStore implements service.ArticleStore.
type mockArticleStore struct {
	errToReturn      error
	articleToReturn  *data.Article
	articlesToReturn []*data.Article

	lastCreatePassed data.ArticleCreate
	lastUpdateID     int64
}

var _ service.ArticleStore = (*mockArticleStore)(nil)

func (m *mockArticleStore) Create(ctx context.Context, in data.ArticleCreate) (*data.Article, error) {
	m.lastCreatePassed = in
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	return &data.Article{ID: 1, Title: in.Title, Slug: in.Slug, AuthorID: in.AuthorID}, nil
}

func (m *mockArticleStore) Update(ctx context.Context, id int64, in data.ArticleUpdate) error {
	m.lastUpdateID = id
	return m.errToReturn
}

func (m *mockArticleStore) Delete(ctx context.Context, id int64) error { return m.errToReturn }

func (m *mockArticleStore) GetBySlug(ctx context.Context, slug string) (*data.Article, error) {
	if m.articleToReturn != nil && m.articleToReturn.Slug == slug {
		return m.articleToReturn, nil
	}
	return nil, nil
}

func (m *mockArticleStore) ListRecent(ctx context.Context, limit int) ([]*data.Article, error) {
	return m.articlesToReturn, nil
}

func (m *mockArticleStore) ListByCategory(ctx context.Context, categoryID int64, limit int) ([]*data.Article, error) {
	return m.articlesToReturn, nil
}

func (m *mockArticleStore) ListAll(ctx context.Context) ([]*data.Article, error) {
	return m.articlesToReturn, m.errToReturn
}

func (m *mockArticleStore) IncrementViewCount(ctx context.Context, id int64) error { return nil }

// mockCategoryStore implements service.CategoryStore with empty results.
type mockCategoryStore struct{}

var _ service.CategoryStore = (*mockCategoryStore)(nil)

func (m *mockCategoryStore) Create(ctx context.Context, in data.CategoryCreate) (*data.Category, error) {
	return &data.Category{ID: 1, Name: in.Name, Slug: in.Slug}, nil
}
func (m *mockCategoryStore) Update(ctx context.Context, id int64, in data.CategoryUpdate) error {
	return nil
}
func (m *mockCategoryStore) Delete(ctx context.Context, id int64) error { return nil }
func (m *mockCategoryStore) GetBySlug(ctx context.Context, slug string) (*data.Category, error) {
	return nil, nil
}
func (m *mockCategoryStore) ListOrdered(ctx context.Context) ([]*data.Category, error) {
	return nil, nil
}
func (m *mockCategoryStore) ListAll(ctx context.Context) ([]*data.Category, error) { return nil, nil }

// mockTagStore implements service.TagStore with empty results.
type mockTagStore struct{}

var _ service.TagStore = (*mockTagStore)(nil)

func (m *mockTagStore) Create(ctx context.Context, name, slug string) (*data.Tag, error) {
	return &data.Tag{ID: 1, Name: name, Slug: slug}, nil
}
func (m *mockTagStore) Delete(ctx context.Context, id int64) error                 { return nil }
func (m *mockTagStore) ListAll(ctx context.Context) ([]*data.Tag, error)           { return nil, nil }
func (m *mockTagStore) ListByArticle(ctx context.Context, id int64) ([]*data.Tag, error) {
	return nil, nil
}
func (m *mockTagStore) Attach(ctx context.Context, articleID, tagID int64) error { return nil }
func (m *mockTagStore) Detach(ctx context.Context, articleID, tagID int64) error { return nil }

func newTestArticleHandler(t *testing.T, articles *mockArticleStore) (*ArticleHandler, func()) {
	t.Helper()
	c, err := cache.New(config.CacheConfig{FilePath: "file::memory:"})
	if err != nil {
		t.Fatalf("failed to create test cache: %v", err)
	}
	content := service.NewContentService(articles, &mockCategoryStore{}, &mockTagStore{}, c, newTestLogger())
	return NewArticleHandler(content), func() { c.Close() }
}

// withURLParam injects a chi URL parameter into the request context.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestArticleRecentHandler(t *testing.T) {
	articles := &mockArticleStore{articlesToReturn: []*data.Article{
		{ID: 1, Title: "one", Slug: "one"},
		{ID: 2, Title: "two", Slug: "two"},
	}}
	h, teardown := newTestArticleHandler(t, articles)
	defer teardown()

	req := httptest.NewRequest("GET", "/api/articles/recent", nil)
	rr := httptest.NewRecorder()

	if appErr := h.recentHandler(rr, req); appErr != nil {
		t.Fatalf("recentHandler returned error: %v", appErr.Error)
	}

	var got []data.Article
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 articles, got %d", len(got))
	}
}

func TestArticleBySlugHandler_NotFound(t *testing.T) {
	h, teardown := newTestArticleHandler(t, &mockArticleStore{})
	defer teardown()

	req := withURLParam(httptest.NewRequest("GET", "/api/articles/nope", nil), "slug", "nope")
	rr := httptest.NewRecorder()

	appErr := h.bySlugHandler(rr, req)
	if appErr == nil {
		t.Fatal("expected not-found error")
	}
	if appErr.Code != http.StatusNotFound {
		t.Errorf("want status %d; got %d", http.StatusNotFound, appErr.Code)
	}
}

func TestArticleCreateHandler(t *testing.T) {
	t.Run("requires title", func(t *testing.T) {
		h, teardown := newTestArticleHandler(t, &mockArticleStore{})
		defer teardown()

		req := httptest.NewRequest("POST", "/api/admin/articles", strings.NewReader(`{"content":"body"}`))
		rr := httptest.NewRecorder()

		appErr := h.createHandler(rr, req)
		if appErr == nil || appErr.Code != http.StatusBadRequest {
			t.Fatalf("expected bad request, got %v", appErr)
		}
	})

	t.Run("author comes from the session", func(t *testing.T) {
		articles := &mockArticleStore{}
		h, teardown := newTestArticleHandler(t, articles)
		defer teardown()

		body := `{"title":"Hi","content":"body","authorId":99}`
		req := httptest.NewRequest("POST", "/api/admin/articles", strings.NewReader(body))
		req = req.WithContext(middleware.SetUserInfo(req.Context(), &middleware.UserInfo{ID: 7, Role: "admin"}))
		rr := httptest.NewRecorder()

		// authorId is not an accepted field; the decoder rejects it.
		if appErr := h.createHandler(rr, req); appErr == nil || appErr.Code != http.StatusBadRequest {
			t.Fatalf("expected unknown field to be rejected, got %v", appErr)
		}

		req = httptest.NewRequest("POST", "/api/admin/articles", strings.NewReader(`{"title":"Hi","content":"body"}`))
		req = req.WithContext(middleware.SetUserInfo(req.Context(), &middleware.UserInfo{ID: 7, Role: "admin"}))
		rr = httptest.NewRecorder()

		if appErr := h.createHandler(rr, req); appErr != nil {
			t.Fatalf("createHandler returned error: %v", appErr.Error)
		}
		if articles.lastCreatePassed.AuthorID != 7 {
			t.Errorf("expected author 7 from session, got %d", articles.lastCreatePassed.AuthorID)
		}
		if rr.Code != http.StatusCreated {
			t.Errorf("want status %d; got %d", http.StatusCreated, rr.Code)
		}
	})
}

func TestArticleUpdateHandler_NotFound(t *testing.T) {
	articles := &mockArticleStore{errToReturn: fmt.Errorf("article 5: %w", data.ErrNotFound)}
	h, teardown := newTestArticleHandler(t, articles)
	defer teardown()

	req := withURLParam(
		httptest.NewRequest("PATCH", "/api/admin/articles/5", strings.NewReader(`{"title":"x"}`)),
		"id", "5")
	rr := httptest.NewRecorder()

	appErr := h.updateHandler(rr, req)
	if appErr == nil || appErr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing article, got %v", appErr)
	}
}

func TestArticleUpdateHandler_InvalidID(t *testing.T) {
	h, teardown := newTestArticleHandler(t, &mockArticleStore{})
	defer teardown()

	req := withURLParam(
		httptest.NewRequest("PATCH", "/api/admin/articles/abc", strings.NewReader(`{}`)),
		"id", "abc")
	rr := httptest.NewRecorder()

	appErr := h.updateHandler(rr, req)
	if appErr == nil || appErr.Code != http.StatusBadRequest {
		t.Fatalf("expected bad request for non-numeric id, got %v", appErr)
	}
}
