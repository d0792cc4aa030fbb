//go:build unit

package service

import (
	"context"
	"errors"
	"testing"

	"go-blog-app/internal/data"
)

// mockArticleStore is a mock implementation of the ArticleStore interface.
type mockArticleStore struct {
	errToReturn      error
	articleToReturn  *data.Article
	articlesToReturn []*data.Article

	createCalled        int
	updateCalled        int
	deleteCalled        int
	listRecentCalled    int
	incrementCalled     int
	lastCreatePassed    data.ArticleCreate
	lastIncrementedID   int64
}

var _ ArticleStore = (*mockArticleStore)(nil)

func (m *mockArticleStore) Create(ctx context.Context, in data.ArticleCreate) (*data.Article, error) {
	m.createCalled++
	m.lastCreatePassed = in
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	return &data.Article{ID: 1, Title: in.Title, Slug: in.Slug}, nil
}

func (m *mockArticleStore) Update(ctx context.Context, id int64, in data.ArticleUpdate) error {
	m.updateCalled++
	return m.errToReturn
}

func (m *mockArticleStore) Delete(ctx context.Context, id int64) error {
	m.deleteCalled++
	return m.errToReturn
}

func (m *mockArticleStore) GetBySlug(ctx context.Context, slug string) (*data.Article, error) {
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	if m.articleToReturn != nil && m.articleToReturn.Slug == slug {
		return m.articleToReturn, nil
	}
	return nil, nil
}

func (m *mockArticleStore) ListRecent(ctx context.Context, limit int) ([]*data.Article, error) {
	m.listRecentCalled++
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	return m.articlesToReturn, nil
}

func (m *mockArticleStore) ListByCategory(ctx context.Context, categoryID int64, limit int) ([]*data.Article, error) {
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	return m.articlesToReturn, nil
}

func (m *mockArticleStore) ListAll(ctx context.Context) ([]*data.Article, error) {
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	return m.articlesToReturn, nil
}

func (m *mockArticleStore) IncrementViewCount(ctx context.Context, id int64) error {
	m.incrementCalled++
	m.lastIncrementedID = id
	return nil
}

// mockCategoryStore is a mock implementation of the CategoryStore interface.
type mockCategoryStore struct {
	errToReturn        error
	categoryToReturn   *data.Category
	categoriesToReturn []*data.Category

	createCalled     int
	lastCreatePassed data.CategoryCreate
}

var _ CategoryStore = (*mockCategoryStore)(nil)

func (m *mockCategoryStore) Create(ctx context.Context, in data.CategoryCreate) (*data.Category, error) {
	m.createCalled++
	m.lastCreatePassed = in
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	return &data.Category{ID: 1, Name: in.Name, Slug: in.Slug}, nil
}

func (m *mockCategoryStore) Update(ctx context.Context, id int64, in data.CategoryUpdate) error {
	return m.errToReturn
}

func (m *mockCategoryStore) Delete(ctx context.Context, id int64) error {
	return m.errToReturn
}

func (m *mockCategoryStore) GetBySlug(ctx context.Context, slug string) (*data.Category, error) {
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	return m.categoryToReturn, nil
}

func (m *mockCategoryStore) ListOrdered(ctx context.Context) ([]*data.Category, error) {
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	return m.categoriesToReturn, nil
}

func (m *mockCategoryStore) ListAll(ctx context.Context) ([]*data.Category, error) {
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	return m.categoriesToReturn, nil
}

// mockTagStore is a mock implementation of the TagStore interface.
type mockTagStore struct {
	errToReturn  error
	tagsToReturn []*data.Tag

	createCalled   int
	lastNamePassed string
	lastSlugPassed string
}

var _ TagStore = (*mockTagStore)(nil)

func (m *mockTagStore) Create(ctx context.Context, name, slug string) (*data.Tag, error) {
	m.createCalled++
	m.lastNamePassed = name
	m.lastSlugPassed = slug
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	return &data.Tag{ID: 1, Name: name, Slug: slug}, nil
}

func (m *mockTagStore) Delete(ctx context.Context, id int64) error { return m.errToReturn }

func (m *mockTagStore) ListAll(ctx context.Context) ([]*data.Tag, error) {
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	return m.tagsToReturn, nil
}

func (m *mockTagStore) ListByArticle(ctx context.Context, articleID int64) ([]*data.Tag, error) {
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	return m.tagsToReturn, nil
}

func (m *mockTagStore) Attach(ctx context.Context, articleID, tagID int64) error { return m.errToReturn }
func (m *mockTagStore) Detach(ctx context.Context, articleID, tagID int64) error { return m.errToReturn }

func newTestContentService(t *testing.T, articles *mockArticleStore, categories *mockCategoryStore, tags *mockTagStore) (*ContentService, func()) {
	t.Helper()
	testCache, teardown := newTestCache(t)
	return NewContentService(articles, categories, tags, testCache, newTestLogger()), teardown
}

func TestContentService_RecentArticles(t *testing.T) {
	ctx := context.Background()

	t.Run("degrades to empty list on storage failure", func(t *testing.T) {
		articles := &mockArticleStore{errToReturn: errors.New("db down")}
		svc, teardown := newTestContentService(t, articles, &mockCategoryStore{}, &mockTagStore{})
		defer teardown()

		got := svc.RecentArticles(ctx, 10)
		if got == nil {
			t.Fatal("expected empty slice, got nil")
		}
		if len(got) != 0 {
			t.Errorf("expected empty slice, got %d articles", len(got))
		}
	})

	t.Run("second read is served from cache", func(t *testing.T) {
		articles := &mockArticleStore{articlesToReturn: []*data.Article{{ID: 1, Title: "one"}}}
		svc, teardown := newTestContentService(t, articles, &mockCategoryStore{}, &mockTagStore{})
		defer teardown()

		svc.RecentArticles(ctx, 10)
		svc.RecentArticles(ctx, 10)
		if articles.listRecentCalled != 1 {
			t.Errorf("expected one store read, got %d", articles.listRecentCalled)
		}
	})
}

func TestContentService_ArticleBySlug(t *testing.T) {
	ctx := context.Background()

	t.Run("bumps view count on hit", func(t *testing.T) {
		articles := &mockArticleStore{articleToReturn: &data.Article{ID: 42, Slug: "hello"}}
		svc, teardown := newTestContentService(t, articles, &mockCategoryStore{}, &mockTagStore{})
		defer teardown()

		article := svc.ArticleBySlug(ctx, "hello")
		if article == nil || article.ID != 42 {
			t.Fatalf("expected article 42, got %v", article)
		}
		if articles.incrementCalled != 1 || articles.lastIncrementedID != 42 {
			t.Errorf("expected view count bump for article 42, got %d calls for id %d",
				articles.incrementCalled, articles.lastIncrementedID)
		}
	})

	t.Run("missing article returns nil without a bump", func(t *testing.T) {
		articles := &mockArticleStore{}
		svc, teardown := newTestContentService(t, articles, &mockCategoryStore{}, &mockTagStore{})
		defer teardown()

		if article := svc.ArticleBySlug(ctx, "nope"); article != nil {
			t.Errorf("expected nil, got %v", article)
		}
		if articles.incrementCalled != 0 {
			t.Errorf("expected no view count bump, got %d", articles.incrementCalled)
		}
	})

	t.Run("degrades to nil on storage failure", func(t *testing.T) {
		articles := &mockArticleStore{errToReturn: errors.New("db down")}
		svc, teardown := newTestContentService(t, articles, &mockCategoryStore{}, &mockTagStore{})
		defer teardown()

		if article := svc.ArticleBySlug(ctx, "hello"); article != nil {
			t.Errorf("expected nil, got %v", article)
		}
	})
}

func TestContentService_CreateArticle(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults slug from title", func(t *testing.T) {
		articles := &mockArticleStore{}
		svc, teardown := newTestContentService(t, articles, &mockCategoryStore{}, &mockTagStore{})
		defer teardown()

		_, err := svc.CreateArticle(ctx, data.ArticleCreate{Title: "Hello World", Content: "body"})
		if err != nil {
			t.Fatalf("CreateArticle failed: %v", err)
		}
		if articles.lastCreatePassed.Slug != "hello-world" {
			t.Errorf("expected slug 'hello-world', got %q", articles.lastCreatePassed.Slug)
		}
	})

	t.Run("keeps an explicit slug", func(t *testing.T) {
		articles := &mockArticleStore{}
		svc, teardown := newTestContentService(t, articles, &mockCategoryStore{}, &mockTagStore{})
		defer teardown()

		_, err := svc.CreateArticle(ctx, data.ArticleCreate{Title: "Hello World", Slug: "custom", Content: "body"})
		if err != nil {
			t.Fatalf("CreateArticle failed: %v", err)
		}
		if articles.lastCreatePassed.Slug != "custom" {
			t.Errorf("expected slug 'custom', got %q", articles.lastCreatePassed.Slug)
		}
	})

	t.Run("propagates storage errors", func(t *testing.T) {
		articles := &mockArticleStore{errToReturn: errors.New("db down")}
		svc, teardown := newTestContentService(t, articles, &mockCategoryStore{}, &mockTagStore{})
		defer teardown()

		if _, err := svc.CreateArticle(ctx, data.ArticleCreate{Title: "x", Content: "y"}); err == nil {
			t.Fatal("expected error from storage")
		}
	})

	t.Run("invalidates the recent articles cache", func(t *testing.T) {
		articles := &mockArticleStore{articlesToReturn: []*data.Article{{ID: 1}}}
		svc, teardown := newTestContentService(t, articles, &mockCategoryStore{}, &mockTagStore{})
		defer teardown()

		svc.RecentArticles(ctx, 10)
		if _, err := svc.CreateArticle(ctx, data.ArticleCreate{Title: "x", Content: "y"}); err != nil {
			t.Fatalf("CreateArticle failed: %v", err)
		}
		svc.RecentArticles(ctx, 10)
		if articles.listRecentCalled != 2 {
			t.Errorf("expected cache invalidation to force a second store read, got %d", articles.listRecentCalled)
		}
	})
}

func TestContentService_CreateTag(t *testing.T) {
	ctx := context.Background()

	tags := &mockTagStore{}
	svc, teardown := newTestContentService(t, &mockArticleStore{}, &mockCategoryStore{}, tags)
	defer teardown()

	if _, err := svc.CreateTag(ctx, "Go Basics", ""); err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}
	if tags.lastSlugPassed != "go-basics" {
		t.Errorf("expected slug 'go-basics', got %q", tags.lastSlugPassed)
	}
}

func TestContentService_Tags_Degrades(t *testing.T) {
	ctx := context.Background()

	tags := &mockTagStore{errToReturn: errors.New("db down")}
	svc, teardown := newTestContentService(t, &mockArticleStore{}, &mockCategoryStore{}, tags)
	defer teardown()

	got := svc.Tags(ctx)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty slice, got %v", got)
	}
}
