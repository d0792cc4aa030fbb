package service

import (
	"context"
	"fmt"

	"go-blog-app/internal/cache"
	"go-blog-app/internal/data"
	"go-blog-app/internal/logger"
	"go-blog-app/internal/slug"
)

// ArticleStore defines the interface for database operations on articles.
type ArticleStore interface {
	Create(ctx context.Context, in data.ArticleCreate) (*data.Article, error)
	Update(ctx context.Context, id int64, in data.ArticleUpdate) error
	Delete(ctx context.Context, id int64) error
	GetBySlug(ctx context.Context, slug string) (*data.Article, error)
	ListRecent(ctx context.Context, limit int) ([]*data.Article, error)
	ListByCategory(ctx context.Context, categoryID int64, limit int) ([]*data.Article, error)
	ListAll(ctx context.Context) ([]*data.Article, error)
	IncrementViewCount(ctx context.Context, id int64) error
}

// CategoryStore defines the interface for database operations on categories.
type CategoryStore interface {
	Create(ctx context.Context, in data.CategoryCreate) (*data.Category, error)
	Update(ctx context.Context, id int64, in data.CategoryUpdate) error
	Delete(ctx context.Context, id int64) error
	GetBySlug(ctx context.Context, slug string) (*data.Category, error)
	ListOrdered(ctx context.Context) ([]*data.Category, error)
	ListAll(ctx context.Context) ([]*data.Category, error)
}

// TagStore defines the interface for database operations on tags.
type TagStore interface {
	Create(ctx context.Context, name, slug string) (*data.Tag, error)
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]*data.Tag, error)
	ListByArticle(ctx context.Context, articleID int64) ([]*data.Tag, error)
	Attach(ctx context.Context, articleID, tagID int64) error
	Detach(ctx context.Context, articleID, tagID int64) error
}

// ContentService provides business logic for articles, categories and
// tags. Public reads degrade to empty results when storage fails and are
// served through the read cache; admin mutations surface errors and
// invalidate the affected cache entries.
type ContentService struct {
	articles   ArticleStore
	categories CategoryStore
	tags       TagStore
	cache      *cache.Cache
	log        logger.Logger
}

// NewContentService creates a new ContentService.
func NewContentService(articles ArticleStore, categories CategoryStore, tags TagStore, c *cache.Cache, log logger.Logger) *ContentService {
	return &ContentService{
		articles:   articles,
		categories: categories,
		tags:       tags,
		cache:      c,
		log:        log,
	}
}

// --- Public reads ---

// RecentArticles returns published articles newest first, up to limit.
// Storage failure degrades to an empty list.
func (s *ContentService) RecentArticles(ctx context.Context, limit int) []*data.Article {
	key := fmt.Sprintf("articles:recent:%d", limit)
	var cached []*data.Article
	if found, err := s.cache.GetJSON(key, &cached); err == nil && found {
		return cached
	}

	articles, err := s.articles.ListRecent(ctx, limit)
	if err != nil {
		s.log.Warn(fmt.Sprintf("Recent articles unavailable: %v", err))
		return []*data.Article{}
	}
	if err := s.cache.SetJSON(key, articles); err != nil {
		s.log.Warn(fmt.Sprintf("Failed to cache recent articles: %v", err))
	}
	return articles
}

// ArticleBySlug returns a published-or-not article by slug, or nil.
// The view counter is bumped on every successful lookup; by-slug reads
// are deliberately not cached so the counter keeps moving.
func (s *ContentService) ArticleBySlug(ctx context.Context, articleSlug string) *data.Article {
	article, err := s.articles.GetBySlug(ctx, articleSlug)
	if err != nil {
		s.log.Warn(fmt.Sprintf("Article lookup unavailable: %v", err))
		return nil
	}
	if article == nil {
		return nil
	}
	if err := s.articles.IncrementViewCount(ctx, article.ID); err != nil {
		s.log.Warn(fmt.Sprintf("Failed to bump view count for article %d: %v", article.ID, err))
	}
	return article
}

// ArticlesByCategory returns a category's articles, newest publication
// first, up to limit. Storage failure degrades to an empty list.
func (s *ContentService) ArticlesByCategory(ctx context.Context, categoryID int64, limit int) []*data.Article {
	key := fmt.Sprintf("articles:category:%d:%d", categoryID, limit)
	var cached []*data.Article
	if found, err := s.cache.GetJSON(key, &cached); err == nil && found {
		return cached
	}

	articles, err := s.articles.ListByCategory(ctx, categoryID, limit)
	if err != nil {
		s.log.Warn(fmt.Sprintf("Articles by category unavailable: %v", err))
		return []*data.Article{}
	}
	if err := s.cache.SetJSON(key, articles); err != nil {
		s.log.Warn(fmt.Sprintf("Failed to cache category articles: %v", err))
	}
	return articles
}

// Categories returns every category in display order. Storage failure
// degrades to an empty list.
func (s *ContentService) Categories(ctx context.Context) []*data.Category {
	key := "categories:ordered"
	var cached []*data.Category
	if found, err := s.cache.GetJSON(key, &cached); err == nil && found {
		return cached
	}

	categories, err := s.categories.ListOrdered(ctx)
	if err != nil {
		s.log.Warn(fmt.Sprintf("Categories unavailable: %v", err))
		return []*data.Category{}
	}
	if err := s.cache.SetJSON(key, categories); err != nil {
		s.log.Warn(fmt.Sprintf("Failed to cache categories: %v", err))
	}
	return categories
}

// CategoryBySlug returns a category by slug, or nil.
func (s *ContentService) CategoryBySlug(ctx context.Context, categorySlug string) *data.Category {
	category, err := s.categories.GetBySlug(ctx, categorySlug)
	if err != nil {
		s.log.Warn(fmt.Sprintf("Category lookup unavailable: %v", err))
		return nil
	}
	return category
}

// Tags returns every tag. Storage failure degrades to an empty list.
func (s *ContentService) Tags(ctx context.Context) []*data.Tag {
	tags, err := s.tags.ListAll(ctx)
	if err != nil {
		s.log.Warn(fmt.Sprintf("Tags unavailable: %v", err))
		return []*data.Tag{}
	}
	return tags
}

// ArticleTags returns the tags attached to an article. Storage failure
// degrades to an empty list.
func (s *ContentService) ArticleTags(ctx context.Context, articleID int64) []*data.Tag {
	tags, err := s.tags.ListByArticle(ctx, articleID)
	if err != nil {
		s.log.Warn(fmt.Sprintf("Article tags unavailable: %v", err))
		return []*data.Tag{}
	}
	return tags
}

// --- Admin operations ---

// ListArticles returns every article for the admin console.
func (s *ContentService) ListArticles(ctx context.Context) ([]*data.Article, error) {
	return s.articles.ListAll(ctx)
}

// CreateArticle persists a new article. The slug defaults to a
// transliteration of the title when the client omits it.
func (s *ContentService) CreateArticle(ctx context.Context, in data.ArticleCreate) (*data.Article, error) {
	if in.Slug == "" {
		in.Slug = slug.Make(in.Title)
	}
	article, err := s.articles.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.invalidateArticles()
	return article, nil
}

// UpdateArticle applies a partial update to an article.
func (s *ContentService) UpdateArticle(ctx context.Context, id int64, in data.ArticleUpdate) error {
	if err := s.articles.Update(ctx, id, in); err != nil {
		return err
	}
	s.invalidateArticles()
	return nil
}

// DeleteArticle removes an article. Its comments and tag links are left
// behind; see the moderation list for cleanup.
func (s *ContentService) DeleteArticle(ctx context.Context, id int64) error {
	if err := s.articles.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateArticles()
	return nil
}

// ListCategories returns every category for the admin console.
func (s *ContentService) ListCategories(ctx context.Context) ([]*data.Category, error) {
	return s.categories.ListAll(ctx)
}

// CreateCategory persists a new category, defaulting the slug from the name.
func (s *ContentService) CreateCategory(ctx context.Context, in data.CategoryCreate) (*data.Category, error) {
	if in.Slug == "" {
		in.Slug = slug.Make(in.Name)
	}
	category, err := s.categories.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.invalidateCategories()
	return category, nil
}

// UpdateCategory applies a partial update to a category.
func (s *ContentService) UpdateCategory(ctx context.Context, id int64, in data.CategoryUpdate) error {
	if err := s.categories.Update(ctx, id, in); err != nil {
		return err
	}
	s.invalidateCategories()
	return nil
}

// DeleteCategory removes a category row. Articles and quotes keep their
// category reference.
func (s *ContentService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCategories()
	return nil
}

// CreateTag persists a new tag, defaulting the slug from the name.
func (s *ContentService) CreateTag(ctx context.Context, name, tagSlug string) (*data.Tag, error) {
	if tagSlug == "" {
		tagSlug = slug.Make(name)
	}
	return s.tags.Create(ctx, name, tagSlug)
}

// DeleteTag removes a tag and its article links.
func (s *ContentService) DeleteTag(ctx context.Context, id int64) error {
	return s.tags.Delete(ctx, id)
}

// AttachTag links a tag to an article.
func (s *ContentService) AttachTag(ctx context.Context, articleID, tagID int64) error {
	return s.tags.Attach(ctx, articleID, tagID)
}

// DetachTag removes a tag link from an article.
func (s *ContentService) DetachTag(ctx context.Context, articleID, tagID int64) error {
	return s.tags.Detach(ctx, articleID, tagID)
}

func (s *ContentService) invalidateArticles() {
	if err := s.cache.DeletePrefix("articles:"); err != nil {
		s.log.Warn(fmt.Sprintf("Failed to invalidate article cache: %v", err))
	}
}

func (s *ContentService) invalidateCategories() {
	if err := s.cache.DeletePrefix("categories:"); err != nil {
		s.log.Warn(fmt.Sprintf("Failed to invalidate category cache: %v", err))
	}
}
