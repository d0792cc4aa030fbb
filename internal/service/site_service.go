package service

import (
	"context"
	"fmt"

	"go-blog-app/internal/cache"
	"go-blog-app/internal/data"
	"go-blog-app/internal/logger"
)

// QuoteStore defines the interface for database operations on quotes.
type QuoteStore interface {
	Create(ctx context.Context, in data.QuoteCreate) (*data.Quote, error)
	Update(ctx context.Context, id int64, in data.QuoteUpdate) error
	Delete(ctx context.Context, id int64) error
	ListPublished(ctx context.Context, limit int) ([]*data.Quote, error)
	ListAll(ctx context.Context) ([]*data.Quote, error)
}

// MenuStore defines the interface for database operations on menu items.
type MenuStore interface {
	Create(ctx context.Context, in data.MenuItemCreate) (*data.MenuItem, error)
	Update(ctx context.Context, id int64, in data.MenuItemUpdate) error
	Delete(ctx context.Context, id int64) error
	ListActive(ctx context.Context) ([]*data.MenuItem, error)
	ListAll(ctx context.Context) ([]*data.MenuItem, error)
}

// SettingStore defines the interface for database operations on settings.
type SettingStore interface {
	Get(ctx context.Context, key string) (*data.SiteSetting, error)
	ListAll(ctx context.Context) ([]*data.SiteSetting, error)
	Upsert(ctx context.Context, key, value string) error
}

// SiteService provides business logic for quotes, navigation and site
// settings: the furniture of the public site. The degrade-on-read /
// fail-on-write split mirrors ContentService.
type SiteService struct {
	quotes   QuoteStore
	menu     MenuStore
	settings SettingStore
	cache    *cache.Cache
	log      logger.Logger
}

// NewSiteService creates a new SiteService.
func NewSiteService(quotes QuoteStore, menu MenuStore, settings SettingStore, c *cache.Cache, log logger.Logger) *SiteService {
	return &SiteService{quotes: quotes, menu: menu, settings: settings, cache: c, log: log}
}

// --- Public reads ---

// PublishedQuotes returns published quotes in display order, up to limit.
// The public route calls this "random" for historical reasons; the order
// is deterministic.
func (s *SiteService) PublishedQuotes(ctx context.Context, limit int) []*data.Quote {
	key := fmt.Sprintf("quotes:published:%d", limit)
	var cached []*data.Quote
	if found, err := s.cache.GetJSON(key, &cached); err == nil && found {
		return cached
	}

	quotes, err := s.quotes.ListPublished(ctx, limit)
	if err != nil {
		s.log.Warn(fmt.Sprintf("Quotes unavailable: %v", err))
		return []*data.Quote{}
	}
	if err := s.cache.SetJSON(key, quotes); err != nil {
		s.log.Warn(fmt.Sprintf("Failed to cache quotes: %v", err))
	}
	return quotes
}

// MenuItems returns active navigation entries in display order.
func (s *SiteService) MenuItems(ctx context.Context) []*data.MenuItem {
	key := "menu:active"
	var cached []*data.MenuItem
	if found, err := s.cache.GetJSON(key, &cached); err == nil && found {
		return cached
	}

	items, err := s.menu.ListActive(ctx)
	if err != nil {
		s.log.Warn(fmt.Sprintf("Menu unavailable: %v", err))
		return []*data.MenuItem{}
	}
	if err := s.cache.SetJSON(key, items); err != nil {
		s.log.Warn(fmt.Sprintf("Failed to cache menu: %v", err))
	}
	return items
}

// Setting returns a setting's value by key, or nil when the key does not
// exist or storage is unavailable.
func (s *SiteService) Setting(ctx context.Context, key string) *string {
	setting, err := s.settings.Get(ctx, key)
	if err != nil {
		s.log.Warn(fmt.Sprintf("Setting %q unavailable: %v", key, err))
		return nil
	}
	if setting == nil {
		return nil
	}
	return setting.Value
}

// Settings returns every setting row. Storage failure degrades to an
// empty list.
func (s *SiteService) Settings(ctx context.Context) []*data.SiteSetting {
	key := "settings:all"
	var cached []*data.SiteSetting
	if found, err := s.cache.GetJSON(key, &cached); err == nil && found {
		return cached
	}

	settings, err := s.settings.ListAll(ctx)
	if err != nil {
		s.log.Warn(fmt.Sprintf("Settings unavailable: %v", err))
		return []*data.SiteSetting{}
	}
	if err := s.cache.SetJSON(key, settings); err != nil {
		s.log.Warn(fmt.Sprintf("Failed to cache settings: %v", err))
	}
	return settings
}

// --- Admin operations ---

// ListQuotes returns every quote for the admin console.
func (s *SiteService) ListQuotes(ctx context.Context) ([]*data.Quote, error) {
	return s.quotes.ListAll(ctx)
}

// CreateQuote persists a new quote.
func (s *SiteService) CreateQuote(ctx context.Context, in data.QuoteCreate) (*data.Quote, error) {
	quote, err := s.quotes.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.invalidate("quotes:")
	return quote, nil
}

// UpdateQuote applies a partial update to a quote.
func (s *SiteService) UpdateQuote(ctx context.Context, id int64, in data.QuoteUpdate) error {
	if err := s.quotes.Update(ctx, id, in); err != nil {
		return err
	}
	s.invalidate("quotes:")
	return nil
}

// DeleteQuote removes a quote.
func (s *SiteService) DeleteQuote(ctx context.Context, id int64) error {
	if err := s.quotes.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate("quotes:")
	return nil
}

// ListMenuItems returns every menu item for the admin console.
func (s *SiteService) ListMenuItems(ctx context.Context) ([]*data.MenuItem, error) {
	return s.menu.ListAll(ctx)
}

// CreateMenuItem persists a new menu item.
func (s *SiteService) CreateMenuItem(ctx context.Context, in data.MenuItemCreate) (*data.MenuItem, error) {
	item, err := s.menu.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.invalidate("menu:")
	return item, nil
}

// UpdateMenuItem applies a partial update to a menu item.
func (s *SiteService) UpdateMenuItem(ctx context.Context, id int64, in data.MenuItemUpdate) error {
	if err := s.menu.Update(ctx, id, in); err != nil {
		return err
	}
	s.invalidate("menu:")
	return nil
}

// DeleteMenuItem removes a menu item.
func (s *SiteService) DeleteMenuItem(ctx context.Context, id int64) error {
	if err := s.menu.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate("menu:")
	return nil
}

// UpsertSetting stores a setting value under key, creating the row when
// the key is new and updating exactly that row otherwise.
func (s *SiteService) UpsertSetting(ctx context.Context, key, value string) error {
	if err := s.settings.Upsert(ctx, key, value); err != nil {
		return err
	}
	s.invalidate("settings:")
	return nil
}

func (s *SiteService) invalidate(prefix string) {
	if err := s.cache.DeletePrefix(prefix); err != nil {
		s.log.Warn(fmt.Sprintf("Failed to invalidate cache prefix %q: %v", prefix, err))
	}
}
