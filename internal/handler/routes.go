package handler

import (
	"net/http"

	applogger "go-blog-app/internal/logger"
	appmiddleware "go-blog-app/internal/middleware"
	"go-blog-app/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth       *AuthHandler
	Articles   *ArticleHandler
	Categories *CategoryHandler
	Quotes     *QuoteHandler
	Menu       *MenuHandler
	Settings   *SettingHandler
	Comments   *CommentHandler
	Tags       *TagHandler
	Seo        *SeoHandler
}

// NewRouter creates and configures a new chi router.
func NewRouter(log applogger.Logger, sm session.Manager, h Handlers, authz, commentLimiter func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()

	// A good base middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Sessions must load before authorization can resolve the user.
	r.Use(sm.LoadAndSave)
	r.Use(authz)

	errMw := appmiddleware.Error(log)

	// Authentication routes
	r.Get("/auth/login", h.Auth.handleLogin)
	r.Get("/auth/callback", h.Auth.handleCallback)

	// SEO routes
	r.Get("/robots.txt", h.Seo.robotsHandler)
	r.Get("/sitemap.xml", h.Seo.sitemapHandler)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/auth/me", errMw(h.Auth.handleMe))
		r.Method(http.MethodPost, "/auth/logout", errMw(h.Auth.handleLogout))

		// Public content routes
		r.Method(http.MethodGet, "/articles/recent", errMw(h.Articles.recentHandler))
		r.Method(http.MethodGet, "/articles/{slug}", errMw(h.Articles.bySlugHandler))
		r.Method(http.MethodGet, "/categories", errMw(h.Categories.publicListHandler))
		r.Method(http.MethodGet, "/categories/{slug}", errMw(h.Categories.bySlugHandler))
		r.Method(http.MethodGet, "/categories/{categoryID}/articles", errMw(h.Articles.byCategoryHandler))
		r.Method(http.MethodGet, "/quotes/random", errMw(h.Quotes.randomHandler))
		r.Method(http.MethodGet, "/menu", errMw(h.Menu.publicListHandler))
		r.Method(http.MethodGet, "/settings", errMw(h.Settings.publicListHandler))
		r.Method(http.MethodGet, "/settings/{key}", errMw(h.Settings.byKeyHandler))
		r.Method(http.MethodGet, "/comments/{articleID}", errMw(h.Comments.byArticleHandler))
		r.Method(http.MethodGet, "/tags", errMw(h.Tags.listHandler))
		r.Method(http.MethodGet, "/tags/article/{articleID}", errMw(h.Tags.byArticleHandler))

		// Comment submission is authenticated and rate limited.
		r.With(commentLimiter).Method(http.MethodPost, "/comments", errMw(h.Comments.createHandler))

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Method(http.MethodGet, "/articles", errMw(h.Articles.listHandler))
			r.Method(http.MethodPost, "/articles", errMw(h.Articles.createHandler))
			r.Method(http.MethodPatch, "/articles/{id}", errMw(h.Articles.updateHandler))
			r.Method(http.MethodDelete, "/articles/{id}", errMw(h.Articles.deleteHandler))
			r.Method(http.MethodPost, "/articles/{id}/tags/{tagID}", errMw(h.Tags.attachHandler))
			r.Method(http.MethodDelete, "/articles/{id}/tags/{tagID}", errMw(h.Tags.detachHandler))

			r.Method(http.MethodGet, "/categories", errMw(h.Categories.listHandler))
			r.Method(http.MethodPost, "/categories", errMw(h.Categories.createHandler))
			r.Method(http.MethodPatch, "/categories/{id}", errMw(h.Categories.updateHandler))
			r.Method(http.MethodDelete, "/categories/{id}", errMw(h.Categories.deleteHandler))

			r.Method(http.MethodGet, "/quotes", errMw(h.Quotes.listHandler))
			r.Method(http.MethodPost, "/quotes", errMw(h.Quotes.createHandler))
			r.Method(http.MethodPatch, "/quotes/{id}", errMw(h.Quotes.updateHandler))
			r.Method(http.MethodDelete, "/quotes/{id}", errMw(h.Quotes.deleteHandler))

			r.Method(http.MethodGet, "/menu", errMw(h.Menu.listHandler))
			r.Method(http.MethodPost, "/menu", errMw(h.Menu.createHandler))
			r.Method(http.MethodPatch, "/menu/{id}", errMw(h.Menu.updateHandler))
			r.Method(http.MethodDelete, "/menu/{id}", errMw(h.Menu.deleteHandler))

			r.Method(http.MethodGet, "/settings", errMw(h.Settings.listHandler))
			r.Method(http.MethodPut, "/settings", errMw(h.Settings.upsertHandler))

			r.Method(http.MethodGet, "/comments", errMw(h.Comments.listHandler))
			r.Method(http.MethodPatch, "/comments/{id}", errMw(h.Comments.moderateHandler))
			r.Method(http.MethodDelete, "/comments/{id}", errMw(h.Comments.deleteHandler))

			r.Method(http.MethodPost, "/tags", errMw(h.Tags.createHandler))
			r.Method(http.MethodDelete, "/tags/{id}", errMw(h.Tags.deleteHandler))
		})
	})

	return r
}
