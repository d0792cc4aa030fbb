package handler

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"

	"go-blog-app/internal/service"
)

// SeoHandler holds dependencies for SEO-related handlers.
type SeoHandler struct {
	content *service.ContentService
	site    *service.SiteService
}

// NewSeoHandler creates a new SeoHandler.
func NewSeoHandler(content *service.ContentService, site *service.SiteService) *SeoHandler {
	return &SeoHandler{content: content, site: site}
}

const (
	sitemapDateFormat  = "2006-01-02"
	sitemapMaxArticles = 500
	defaultSiteURL     = "http://localhost:8080"
)

// baseURL resolves the public origin from the site_url setting, falling
// back to localhost when unset.
func (h *SeoHandler) baseURL(r *http.Request) string {
	if v := h.site.Setting(r.Context(), "site_url"); v != nil && *v != "" {
		return strings.TrimRight(*v, "/")
	}
	return defaultSiteURL
}

// robotsHandler serves robots.txt with a sitemap pointer.
func (h *SeoHandler) robotsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "User-agent: *")
	fmt.Fprintln(w, "Allow: /")
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Sitemap: %s/sitemap.xml\n", h.baseURL(r))
}

type sitemapURL struct {
	XMLName xml.Name `xml:"url"`
	Loc     string   `xml:"loc"`
	LastMod string   `xml:"lastmod"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// sitemapHandler generates a sitemap of published articles.
func (h *SeoHandler) sitemapHandler(w http.ResponseWriter, r *http.Request) {
	base := h.baseURL(r)
	articles := h.content.RecentArticles(r.Context(), sitemapMaxArticles)

	sitemap := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  make([]sitemapURL, len(articles)),
	}
	for i, article := range articles {
		sitemap.URLs[i] = sitemapURL{
			Loc:     base + "/articles/" + article.Slug,
			LastMod: article.UpdatedAt.Format(sitemapDateFormat),
		}
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Write([]byte(xml.Header))
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(sitemap); err != nil {
		http.Error(w, "Failed to generate sitemap XML", http.StatusInternalServerError)
		return
	}
}
