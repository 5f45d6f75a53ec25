package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"parts-storefront/internal/cache"
	"parts-storefront/internal/logger"
	"parts-storefront/internal/middleware"
	"parts-storefront/internal/service"
	"parts-storefront/internal/sitemap"
	"parts-storefront/internal/siteurl"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// Cache lifetimes per sitemap freshness class.
const (
	staticMaxAge   = 24 * time.Hour
	catalogMaxAge  = time.Hour
	productsMaxAge = 30 * time.Minute
)

// staticPage is an informational page listed in the static sitemap.
type staticPage struct {
	path     string
	freq     sitemap.ChangeFreq
	priority sitemap.Priority
}

var staticPages = []staticPage{
	{"", sitemap.Daily, 1.0},
	{"/products", sitemap.Hourly, 0.9},
	{"/categories", sitemap.Daily, 0.9},
	{"/about", sitemap.Monthly, 0.8},
	{"/contact", sitemap.Monthly, 0.8},
	{"/faq", sitemap.Monthly, 0.6},
	{"/warranty-policy", sitemap.Monthly, 0.5},
	{"/shipping-policy", sitemap.Monthly, 0.5},
	{"/technical-support", sitemap.Monthly, 0.5},
	{"/returns", sitemap.Monthly, 0.5},
	{"/docs", sitemap.Monthly, 0.4},
}

// document is a rendered sitemap. Fallback documents are served but not cached.
type document struct {
	body     []byte
	fallback bool
}

// SeoHandler holds dependencies for SEO-related handlers.
type SeoHandler struct {
	categories CategoryServicer
	products   ProductServicer
	news       NewsServicer
	resolver   *siteurl.Resolver
	store      cache.Store
	log        logger.Logger
	now        func() time.Time
}

// NewSeoHandler creates a new SeoHandler. store may be nil to disable the document cache.
func NewSeoHandler(cs CategoryServicer, ps ProductServicer, ns NewsServicer, resolver *siteurl.Resolver, store cache.Store, log logger.Logger) *SeoHandler {
	return &SeoHandler{
		categories: cs,
		products:   ps,
		news:       ns,
		resolver:   resolver,
		store:      store,
		log:        log,
		now:        time.Now,
	}
}

// robotsHandler serves robots.txt with the sitemaps of the requesting host.
func (h *SeoHandler) robotsHandler(w http.ResponseWriter, r *http.Request) {
	base := middleware.GetBaseURL(r.Context())
	body := sitemap.FormatRobots(sitemap.DefaultRobotsPolicy(
		base+"/sitemap.xml",
		base+"/sitemap-index.xml",
		base+"/sitemap-static.xml",
		base+"/sitemap-categories.xml",
		base+"/sitemap-products-index.xml",
	))
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(body)
}

// cached serves a sitemap document from the store when possible and renders it
// with build otherwise. Documents are keyed by base URL and path because the
// base URL depends on the requesting host.
func (h *SeoHandler) cached(maxAge time.Duration, build func(r *http.Request, base string) (*document, *middleware.AppError)) middleware.AppHandler {
	return func(w http.ResponseWriter, r *http.Request) *middleware.AppError {
		base := middleware.GetBaseURL(r.Context())
		key := "sitemap:" + base + r.URL.Path

		if h.store != nil {
			body, err := h.store.Get(r.Context(), key)
			if err != nil {
				h.log.Error(err, "Failed to read sitemap cache")
			} else if body != nil {
				w.Header().Set("X-Cache", "HIT")
				writeXML(w, body, maxAge)
				return nil
			}
		}

		doc, appErr := build(r, base)
		if appErr != nil {
			return appErr
		}

		if h.store != nil && !doc.fallback {
			if err := h.store.Set(r.Context(), key, doc.body, maxAge); err != nil {
				h.log.Error(err, "Failed to write sitemap cache")
			}
			w.Header().Set("X-Cache", "MISS")
		}
		writeXML(w, doc.body, maxAge)
		return nil
	}
}

func writeXML(w http.ResponseWriter, body []byte, maxAge time.Duration) {
	secs := int(maxAge.Seconds())
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d, s-maxage=%d", secs, secs))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func renderURLSet(entries []sitemap.URLEntry) (*document, *middleware.AppError) {
	body, err := sitemap.FormatURLSet(entries)
	if err != nil {
		return nil, &middleware.AppError{Error: err, Message: "Error generating sitemap", Code: http.StatusInternalServerError}
	}
	return &document{body: body}, nil
}

func renderIndex(entries []sitemap.IndexEntry) (*document, *middleware.AppError) {
	body, err := sitemap.FormatIndex(entries)
	if err != nil {
		return nil, &middleware.AppError{Error: err, Message: "Error generating sitemap index", Code: http.StatusInternalServerError}
	}
	return &document{body: body}, nil
}

// mainSitemap lists the most important entry points.
func (h *SeoHandler) mainSitemap(r *http.Request, base string) (*document, *middleware.AppError) {
	now := sitemap.Timestamp(h.now(), h.now())
	return renderURLSet([]sitemap.URLEntry{
		{Loc: base, LastMod: now, ChangeFreq: sitemap.Daily, Priority: 1.0},
		{Loc: base + "/products", LastMod: now, ChangeFreq: sitemap.Hourly, Priority: 0.9},
		{Loc: base + "/categories", LastMod: now, ChangeFreq: sitemap.Daily, Priority: 0.9},
	})
}

// staticSitemap lists the fixed informational pages. Their URLs use the
// configured site origin, not the requesting host.
func (h *SeoHandler) staticSitemap(r *http.Request, _ string) (*document, *middleware.AppError) {
	base := h.resolver.Fallback()
	now := sitemap.Timestamp(h.now(), h.now())
	entries := make([]sitemap.URLEntry, 0, len(staticPages))
	for _, p := range staticPages {
		entries = append(entries, sitemap.URLEntry{Loc: base + p.path, LastMod: now, ChangeFreq: p.freq, Priority: p.priority})
	}
	return renderURLSet(entries)
}

// categoriesSitemap lists every category of the tree.
func (h *SeoHandler) categoriesSitemap(r *http.Request, base string) (*document, *middleware.AppError) {
	tree, err := h.categories.LoadCategoryTree(r.Context())
	if err != nil {
		return nil, &middleware.AppError{Error: err, Message: "Error generating sitemap", Code: http.StatusInternalServerError}
	}

	now := h.now()
	var entries []sitemap.URLEntry
	for _, c := range service.Flatten(tree) {
		if c.URLPath() == "" {
			continue
		}
		entries = append(entries, sitemap.URLEntry{
			Loc:        base + "/categories/" + c.URLPath(),
			LastMod:    sitemap.Timestamp(c.UpdatedAt, now),
			ChangeFreq: sitemap.Weekly,
			Priority:   0.8,
		})
	}
	if len(entries) == 0 {
		return nil, &middleware.AppError{Error: errors.New("empty category tree"), Message: "No categories found for sitemap", Code: http.StatusNotFound}
	}
	return renderURLSet(entries)
}

// newsSitemap lists the news page and published articles. A backend failure
// degrades to a document with just the news listing page.
func (h *SeoHandler) newsSitemap(r *http.Request, base string) (*document, *middleware.AppError) {
	now := h.now()
	entries := []sitemap.URLEntry{
		{Loc: base + "/news", LastMod: sitemap.Timestamp(now, now), ChangeFreq: sitemap.Daily, Priority: 0.8},
	}

	articles, err := h.news.PublishedArticles(r.Context())
	if err != nil {
		h.log.Error(err, "Error generating news sitemap, serving fallback")
		doc, appErr := renderURLSet(entries)
		if appErr != nil {
			return nil, appErr
		}
		doc.fallback = true
		return doc, nil
	}

	for _, a := range articles {
		priority := sitemap.Priority(0.7)
		if a.IsFeatured {
			priority = 0.8
		}
		entries = append(entries, sitemap.URLEntry{
			Loc:        base + "/news/" + a.Slug,
			LastMod:    sitemap.Timestamp(a.LastModified(), now),
			ChangeFreq: sitemap.Weekly,
			Priority:   priority,
		})
	}
	return renderURLSet(entries)
}

// productPageEntries lists the product sub-sitemaps. No products means none.
func (h *SeoHandler) productPageEntries(ctx context.Context, base string) ([]sitemap.IndexEntry, error) {
	total, err := h.products.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	now := sitemap.Timestamp(h.now(), h.now())
	pages := service.TotalPages(total, service.DefaultProductPageSize)
	entries := make([]sitemap.IndexEntry, 0, pages)
	for page := 1; page <= pages; page++ {
		entries = append(entries, sitemap.IndexEntry{
			Loc:     fmt.Sprintf("%s/sitemap-products/%d.xml", base, page),
			LastMod: now,
		})
	}
	return entries, nil
}

// productsIndex lists one sub-sitemap per page of active products.
func (h *SeoHandler) productsIndex(r *http.Request, base string) (*document, *middleware.AppError) {
	entries, err := h.productPageEntries(r.Context(), base)
	if err != nil {
		return nil, &middleware.AppError{Error: err, Message: "Error generating sitemap index", Code: http.StatusInternalServerError}
	}
	return renderIndex(entries)
}

// pageParam parses the page route parameter. Only plain decimal digits are
// accepted, so "+5" or "-1" are rejected.
func pageParam(r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "page")
	if raw == "" || strings.TrimLeft(raw, "0123456789") != "" {
		return 0, false
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, false
	}
	return page, true
}

// productsPage lists one page of active products.
func (h *SeoHandler) productsPage(r *http.Request, base string) (*document, *middleware.AppError) {
	page, ok := pageParam(r)
	if !ok {
		return nil, &middleware.AppError{Error: service.ErrInvalidPage, Message: "Invalid page number", Code: http.StatusBadRequest}
	}

	result, err := h.products.FetchProductPage(r.Context(), page, service.DefaultProductPageSize)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPage) {
			return nil, &middleware.AppError{Error: err, Message: "Invalid page number", Code: http.StatusBadRequest}
		}
		return nil, &middleware.AppError{Error: err, Message: "Error generating sitemap", Code: http.StatusInternalServerError}
	}
	now := h.now()
	entries := make([]sitemap.URLEntry, 0, len(result.Items))
	for _, p := range result.Items {
		id := service.ProductPathID(p.SKU)
		if id == "" {
			continue
		}
		entries = append(entries, sitemap.URLEntry{
			Loc:        base + "/products/" + id,
			LastMod:    sitemap.Timestamp(p.UpdatedAt, now),
			ChangeFreq: sitemap.ProductChangeFreq(p.StockQuantity),
			Priority:   sitemap.ProductPriority(p.StockQuantity, p.IsFeatured),
		})
	}
	if len(entries) == 0 {
		return nil, &middleware.AppError{
			Error:   fmt.Errorf("product sitemap page %d is empty", page),
			Message: fmt.Sprintf("No products found for sitemap page %d", page),
			Code:    http.StatusNotFound,
		}
	}
	return renderURLSet(entries)
}

// sitemapIndex lists every sitemap of the storefront.
func (h *SeoHandler) sitemapIndex(r *http.Request, base string) (*document, *middleware.AppError) {
	now := sitemap.Timestamp(h.now(), h.now())
	entries := []sitemap.IndexEntry{
		{Loc: base + "/sitemap.xml", LastMod: now},
		{Loc: base + "/sitemap-static.xml", LastMod: now},
		{Loc: base + "/sitemap-categories.xml", LastMod: now},
		{Loc: base + "/sitemap-news.xml", LastMod: now},
	}

	products, err := h.productPageEntries(r.Context(), base)
	if err != nil {
		h.log.Error(err, "Failed to count products for sitemap index")
		doc, appErr := renderIndex(entries)
		if appErr != nil {
			return nil, appErr
		}
		doc.fallback = true
		return doc, nil
	}
	return renderIndex(append(entries, products...))
}
