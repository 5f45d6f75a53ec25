package handler

import (
	"errors"
	"net/http"
	"parts-storefront/internal/logger"
	"parts-storefront/internal/middleware"
	"parts-storefront/internal/siteurl"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates and configures a new chi router.
func NewRouter(
	seoHandler *SeoHandler,
	categoryHandler *CategoryHandler,
	cartHandler *CartHandler,
	resolver *siteurl.Resolver,
	authCookie string,
	log logger.Logger,
	pages middleware.ErrorPage,
) *chi.Mux {
	r := chi.NewRouter()

	// A good base middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Use(middleware.Storefront(authCookie))
	r.Use(middleware.BaseURL(resolver))

	plain := middleware.Error(log, nil)
	html := middleware.Error(log, pages)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})

	// SEO routes
	r.Get("/robots.txt", seoHandler.robotsHandler)
	r.Method(http.MethodGet, "/sitemap.xml", plain(seoHandler.cached(catalogMaxAge, seoHandler.mainSitemap)))
	r.Method(http.MethodGet, "/sitemap-index.xml", plain(seoHandler.cached(catalogMaxAge, seoHandler.sitemapIndex)))
	r.Method(http.MethodGet, "/sitemap-static.xml", plain(seoHandler.cached(staticMaxAge, seoHandler.staticSitemap)))
	r.Method(http.MethodGet, "/sitemap-categories.xml", plain(seoHandler.cached(catalogMaxAge, seoHandler.categoriesSitemap)))
	r.Method(http.MethodGet, "/sitemap-news.xml", plain(seoHandler.cached(catalogMaxAge, seoHandler.newsSitemap)))
	r.Method(http.MethodGet, "/sitemap-products-index.xml", plain(seoHandler.cached(productsMaxAge, seoHandler.productsIndex)))
	// Reached through the /sitemap-products/{page}.xml rewrite.
	r.Method(http.MethodGet, "/sitemap-products/{page}", plain(seoHandler.cached(productsMaxAge, seoHandler.productsPage)))

	// Category pages
	r.Method(http.MethodGet, "/categories", html(categoryHandler.listHandler))
	r.Method(http.MethodGet, "/categories/*", html(categoryHandler.viewHandler))

	// Cart API
	r.Route("/api/cart", func(r chi.Router) {
		r.Method(http.MethodGet, "/", plain(cartHandler.getHandler))
		r.Method(http.MethodDelete, "/", plain(cartHandler.clearHandler))
		r.Method(http.MethodPost, "/items", plain(cartHandler.addItemHandler))
		r.Method(http.MethodPut, "/items/{productID}", plain(cartHandler.updateItemHandler))
		r.Method(http.MethodDelete, "/items/{productID}", plain(cartHandler.removeItemHandler))
	})

	r.NotFound(html(func(w http.ResponseWriter, r *http.Request) *middleware.AppError {
		return &middleware.AppError{Error: errors.New("no route"), Message: "Page not found", Code: http.StatusNotFound}
	}).ServeHTTP)

	return r
}
