package middleware

import (
	"net/http"
	"regexp"
	"strings"
)

var (
	legacyProductSitemap = regexp.MustCompile(`^/sitemap-products-(\d+)\.xml$`)
	productSitemapPage   = regexp.MustCompile(`^/sitemap-products/(\d+)\.xml$`)
)

const brandProductPrefix = "/products/FANUC-"

// redirectTo issues a redirect to path, keeping the request's query string.
func redirectTo(w http.ResponseWriter, r *http.Request, path string, code int) {
	target := path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, code)
}

// LegacySitemapRedirect moves /sitemap-products-<n>.xml to /sitemap-products/<n>.xml.
func LegacySitemapRedirect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m := legacyProductSitemap.FindStringSubmatch(r.URL.Path); m != nil {
			redirectTo(w, r, "/sitemap-products/"+m[1]+".xml", http.StatusMovedPermanently)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SitemapRewrite serves /sitemap-products/<n>.xml from the internal
// /sitemap-products/<n> route without changing the client-visible URL.
func SitemapRewrite(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m := productSitemapPage.FindStringSubmatch(r.URL.Path); m != nil {
			r.URL.Path = "/sitemap-products/" + m[1]
			r.URL.RawPath = ""
		}
		next.ServeHTTP(w, r)
	})
}

// BrandPrefixRedirect strips the brand prefix from product URLs.
func BrandPrefixRedirect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, brandProductPrefix) {
			redirectTo(w, r, "/products/"+strings.TrimPrefix(r.URL.Path, brandProductPrefix), http.StatusMovedPermanently)
			return
		}
		next.ServeHTTP(w, r)
	})
}
