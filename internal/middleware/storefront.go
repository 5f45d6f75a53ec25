package middleware

import (
	"net/http"
	"strings"
)

// Storefront chains the storefront request middleware in order: legacy
// sitemap redirect, sitemap rewrite, brand prefix redirect, admin auth gate
// and crawler cache override. Security headers are set first so redirects
// carry them too. API paths bypass the chain.
func Storefront(authCookie string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		chained := SecurityHeaders(
			LegacySitemapRedirect(
				SitemapRewrite(
					BrandPrefixRedirect(
						AuthGate(authCookie)(
							CrawlerNoStore(next))))))

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/api/") {
				next.ServeHTTP(w, r)
				return
			}
			chained.ServeHTTP(w, r)
		})
	}
}
