package middleware

import (
	"context"
	"net/http"
	"parts-storefront/internal/siteurl"
)

// contextKey defines a custom type for context keys to avoid collisions.
type contextKey string

const baseURLContextKey = contextKey("baseURL")

// BaseURL resolves the public origin of each request once and stores it in the
// request context for handlers and templates.
func BaseURL(resolver *siteurl.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := SetBaseURL(r.Context(), resolver.BaseURL(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetBaseURL retrieves the public origin from the request context.
func GetBaseURL(ctx context.Context) string {
	if base, ok := ctx.Value(baseURLContextKey).(string); ok && base != "" {
		return base
	}
	return siteurl.SiteURL("")
}

// SetBaseURL adds the public origin to the request context.
func SetBaseURL(ctx context.Context, base string) context.Context {
	return context.WithValue(ctx, baseURLContextKey, base)
}
