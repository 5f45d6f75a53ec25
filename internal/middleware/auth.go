package middleware

import (
	"net/http"
	"net/url"
	"strings"
)

const (
	adminPath = "/admin"
	loginPath = "/admin/login"
)

var authPaths = []string{loginPath, "/admin/forgot-password"}

func isAuthPath(path string) bool {
	for _, p := range authPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func isProtectedPath(path string) bool {
	if path != adminPath && !strings.HasPrefix(path, adminPath+"/") {
		return false
	}
	return !isAuthPath(path)
}

// hasToken reports whether the request carries a non-empty session cookie.
func hasToken(r *http.Request, cookieName string) bool {
	c, err := r.Cookie(cookieName)
	return err == nil && c.Value != ""
}

// AuthGate keeps anonymous visitors out of the admin area. The cookie is only
// checked for presence; the backend validates the token on every API call.
// Visitors without a token are sent to the login page with a redirect back,
// and signed-in users hitting the login pages are sent to the dashboard.
func AuthGate(cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			signedIn := hasToken(r, cookieName)

			if isProtectedPath(path) && !signedIn {
				q := url.Values{"redirect": {path}}
				http.Redirect(w, r, loginPath+"?"+q.Encode(), http.StatusTemporaryRedirect)
				return
			}
			if isAuthPath(path) && signedIn {
				http.Redirect(w, r, adminPath, http.StatusTemporaryRedirect)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
