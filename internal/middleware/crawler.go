package middleware

import (
	"net/http"
	"strings"
)

// crawlerAgents are lower-case User-Agent fragments of search engine and
// link preview bots.
var crawlerAgents = []string{
	"googlebot",
	"bingbot",
	"slurp",
	"duckduckbot",
	"baiduspider",
	"yandexbot",
	"facebookexternalhit",
	"twitterbot",
	"linkedinbot",
	"whatsapp",
	"telegrambot",
}

// IsCrawler reports whether the User-Agent belongs to a known crawler.
func IsCrawler(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	for _, bot := range crawlerAgents {
		if strings.Contains(ua, bot) {
			return true
		}
	}
	return false
}

func crawlerFreshPath(path string) bool {
	return strings.HasPrefix(path, "/products") || strings.Contains(path, "sitemap")
}

// noStoreWriter replaces whatever caching headers the route set with no-store
// headers right before the response header is sent.
type noStoreWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *noStoreWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		h := w.ResponseWriter.Header()
		h.Set("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
		h.Set("Pragma", "no-cache")
		h.Set("Expires", "0")
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *noStoreWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *noStoreWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// CrawlerNoStore makes crawlers always fetch product pages and sitemaps fresh.
func CrawlerNoStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsCrawler(r.UserAgent()) && crawlerFreshPath(r.URL.Path) {
			w = &noStoreWriter{ResponseWriter: w}
		}
		next.ServeHTTP(w, r)
	})
}
