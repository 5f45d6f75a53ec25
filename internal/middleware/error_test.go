//go:build unit

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"parts-storefront/internal/logger"
	"parts-storefront/internal/siteurl"
	"strings"
	"testing"
)

type stubErrorPage struct {
	code int
}

func (s *stubErrorPage) RenderError(w http.ResponseWriter, r *http.Request, code int, message string) error {
	s.code = code
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, err := w.Write([]byte("<h1>" + message + "</h1>"))
	return err
}

func TestError_PlainText(t *testing.T) {
	h := Error(logger.Nop(), nil)(func(w http.ResponseWriter, r *http.Request) *AppError {
		w.Header().Set("Cache-Control", "public, max-age=1800")
		return &AppError{Error: errors.New("backend down"), Message: "Error generating sitemap", Code: http.StatusInternalServerError}
	})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/sitemap-products/1", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("expected plain text, got %q", ct)
	}
	if rr.Header().Get("Cache-Control") != "" {
		t.Error("expected error responses to drop route cache headers")
	}
	if rr.Body.String() != "Error generating sitemap" {
		t.Errorf("unexpected body %q", rr.Body.String())
	}
}

func TestError_HTMLPage(t *testing.T) {
	pages := &stubErrorPage{}
	h := Error(logger.Nop(), pages)(func(w http.ResponseWriter, r *http.Request) *AppError {
		return &AppError{Message: "Category not found", Code: http.StatusNotFound}
	})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/categories/nope", nil))

	if rr.Code != http.StatusNotFound || pages.code != http.StatusNotFound {
		t.Errorf("expected 404 rendered page, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "<h1>Category not found</h1>") {
		t.Errorf("unexpected body %q", rr.Body.String())
	}
}

func TestError_Panic(t *testing.T) {
	h := Error(logger.Nop(), nil)(func(w http.ResponseWriter, r *http.Request) *AppError {
		panic("boom")
	})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 after panic, got %d", rr.Code)
	}
}

func TestBaseURL(t *testing.T) {
	var got string
	h := BaseURL(siteurl.NewResolver(""))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetBaseURL(r.Context())
	}))
	req := httptest.NewRequest("GET", "/sitemap.xml", nil)
	req.Host = "shop.example.com:443"
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got != "https://shop.example.com" {
		t.Errorf("expected resolved base URL, got %q", got)
	}
	if def := GetBaseURL(req.Context()); def != siteurl.DefaultSiteURL {
		t.Errorf("expected default site URL without middleware, got %q", def)
	}
}
