//go:build unit

package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"parts-storefront/internal/cache"
	"parts-storefront/internal/cart"
	"parts-storefront/internal/data"
	"parts-storefront/internal/logger"
	"parts-storefront/internal/service"
	"parts-storefront/internal/siteurl"
	"parts-storefront/internal/view"
	"parts-storefront/web"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	parser "github.com/oxffaa/gopher-parse-sitemap"
)

type stubCategoryRepository struct {
	categories []data.Category
	err        error
	calls      int
}

func (s *stubCategoryRepository) List(ctx context.Context) ([]data.Category, error) {
	s.calls++
	return s.categories, s.err
}

type stubProductRepository struct {
	total    int64
	err      error
	calls    int
	blankSKU bool
}

// List serves s.total products, 100 per page, with varying stock levels.
func (s *stubProductRepository) List(ctx context.Context, q data.ProductQuery) (*data.Page[data.Product], error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	page := &data.Page[data.Product]{Page: q.Page, PageSize: q.PageSize, Total: s.total}
	start := int64((q.Page - 1) * q.PageSize)
	for i := start; i < s.total && i < start+int64(q.PageSize); i++ {
		sku := fmt.Sprintf("A06B-%04d-B075", i+1)
		if s.blankSKU {
			sku = ""
		}
		page.Data = append(page.Data, data.Product{
			ID:            i + 1,
			SKU:           sku,
			StockQuantity: int(i % 3 * 60),
			IsFeatured:    i == 0,
			UpdatedAt:     time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC),
		})
	}
	return page, nil
}

type stubNewsRepository struct {
	articles []data.Article
	err      error
}

func (s *stubNewsRepository) List(ctx context.Context, q data.NewsQuery) (*data.Page[data.Article], error) {
	if s.err != nil {
		return nil, s.err
	}
	return &data.Page[data.Article]{Data: s.articles, Total: int64(len(s.articles))}, nil
}

type testApp struct {
	Router     *chi.Mux
	Categories *stubCategoryRepository
	Products   *stubProductRepository
	News       *stubNewsRepository
	Store      *cache.SQLiteStore
}

func int64Ptr(v int64) *int64 { return &v }

// setupTest initializes the application stack on top of stub repositories.
func setupTest(t *testing.T, withCache bool) *testApp {
	t.Helper()
	log := logger.Nop()

	store, err := cache.NewSQLiteStore("file::memory:")
	if err != nil {
		t.Fatalf("Failed to create cache store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	viewService, err := view.New(web.TemplateFS)
	if err != nil {
		t.Fatalf("Failed to parse templates: %v", err)
	}

	app := &testApp{
		Categories: &stubCategoryRepository{categories: []data.Category{
			{ID: 1, Name: "Motors", Slug: "motors", UpdatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
			{ID: 2, Name: "Servo Motors", Slug: "servo", ParentID: int64Ptr(1), Description: "**Alpha i** series <script>alert(1)</script>servo motors."},
			{ID: 3, Name: "Boards", Slug: "boards", SortOrder: 1},
		}},
		Products: &stubProductRepository{total: 250},
		News: &stubNewsRepository{articles: []data.Article{
			{ID: 1, Slug: "new-warehouse", IsFeatured: true},
			{ID: 2, Slug: "alpha-drives-in-stock"},
		}},
		Store: store,
	}

	resolver := siteurl.NewResolver("https://www.example-parts.com")
	categoryService := service.NewCategoryService(app.Categories, log)
	productService := service.NewProductService(app.Products)
	newsService := service.NewNewsService(app.News)

	var docs cache.Store
	if withCache {
		docs = store
	}
	seoHandler := NewSeoHandler(categoryService, productService, newsService, resolver, docs, log)
	seoHandler.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	categoryHandler := NewCategoryHandler(categoryService, viewService, log)
	cartHandler := NewCartHandler(cart.NewService(store), log)

	app.Router = NewRouter(seoHandler, categoryHandler, cartHandler, resolver, "auth_token", log, viewService)
	return app
}

// do sends a request for the shop.example.com host through the router.
func (a *testApp) do(t *testing.T, method, target string, body io.Reader, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	req.Host = "shop.example.com"
	req.Header.Set("X-Forwarded-Proto", "https")
	for _, m := range mutate {
		m(req)
	}
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)
	return rr
}

func parseLocs(t *testing.T, body []byte) []string {
	t.Helper()
	var locs []string
	err := parser.Parse(bytes.NewReader(body), func(e parser.Entry) error {
		locs = append(locs, e.GetLocation())
		return nil
	})
	if err != nil {
		t.Fatalf("failed to parse urlset: %v\n%s", err, body)
	}
	return locs
}

func parseIndexLocs(t *testing.T, body []byte) []string {
	t.Helper()
	var locs []string
	err := parser.ParseIndex(bytes.NewReader(body), func(e parser.IndexEntry) error {
		locs = append(locs, e.GetLocation())
		return nil
	})
	if err != nil {
		t.Fatalf("failed to parse sitemap index: %v\n%s", err, body)
	}
	return locs
}
