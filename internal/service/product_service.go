package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"parts-storefront/internal/data"
	"regexp"
)

const (
	// DefaultProductPageSize is the number of products per sitemap page.
	DefaultProductPageSize = 100
	// MaxProductPages caps the number of product sitemaps listed in the index.
	MaxProductPages = 1000
)

// ErrInvalidPage is returned for page numbers below 1.
var ErrInvalidPage = errors.New("invalid page number")

// ProductPage is one page of active products plus the backend's total count.
type ProductPage struct {
	Items []data.Product
	Total int64
}

// ProductService reads the active product listing page by page.
type ProductService struct {
	repo ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// FetchProductPage returns the active products of the given 1-based page.
// A page past the end is an empty result, not an error.
func (s *ProductService) FetchProductPage(ctx context.Context, page, pageSize int) (*ProductPage, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPage, page)
	}
	if pageSize <= 0 {
		pageSize = DefaultProductPageSize
	}

	resp, err := s.repo.List(ctx, data.ProductQuery{Page: page, PageSize: pageSize, ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("fetch product page %d: %w", page, err)
	}

	items := make([]data.Product, 0, len(resp.Data))
	for _, p := range resp.Data {
		if p.Active() {
			items = append(items, p)
		}
	}
	return &ProductPage{Items: items, Total: resp.Total}, nil
}

// CountActive returns the total number of active products.
func (s *ProductService) CountActive(ctx context.Context) (int64, error) {
	resp, err := s.repo.List(ctx, data.ProductQuery{Page: 1, PageSize: 1, ActiveOnly: true})
	if err != nil {
		return 0, fmt.Errorf("count active products: %w", err)
	}
	if resp.Total < 0 {
		return 0, nil
	}
	return resp.Total, nil
}

// TotalPages returns how many sitemap pages are needed for total products,
// capped at MaxProductPages. No products means no pages.
func TotalPages(total int64, pageSize int) int {
	if total <= 0 {
		return 0
	}
	if pageSize <= 0 {
		pageSize = DefaultProductPageSize
	}
	pages := (total + int64(pageSize) - 1) / int64(pageSize)
	if pages > MaxProductPages {
		return MaxProductPages
	}
	return int(pages)
}

var (
	slashRun = regexp.MustCompile(`[\\/]+`)
	spaceRun = regexp.MustCompile(`\s+`)
)

// ProductPathID turns a SKU into the path segment of its product URL.
func ProductPathID(sku string) string {
	if sku == "" {
		return ""
	}
	id := slashRun.ReplaceAllString(sku, "-")
	id = spaceRun.ReplaceAllString(id, "-")
	return url.PathEscape(id)
}
