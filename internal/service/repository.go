package service

import (
	"context"
	"parts-storefront/internal/data"
)

// CategoryRepository defines the backend operations the category tree needs.
type CategoryRepository interface {
	List(ctx context.Context) ([]data.Category, error)
}

// ProductRepository defines the backend operations the product sitemaps need.
type ProductRepository interface {
	List(ctx context.Context, q data.ProductQuery) (*data.Page[data.Product], error)
}

// NewsRepository defines the backend operations the news sitemap needs.
type NewsRepository interface {
	List(ctx context.Context, q data.NewsQuery) (*data.Page[data.Article], error)
}
