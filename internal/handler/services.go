package handler

import (
	"context"
	"parts-storefront/internal/data"
	"parts-storefront/internal/service"
)

// CategoryServicer defines the category tree operations the handlers use.
type CategoryServicer interface {
	GetCategoryTree(ctx context.Context) []data.Category
	LoadCategoryTree(ctx context.Context) ([]data.Category, error)
}

// ProductServicer defines the product listing operations the handlers use.
type ProductServicer interface {
	FetchProductPage(ctx context.Context, page, pageSize int) (*service.ProductPage, error)
	CountActive(ctx context.Context) (int64, error)
}

// NewsServicer defines the news operations the handlers use.
type NewsServicer interface {
	PublishedArticles(ctx context.Context) ([]data.Article, error)
}
