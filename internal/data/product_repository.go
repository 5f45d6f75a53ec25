package data

import (
	"context"
	"strconv"
)

// ProductQuery selects a page of the product listing.
type ProductQuery struct {
	Page       int
	PageSize   int
	ActiveOnly bool
}

// ProductRepository reads the paginated product listing from the backend API.
type ProductRepository struct {
	api *APIClient
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(api *APIClient) *ProductRepository {
	return &ProductRepository{api: api}
}

// List retrieves one page of products.
func (r *ProductRepository) List(ctx context.Context, q ProductQuery) (*Page[Product], error) {
	params := map[string]string{
		"page":      strconv.Itoa(q.Page),
		"page_size": strconv.Itoa(q.PageSize),
	}
	if q.ActiveOnly {
		params["is_active"] = "true"
	}

	var page Page[Product]
	if err := r.api.Get(ctx, "/public/products", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
