//go:build unit

package service

import (
	"context"
	"parts-storefront/internal/data"
)

// mockCategoryRepository is a mock implementation of the CategoryRepository interface.
type mockCategoryRepository struct {
	categories []data.Category
	err        error
	listCalled int
}

var _ CategoryRepository = (*mockCategoryRepository)(nil)

func (m *mockCategoryRepository) List(ctx context.Context) ([]data.Category, error) {
	m.listCalled++
	if m.err != nil {
		return nil, m.err
	}
	return m.categories, nil
}

// mockProductRepository is a mock implementation of the ProductRepository interface.
type mockProductRepository struct {
	page      *data.Page[data.Product]
	err       error
	lastQuery data.ProductQuery
}

var _ ProductRepository = (*mockProductRepository)(nil)

func (m *mockProductRepository) List(ctx context.Context, q data.ProductQuery) (*data.Page[data.Product], error) {
	m.lastQuery = q
	if m.err != nil {
		return nil, m.err
	}
	if m.page == nil {
		return &data.Page[data.Product]{}, nil
	}
	return m.page, nil
}

// mockNewsRepository is a mock implementation of the NewsRepository interface.
type mockNewsRepository struct {
	page      *data.Page[data.Article]
	err       error
	lastQuery data.NewsQuery
}

var _ NewsRepository = (*mockNewsRepository)(nil)

func (m *mockNewsRepository) List(ctx context.Context, q data.NewsQuery) (*data.Page[data.Article], error) {
	m.lastQuery = q
	if m.err != nil {
		return nil, m.err
	}
	if m.page == nil {
		return &data.Page[data.Article]{}, nil
	}
	return m.page, nil
}

func int64Ptr(v int64) *int64 { return &v }

func boolPtr(v bool) *bool { return &v }
