package data

import (
	"context"
)

// CategoryRepository reads categories from the backend API.
type CategoryRepository struct {
	api *APIClient
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(api *APIClient) *CategoryRepository {
	return &CategoryRepository{api: api}
}

// List returns the public category collection. Depending on the backend
// version it is either a nested tree or a flat list with parent ids.
func (r *CategoryRepository) List(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := r.api.Get(ctx, "/public/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
