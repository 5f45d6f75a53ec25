package data

import (
	"context"
	"strconv"
)

// NewsQuery selects a page of the news article listing.
type NewsQuery struct {
	Page          int
	PageSize      int
	PublishedOnly bool
}

// NewsRepository reads news articles from the backend API.
type NewsRepository struct {
	api *APIClient
}

// NewNewsRepository creates a new NewsRepository.
func NewNewsRepository(api *APIClient) *NewsRepository {
	return &NewsRepository{api: api}
}

// List retrieves one page of articles.
func (r *NewsRepository) List(ctx context.Context, q NewsQuery) (*Page[Article], error) {
	params := map[string]string{
		"page":      strconv.Itoa(q.Page),
		"page_size": strconv.Itoa(q.PageSize),
	}
	if q.PublishedOnly {
		params["is_published"] = "true"
	}

	var page Page[Article]
	if err := r.api.Get(ctx, "/public/news", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
