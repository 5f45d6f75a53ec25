package service

import (
	"context"
	"fmt"
	"parts-storefront/internal/data"
)

// MaxNewsArticles bounds the single news sitemap.
const MaxNewsArticles = 1000

// NewsService reads published news articles.
type NewsService struct {
	repo NewsRepository
}

// NewNewsService creates a new NewsService.
func NewNewsService(repo NewsRepository) *NewsService {
	return &NewsService{repo: repo}
}

// PublishedArticles returns up to MaxNewsArticles published articles.
func (s *NewsService) PublishedArticles(ctx context.Context) ([]data.Article, error) {
	resp, err := s.repo.List(ctx, data.NewsQuery{Page: 1, PageSize: MaxNewsArticles, PublishedOnly: true})
	if err != nil {
		return nil, fmt.Errorf("fetch published articles: %w", err)
	}

	articles := make([]data.Article, 0, len(resp.Data))
	for _, a := range resp.Data {
		if a.Slug == "" {
			continue
		}
		articles = append(articles, a)
	}
	return articles, nil
}
