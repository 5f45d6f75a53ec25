package data

import "time"

// Category is a node of the storefront category tree as served by the backend.
// Tree endpoints nest Children and fill Path; flat endpoints leave both empty.
type Category struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Path        string     `json:"path,omitempty"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url"`
	SortOrder   int        `json:"sort_order"`
	IsActive    bool       `json:"is_active"`
	ParentID    *int64     `json:"parent_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Children    []Category `json:"children,omitempty"`
}

// URLPath returns the path segment used in public category URLs.
func (c Category) URLPath() string {
	if c.Path != "" {
		return c.Path
	}
	return c.Slug
}

// Product is the projection of a catalog product needed for sitemaps and the cart.
type Product struct {
	ID            int64     `json:"id"`
	SKU           string    `json:"sku"`
	Slug          string    `json:"slug,omitempty"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
	IsFeatured    bool      `json:"is_featured"`
	IsActive      *bool     `json:"is_active,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Active reports whether the product may be listed. A missing flag counts as
// active because the listing endpoint is already filtered server side.
func (p Product) Active() bool {
	return p.IsActive == nil || *p.IsActive
}

// Article is the projection of a news article needed for the news sitemap.
type Article struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	IsPublished bool       `json:"is_published"`
	IsFeatured  bool       `json:"is_featured"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// LastModified returns the most relevant timestamp of the article, or the zero time.
func (a Article) LastModified() time.Time {
	if a.UpdatedAt != nil && !a.UpdatedAt.IsZero() {
		return *a.UpdatedAt
	}
	if a.PublishedAt != nil {
		return *a.PublishedAt
	}
	return time.Time{}
}

// Page is the paginated payload the backend wraps in its response envelope.
type Page[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}
