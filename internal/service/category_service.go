package service

import (
	"context"
	"parts-storefront/internal/data"
	"parts-storefront/internal/logger"
	"sort"
	"strings"
)

// CategoryService builds the storefront category tree from the backend collection.
type CategoryService struct {
	repo CategoryRepository
	log  logger.Logger
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo CategoryRepository, log logger.Logger) *CategoryService {
	return &CategoryService{repo: repo, log: log}
}

// GetCategoryTree returns the category forest. Backend failures are logged and
// yield an empty tree so page rendering can continue without a sidebar.
func (s *CategoryService) GetCategoryTree(ctx context.Context) []data.Category {
	tree, err := s.LoadCategoryTree(ctx)
	if err != nil {
		s.log.Error(err, "Failed to load category tree")
		return []data.Category{}
	}
	return tree
}

// LoadCategoryTree returns the category forest or the backend error.
func (s *CategoryService) LoadCategoryTree(ctx context.Context) ([]data.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if isFlat(categories) {
		return BuildTree(categories), nil
	}
	return categories, nil
}

// isFlat reports whether the backend sent a flat list with parent links
// instead of a nested tree.
func isFlat(categories []data.Category) bool {
	hasParent := false
	for _, c := range categories {
		if len(c.Children) > 0 {
			return false
		}
		if c.ParentID != nil {
			hasParent = true
		}
	}
	return hasParent
}

// BuildTree assembles a flat category list into a sorted forest and fills in
// each node's path. Categories whose parent is unknown become roots. A node is
// placed at most once, so cyclic parent links cannot loop forever.
func BuildTree(flat []data.Category) []data.Category {
	byID := make(map[int64]data.Category, len(flat))
	childrenOf := make(map[int64][]int64)
	var roots []int64

	for _, c := range flat {
		if _, dup := byID[c.ID]; dup {
			continue
		}
		c.Children = nil
		byID[c.ID] = c
	}
	for _, c := range flat {
		if c.ParentID != nil && *c.ParentID != c.ID {
			if _, ok := byID[*c.ParentID]; ok {
				childrenOf[*c.ParentID] = append(childrenOf[*c.ParentID], c.ID)
				continue
			}
		}
		roots = append(roots, c.ID)
	}

	visited := make(map[int64]bool, len(byID))
	var build func(ids []int64, parentPath string) []data.Category
	build = func(ids []int64, parentPath string) []data.Category {
		nodes := make([]data.Category, 0, len(ids))
		for _, id := range ids {
			if visited[id] {
				continue
			}
			visited[id] = true

			node := byID[id]
			node.Path = node.Slug
			if parentPath != "" {
				node.Path = parentPath + "/" + node.Slug
			}
			node.Children = build(childrenOf[id], node.Path)
			nodes = append(nodes, node)
		}
		sortCategories(nodes)
		return nodes
	}

	tree := build(roots, "")

	// Nodes only reachable through a parent cycle never hang off a root.
	for _, c := range flat {
		if !visited[c.ID] {
			tree = append(tree, build([]int64{c.ID}, "")...)
		}
	}
	sortCategories(tree)
	return tree
}

// sortCategories orders siblings by sort_order, then case-insensitively by name.
func sortCategories(nodes []data.Category) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].SortOrder != nodes[j].SortOrder {
			return nodes[i].SortOrder < nodes[j].SortOrder
		}
		return strings.ToLower(nodes[i].Name) < strings.ToLower(nodes[j].Name)
	})
}

// Flatten walks the forest depth-first in pre-order. A category id is emitted
// once; later occurrences and their subtrees are skipped.
func Flatten(tree []data.Category) []data.Category {
	var out []data.Category
	seen := make(map[int64]bool)
	var walk func(nodes []data.Category)
	walk = func(nodes []data.Category) {
		for _, n := range nodes {
			if seen[n.ID] {
				continue
			}
			seen[n.ID] = true
			out = append(out, n)
			walk(n.Children)
		}
	}
	walk(tree)
	return out
}

// Resolution is the outcome of matching a request path against the tree.
type Resolution struct {
	Category   data.Category
	Breadcrumb []data.Category
	Requested  string
}

// Canonical returns the canonical URL path of the resolved category, without
// the /categories prefix.
func (r Resolution) Canonical() string {
	return r.Category.URLPath()
}

// NeedsRedirect reports whether the requested path differs from the canonical one.
func (r Resolution) NeedsRedirect() bool {
	return r.Canonical() != r.Requested
}

// ResolvePath finds the category addressed by a slash-separated slug path.
// Full ancestor paths are matched first; when that fails the last segment is
// matched against every slug in the tree to support legacy single-slug URLs.
func ResolvePath(tree []data.Category, path string) (Resolution, bool) {
	requested := strings.Trim(path, "/")
	if requested == "" {
		return Resolution{}, false
	}
	segments := strings.Split(requested, "/")

	level := tree
	var trail []data.Category
	for _, seg := range segments {
		found := false
		for _, c := range level {
			if c.Slug == seg {
				trail = append(trail, c)
				level = c.Children
				found = true
				break
			}
		}
		if !found {
			trail = nil
			break
		}
	}
	if len(trail) == len(segments) {
		return Resolution{Category: trail[len(trail)-1], Breadcrumb: trail, Requested: requested}, true
	}

	last := segments[len(segments)-1]
	if trail := findBySlug(tree, last, nil, make(map[int64]bool)); trail != nil {
		return Resolution{Category: trail[len(trail)-1], Breadcrumb: trail, Requested: requested}, true
	}
	return Resolution{}, false
}

func findBySlug(nodes []data.Category, slug string, parents []data.Category, seen map[int64]bool) []data.Category {
	for _, n := range nodes {
		if seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		trail := append(append([]data.Category{}, parents...), n)
		if n.Slug == slug {
			return trail
		}
		if found := findBySlug(n.Children, slug, trail, seen); found != nil {
			return found
		}
	}
	return nil
}
