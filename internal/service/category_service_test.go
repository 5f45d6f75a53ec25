//go:build unit

package service

import (
	"context"
	"errors"
	"parts-storefront/internal/data"
	"parts-storefront/internal/logger"
	"testing"
)

func slugs(categories []data.Category) []string {
	out := make([]string, len(categories))
	for i, c := range categories {
		out[i] = c.Slug
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCategoryService_GetCategoryTree(t *testing.T) {
	t.Run("nested tree is returned as is", func(t *testing.T) {
		repo := &mockCategoryRepository{categories: []data.Category{
			{ID: 1, Slug: "motors", Path: "motors", Children: []data.Category{
				{ID: 2, Slug: "servo", Path: "motors/servo", ParentID: int64Ptr(1)},
			}},
		}}
		svc := NewCategoryService(repo, logger.Nop())

		tree := svc.GetCategoryTree(context.Background())
		if len(tree) != 1 || len(tree[0].Children) != 1 {
			t.Fatalf("unexpected tree shape: %+v", tree)
		}
		if tree[0].Children[0].Path != "motors/servo" {
			t.Errorf("expected child path 'motors/servo', got %q", tree[0].Children[0].Path)
		}
	})

	t.Run("flat list is assembled", func(t *testing.T) {
		repo := &mockCategoryRepository{categories: []data.Category{
			{ID: 2, Slug: "servo", ParentID: int64Ptr(1)},
			{ID: 1, Slug: "motors"},
		}}
		svc := NewCategoryService(repo, logger.Nop())

		tree := svc.GetCategoryTree(context.Background())
		if len(tree) != 1 || tree[0].Slug != "motors" {
			t.Fatalf("expected single root 'motors', got %v", slugs(tree))
		}
		if got := tree[0].Children[0].Path; got != "motors/servo" {
			t.Errorf("expected computed path 'motors/servo', got %q", got)
		}
	})

	t.Run("backend failure yields empty tree", func(t *testing.T) {
		repo := &mockCategoryRepository{err: errors.New("backend down")}
		svc := NewCategoryService(repo, logger.Nop())

		tree := svc.GetCategoryTree(context.Background())
		if tree == nil || len(tree) != 0 {
			t.Errorf("expected empty non-nil tree, got %v", tree)
		}
	})

	t.Run("LoadCategoryTree propagates failure", func(t *testing.T) {
		wantErr := errors.New("backend down")
		svc := NewCategoryService(&mockCategoryRepository{err: wantErr}, logger.Nop())

		if _, err := svc.LoadCategoryTree(context.Background()); !errors.Is(err, wantErr) {
			t.Errorf("expected %v, got %v", wantErr, err)
		}
	})
}

func TestBuildTree(t *testing.T) {
	t.Run("siblings sorted by sort order then name", func(t *testing.T) {
		flat := []data.Category{
			{ID: 1, Slug: "root", Name: "Root"},
			{ID: 2, Slug: "zeta", Name: "zeta", SortOrder: 1, ParentID: int64Ptr(1)},
			{ID: 3, Slug: "alpha", Name: "Alpha", SortOrder: 1, ParentID: int64Ptr(1)},
			{ID: 4, Slug: "first", Name: "First", SortOrder: 0, ParentID: int64Ptr(1)},
			{ID: 5, Slug: "beta", Name: "beta", SortOrder: 1, ParentID: int64Ptr(1)},
		}
		tree := BuildTree(flat)
		got := slugs(tree[0].Children)
		want := []string{"first", "alpha", "beta", "zeta"}
		if !equalStrings(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("orphans become roots", func(t *testing.T) {
		tree := BuildTree([]data.Category{
			{ID: 1, Slug: "a", Name: "A"},
			{ID: 2, Slug: "b", Name: "B", ParentID: int64Ptr(99)},
		})
		if len(tree) != 2 {
			t.Fatalf("expected 2 roots, got %v", slugs(tree))
		}
		if tree[1].Path != "b" {
			t.Errorf("expected orphan path 'b', got %q", tree[1].Path)
		}
	})

	t.Run("parent cycle terminates with every node once", func(t *testing.T) {
		tree := BuildTree([]data.Category{
			{ID: 1, Slug: "a", Name: "A", ParentID: int64Ptr(2)},
			{ID: 2, Slug: "b", Name: "B", ParentID: int64Ptr(1)},
			{ID: 3, Slug: "c", Name: "C", ParentID: int64Ptr(3)},
		})
		flat := Flatten(tree)
		if len(flat) != 3 {
			t.Errorf("expected 3 categories after flatten, got %v", slugs(flat))
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if tree := BuildTree(nil); len(tree) != 0 {
			t.Errorf("expected empty tree, got %v", tree)
		}
	})
}

func TestFlatten(t *testing.T) {
	tree := []data.Category{
		{ID: 1, Slug: "a", Children: []data.Category{
			{ID: 2, Slug: "a1", Children: []data.Category{{ID: 3, Slug: "a1x"}}},
			{ID: 4, Slug: "a2"},
		}},
		{ID: 5, Slug: "b", Children: []data.Category{
			{ID: 2, Slug: "a1-dup"},
		}},
	}
	got := slugs(Flatten(tree))
	want := []string{"a", "a1", "a1x", "a2", "b"}
	if !equalStrings(got, want) {
		t.Errorf("expected pre-order %v, got %v", want, got)
	}
}

func TestResolvePath(t *testing.T) {
	tree := BuildTree([]data.Category{
		{ID: 1, Slug: "motors", Name: "Motors"},
		{ID: 2, Slug: "servo", Name: "Servo", ParentID: int64Ptr(1)},
		{ID: 3, Slug: "alpha-i", Name: "Alpha i", ParentID: int64Ptr(2)},
		{ID: 4, Slug: "boards", Name: "Boards"},
	})

	testCases := []struct {
		name         string
		path         string
		wantOK       bool
		wantSlug     string
		wantCanon    string
		wantRedirect bool
		wantCrumbs   int
	}{
		{"full path", "motors/servo/alpha-i", true, "alpha-i", "motors/servo/alpha-i", false, 3},
		{"slashes trimmed", "/motors/servo/", true, "servo", "motors/servo", false, 2},
		{"legacy single slug", "alpha-i", true, "alpha-i", "motors/servo/alpha-i", true, 3},
		{"wrong ancestors", "boards/alpha-i", true, "alpha-i", "motors/servo/alpha-i", true, 3},
		{"root", "boards", true, "boards", "boards", false, 1},
		{"unknown", "motors/unknown", false, "", "", false, 0},
		{"empty", "/", false, "", "", false, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, ok := ResolvePath(tree, tc.path)
			if ok != tc.wantOK {
				t.Fatalf("expected ok=%v, got %v", tc.wantOK, ok)
			}
			if !ok {
				return
			}
			if res.Category.Slug != tc.wantSlug {
				t.Errorf("expected slug %q, got %q", tc.wantSlug, res.Category.Slug)
			}
			if res.Canonical() != tc.wantCanon {
				t.Errorf("expected canonical %q, got %q", tc.wantCanon, res.Canonical())
			}
			if res.NeedsRedirect() != tc.wantRedirect {
				t.Errorf("expected NeedsRedirect=%v", tc.wantRedirect)
			}
			if len(res.Breadcrumb) != tc.wantCrumbs {
				t.Errorf("expected %d breadcrumb entries, got %d", tc.wantCrumbs, len(res.Breadcrumb))
			}
		})
	}
}
