package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"parts-storefront/internal/logger"
	"parts-storefront/internal/middleware"
	"parts-storefront/internal/service"
	"parts-storefront/internal/view"

	"github.com/go-chi/chi/v5"
)

const metaDescriptionLength = 160

// CategoryHandler renders the category landing pages.
type CategoryHandler struct {
	categories CategoryServicer
	view       *view.View
	log        logger.Logger
}

// NewCategoryHandler creates a new CategoryHandler with the given dependencies.
func NewCategoryHandler(cs CategoryServicer, v *view.View, log logger.Logger) *CategoryHandler {
	return &CategoryHandler{
		categories: cs,
		view:       v,
		log:        log,
	}
}

// listHandler renders the root categories.
func (h *CategoryHandler) listHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	base := middleware.GetBaseURL(r.Context())
	data := map[string]interface{}{
		"Title":       "Product Categories | Vcocnc FANUC Parts",
		"Description": "Browse all FANUC part categories: servo motors, PCB boards, I/O modules, control units, and more.",
		"Canonical":   base + "/categories",
		"Categories":  h.categories.GetCategoryTree(r.Context()),
	}
	if err := h.view.Render(w, http.StatusOK, "categories.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render categories", Code: http.StatusInternalServerError}
	}
	return nil
}

// viewHandler resolves a category path and renders the category, redirecting
// non-canonical paths to the canonical one.
func (h *CategoryHandler) viewHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	requested := chi.URLParam(r, "*")
	if unescaped, err := url.PathUnescape(requested); err == nil {
		requested = unescaped
	}

	tree := h.categories.GetCategoryTree(r.Context())
	res, ok := service.ResolvePath(tree, requested)
	if !ok {
		return &middleware.AppError{Error: fmt.Errorf("category %q not found", requested), Message: "Category not found", Code: http.StatusNotFound}
	}
	if res.NeedsRedirect() {
		http.Redirect(w, r, "/categories/"+res.Canonical(), http.StatusMovedPermanently)
		return nil
	}

	c := res.Category
	description := view.Truncate(view.PlainText(c.Description), metaDescriptionLength)
	if description == "" {
		description = fmt.Sprintf("Browse %s products from Vcocnc. High-quality FANUC automation parts with fast shipping.", c.Name)
	}

	data := map[string]interface{}{
		"Title":       fmt.Sprintf("%s - FANUC Parts | Vcocnc", c.Name),
		"Description": description,
		"Canonical":   middleware.GetBaseURL(r.Context()) + "/categories/" + res.Canonical(),
		"Category":    c,
		"Breadcrumb":  res.Breadcrumb,
	}
	if err := h.view.Render(w, http.StatusOK, "category.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render category", Code: http.StatusInternalServerError}
	}
	return nil
}
