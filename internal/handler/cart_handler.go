package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"parts-storefront/internal/cart"
	"parts-storefront/internal/logger"
	"parts-storefront/internal/middleware"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const (
	cartCookieName = "cart_id"
	maxCartBody    = 1 << 16
)

// cartResponse is the JSON representation of a cart.
type cartResponse struct {
	Items     []cart.Item `json:"items"`
	Total     float64     `json:"total"`
	ItemCount int         `json:"item_count"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartHandler exposes the cart as a small JSON API.
type CartHandler struct {
	carts *cart.Service
	log   logger.Logger
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(carts *cart.Service, log logger.Logger) *CartHandler {
	return &CartHandler{carts: carts, log: log}
}

// cartID returns the cart id from the request cookie, or "" when there is none.
func cartID(r *http.Request) string {
	c, err := r.Cookie(cartCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// issueCartID creates a new cart id and sets it as the cart cookie.
func issueCartID(w http.ResponseWriter, r *http.Request) (string, error) {
	id, err := cart.NewID()
	if err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cartCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(cart.TTL.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	return id, nil
}

// load returns the cart of the request. Unknown or malformed ids yield an empty cart.
func (h *CartHandler) load(r *http.Request, id string) (*cart.Cart, *middleware.AppError) {
	if !cart.ValidID(id) {
		return &cart.Cart{Items: []cart.Item{}}, nil
	}
	c, err := h.carts.Load(r.Context(), id)
	if err != nil {
		return nil, &middleware.AppError{Error: err, Message: "Failed to load cart", Code: http.StatusInternalServerError}
	}
	return c, nil
}

// writableID returns the request's cart id, issuing a new one when the
// request has none or a malformed one.
func (h *CartHandler) writableID(w http.ResponseWriter, r *http.Request) (string, *middleware.AppError) {
	if id := cartID(r); cart.ValidID(id) {
		return id, nil
	}
	id, err := issueCartID(w, r)
	if err != nil {
		return "", &middleware.AppError{Error: err, Message: "Failed to create cart", Code: http.StatusInternalServerError}
	}
	return id, nil
}

// save stores the cart and writes it back. The body is encoded first so a cart
// that cannot be encoded is never stored.
func (h *CartHandler) save(w http.ResponseWriter, r *http.Request, id string, c *cart.Cart) *middleware.AppError {
	body, appErr := encodeCart(c)
	if appErr != nil {
		return appErr
	}
	if err := h.carts.Save(r.Context(), id, c); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to save cart", Code: http.StatusInternalServerError}
	}
	writeJSON(w, http.StatusOK, body)
	return nil
}

func writeCart(w http.ResponseWriter, status int, c *cart.Cart) *middleware.AppError {
	body, appErr := encodeCart(c)
	if appErr != nil {
		return appErr
	}
	writeJSON(w, status, body)
	return nil
}

func encodeCart(c *cart.Cart) ([]byte, *middleware.AppError) {
	items := c.Items
	if items == nil {
		items = []cart.Item{}
	}
	body, err := json.Marshal(cartResponse{Items: items, Total: c.Total(), ItemCount: c.ItemCount()})
	if err != nil {
		return nil, &middleware.AppError{Error: err, Message: "Failed to encode cart", Code: http.StatusInternalServerError}
	}
	return body, nil
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	w.Write(body)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) *middleware.AppError {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCartBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid request body", Code: http.StatusBadRequest}
	}
	return nil
}

func productIDParam(r *http.Request) (int64, *middleware.AppError) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil || id < 1 {
		return 0, &middleware.AppError{Error: fmt.Errorf("bad product id %q", chi.URLParam(r, "productID")), Message: "Invalid product id", Code: http.StatusBadRequest}
	}
	return id, nil
}

// getHandler returns the current cart.
func (h *CartHandler) getHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	c, appErr := h.load(r, cartID(r))
	if appErr != nil {
		return appErr
	}
	return writeCart(w, http.StatusOK, c)
}

// addItemHandler adds a product to the cart.
func (h *CartHandler) addItemHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var item cart.Item
	if appErr := decodeJSON(w, r, &item); appErr != nil {
		return appErr
	}
	if err := item.Validate(); err != nil {
		return &middleware.AppError{Error: err, Message: err.Error(), Code: http.StatusUnprocessableEntity}
	}

	id, appErr := h.writableID(w, r)
	if appErr != nil {
		return appErr
	}
	c, appErr := h.load(r, id)
	if appErr != nil {
		return appErr
	}
	c.Add(item, item.Quantity)
	return h.save(w, r, id, c)
}

// updateItemHandler sets the quantity of a product in the cart.
func (h *CartHandler) updateItemHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	productID, appErr := productIDParam(r)
	if appErr != nil {
		return appErr
	}
	var req updateItemRequest
	if appErr := decodeJSON(w, r, &req); appErr != nil {
		return appErr
	}

	id := cartID(r)
	c, appErr := h.load(r, id)
	if appErr != nil {
		return appErr
	}
	if !c.UpdateQuantity(productID, req.Quantity) {
		return &middleware.AppError{Error: fmt.Errorf("product %d not in cart", productID), Message: "Product not in cart", Code: http.StatusNotFound}
	}
	return h.save(w, r, id, c)
}

// removeItemHandler removes a product from the cart.
func (h *CartHandler) removeItemHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	productID, appErr := productIDParam(r)
	if appErr != nil {
		return appErr
	}

	id := cartID(r)
	c, appErr := h.load(r, id)
	if appErr != nil {
		return appErr
	}
	if !c.Remove(productID) {
		return &middleware.AppError{Error: fmt.Errorf("product %d not in cart", productID), Message: "Product not in cart", Code: http.StatusNotFound}
	}
	return h.save(w, r, id, c)
}

// clearHandler empties the cart.
func (h *CartHandler) clearHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	c := &cart.Cart{}
	if id := cartID(r); cart.ValidID(id) {
		if err := h.carts.Delete(r.Context(), id); err != nil {
			return &middleware.AppError{Error: err, Message: "Failed to clear cart", Code: http.StatusInternalServerError}
		}
	}
	return writeCart(w, http.StatusOK, c)
}
