// Package cart keeps shopping carts in the document cache store.
package cart

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Limits on client-submitted values. They keep cart totals finite and
// quantities far from integer overflow.
const (
	MaxQuantity = 9999
	MaxPrice    = 1e7
)

// Item is one product line of a cart.
type Item struct {
	ProductID int64   `json:"product_id"`
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Validate checks an item submitted by a client.
func (i Item) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.ProductID, validation.Required, validation.Min(int64(1))),
		validation.Field(&i.SKU, validation.Required, validation.Length(1, 128)),
		validation.Field(&i.Price, validation.Min(0.0), validation.Max(float64(MaxPrice))),
		validation.Field(&i.Quantity, validation.Max(MaxQuantity)),
	)
}

// Cart is an ordered list of items with at most one line per product.
type Cart struct {
	Items []Item `json:"items"`
}

// Add puts qty units of item into the cart, merging with an existing line for
// the same product. A quantity below 1 adds a single unit. Line quantities
// never exceed MaxQuantity.
func (c *Cart) Add(item Item, qty int) {
	qty = clampQuantity(qty)
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity = clampQuantity(c.Items[i].Quantity + qty)
			return
		}
	}
	item.Quantity = qty
	c.Items = append(c.Items, item)
}

// UpdateQuantity sets the quantity of a product. Zero or less removes it.
// It reports whether the product was in the cart.
func (c *Cart) UpdateQuantity(productID int64, qty int) bool {
	if qty <= 0 {
		return c.Remove(productID)
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = clampQuantity(qty)
			return true
		}
	}
	return false
}

// Remove drops a product from the cart and reports whether it was present.
func (c *Cart) Remove(productID int64) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// Quantity returns the quantity of a product, or 0.
func (c Cart) Quantity(productID int64) int {
	for _, it := range c.Items {
		if it.ProductID == productID {
			return it.Quantity
		}
	}
	return 0
}

// Contains reports whether the product is in the cart.
func (c Cart) Contains(productID int64) bool {
	return c.Quantity(productID) > 0
}

// Total is the sum of price times quantity over all lines.
func (c Cart) Total() float64 {
	var total float64
	for _, it := range c.Items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// ItemCount is the number of units in the cart.
func (c Cart) ItemCount() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

func clampQuantity(qty int) int {
	if qty < 1 {
		return 1
	}
	return min(qty, MaxQuantity)
}
