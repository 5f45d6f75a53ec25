//go:build unit

package cart

import (
	"math"
	"testing"
)

func TestCart_Add(t *testing.T) {
	var c Cart
	c.Add(Item{ProductID: 1, SKU: "A06B-0123-B075", Price: 100}, 2)
	c.Add(Item{ProductID: 2, SKU: "A20B-8200-0846", Price: 50}, 0)
	c.Add(Item{ProductID: 1, SKU: "A06B-0123-B075", Price: 100}, 3)

	if len(c.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(c.Items))
	}
	if got := c.Quantity(1); got != 5 {
		t.Errorf("expected merged quantity 5, got %d", got)
	}
	if got := c.Quantity(2); got != 1 {
		t.Errorf("expected quantity below 1 to add one unit, got %d", got)
	}
	if got := c.ItemCount(); got != 6 {
		t.Errorf("expected 6 units, got %d", got)
	}
	if got := c.Total(); math.Abs(got-550) > 1e-9 {
		t.Errorf("expected total 550, got %v", got)
	}
}

func TestCart_QuantityLimit(t *testing.T) {
	var c Cart
	c.Add(Item{ProductID: 1, Price: 1}, math.MaxInt)
	c.Add(Item{ProductID: 1, Price: 1}, 1)
	if got := c.Quantity(1); got != MaxQuantity {
		t.Errorf("expected quantity capped at %d, got %d", MaxQuantity, got)
	}
	c.UpdateQuantity(1, math.MaxInt)
	if got := c.ItemCount(); got != MaxQuantity {
		t.Errorf("expected item count %d, got %d", MaxQuantity, got)
	}
}

func TestCart_UpdateQuantityAndRemove(t *testing.T) {
	var c Cart
	c.Add(Item{ProductID: 1, Price: 10}, 1)
	c.Add(Item{ProductID: 2, Price: 20}, 1)

	if !c.UpdateQuantity(1, 4) || c.Quantity(1) != 4 {
		t.Errorf("expected quantity 4, got %d", c.Quantity(1))
	}
	if c.UpdateQuantity(99, 4) {
		t.Error("expected UpdateQuantity on a missing product to report false")
	}
	if !c.UpdateQuantity(2, 0) || c.Contains(2) {
		t.Error("expected zero quantity to remove the product")
	}
	if !c.Remove(1) || c.Contains(1) {
		t.Error("expected product 1 to be removed")
	}
	if c.Remove(1) {
		t.Error("expected second Remove to report false")
	}

	c.Add(Item{ProductID: 3, Price: 1}, 1)
	c.Clear()
	if c.ItemCount() != 0 || c.Total() != 0 {
		t.Error("expected empty cart after Clear")
	}
}

func TestItem_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		item    Item
		wantErr bool
	}{
		{"valid", Item{ProductID: 1, SKU: "A06B-0123-B075", Price: 10}, false},
		{"missing product id", Item{SKU: "A06B"}, true},
		{"missing sku", Item{ProductID: 1}, true},
		{"negative price", Item{ProductID: 1, SKU: "A06B", Price: -1}, true},
		{"price too large", Item{ProductID: 1, SKU: "A06B", Price: 1e308}, true},
		{"quantity too large", Item{ProductID: 1, SKU: "A06B", Quantity: math.MaxInt}, true},
		{"maximum quantity", Item{ProductID: 1, SKU: "A06B", Price: MaxPrice, Quantity: MaxQuantity}, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.item.Validate(); (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
