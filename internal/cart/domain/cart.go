package domain

import (
	"errors"
	"fmt"
	"strings"

	catalog "github.com/CristalT/elico-storefront/internal/catalog/domain"
)

var ErrInvalidLineItem = errors.New("cart: invalid line item")

// LineItem is one cart line. Price is snapshot at add time and never touched
// by quantity updates; Product is a denormalized copy for display.
type LineItem struct {
	ID        int64           `json:"id,omitzero"`
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     float64         `json:"price"`
	Product   catalog.Product `json:"product"`
}

func (li LineItem) Validate() error {
	if strings.TrimSpace(li.ProductID) == "" {
		return fmt.Errorf("%w: missing product id", ErrInvalidLineItem)
	}
	if li.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidLineItem)
	}
	return nil
}

// Total is the value of the lines at their snapshot prices.
func Total(items []LineItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// Count is the number of units, not lines.
func Count(items []LineItem) int {
	var n int
	for _, it := range items {
		n += it.Quantity
	}
	return n
}
