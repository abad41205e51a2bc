package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	catalog "github.com/CristalT/elico-storefront/internal/catalog/domain"
)

var ErrInvalidFavorite = errors.New("favorites: invalid item")

// Favorite marks one product. CreatedAt is server-assigned for authenticated
// favorites; local-only entries carry the time the visitor marked them.
type Favorite struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Product   catalog.Product `json:"product"`
	CreatedAt time.Time       `json:"createdAt,omitzero"`
}

// FromProduct builds the local-only representation, where the favorite id is
// the product id.
func FromProduct(p catalog.Product, now time.Time) Favorite {
	return Favorite{
		ID:        p.ID,
		ProductID: p.ID,
		Product:   p,
		CreatedAt: now,
	}
}

func (f Favorite) Validate() error {
	if strings.TrimSpace(f.ProductID) == "" {
		return fmt.Errorf("%w: missing product id", ErrInvalidFavorite)
	}
	return nil
}
