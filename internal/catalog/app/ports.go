package app

import (
	"context"

	"github.com/CristalT/elico-storefront/internal/catalog/domain"
)

// Query narrows a product listing. Zero values mean "no filter, first page".
type Query struct {
	Search string
	Page   int
	Limit  int
}

type ProductGateway interface {
	List(ctx context.Context, q Query) (domain.Page, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	Showcases(ctx context.Context) ([]domain.Showcase, error)
}
