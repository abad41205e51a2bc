package adapter

import (
	"context"

	cartapp "github.com/CristalT/elico-storefront/internal/cart/app"
	cartdomain "github.com/CristalT/elico-storefront/internal/cart/domain"
)

type CartServiceReader struct {
	svc *cartapp.Service
}

func NewCartServiceReader(svc *cartapp.Service) *CartServiceReader {
	return &CartServiceReader{svc: svc}
}

func (r *CartServiceReader) Items(ctx context.Context) ([]cartdomain.LineItem, error) {
	return r.svc.Items(ctx)
}

func (r *CartServiceReader) Clear(ctx context.Context) error {
	return r.svc.Clear(ctx)
}
