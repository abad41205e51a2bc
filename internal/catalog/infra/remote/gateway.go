package remote

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/CristalT/elico-storefront/internal/catalog/app"
	"github.com/CristalT/elico-storefront/internal/catalog/domain"
	"github.com/CristalT/elico-storefront/pkg/commerce"
)

// Gateway reads the product catalog from the commerce API. Browsing is a
// guest-accessible surface, so the client carries no token.
type Gateway struct {
	client *commerce.Client
}

func NewGateway(client *commerce.Client) *Gateway {
	return &Gateway{client: client}
}

func (g *Gateway) List(ctx context.Context, q app.Query) (domain.Page, error) {
	params := url.Values{}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("perPage", strconv.Itoa(q.Limit))

	var page domain.Page
	if err := g.client.Get(ctx, "/products", params, &page); err != nil {
		return domain.Page{}, err
	}
	return page, nil
}

func (g *Gateway) Get(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product
	if err := g.client.Get(ctx, "/products/"+url.PathEscape(id), nil, &p); err != nil {
		if commerce.IsNotFound(err) {
			return domain.Product{}, fmt.Errorf("product %s: %w", id, app.ErrNotFound)
		}
		return domain.Product{}, err
	}
	return p, nil
}

func (g *Gateway) Showcases(ctx context.Context) ([]domain.Showcase, error) {
	var out []domain.Showcase
	if err := g.client.Get(ctx, "/products/showcases", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
