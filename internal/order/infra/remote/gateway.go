package remote

import (
	"context"
	"net/url"

	"github.com/CristalT/elico-storefront/internal/order/domain"
	"github.com/CristalT/elico-storefront/pkg/commerce"
)

type TokenFunc func() string

// Gateway reads and creates orders on the commerce API on behalf of an
// authenticated visitor.
type Gateway struct {
	client *commerce.Client
	token  TokenFunc
}

func NewGateway(client *commerce.Client, token TokenFunc) *Gateway {
	return &Gateway{client: client, token: token}
}

func (g *Gateway) List(ctx context.Context) ([]domain.Order, error) {
	params := url.Values{}
	params.Set("order", "desc")
	params.Set("orderBy", "createdAt")

	var out struct {
		Data []domain.Order `json:"data"`
	}
	if err := g.client.WithToken(g.token()).Get(ctx, "/orders", params, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (g *Gateway) Create(ctx context.Context, req domain.CreateRequest) (domain.Order, error) {
	var order domain.Order
	if err := g.client.WithToken(g.token()).Post(ctx, "/orders", req, &order); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}
