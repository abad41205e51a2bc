package adapter

import (
	"context"

	orderapp "github.com/CristalT/elico-storefront/internal/order/app"
	orderdomain "github.com/CristalT/elico-storefront/internal/order/domain"
)

type OrderServicePlacer struct {
	svc *orderapp.Service
}

func NewOrderServicePlacer(svc *orderapp.Service) *OrderServicePlacer {
	return &OrderServicePlacer{svc: svc}
}

func (p *OrderServicePlacer) Create(ctx context.Context, req orderdomain.CreateRequest) (orderdomain.Order, error) {
	return p.svc.Create(ctx, req)
}
