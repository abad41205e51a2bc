package app

import (
	"context"

	"github.com/CristalT/elico-storefront/internal/order/domain"
)

type OrderGateway interface {
	List(ctx context.Context) ([]domain.Order, error)
	Create(ctx context.Context, req domain.CreateRequest) (domain.Order, error)
}
