package app

import (
	"context"
	"fmt"

	"github.com/CristalT/elico-storefront/internal/order/domain"
)

type Service struct {
	gw OrderGateway
}

func NewService(gw OrderGateway) *Service {
	return &Service{gw: gw}
}

// List returns the visitor's order history, newest first.
func (s *Service) List(ctx context.Context) ([]domain.Order, error) {
	return s.gw.List(ctx)
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.Order, error) {
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return domain.Order{}, fmt.Errorf("item %d: quantity must be positive, got %d", i, item.Quantity)
		}
		if item.Price < 0 {
			return domain.Order{}, fmt.Errorf("item %d: price cannot be negative, got %v", i, item.Price)
		}
	}
	return s.gw.Create(ctx, req)
}
