package app

import (
	"context"
	"errors"
	"strings"

	"github.com/CristalT/elico-storefront/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	gw ProductGateway
}

func NewService(gw ProductGateway) *Service {
	return &Service{
		gw: gw,
	}
}

func (s *Service) ListProducts(ctx context.Context, q Query) (domain.Page, error) {
	q.Search = strings.TrimSpace(q.Search)
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 20
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	return s.gw.List(ctx, q)
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.gw.Get(ctx, id)
}

func (s *Service) Showcases(ctx context.Context) ([]domain.Showcase, error) {
	return s.gw.Showcases(ctx)
}
