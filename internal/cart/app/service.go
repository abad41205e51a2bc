package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/CristalT/elico-storefront/internal/cart/domain"
	"github.com/CristalT/elico-storefront/internal/collection"
)

// Service is the cart of one visitor session: a reconciling collection of
// line items, local-backed while anonymous and remote-backed once
// authenticated.
type Service struct {
	col *collection.Service[domain.LineItem]
}

func NewService(local collection.Backend[domain.LineItem], remote collection.RemoteBackend[domain.LineItem], log *slog.Logger) (*Service, error) {
	col, err := collection.New(collection.Config[domain.LineItem]{
		Name:     "cart",
		Key:      func(li domain.LineItem) string { return li.ProductID },
		Validate: domain.LineItem.Validate,
		Local:    local,
		Remote:   remote,
		Logger:   log,
	})
	if err != nil {
		return nil, err
	}
	return &Service{col: col}, nil
}

func (s *Service) SetIdentity(ctx context.Context, id collection.Identity) error {
	return s.col.SetIdentity(ctx, id)
}

func (s *Service) Identity() collection.Identity {
	return s.col.Identity()
}

func (s *Service) Sync(ctx context.Context) error {
	return s.col.Sync(ctx)
}

func (s *Service) Items(ctx context.Context) ([]domain.LineItem, error) {
	return s.col.GetAll(ctx)
}

func (s *Service) Add(ctx context.Context, item domain.LineItem) error {
	return s.col.Add(ctx, item)
}

func (s *Service) Remove(ctx context.Context, productID string) error {
	return s.col.Remove(ctx, productID)
}

// UpdateQuantity changes a line's quantity in place. Quantities below one
// are rejected here, before any optimistic apply. The price snapshot is
// untouched.
func (s *Service) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", domain.ErrInvalidLineItem)
	}
	return s.col.Update(ctx, productID, func(li domain.LineItem) domain.LineItem {
		li.Quantity = quantity
		return li
	})
}

func (s *Service) Clear(ctx context.Context) error {
	return s.col.Clear(ctx)
}

func (s *Service) Exists(productID string) bool {
	return s.col.Exists(productID)
}

// Total and Count read the in-memory snapshot; no store round trip.
func (s *Service) Total() float64 {
	return domain.Total(s.col.Snapshot())
}

func (s *Service) Count() int {
	return domain.Count(s.col.Snapshot())
}
