package app

import (
	"context"
	"log/slog"
	"time"

	catalog "github.com/CristalT/elico-storefront/internal/catalog/domain"
	"github.com/CristalT/elico-storefront/internal/collection"
	"github.com/CristalT/elico-storefront/internal/favorites/domain"
)

// Service is the favorites list of one visitor session, the second instance
// of the reconciling collection pattern next to the cart.
type Service struct {
	col *collection.Service[domain.Favorite]
	now func() time.Time
}

func NewService(local collection.Backend[domain.Favorite], remote collection.RemoteBackend[domain.Favorite], log *slog.Logger) (*Service, error) {
	col, err := collection.New(collection.Config[domain.Favorite]{
		Name:     "favorites",
		Key:      func(f domain.Favorite) string { return f.ProductID },
		Validate: domain.Favorite.Validate,
		Local:    local,
		Remote:   remote,
		Logger:   log,
	})
	if err != nil {
		return nil, err
	}
	return &Service{col: col, now: time.Now}, nil
}

func (s *Service) SetIdentity(ctx context.Context, id collection.Identity) error {
	return s.col.SetIdentity(ctx, id)
}

func (s *Service) Sync(ctx context.Context) error {
	return s.col.Sync(ctx)
}

func (s *Service) GetAll(ctx context.Context) ([]domain.Favorite, error) {
	return s.col.GetAll(ctx)
}

func (s *Service) Exists(productID string) bool {
	return s.col.Exists(productID)
}

// Toggle adds the product to the favorites, or removes it when it is
// already marked.
func (s *Service) Toggle(ctx context.Context, p catalog.Product) error {
	if s.col.Exists(p.ID) {
		return s.col.Remove(ctx, p.ID)
	}
	return s.col.Add(ctx, domain.FromProduct(p, s.now().UTC()))
}

func (s *Service) Remove(ctx context.Context, productID string) error {
	return s.col.Remove(ctx, productID)
}

func (s *Service) Clear(ctx context.Context) error {
	return s.col.Clear(ctx)
}
