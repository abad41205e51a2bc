package remote

import (
	"context"
	"net/url"

	"github.com/CristalT/elico-storefront/internal/favorites/domain"
	"github.com/CristalT/elico-storefront/pkg/commerce"
)

type TokenFunc func() string

// Backend is the commerce-API favorites list for an authenticated visitor.
type Backend struct {
	client *commerce.Client
	token  TokenFunc
}

func NewBackend(client *commerce.Client, token TokenFunc) *Backend {
	return &Backend{client: client, token: token}
}

func (b *Backend) c() *commerce.Client {
	return b.client.WithToken(b.token())
}

func (b *Backend) List(ctx context.Context) ([]domain.Favorite, error) {
	var items []domain.Favorite
	if err := b.c().Get(ctx, "/favorites", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (b *Backend) Add(ctx context.Context, item domain.Favorite) error {
	return b.c().Post(ctx, "/favorites", item, nil)
}

func (b *Backend) Remove(ctx context.Context, productID string) error {
	err := b.c().Delete(ctx, "/favorites/"+url.PathEscape(productID))
	if commerce.IsNotFound(err) {
		return nil
	}
	return err
}

// Update never fires for favorites; there is nothing to edit in place. Kept
// only to satisfy the backend contract.
func (b *Backend) Update(ctx context.Context, productID string, item domain.Favorite) error {
	return b.c().Put(ctx, "/favorites/"+url.PathEscape(productID), item, nil)
}

func (b *Backend) Clear(ctx context.Context) error {
	err := b.c().Delete(ctx, "/favorites/clear")
	if commerce.IsNotFound(err) {
		return nil
	}
	return err
}

func (b *Backend) Sync(ctx context.Context, items []domain.Favorite) error {
	if items == nil {
		items = []domain.Favorite{}
	}
	body := map[string][]domain.Favorite{"favorites": items}
	return b.c().Post(ctx, "/favorites-sync", body, nil)
}
