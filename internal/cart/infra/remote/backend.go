package remote

import (
	"context"
	"net/url"

	"github.com/CristalT/elico-storefront/internal/cart/domain"
	"github.com/CristalT/elico-storefront/pkg/commerce"
)

// TokenFunc supplies the visitor's current bearer token. The session owns
// the token; the backend looks it up per call so a login mid-session is
// picked up without rebuilding anything.
type TokenFunc func() string

// Backend is the commerce-API cart for an authenticated visitor.
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

func (b *Backend) List(ctx context.Context) ([]domain.LineItem, error) {
	var items []domain.LineItem
	if err := b.c().Get(ctx, "/cart", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (b *Backend) Add(ctx context.Context, item domain.LineItem) error {
	return b.c().Post(ctx, "/cart", item, nil)
}

// Remove deletes the line for a product. The backend answering 404 means the
// line was already gone, which is the outcome we asked for.
func (b *Backend) Remove(ctx context.Context, productID string) error {
	err := b.c().Delete(ctx, "/cart/"+url.PathEscape(productID))
	if commerce.IsNotFound(err) {
		return nil
	}
	return err
}

func (b *Backend) Update(ctx context.Context, productID string, item domain.LineItem) error {
	body := map[string]int{"quantity": item.Quantity}
	return b.c().Patch(ctx, "/cart/"+url.PathEscape(productID), body, nil)
}

func (b *Backend) Clear(ctx context.Context) error {
	err := b.c().Delete(ctx, "/cart/clear")
	if commerce.IsNotFound(err) {
		return nil
	}
	return err
}

// Sync forwards a whole local snapshot to the bulk merge endpoint. The
// server deduplicates by product id.
func (b *Backend) Sync(ctx context.Context, items []domain.LineItem) error {
	if items == nil {
		items = []domain.LineItem{}
	}
	body := map[string][]domain.LineItem{"cart": items}
	return b.c().Post(ctx, "/cart-sync", body, nil)
}
