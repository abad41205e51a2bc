// Package localjson is the local-backed collection variant: one JSON array
// per (session, collection) key in the durable session store, the same shape
// the storefront UI used to keep under a localStorage key.
package localjson

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/CristalT/elico-storefront/pkg/localstore"
)

type Backend[T any] struct {
	store     *localstore.Store
	sessionID string
	name      string
	key       func(T) string
}

func New[T any](store *localstore.Store, sessionID, name string, key func(T) string) *Backend[T] {
	return &Backend[T]{
		store:     store,
		sessionID: sessionID,
		name:      name,
		key:       key,
	}
}

func (b *Backend[T]) List(ctx context.Context) ([]T, error) {
	return b.load(ctx)
}

// Add appends as-is. Duplicate keys are kept, matching the anonymous append
// behavior the server-side merge later deduplicates.
func (b *Backend[T]) Add(ctx context.Context, item T) error {
	items, err := b.load(ctx)
	if err != nil {
		return err
	}
	return b.save(ctx, append(items, item))
}

func (b *Backend[T]) Remove(ctx context.Context, key string) error {
	items, err := b.load(ctx)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, it := range items {
		if b.key(it) != key {
			kept = append(kept, it)
		}
	}
	return b.save(ctx, kept)
}

func (b *Backend[T]) Update(ctx context.Context, key string, item T) error {
	items, err := b.load(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if b.key(items[i]) == key {
			items[i] = item
		}
	}
	return b.save(ctx, items)
}

func (b *Backend[T]) Clear(ctx context.Context) error {
	return b.store.Delete(ctx, b.sessionID, b.name)
}

func (b *Backend[T]) load(ctx context.Context) ([]T, error) {
	raw, err := b.store.Get(ctx, b.sessionID, b.name)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("localjson: decode %s: %w", b.name, err)
	}
	return items, nil
}

func (b *Backend[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("localjson: encode %s: %w", b.name, err)
	}
	return b.store.Set(ctx, b.sessionID, b.name, raw)
}
