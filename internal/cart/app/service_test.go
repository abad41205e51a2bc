package app

import (
	"context"
	"testing"

	"github.com/CristalT/elico-storefront/internal/cart/domain"
	"github.com/CristalT/elico-storefront/internal/collection"
)

type memoryBackend struct {
	items []domain.LineItem
}

func (b *memoryBackend) List(ctx context.Context) ([]domain.LineItem, error) {
	out := make([]domain.LineItem, len(b.items))
	copy(out, b.items)
	return out, nil
}

func (b *memoryBackend) Add(ctx context.Context, item domain.LineItem) error {
	b.items = append(b.items, item)
	return nil
}

func (b *memoryBackend) Remove(ctx context.Context, key string) error {
	kept := b.items[:0]
	for _, li := range b.items {
		if li.ProductID != key {
			kept = append(kept, li)
		}
	}
	b.items = kept
	return nil
}

func (b *memoryBackend) Update(ctx context.Context, key string, item domain.LineItem) error {
	for i, li := range b.items {
		if li.ProductID == key {
			b.items[i] = item
		}
	}
	return nil
}

func (b *memoryBackend) Clear(ctx context.Context) error {
	b.items = nil
	return nil
}

type memoryRemote struct {
	memoryBackend
	syncCalls int
}

func (b *memoryRemote) Sync(ctx context.Context, items []domain.LineItem) error {
	b.syncCalls++
	b.items = append(b.items, items...)
	return nil
}

func newTestService(t *testing.T) (*Service, *memoryBackend, *memoryRemote) {
	t.Helper()
	local := &memoryBackend{}
	remote := &memoryRemote{}
	svc, err := NewService(local, remote, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, local, remote
}

func TestAddRejectsInvalidLineItem(t *testing.T) {
	svc, local, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		item domain.LineItem
	}{
		{"missing product id", domain.LineItem{Quantity: 1, Price: 10}},
		{"zero quantity", domain.LineItem{ProductID: "p1", Quantity: 0, Price: 10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.Add(ctx, tc.item); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
	if len(local.items) != 0 {
		t.Fatalf("store should stay empty, has %d items", len(local.items))
	}
}

func TestUpdateQuantityRejectsBelowOne(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Add(ctx, domain.LineItem{ProductID: "p1", Quantity: 2, Price: 10}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := svc.UpdateQuantity(ctx, "p1", 0); err == nil {
		t.Fatal("expected validation error")
	}

	items, err := svc.Items(ctx)
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if items[0].Quantity != 2 {
		t.Fatalf("quantity changed to %d", items[0].Quantity)
	}
}

func TestTotalAndCount(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Add(ctx, domain.LineItem{ProductID: "p1", Quantity: 2, Price: 10}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := svc.Add(ctx, domain.LineItem{ProductID: "p2", Quantity: 1, Price: 5.5}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if got := svc.Total(); got != 25.5 {
		t.Fatalf("Total = %v, want 25.5", got)
	}
	if got := svc.Count(); got != 3 {
		t.Fatalf("Count = %d, want 3", got)
	}
	if !svc.Exists("p1") || svc.Exists("p3") {
		t.Fatal("Exists membership wrong")
	}
}

func TestLoginMergesCartUpstream(t *testing.T) {
	svc, local, remote := newTestService(t)
	ctx := context.Background()

	if err := svc.Add(ctx, domain.LineItem{ProductID: "p1", Quantity: 1, Price: 10}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := svc.SetIdentity(ctx, collection.Identity{UserRef: "user@example.com"}); err != nil {
		t.Fatalf("SetIdentity: %v", err)
	}

	if remote.syncCalls != 1 {
		t.Fatalf("syncCalls = %d, want 1", remote.syncCalls)
	}
	if len(local.items) != 0 {
		t.Fatalf("local store should be cleared after merge, has %d items", len(local.items))
	}
	if !svc.Identity().Authenticated() {
		t.Fatal("identity should be authenticated")
	}
}
