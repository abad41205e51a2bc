package localjson

import (
	"context"
	"testing"

	"github.com/CristalT/elico-storefront/pkg/localstore"
)

type entry struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func newTestBackend(t *testing.T) *Backend[entry] {
	t.Helper()
	store, err := localstore.Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return New(store, "sess-1", "cart", func(e entry) string { return e.ProductID })
}

func TestListEmpty(t *testing.T) {
	b := newTestBackend(t)

	items, err := b.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("items = %v, want empty", items)
	}
}

func TestAddListRemove(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	if err := b.Add(ctx, entry{ProductID: "p1", Quantity: 1}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := b.Add(ctx, entry{ProductID: "p2", Quantity: 3}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	items, err := b.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 || items[0].ProductID != "p1" || items[1].Quantity != 3 {
		t.Fatalf("items = %v", items)
	}

	if err := b.Remove(ctx, "p1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	items, err = b.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 || items[0].ProductID != "p2" {
		t.Fatalf("items after remove = %v", items)
	}
}

func TestUpdateInPlace(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	if err := b.Add(ctx, entry{ProductID: "p1", Quantity: 1}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := b.Update(ctx, "p1", entry{ProductID: "p1", Quantity: 5}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	items, err := b.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 5 {
		t.Fatalf("items = %v", items)
	}
}

func TestClear(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	if err := b.Add(ctx, entry{ProductID: "p1", Quantity: 1}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := b.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	items, err := b.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("items after clear = %v", items)
	}
}

func TestCollectionsAreIsolatedBySession(t *testing.T) {
	store, err := localstore.Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	key := func(e entry) string { return e.ProductID }
	a := New(store, "sess-a", "cart", key)
	b := New(store, "sess-b", "cart", key)
	ctx := context.Background()

	if err := a.Add(ctx, entry{ProductID: "p1", Quantity: 1}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	items, err := b.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("session b sees session a's items: %v", items)
	}
}
