package collection

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
)

type testItem struct {
	ProductID string
	Quantity  int
}

var errBackendDown = errors.New("backend down")

// fakeBackend is an in-memory Backend with switchable failures. blockKey,
// when set, makes Add for that key wait until release is closed, so a test
// can interleave a second mutation while the first write is in flight.
type fakeBackend struct {
	mu    sync.Mutex
	items []testItem

	failAdd    bool
	failRemove bool
	failUpdate bool
	failClear  bool

	blockKey string
	started  chan struct{}
	release  chan struct{}
}

func (b *fakeBackend) List(ctx context.Context) ([]testItem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]testItem, len(b.items))
	copy(out, b.items)
	return out, nil
}

func (b *fakeBackend) Add(ctx context.Context, item testItem) error {
	if b.blockKey == item.ProductID {
		close(b.started)
		<-b.release
	}
	if b.failAdd {
		return errBackendDown
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = append(b.items, item)
	return nil
}

func (b *fakeBackend) Remove(ctx context.Context, key string) error {
	if b.failRemove {
		return errBackendDown
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	kept := b.items[:0]
	for _, it := range b.items {
		if it.ProductID != key {
			kept = append(kept, it)
		}
	}
	b.items = kept
	return nil
}

func (b *fakeBackend) Update(ctx context.Context, key string, item testItem) error {
	if b.failUpdate {
		return errBackendDown
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.items {
		if b.items[i].ProductID == key {
			b.items[i] = item
		}
	}
	return nil
}

func (b *fakeBackend) Clear(ctx context.Context) error {
	if b.failClear {
		return errBackendDown
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = nil
	return nil
}

type fakeRemote struct {
	fakeBackend
	syncCalls [][]testItem
	failSync  bool
}

func (r *fakeRemote) Sync(ctx context.Context, items []testItem) error {
	if r.failSync {
		return errBackendDown
	}
	snap := make([]testItem, len(items))
	copy(snap, items)
	r.syncCalls = append(r.syncCalls, snap)
	// Server-side merge: dedupe by product id, local list wins last.
	for _, it := range items {
		_ = r.fakeBackend.Remove(ctx, it.ProductID)
		_ = r.fakeBackend.Add(ctx, it)
	}
	return nil
}

func newTestService(t *testing.T) (*Service[testItem], *fakeBackend, *fakeRemote) {
	t.Helper()
	local := &fakeBackend{}
	remote := &fakeRemote{}
	svc, err := New(Config[testItem]{
		Name: "cart",
		Key:  func(it testItem) string { return it.ProductID },
		Validate: func(it testItem) error {
			if it.Quantity < 1 {
				return fmt.Errorf("%w: quantity must be >= 1", ErrInvalidItem)
			}
			return nil
		},
		Local:  local,
		Remote: remote,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return svc, local, remote
}

func assertItems(t *testing.T, got, want []testItem) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d items, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("item %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestAnonymousMutationsMatchLocalStore(t *testing.T) {
	ctx := context.Background()
	svc, local, _ := newTestService(t)

	ops := []func() error{
		func() error { return svc.Add(ctx, testItem{"A", 2}) },
		func() error { return svc.Add(ctx, testItem{"B", 1}) },
		func() error { return svc.Remove(ctx, "A") },
		func() error { return svc.Add(ctx, testItem{"C", 3}) },
		func() error { return svc.Update(ctx, "B", func(it testItem) testItem { it.Quantity = 5; return it }) },
	}
	for i, op := range ops {
		if err := op(); err != nil {
			t.Fatalf("op %d failed: %v", i, err)
		}
	}

	stored, _ := local.List(ctx)
	assertItems(t, svc.Snapshot(), stored)
	assertItems(t, stored, []testItem{{"B", 5}, {"C", 3}})
}

func TestAddThenGetAllRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	if err := svc.Add(ctx, testItem{"P1", 2}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	items, err := svc.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	assertItems(t, items, []testItem{{"P1", 2}})

	if !svc.Exists("P1") {
		t.Fatal("expected Exists(P1) to be true")
	}
	if svc.Exists("P2") {
		t.Fatal("expected Exists(P2) to be false")
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	if err := svc.Add(ctx, testItem{"A", 1}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := svc.Remove(ctx, "A"); err != nil {
		t.Fatalf("first Remove failed: %v", err)
	}
	after := svc.Snapshot()

	if err := svc.Remove(ctx, "A"); err != nil {
		t.Fatalf("second Remove failed: %v", err)
	}
	assertItems(t, svc.Snapshot(), after)
}

func TestAddValidation(t *testing.T) {
	ctx := context.Background()
	svc, local, _ := newTestService(t)

	t.Run("empty key -> invalid", func(t *testing.T) {
		if err := svc.Add(ctx, testItem{"", 1}); !errors.Is(err, ErrInvalidItem) {
			t.Fatalf("expected ErrInvalidItem, got %v", err)
		}
	})

	t.Run("quantity below one -> invalid", func(t *testing.T) {
		if err := svc.Add(ctx, testItem{"A", 0}); !errors.Is(err, ErrInvalidItem) {
			t.Fatalf("expected ErrInvalidItem, got %v", err)
		}
	})

	stored, _ := local.List(ctx)
	if len(stored) != 0 {
		t.Fatalf("rejected items must not reach the store, got %+v", stored)
	}
}

func TestUpdateRejectsQuantityBelowOne(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	if err := svc.Add(ctx, testItem{"A", 2}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	err := svc.Update(ctx, "A", func(it testItem) testItem { it.Quantity = 0; return it })
	if !errors.Is(err, ErrInvalidItem) {
		t.Fatalf("expected ErrInvalidItem, got %v", err)
	}
	assertItems(t, svc.Snapshot(), []testItem{{"A", 2}})
}

func TestSyncOnceOnLogin(t *testing.T) {
	ctx := context.Background()
	svc, local, remote := newTestService(t)

	if err := svc.Add(ctx, testItem{"P1", 1}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	user := Identity{UserRef: "u-1"}
	if err := svc.SetIdentity(ctx, user); err != nil {
		t.Fatalf("SetIdentity failed: %v", err)
	}

	if len(remote.syncCalls) != 1 {
		t.Fatalf("expected exactly 1 sync, got %d", len(remote.syncCalls))
	}
	assertItems(t, remote.syncCalls[0], []testItem{{"P1", 1}})

	stored, _ := local.List(ctx)
	if len(stored) != 0 {
		t.Fatalf("local snapshot must be discarded after confirmed sync, got %+v", stored)
	}

	// Same identity again: no duplicate sync.
	if err := svc.SetIdentity(ctx, user); err != nil {
		t.Fatalf("repeat SetIdentity failed: %v", err)
	}
	if len(remote.syncCalls) != 1 {
		t.Fatalf("expected no duplicate sync, got %d", len(remote.syncCalls))
	}

	// Reads now come from the remote collection only.
	items, err := svc.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	assertItems(t, items, []testItem{{"P1", 1}})
}

func TestFailedSyncPreservesLocalSnapshot(t *testing.T) {
	ctx := context.Background()
	svc, local, remote := newTestService(t)

	if err := svc.Add(ctx, testItem{"P1", 1}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	remote.failSync = true
	user := Identity{UserRef: "u-1"}
	if err := svc.SetIdentity(ctx, user); err == nil {
		t.Fatal("expected SetIdentity to fail when sync fails")
	}

	stored, _ := local.List(ctx)
	assertItems(t, stored, []testItem{{"P1", 1}})
	if svc.Identity().Authenticated() {
		t.Fatal("service must stay local-backed after a failed sync")
	}

	// The retry path: the same transition attempted again succeeds.
	remote.failSync = false
	if err := svc.SetIdentity(ctx, user); err != nil {
		t.Fatalf("retry SetIdentity failed: %v", err)
	}
	if len(remote.syncCalls) != 1 {
		t.Fatalf("expected 1 successful sync, got %d", len(remote.syncCalls))
	}
	stored, _ = local.List(ctx)
	if len(stored) != 0 {
		t.Fatalf("local snapshot should be discarded after the retried sync, got %+v", stored)
	}
}

func TestLogoutStartsFreshAnonymousSession(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	if err := svc.Add(ctx, testItem{"P1", 1}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := svc.SetIdentity(ctx, Identity{UserRef: "u-1"}); err != nil {
		t.Fatalf("SetIdentity failed: %v", err)
	}

	if err := svc.SetIdentity(ctx, Anonymous); err != nil {
		t.Fatalf("logout SetIdentity failed: %v", err)
	}
	items, err := svc.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("anonymous session after logout must start empty, got %+v", items)
	}
}

func TestRollback(t *testing.T) {
	ctx := context.Background()

	t.Run("failed add restores previous state", func(t *testing.T) {
		svc, local, _ := newTestService(t)
		if err := svc.Add(ctx, testItem{"A", 2}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}

		local.failAdd = true
		if err := svc.Add(ctx, testItem{"B", 1}); err == nil {
			t.Fatal("expected Add to fail")
		}
		assertItems(t, svc.Snapshot(), []testItem{{"A", 2}})
	})

	t.Run("failed remove restores item at its position", func(t *testing.T) {
		svc, local, _ := newTestService(t)
		for _, it := range []testItem{{"A", 1}, {"B", 2}, {"C", 3}} {
			if err := svc.Add(ctx, it); err != nil {
				t.Fatalf("Add failed: %v", err)
			}
		}

		local.failRemove = true
		if err := svc.Remove(ctx, "B"); err == nil {
			t.Fatal("expected Remove to fail")
		}
		assertItems(t, svc.Snapshot(), []testItem{{"A", 1}, {"B", 2}, {"C", 3}})
	})

	t.Run("failed update restores previous value", func(t *testing.T) {
		svc, local, _ := newTestService(t)
		if err := svc.Add(ctx, testItem{"A", 2}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}

		local.failUpdate = true
		err := svc.Update(ctx, "A", func(it testItem) testItem { it.Quantity = 9; return it })
		if err == nil {
			t.Fatal("expected Update to fail")
		}
		assertItems(t, svc.Snapshot(), []testItem{{"A", 2}})
	})

	t.Run("failed clear restores snapshot", func(t *testing.T) {
		svc, local, _ := newTestService(t)
		for _, it := range []testItem{{"A", 1}, {"B", 2}} {
			if err := svc.Add(ctx, it); err != nil {
				t.Fatalf("Add failed: %v", err)
			}
		}

		local.failClear = true
		if err := svc.Clear(ctx); err == nil {
			t.Fatal("expected Clear to fail")
		}
		assertItems(t, svc.Snapshot(), []testItem{{"A", 1}, {"B", 2}})
	})
}

// A failed mutation must undo only its own delta: an unrelated mutation that
// lands while the failing write is in flight survives the rollback.
func TestRollbackDoesNotClobberConcurrentMutation(t *testing.T) {
	ctx := context.Background()
	svc, local, _ := newTestService(t)

	local.blockKey = "A"
	local.failAdd = true
	local.started = make(chan struct{})
	local.release = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		done <- svc.Add(ctx, testItem{"A", 1})
	}()

	<-local.started

	// While A's write is in flight and doomed, B lands. Lift the failure
	// and the block so only A's write errors.
	local.failAdd = false
	local.blockKey = ""
	if err := svc.Add(ctx, testItem{"B", 2}); err != nil {
		t.Fatalf("concurrent Add failed: %v", err)
	}
	local.failAdd = true
	close(local.release)

	if err := <-done; err == nil {
		t.Fatal("expected blocked Add to fail")
	}

	snap := svc.Snapshot()
	assertItems(t, snap, []testItem{{"B", 2}})
}

func TestOptimisticStateVisibleBeforeSettlement(t *testing.T) {
	ctx := context.Background()
	svc, local, _ := newTestService(t)

	if err := svc.Add(ctx, testItem{"A", 2}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	local.blockKey = "B"
	local.started = make(chan struct{})
	local.release = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		done <- svc.Add(ctx, testItem{"B", 1})
	}()

	<-local.started
	// The write has not settled, yet the optimistic snapshot already holds B.
	assertItems(t, svc.Snapshot(), []testItem{{"A", 2}, {"B", 1}})
	close(local.release)

	if err := <-done; err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	assertItems(t, svc.Snapshot(), []testItem{{"A", 2}, {"B", 1}})
}
