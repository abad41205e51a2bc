package collection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

var (
	ErrInvalidItem = errors.New("collection: invalid item")
	ErrNotFound    = errors.New("collection: item not found")
)

// Config wires one collection instance.
type Config[T any] struct {
	// Name is the collection name ("cart", "favorites"), used for logs,
	// metrics and the local store key.
	Name string

	// Key extracts the identity of an item, normally its product id.
	Key func(T) string

	// Validate, when set, rejects an item before any optimistic apply or
	// write. Nil means every item with a non-empty key is acceptable.
	Validate func(T) error

	Local  Backend[T]
	Remote RemoteBackend[T]

	Logger *slog.Logger
}

// Service presents a single logical collection regardless of identity state.
// Reads under anonymous identity hit the local store, under authenticated
// identity the remote gateway. Mutations are optimistic: the in-memory
// snapshot changes first, the write follows, and a failed write undoes
// exactly the one mutation (delta rollback, not whole-snapshot restore, so a
// concurrent unrelated mutation survives).
type Service[T any] struct {
	name     string
	key      func(T) string
	validate func(T) error
	local    Backend[T]
	remote   RemoteBackend[T]
	log      *slog.Logger

	mu       sync.Mutex
	identity Identity
	items    []T
}

func New[T any](cfg Config[T]) (*Service[T], error) {
	if cfg.Name == "" || cfg.Key == nil || cfg.Local == nil || cfg.Remote == nil {
		return nil, errors.New("collection: name, key and both backends are required")
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Service[T]{
		name:     cfg.Name,
		key:      cfg.Key,
		validate: cfg.Validate,
		local:    cfg.Local,
		remote:   cfg.Remote,
		log:      log.With(slog.String("collection", cfg.Name)),
	}, nil
}

func (s *Service[T]) Name() string { return s.name }

// Identity returns the identity the collection is currently bound to.
func (s *Service[T]) Identity() Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// SetIdentity reacts to identity changes. The anonymous-to-authenticated
// transition triggers the one-time merge: if the merge fails, the service
// stays local-backed with the local snapshot intact, and calling SetIdentity
// again with the same identity retries. Calling it twice with an identity
// that already took effect is a no-op. A transition to anonymous (logout)
// starts a fresh empty local session; nothing is merged back.
func (s *Service[T]) SetIdentity(ctx context.Context, id Identity) error {
	s.mu.Lock()
	if s.identity == id {
		s.mu.Unlock()
		return nil
	}
	prev := s.identity
	s.mu.Unlock()

	if id.Authenticated() && !prev.Authenticated() {
		if err := s.Sync(ctx); err != nil {
			syncs.WithLabelValues(s.name, outcomeError).Inc()
			return err
		}
		syncs.WithLabelValues(s.name, outcomeOK).Inc()
	}

	s.mu.Lock()
	s.identity = id
	s.items = nil
	s.mu.Unlock()

	// Hydrate the membership cache from the now-active backend. Failure
	// here is not a failed transition; the next read repairs it.
	if _, err := s.GetAll(ctx); err != nil {
		s.log.Warn("hydrate after identity change failed", slog.Any("err", err))
	}
	return nil
}

// Sync forwards the full local snapshot to the remote bulk merge endpoint
// and, only once the merge is confirmed, discards the local copy. The remote
// collection is authoritative from then on. Deduplication of conflicting
// quantities is the server's job; the raw list goes over as-is.
func (s *Service[T]) Sync(ctx context.Context) error {
	items, err := s.local.List(ctx)
	if err != nil {
		return fmt.Errorf("%s: read local snapshot: %w", s.name, err)
	}

	if err := s.remote.Sync(ctx, items); err != nil {
		// Local snapshot is preserved on purpose: a later transition can
		// retry the merge without losing the visitor's items.
		return fmt.Errorf("%s: sync: %w", s.name, err)
	}

	if err := s.local.Clear(ctx); err != nil {
		// The merge went through, so stale local data is only a risk of a
		// redundant re-merge later; the server dedupes that.
		s.log.Warn("clear local snapshot after sync failed", slog.Any("err", err))
	}
	return nil
}

// GetAll reads the collection from the active backing store, insertion
// ordered, and refreshes the in-memory snapshot.
func (s *Service[T]) GetAll(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	backend := s.active()
	s.mu.Unlock()

	items, err := backend.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: list: %w", s.name, err)
	}

	s.mu.Lock()
	s.items = slices.Clone(items)
	s.mu.Unlock()
	return items, nil
}

// Exists is a membership test against the in-memory snapshot; it never
// issues a network round trip.
func (s *Service[T]) Exists(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(key) >= 0
}

// Snapshot returns a copy of the in-memory snapshot without touching the
// backing store.
func (s *Service[T]) Snapshot() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// active returns the store for the current identity. Callers hold s.mu.
func (s *Service[T]) active() Backend[T] {
	if s.identity.Authenticated() {
		return s.remote
	}
	return s.local
}

// indexOf returns the position of the first item with the key. Callers hold
// s.mu.
func (s *Service[T]) indexOf(key string) int {
	for i := range s.items {
		if s.key(s.items[i]) == key {
			return i
		}
	}
	return -1
}
