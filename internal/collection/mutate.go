package collection

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
)

// Mutations apply optimistically: the in-memory snapshot changes before the
// backing store confirms, concurrent readers observe the new state while the
// write is in flight, and a failed write applies the inverse delta of that
// one mutation. Every mutation ends with a best-effort re-read of the
// authoritative store to settle residual drift.

// Add appends the item to the collection. An existing item with the same key
// is not merged here; the local store keeps the duplicate and the server
// deduplicates on its side.
func (s *Service[T]) Add(ctx context.Context, item T) error {
	key := s.key(item)
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidItem)
	}
	if s.validate != nil {
		if err := s.validate(item); err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.items = append(s.items, item)
	backend := s.active()
	s.mu.Unlock()

	if err := backend.Add(ctx, item); err != nil {
		s.undoAdd(key)
		s.fail("add", key, err)
		return fmt.Errorf("%s: add %s: %w", s.name, key, err)
	}

	mutations.WithLabelValues(s.name, "add", outcomeOK).Inc()
	s.settle(ctx)
	return nil
}

// Remove drops every item matching the key. Removing an absent key succeeds.
func (s *Service[T]) Remove(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidItem)
	}

	s.mu.Lock()
	removed := s.takeOut(key)
	backend := s.active()
	s.mu.Unlock()

	if err := backend.Remove(ctx, key); err != nil {
		s.undoRemove(removed)
		s.fail("remove", key, err)
		return fmt.Errorf("%s: remove %s: %w", s.name, key, err)
	}

	mutations.WithLabelValues(s.name, "remove", outcomeOK).Inc()
	s.settle(ctx)
	return nil
}

// Update rewrites the item with the given key through apply. The previous
// item value is the rollback delta.
func (s *Service[T]) Update(ctx context.Context, key string, apply func(T) T) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidItem)
	}

	s.mu.Lock()
	idx := s.indexOf(key)
	if idx < 0 {
		s.mu.Unlock()
		// The snapshot may simply be cold; hydrate once before giving up.
		if _, err := s.GetAll(ctx); err != nil {
			return err
		}
		s.mu.Lock()
		idx = s.indexOf(key)
		if idx < 0 {
			s.mu.Unlock()
			return fmt.Errorf("%w: %s", ErrNotFound, key)
		}
	}

	prev := s.items[idx]
	next := apply(prev)
	if s.validate != nil {
		if err := s.validate(next); err != nil {
			s.mu.Unlock()
			return err
		}
	}
	s.items[idx] = next
	backend := s.active()
	s.mu.Unlock()

	if err := backend.Update(ctx, key, next); err != nil {
		s.undoUpdate(key, prev)
		s.fail("update", key, err)
		return fmt.Errorf("%s: update %s: %w", s.name, key, err)
	}

	mutations.WithLabelValues(s.name, "update", outcomeOK).Inc()
	s.settle(ctx)
	return nil
}

// Clear empties the collection. The delta of a clear is the whole previous
// snapshot, which is restored ahead of anything added concurrently.
func (s *Service[T]) Clear(ctx context.Context) error {
	s.mu.Lock()
	prev := s.items
	s.items = nil
	backend := s.active()
	s.mu.Unlock()

	if err := backend.Clear(ctx); err != nil {
		s.mu.Lock()
		s.items = append(slices.Clone(prev), s.items...)
		s.mu.Unlock()
		rollbacks.WithLabelValues(s.name, "clear").Inc()
		s.fail("clear", "", err)
		return fmt.Errorf("%s: clear: %w", s.name, err)
	}

	mutations.WithLabelValues(s.name, "clear", outcomeOK).Inc()
	s.settle(ctx)
	return nil
}

// settle is the final consistency pass after a mutation: re-read the
// authoritative store and adopt whatever it says. A failure here is logged
// only; the optimistic state is already the best available answer.
func (s *Service[T]) settle(ctx context.Context) {
	if _, err := s.GetAll(ctx); err != nil {
		s.log.Warn("post-mutation refresh failed", slog.Any("err", err))
	}
}

func (s *Service[T]) fail(op, key string, err error) {
	mutations.WithLabelValues(s.name, op, outcomeError).Inc()
	s.log.Error("mutation failed, rolled back",
		slog.String("op", op),
		slog.String("key", key),
		slog.Any("err", err),
	)
}

// undoAdd removes the most recently appended item with the key, exactly the
// one the optimistic apply introduced.
func (s *Service[T]) undoAdd(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.key(s.items[i]) == key {
			s.items = append(s.items[:i], s.items[i+1:]...)
			rollbacks.WithLabelValues(s.name, "add").Inc()
			return
		}
	}
}

// takeOut removes every item matching the key and returns them with their
// original positions. Callers hold s.mu.
func (s *Service[T]) takeOut(key string) []removedItem[T] {
	var removed []removedItem[T]
	kept := s.items[:0]
	for i := range s.items {
		if s.key(s.items[i]) == key {
			removed = append(removed, removedItem[T]{index: i, item: s.items[i]})
			continue
		}
		kept = append(kept, s.items[i])
	}
	s.items = kept
	return removed
}

// undoRemove reinserts removed items at their recorded positions, clamped to
// the current length so concurrent appends stay where they landed.
func (s *Service[T]) undoRemove(removed []removedItem[T]) {
	if len(removed) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range removed {
		at := min(r.index, len(s.items))
		s.items = slices.Insert(s.items, at, r.item)
	}
	rollbacks.WithLabelValues(s.name, "remove").Inc()
}

func (s *Service[T]) undoUpdate(key string, prev T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexOf(key); idx >= 0 {
		s.items[idx] = prev
	}
	rollbacks.WithLabelValues(s.name, "update").Inc()
}

type removedItem[T any] struct {
	index int
	item  T
}
