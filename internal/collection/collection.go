// Package collection keeps a per-visitor item list (cart, favorites)
// consistent across the anonymous-to-authenticated transition. While the
// visitor is anonymous the list lives in the session-local store; once they
// authenticate, the remote commerce API owns it. The one-time handover
// forwards the whole local snapshot to the backend's bulk merge endpoint.
package collection

import "context"

// Identity is the visitor identity a collection is currently bound to.
// The zero value is anonymous.
type Identity struct {
	UserRef string
}

func (id Identity) Authenticated() bool {
	return id.UserRef != ""
}

// Anonymous is the identity of a fresh, unauthenticated session.
var Anonymous = Identity{}

// Backend stores one collection. Remove and Clear are idempotent: deleting
// something that is not there is a success.
type Backend[T any] interface {
	List(ctx context.Context) ([]T, error)
	Add(ctx context.Context, item T) error
	Remove(ctx context.Context, key string) error
	Update(ctx context.Context, key string, item T) error
	Clear(ctx context.Context) error
}

// RemoteBackend is the commerce-API-facing variant. Sync merges a full local
// snapshot server-side; the server deduplicates, this side forwards the raw
// list.
type RemoteBackend[T any] interface {
	Backend[T]
	Sync(ctx context.Context, items []T) error
}
