// Package session gives every storefront visitor a durable working set: one
// cart and one favorites collection, plus token-bound access to their orders
// and checkout. Anonymous visitors are identified by a session cookie; their
// collections live in the local store until they authenticate.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	cartapp "github.com/CristalT/elico-storefront/internal/cart/app"
	checkoutapp "github.com/CristalT/elico-storefront/internal/checkout/app"
	"github.com/CristalT/elico-storefront/internal/collection"
	favapp "github.com/CristalT/elico-storefront/internal/favorites/app"
	orderapp "github.com/CristalT/elico-storefront/internal/order/app"
)

type Session struct {
	ID string

	Cart      *cartapp.Service
	Favorites *favapp.Service
	Orders    *orderapp.Service
	Checkout  *checkoutapp.Service

	mu       sync.Mutex
	token    string
	identity collection.Identity
	lastSeen time.Time
}

// Token returns the visitor's current bearer token; empty while anonymous.
// Remote backends call this per request, so a login mid-session takes
// effect without any rewiring.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) Identity() collection.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

func (s *Session) Authenticated() bool {
	return s.Identity().Authenticated()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// Login binds the token and moves both collections to the authenticated
// identity, which triggers their one-time local-to-remote merge. A failed
// merge leaves that collection local-backed; the error is returned so the
// caller can log it, and the next Login (or EnsureIdentity) retries.
func (s *Session) Login(ctx context.Context, token string, id collection.Identity) error {
	s.mu.Lock()
	s.token = token
	s.identity = id
	s.mu.Unlock()

	return errors.Join(
		s.Cart.SetIdentity(ctx, id),
		s.Favorites.SetIdentity(ctx, id),
	)
}

// Logout drops the token and returns both collections to a fresh anonymous
// state. Nothing is merged back to the local store.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.identity = collection.Anonymous
	s.mu.Unlock()

	return errors.Join(
		s.Cart.SetIdentity(ctx, collection.Anonymous),
		s.Favorites.SetIdentity(ctx, collection.Anonymous),
	)
}

// EnsureIdentity retries a pending local-to-remote merge: a collection whose
// merge failed during Login is still anonymous-bound and gets another
// SetIdentity with the session identity.
func (s *Session) EnsureIdentity(ctx context.Context) error {
	id := s.Identity()
	if !id.Authenticated() {
		return nil
	}
	return errors.Join(
		s.Cart.SetIdentity(ctx, id),
		s.Favorites.SetIdentity(ctx, id),
	)
}
