package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	cartapp "github.com/CristalT/elico-storefront/internal/cart/app"
	cartdomain "github.com/CristalT/elico-storefront/internal/cart/domain"
	cartremote "github.com/CristalT/elico-storefront/internal/cart/infra/remote"
	catalogapp "github.com/CristalT/elico-storefront/internal/catalog/app"
	checkoutapp "github.com/CristalT/elico-storefront/internal/checkout/app"
	checkoutadapter "github.com/CristalT/elico-storefront/internal/checkout/infra/adapter"
	"github.com/CristalT/elico-storefront/internal/collection/localjson"
	favapp "github.com/CristalT/elico-storefront/internal/favorites/app"
	favdomain "github.com/CristalT/elico-storefront/internal/favorites/domain"
	favremote "github.com/CristalT/elico-storefront/internal/favorites/infra/remote"
	orderapp "github.com/CristalT/elico-storefront/internal/order/app"
	orderremote "github.com/CristalT/elico-storefront/internal/order/infra/remote"
	"github.com/CristalT/elico-storefront/pkg/commerce"
	"github.com/CristalT/elico-storefront/pkg/localstore"
)

var activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "storefront_sessions_active",
	Help: "Sessions currently held in the registry.",
})

// Registry builds and caches one Session per visitor. Sessions idle beyond
// the TTL are evicted together with their local-store rows.
type Registry struct {
	store   *localstore.Store
	client  *commerce.Client
	catalog *catalogapp.Service
	log     *slog.Logger
	ttl     time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(store *localstore.Store, client *commerce.Client, catalog *catalogapp.Service, log *slog.Logger, ttl time.Duration) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{
		store:    store,
		client:   client,
		catalog:  catalog,
		log:      log,
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

// Get returns the session for the id, building it on first sight.
func (r *Registry) Get(sid string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sess, ok := r.sessions[sid]; ok {
		sess.touch(time.Now())
		return sess, nil
	}

	sess, err := r.build(sid)
	if err != nil {
		return nil, err
	}
	sess.touch(time.Now())
	r.sessions[sid] = sess
	activeSessions.Set(float64(len(r.sessions)))
	return sess, nil
}

func (r *Registry) build(sid string) (*Session, error) {
	sess := &Session{ID: sid}

	cartLocal := localjson.New(r.store, sid, "cart",
		func(li cartdomain.LineItem) string { return li.ProductID })
	cart, err := cartapp.NewService(cartLocal, cartremote.NewBackend(r.client, sess.Token), r.log)
	if err != nil {
		return nil, err
	}

	favLocal := localjson.New(r.store, sid, "favorites",
		func(f favdomain.Favorite) string { return f.ProductID })
	favorites, err := favapp.NewService(favLocal, favremote.NewBackend(r.client, sess.Token), r.log)
	if err != nil {
		return nil, err
	}

	orders := orderapp.NewService(orderremote.NewGateway(r.client, sess.Token))

	checkout := checkoutapp.NewService(
		checkoutadapter.NewCartServiceReader(cart),
		checkoutadapter.NewCatalogServiceReader(r.catalog),
		checkoutadapter.NewOrderServicePlacer(orders),
		r.log,
		10,
	)

	sess.Cart = cart
	sess.Favorites = favorites
	sess.Orders = orders
	sess.Checkout = checkout
	return sess, nil
}

// Sweep evicts idle sessions and purges their local-store rows. Meant to be
// called periodically from the serve loop.
func (r *Registry) Sweep(ctx context.Context) {
	cutoff := time.Now().Add(-r.ttl)

	r.mu.Lock()
	for sid, sess := range r.sessions {
		sess.mu.Lock()
		idle := sess.lastSeen.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			delete(r.sessions, sid)
		}
	}
	activeSessions.Set(float64(len(r.sessions)))
	r.mu.Unlock()

	if n, err := r.store.Purge(ctx, cutoff); err != nil {
		r.log.Warn("local store purge failed", slog.Any("err", err))
	} else if n > 0 {
		r.log.Info("purged stale local collections", slog.Int64("count", n))
	}
}
