// Package httpapi is the JSON surface the storefront UI talks to. Handlers
// stay thin: decode, call the session's services, map errors. All business
// rules live behind the commerce API or in the collection core.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authapp "github.com/CristalT/elico-storefront/internal/auth/app"
	catalogapp "github.com/CristalT/elico-storefront/internal/catalog/app"
	"github.com/CristalT/elico-storefront/internal/session"
	"github.com/CristalT/elico-storefront/internal/settings"
)

type API struct {
	registry *session.Registry
	catalog  *catalogapp.Service
	auth     *authapp.Service
	settings *settings.Service
	log      *slog.Logger
}

func New(registry *session.Registry, catalog *catalogapp.Service, auth *authapp.Service, st *settings.Service, log *slog.Logger) *API {
	if log == nil {
		log = slog.Default()
	}
	return &API{
		registry: registry,
		catalog:  catalog,
		auth:     auth,
		settings: st,
		log:      log,
	}
}

func (a *API) Router(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(a.observe)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(a.withSession)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", a.handleListProducts)
			r.Get("/showcases", a.handleShowcases)
			r.Get("/{id}", a.handleGetProduct)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", a.handleGetCart)
			r.Post("/add", a.handleAddToCart)
			r.Post("/sync", a.handleCartSync)
			r.Patch("/edit/{item}", a.handleEditCartItem)
			r.Delete("/remove/{item}", a.handleRemoveFromCart)
			r.Delete("/clear", a.handleClearCart)
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", a.handleGetFavorites)
			r.Post("/add", a.handleToggleFavorite)
			r.Post("/sync", a.handleFavoritesSync)
			r.Delete("/remove/{id}", a.handleRemoveFavorite)
			r.Delete("/clear", a.handleClearFavorites)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(a.requireAuth)
			r.Get("/", a.handleListOrders)
			r.Post("/", a.handleFinishOrder)
		})

		r.Get("/checkout/quote", a.handleQuote)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", a.handleLogin)
			r.Post("/signup", a.handleSignup)
			r.Post("/logout", a.handleLogout)
			r.Post("/forgot-password", a.handleForgotPassword)
			r.Get("/me", a.handleMe)
			r.Put("/profile", a.handleUpdateProfile)
			r.Put("/change-password", a.handleChangePassword)
		})

		r.Get("/settings", a.handleSettings)
	})

	return r
}
