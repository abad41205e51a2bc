package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/CristalT/elico-storefront/internal/collection"
	"github.com/CristalT/elico-storefront/internal/session"
	"github.com/CristalT/elico-storefront/pkg/commerce"
)

const (
	sessionCookie = "sid"
	tokenCookie   = "token"
)

type sessionKey struct{}

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_http_requests_total",
		Help: "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)

func sessionFrom(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionKey{}).(*session.Session)
	return sess
}

// withSession attaches the visitor's session to the request. A missing
// session cookie starts a fresh anonymous session; a token cookie on an
// anonymous session resolves the account and triggers the login transition,
// so collections merged before a restart keep working.
func (a *API) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sid := readCookie(r, sessionCookie)
		if sid == "" {
			sid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		sess, err := a.registry.Get(sid)
		if err != nil {
			a.log.Error("session build failed", slog.Any("err", err))
			writeError(w, err)
			return
		}

		token := readCookie(r, tokenCookie)
		switch {
		case token != "" && !sess.Authenticated():
			user, err := a.auth.Me(ctx, token)
			if err != nil {
				if commerce.IsUnauthorized(err) {
					clearCookie(w, tokenCookie)
				} else {
					a.log.Warn("token check failed", slog.Any("err", err))
				}
				break
			}
			if err := sess.Login(ctx, token, collection.Identity{UserRef: user.Email}); err != nil {
				// A failed merge stays pending; the next request retries.
				a.log.Warn("collection merge on login pending", slog.Any("err", err))
			}
		case token == "" && sess.Authenticated():
			if err := sess.Logout(ctx); err != nil {
				a.log.Warn("session logout failed", slog.Any("err", err))
			}
		case sess.Authenticated():
			if err := sess.EnsureIdentity(ctx); err != nil {
				a.log.Warn("collection merge retry pending", slog.Any("err", err))
			}
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, sessionKey{}, sess)))
	})
}

// requireAuth guards account-bound routes the way the UI's authenticated
// proxy routes did.
func (a *API) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r.Context())
		if sess == nil || !sess.Authenticated() {
			writeJSON(w, http.StatusUnauthorized, errorBody{
				Error:   "UNAUTHENTICATED",
				Message: "authentication token required",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *API) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(ww.status)).Inc()
		httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())

		a.log.Debug("request",
			slog.String("method", r.Method),
			slog.String("route", route),
			slog.Int("status", ww.status),
			slog.Duration("took", time.Since(start)),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func readCookie(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

func clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
