package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	catalogdomain "github.com/CristalT/elico-storefront/internal/catalog/domain"
	favdomain "github.com/CristalT/elico-storefront/internal/favorites/domain"
)

func (a *API) handleGetFavorites(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	items, err := sess.Favorites.GetAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []favdomain.Favorite{}
	}
	writeJSON(w, http.StatusOK, items)
}

// handleToggleFavorite marks the posted product, or unmarks it when it is
// already in the list.
func (a *API) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	var product catalogdomain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "INVALID_ARGUMENT", Message: "malformed product"})
		return
	}

	if err := sess.Favorites.Toggle(r.Context(), product); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	if err := sess.Favorites.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleClearFavorites(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	if err := sess.Favorites.Clear(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleFavoritesSync(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	if !sess.Authenticated() {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "UNAUTHENTICATED", Message: "authentication token required"})
		return
	}
	if err := sess.Favorites.SetIdentity(r.Context(), sess.Identity()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
