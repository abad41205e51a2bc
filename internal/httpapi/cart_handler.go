package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	cartdomain "github.com/CristalT/elico-storefront/internal/cart/domain"
)

type cartResponse struct {
	Items []cartdomain.LineItem `json:"items"`
	Total float64               `json:"total"`
	Count int                   `json:"count"`
}

func (a *API) handleGetCart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	items, err := sess.Cart.Items(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []cartdomain.LineItem{}
	}

	writeJSON(w, http.StatusOK, cartResponse{
		Items: items,
		Total: cartdomain.Total(items),
		Count: cartdomain.Count(items),
	})
}

func (a *API) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	var item cartdomain.LineItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "INVALID_ARGUMENT", Message: "malformed line item"})
		return
	}

	if err := sess.Cart.Add(r.Context(), item); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (a *API) handleEditCartItem(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	productID := chi.URLParam(r, "item")

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "INVALID_ARGUMENT", Message: "malformed request"})
		return
	}

	if err := sess.Cart.UpdateQuantity(r.Context(), productID, body.Quantity); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	if err := sess.Cart.Remove(r.Context(), chi.URLParam(r, "item")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleClearCart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	if err := sess.Cart.Clear(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCartSync retries a pending local-to-remote merge. Harmless when the
// merge already went through.
func (a *API) handleCartSync(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	if !sess.Authenticated() {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "UNAUTHENTICATED", Message: "authentication token required"})
		return
	}
	if err := sess.Cart.SetIdentity(r.Context(), sess.Identity()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
