package httpapi

import (
	"encoding/json"
	"net/http"

	checkoutapp "github.com/CristalT/elico-storefront/internal/checkout/app"
	orderdomain "github.com/CristalT/elico-storefront/internal/order/domain"
)

func (a *API) handleListOrders(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	orders, err := sess.Orders.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if orders == nil {
		orders = []orderdomain.Order{}
	}
	writeJSON(w, http.StatusOK, map[string][]orderdomain.Order{"data": orders})
}

// handleFinishOrder is the checkout boundary: it turns the session's cart
// into an order and clears the cart once the backend confirms.
func (a *API) handleFinishOrder(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	var req checkoutapp.FinishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "INVALID_ARGUMENT", Message: "malformed request"})
		return
	}

	order, err := sess.Checkout.Finish(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (a *API) handleQuote(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	quote, err := sess.Checkout.Quote(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}
