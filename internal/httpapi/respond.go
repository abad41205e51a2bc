package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	authapp "github.com/CristalT/elico-storefront/internal/auth/app"
	cartdomain "github.com/CristalT/elico-storefront/internal/cart/domain"
	catalogapp "github.com/CristalT/elico-storefront/internal/catalog/app"
	checkoutapp "github.com/CristalT/elico-storefront/internal/checkout/app"
	"github.com/CristalT/elico-storefront/internal/collection"
	favdomain "github.com/CristalT/elico-storefront/internal/favorites/domain"
	"github.com/CristalT/elico-storefront/pkg/commerce"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, code, msg := httpStatusFromError(err)
	writeJSON(w, status, errorBody{Error: code, Message: msg})
}

// httpStatusFromError normalizes data-layer errors for the UI: validation
// failures are 400s, upstream commerce errors keep their client-facing
// status, and upstream 5xx surface as a bad gateway rather than our own
// internal error.
func httpStatusFromError(err error) (int, string, string) {
	switch {
	case errors.Is(err, collection.ErrInvalidItem),
		errors.Is(err, cartdomain.ErrInvalidLineItem),
		errors.Is(err, favdomain.ErrInvalidFavorite),
		errors.Is(err, authapp.ErrInvalidInput),
		errors.Is(err, catalogapp.ErrInvalidInput),
		errors.Is(err, checkoutapp.ErrInvalidDeliveryInfo):
		return http.StatusBadRequest, "INVALID_ARGUMENT", err.Error()
	case errors.Is(err, checkoutapp.ErrEmptyCart):
		return http.StatusBadRequest, "EMPTY_CART", err.Error()
	case errors.Is(err, collection.ErrNotFound),
		errors.Is(err, catalogapp.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", err.Error()
	}

	var apiErr *commerce.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Status == http.StatusUnauthorized:
			return http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required"
		case apiErr.Status == http.StatusForbidden:
			return http.StatusForbidden, "PERMISSION_DENIED", "not allowed"
		case apiErr.Status == http.StatusNotFound:
			return http.StatusNotFound, "NOT_FOUND", "not found"
		case apiErr.Status >= 400 && apiErr.Status < 500:
			return http.StatusBadRequest, "INVALID_ARGUMENT", "rejected by backend"
		default:
			return http.StatusBadGateway, "UNAVAILABLE", "backend unavailable"
		}
	}

	return http.StatusInternalServerError, "INTERNAL", "internal error"
}
