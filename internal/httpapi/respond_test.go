package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	cartdomain "github.com/CristalT/elico-storefront/internal/cart/domain"
	catalogapp "github.com/CristalT/elico-storefront/internal/catalog/app"
	checkoutapp "github.com/CristalT/elico-storefront/internal/checkout/app"
	"github.com/CristalT/elico-storefront/pkg/commerce"
)

func TestHTTPStatusFromError(t *testing.T) {
	t.Run("invalid line item -> 400", func(t *testing.T) {
		err := fmt.Errorf("%w: quantity must be at least 1", cartdomain.ErrInvalidLineItem)
		gotStatus, gotCode, _ := httpStatusFromError(err)
		if gotStatus != http.StatusBadRequest || gotCode != "INVALID_ARGUMENT" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})

	t.Run("empty cart -> 400", func(t *testing.T) {
		gotStatus, gotCode, _ := httpStatusFromError(checkoutapp.ErrEmptyCart)
		if gotStatus != http.StatusBadRequest || gotCode != "EMPTY_CART" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})

	t.Run("missing product -> 404", func(t *testing.T) {
		gotStatus, gotCode, _ := httpStatusFromError(catalogapp.ErrNotFound)
		if gotStatus != http.StatusNotFound || gotCode != "NOT_FOUND" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})

	t.Run("backend 401 -> 401", func(t *testing.T) {
		err := &commerce.APIError{Status: http.StatusUnauthorized, Method: "GET", Path: "/cart"}
		gotStatus, gotCode, _ := httpStatusFromError(err)
		if gotStatus != http.StatusUnauthorized || gotCode != "UNAUTHENTICATED" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})

	t.Run("backend 404 -> 404", func(t *testing.T) {
		err := fmt.Errorf("fetch: %w", &commerce.APIError{Status: http.StatusNotFound, Method: "GET", Path: "/products/9"})
		gotStatus, gotCode, _ := httpStatusFromError(err)
		if gotStatus != http.StatusNotFound || gotCode != "NOT_FOUND" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})

	t.Run("backend 500 -> 502", func(t *testing.T) {
		err := &commerce.APIError{Status: http.StatusInternalServerError, Method: "POST", Path: "/orders"}
		gotStatus, gotCode, _ := httpStatusFromError(err)
		if gotStatus != http.StatusBadGateway || gotCode != "UNAVAILABLE" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})

	t.Run("plain error -> 500", func(t *testing.T) {
		gotStatus, gotCode, _ := httpStatusFromError(errors.New("boom"))
		if gotStatus != http.StatusInternalServerError || gotCode != "INTERNAL" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})
}
