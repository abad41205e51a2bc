package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	catalogapp "github.com/CristalT/elico-storefront/internal/catalog/app"
)

func (a *API) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q := catalogapp.Query{
		Search: r.URL.Query().Get("search"),
	}
	q.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	q.Limit, _ = strconv.Atoi(r.URL.Query().Get("perPage"))

	page, err := a.catalog.ListProducts(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (a *API) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := a.catalog.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (a *API) handleShowcases(w http.ResponseWriter, r *http.Request) {
	showcases, err := a.catalog.Showcases(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, showcases)
}

func (a *API) handleSettings(w http.ResponseWriter, r *http.Request) {
	out, err := a.settings.GetAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
