package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"travel-storefront/internal/services"
)

// CatalogHandler proxies the read-only browsing endpoints
type CatalogHandler struct {
	api services.CatalogAPI
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(api services.CatalogAPI) *CatalogHandler {
	return &CatalogHandler{api: api}
}

func (h *CatalogHandler) Activities(w http.ResponseWriter, r *http.Request) {
	if categoryID := r.URL.Query().Get("category"); categoryID != "" {
		respondResult(w, h.api.GetActivitiesByCategory(r.Context(), categoryID))
		return
	}
	respondResult(w, h.api.GetActivities(r.Context()))
}

func (h *CatalogHandler) Activity(w http.ResponseWriter, r *http.Request) {
	respondResult(w, h.api.GetActivity(r.Context(), chi.URLParam(r, "id")))
}

func (h *CatalogHandler) CategoryActivities(w http.ResponseWriter, r *http.Request) {
	respondResult(w, h.api.GetActivitiesByCategory(r.Context(), chi.URLParam(r, "id")))
}

func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	respondResult(w, h.api.GetCategories(r.Context()))
}

func (h *CatalogHandler) Promos(w http.ResponseWriter, r *http.Request) {
	respondResult(w, h.api.GetPromos(r.Context()))
}

func (h *CatalogHandler) Banners(w http.ResponseWriter, r *http.Request) {
	respondResult(w, h.api.GetBanners(r.Context()))
}
