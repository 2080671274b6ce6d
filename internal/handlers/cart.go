package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"travel-storefront/internal/checkout"
	"travel-storefront/internal/middleware"
	"travel-storefront/internal/models"
	"travel-storefront/internal/services"
)

// CheckoutDirectPath is where a "book now" lands
const CheckoutDirectPath = "/checkout?direct=1"

// CartHandler handles the remote cart and direct booking
type CartHandler struct {
	api   services.CartAPI
	store sessions.Store
}

// NewCartHandler creates a new cart handler
func NewCartHandler(api services.CartAPI, store sessions.Store) *CartHandler {
	return &CartHandler{
		api:   api,
		store: store,
	}
}

// CartView is the cart page view model
type CartView struct {
	Items []models.CartItem `json:"items"`
	Total int               `json:"total"`
}

// ViewCart lists the cart with its total
func (h *CartHandler) ViewCart(w http.ResponseWriter, r *http.Request) {
	res := h.api.GetCarts(r.Context())
	if !res.Success {
		respondResult(w, res)
		return
	}

	items := res.Data
	if items == nil {
		items = []models.CartItem{}
	}
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    CartView{Items: items, Total: models.CartTotal(items)},
	})
}

// AddToCart adds an activity to the cart
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req models.AddToCartRequest
	errs, err := bind(w, r, &req)
	if err != nil {
		middleware.WriteJSONError(w, http.StatusBadRequest, "Invalid cart request", "")
		return
	}
	if errs != nil {
		writeValidation(w, errs)
		return
	}

	res := h.api.AddToCart(r.Context(), req)
	if res.Success {
		h.invalidateCheckout(w, r)
	}
	respondResult(w, res)
}

// UpdateCartItem changes the quantity of one item
func (h *CartHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateCartRequest
	errs, err := bind(w, r, &req)
	if err != nil {
		middleware.WriteJSONError(w, http.StatusBadRequest, "Invalid cart request", "")
		return
	}
	if errs != nil {
		writeValidation(w, errs)
		return
	}

	res := h.api.UpdateCart(r.Context(), chi.URLParam(r, "id"), req)
	if res.Success {
		h.invalidateCheckout(w, r)
	}
	respondResult(w, res)
}

// RemoveCartItem deletes one item
func (h *CartHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	res := h.api.DeleteCart(r.Context(), chi.URLParam(r, "id"))
	if res.Success {
		h.invalidateCheckout(w, r)
	}
	respondResult(w, res)
}

// BookNow adds a single activity to the cart and starts a direct checkout
func (h *CartHandler) BookNow(w http.ResponseWriter, r *http.Request) {
	var booking models.BookingContext
	errs, err := bind(w, r, &booking)
	if err != nil {
		middleware.WriteJSONError(w, http.StatusBadRequest, "Invalid booking request", "")
		return
	}
	if errs != nil {
		writeValidation(w, errs)
		return
	}

	res := h.api.AddToCart(r.Context(), models.AddToCartRequest{
		ActivityID: booking.ActivityID,
		Quantity:   booking.Quantity,
		Date:       booking.Date,
	})
	if !res.Success {
		respondResult(w, res)
		return
	}

	session, err := getSession(h.store, r)
	if err != nil {
		handleSessionError(w, err)
		return
	}

	data, err := json.Marshal(booking)
	if err != nil {
		log.Printf("Failed to encode booking: %v", err)
		middleware.WriteJSONError(w, http.StatusInternalServerError, "Failed to start checkout", "")
		return
	}
	session.Values[middleware.SessionKeyBooking] = string(data)
	delete(session.Values, middleware.SessionKeyCheckout)
	saveSession(w, r, session)

	handleRedirect(w, r, CheckoutDirectPath, http.StatusSeeOther)
}

// invalidateCheckout drops a review-step flow so the next load sees the new cart.
// A flow holding a transaction is kept.
func (h *CartHandler) invalidateCheckout(w http.ResponseWriter, r *http.Request) {
	session, err := getSession(h.store, r)
	if err != nil {
		return
	}
	raw, _ := session.Values[middleware.SessionKeyCheckout].(string)
	if raw == "" {
		return
	}
	if flow := checkout.DecodeFlow(raw); flow.TransactionID() != "" {
		return
	}
	delete(session.Values, middleware.SessionKeyCheckout)
	saveSession(w, r, session)
}
