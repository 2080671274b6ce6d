package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"travel-storefront/internal/checkout"
	"travel-storefront/internal/middleware"
	"travel-storefront/internal/models"
	"travel-storefront/internal/services"
)

// TransactionHandler handles the "my transactions" pages
type TransactionHandler struct {
	api   services.TransactionAPI
	store sessions.Store
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(api services.TransactionAPI, store sessions.Store) *TransactionHandler {
	return &TransactionHandler{
		api:   api,
		store: store,
	}
}

// MyTransactions lists the caller's transactions
func (h *TransactionHandler) MyTransactions(w http.ResponseWriter, r *http.Request) {
	res := h.api.GetMyTransactions(r.Context())
	if res.Success && res.Data == nil {
		res.Data = []models.Transaction{}
	}
	respondResult(w, res)
}

// Transaction shows one transaction
func (h *TransactionHandler) Transaction(w http.ResponseWriter, r *http.Request) {
	respondResult(w, h.api.GetTransaction(r.Context(), chi.URLParam(r, "id")))
}

// Cancel cancels a pending transaction. A checkout flow waiting on it is dropped.
func (h *TransactionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	res := h.api.CancelTransaction(r.Context(), id)
	if !res.Success {
		respondResult(w, res)
		return
	}

	session, err := getSession(h.store, r)
	if err == nil {
		raw, _ := session.Values[middleware.SessionKeyCheckout].(string)
		if raw != "" && checkout.DecodeFlow(raw).TransactionID() == id {
			delete(session.Values, middleware.SessionKeyCheckout)
			delete(session.Values, middleware.SessionKeyBooking)
			saveSession(w, r, session)
		}
	}

	respondResult(w, res)
}

// NotificationHandler drains queued notifications
type NotificationHandler struct {
	store sessions.Store
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(store sessions.Store) *NotificationHandler {
	return &NotificationHandler{store: store}
}

// List returns and clears the queued notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	session, err := getSession(h.store, r)
	if err != nil {
		handleSessionError(w, err)
		return
	}

	notifications := middleware.PopNotifications(session)
	saveSession(w, r, session)

	writeJSON(w, http.StatusOK, Response{Success: true, Data: notifications})
}
