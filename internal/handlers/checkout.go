package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/gorilla/sessions"

	"travel-storefront/internal/checkout"
	"travel-storefront/internal/middleware"
	"travel-storefront/internal/models"
	"travel-storefront/internal/services"
)

// proofFormField is the multipart field carrying the proof image
const proofFormField = "proof"

// CheckoutHandler exposes the checkout wizard. The flow lives in the session;
// each action loads it, runs one controller transition and stores it back.
type CheckoutHandler struct {
	controller *checkout.Controller
	store      sessions.Store
	maxUpload  int64
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(controller *checkout.Controller, store sessions.Store, maxUpload int64) *CheckoutHandler {
	return &CheckoutHandler{
		controller: controller,
		store:      store,
		maxUpload:  maxUpload,
	}
}

// CheckoutResponse is the body of every checkout action
type CheckoutResponse struct {
	Success       bool                  `json:"success"`
	Checkout      checkout.View         `json:"checkout"`
	Notifications []models.Notification `json:"notifications"`
	Redirect      string                `json:"redirect,omitempty"`
}

// Show loads the review step. ?direct=1 marks a checkout entered from "book now".
func (h *CheckoutHandler) Show(w http.ResponseWriter, r *http.Request) {
	session, err := getSession(h.store, r)
	if err != nil {
		handleSessionError(w, err)
		return
	}

	opts := checkout.LoadOptions{Direct: r.URL.Query().Get("direct") == "1"}
	if opts.Direct {
		opts.Booking = bookingFromSession(session)
	}

	out := h.controller.Load(r.Context(), loadFlow(session), opts)
	h.respond(w, r, session, out)
}

// SelectPaymentMethod records the chosen payment method
func (h *CheckoutHandler) SelectPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PaymentMethodID string `json:"paymentMethodId" validate:"required"`
	}
	errs, err := bind(w, r, &req)
	if err != nil {
		middleware.WriteJSONError(w, http.StatusBadRequest, "Invalid payment method request", "")
		return
	}

	session, err := getSession(h.store, r)
	if err != nil {
		handleSessionError(w, err)
		return
	}
	flow := loadFlow(session)

	if errs != nil {
		h.respond(w, r, session, h.controller.SelectPaymentMethod(flow, ""))
		return
	}
	h.respond(w, r, session, h.controller.SelectPaymentMethod(flow, req.PaymentMethodID))
}

// CreateTransaction creates the remote transaction from the cart
func (h *CheckoutHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	session, err := getSession(h.store, r)
	if err != nil {
		handleSessionError(w, err)
		return
	}
	h.respond(w, r, session, h.controller.CreateTransaction(r.Context(), loadFlow(session)))
}

// UploadProof accepts a multipart proof image and attaches it to the transaction
func (h *CheckoutHandler) UploadProof(w http.ResponseWriter, r *http.Request) {
	session, err := getSession(h.store, r)
	if err != nil {
		handleSessionError(w, err)
		return
	}
	flow := loadFlow(session)

	// multipart framing needs some room above the image limit
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+64*1024)

	var (
		filename string
		file     io.Reader
	)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || errors.Is(err, multipart.ErrMessageTooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, CheckoutResponse{
				Success:  false,
				Checkout: flow.View(),
				Notifications: []models.Notification{{
					Level:   models.NotifyError,
					Message: "Proof of payment is too large",
				}},
			})
			return
		}
		if !errors.Is(err, http.ErrNotMultipart) {
			log.Printf("Failed to parse proof upload: %v", err)
		}
	} else {
		defer r.MultipartForm.RemoveAll()
		f, header, err := r.FormFile(proofFormField)
		switch {
		case err == nil:
			defer f.Close()
			filename, file = header.Filename, f
		case !errors.Is(err, http.ErrMissingFile):
			log.Printf("Failed to read proof upload: %v", err)
		}
	}

	h.respond(w, r, session, h.controller.UploadProof(r.Context(), flow, filename, file))
}

// Back returns from the proof step to the review step
func (h *CheckoutHandler) Back(w http.ResponseWriter, r *http.Request) {
	session, err := getSession(h.store, r)
	if err != nil {
		handleSessionError(w, err)
		return
	}
	h.respond(w, r, session, h.controller.Back(loadFlow(session)))
}

// respond stores the flow and renders the outcome. Outcomes that navigate
// away hand their notifications to the next screen through the session.
func (h *CheckoutHandler) respond(w http.ResponseWriter, r *http.Request, session *sessions.Session, out checkout.Outcome) {
	if out.IsCancelled() {
		log.Printf("Checkout request cancelled by client")
		return
	}

	flow := out.Flow
	if flow == nil {
		flow = checkout.NewFlow()
	}

	if flow.State == checkout.StateDone {
		delete(session.Values, middleware.SessionKeyCheckout)
		delete(session.Values, middleware.SessionKeyBooking)
	} else if out.Changed {
		if err := storeFlow(session, flow); err != nil {
			log.Printf("Failed to store checkout flow: %v", err)
		}
	}

	if out.Redirect != "" {
		for _, n := range out.Notifications {
			middleware.AddNotification(session, n)
		}
		saveSession(w, r, session)
		handleRedirect(w, r, out.Redirect, http.StatusSeeOther)
		return
	}
	saveSession(w, r, session)

	notifications := out.Notifications
	if notifications == nil {
		notifications = []models.Notification{}
	}
	writeJSON(w, statusForOutcome(out.Err), CheckoutResponse{
		Success:       out.Err == nil,
		Checkout:      flow.View(),
		Notifications: notifications,
	})
}

// statusForOutcome maps the first failure of an action to an HTTP status
func statusForOutcome(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var apiErr *services.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == 0 {
			// failures the uploader reports without a remote status
			return http.StatusUnprocessableEntity
		}
		return statusForRemote(apiErr.StatusCode)
	}

	switch {
	case errors.Is(err, models.ErrNoPaymentMethod),
		errors.Is(err, models.ErrUnknownPayment),
		errors.Is(err, models.ErrNoProofFile),
		errors.Is(err, models.ErrInvalidImage),
		errors.Is(err, models.ErrEmptyCart):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrCheckoutNotStarted),
		errors.Is(err, models.ErrCheckoutFinished),
		errors.Is(err, models.ErrTransactionCreated),
		errors.Is(err, models.ErrNoTransaction):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func loadFlow(session *sessions.Session) *checkout.Flow {
	raw, _ := session.Values[middleware.SessionKeyCheckout].(string)
	return checkout.DecodeFlow(raw)
}

func storeFlow(session *sessions.Session, flow *checkout.Flow) error {
	raw, err := flow.Encode()
	if err != nil {
		return err
	}
	session.Values[middleware.SessionKeyCheckout] = raw
	return nil
}

func bookingFromSession(session *sessions.Session) *models.BookingContext {
	raw, _ := session.Values[middleware.SessionKeyBooking].(string)
	if raw == "" {
		return nil
	}
	var booking models.BookingContext
	if err := json.Unmarshal([]byte(raw), &booking); err != nil || booking.ActivityID == "" {
		return nil
	}
	return &booking
}
