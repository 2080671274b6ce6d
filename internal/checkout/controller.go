// Package checkout drives the storefront checkout wizard: review the cart and
// pick a payment method, create the transaction, then upload a proof of
// payment. Every remote failure becomes a notification; none are fatal.
package checkout

import (
	"context"
	"errors"
	"io"
	"log"

	"travel-storefront/internal/models"
	"travel-storefront/internal/services"
)

// Navigation targets
const (
	ActivitiesPath   = "/activities"
	TransactionsPath = "/my-transactions"
)

// API is the slice of the travel API the checkout needs
type API interface {
	services.CartAPI
	services.PaymentAPI
	services.TransactionAPI
}

// Outcome is the result of one checkout action
type Outcome struct {
	Flow          *Flow                 `json:"-"`
	Notifications []models.Notification `json:"notifications"`
	Redirect      string                `json:"redirect,omitempty"`
	Changed       bool                  `json:"-"`

	// Err is the first failure, for logging and status codes
	Err error `json:"-"`
}

func (o *Outcome) notify(level models.NotificationLevel, msg string) {
	o.Notifications = append(o.Notifications, models.Notification{Level: level, Message: msg})
}

func (o *Outcome) fail(level models.NotificationLevel, msg string, err error) {
	o.notify(level, msg)
	if o.Err == nil {
		o.Err = err
	}
}

// LoadOptions describe how checkout was entered
type LoadOptions struct {
	Direct  bool
	Booking *models.BookingContext
}

// Controller runs checkout transitions against the travel API
type Controller struct {
	api    API
	proofs services.ProofUploader
	retry  RetryPolicy
}

// NewController creates a new checkout controller
func NewController(api API, proofs services.ProofUploader, retry RetryPolicy) *Controller {
	return &Controller{
		api:    api,
		proofs: proofs,
		retry:  retry,
	}
}

// Load prepares the review step. A flow that already holds an open
// transaction is resumed as is, whether or not checkout was entered directly.
func (c *Controller) Load(ctx context.Context, flow *Flow, opts LoadOptions) Outcome {
	if flow == nil {
		flow = NewFlow()
	}
	out := Outcome{Flow: flow}

	if flow.Loaded && flow.State == StateUploadProof && flow.TransactionID() != "" {
		return out
	}

	selected := flow.SelectedPaymentID
	previousItems := flow.Items
	var openTx *models.Transaction
	var proofURL string
	if flow.Transaction.IsOpen() && !flow.Transaction.HasProof() {
		openTx = flow.Transaction
		proofURL = flow.ProofURL
	}
	*flow = Flow{
		State:       StateReviewAndSelectPayment,
		Direct:      opts.Direct,
		Booking:     opts.Booking,
		Transaction: openTx,
		ProofURL:    proofURL,
	}
	out.Changed = true

	methods := c.api.GetPaymentMethods(ctx)
	if methods.Success {
		flow.PaymentMethods = methods.Data
		if _, ok := models.FindPaymentMethod(flow.PaymentMethods, selected); ok {
			flow.SelectedPaymentID = selected
		}
	} else {
		out.fail(models.NotifyError, methods.Error, methods.Err())
	}

	// an open transaction has consumed its cart items; fetch once
	items, lastErr, err := c.fetchCart(ctx, opts, openTx == nil)
	if err != nil {
		out.fail(models.NotifyError, "Request was cancelled", err)
		return out
	}

	if len(items) == 0 && openTx != nil && len(previousItems) > 0 {
		items = previousItems
	}

	if len(items) == 0 && opts.Direct && opts.Booking != nil {
		items = []models.CartItem{opts.Booking.CartItem()}
		out.notify(models.NotifyInfo, "Your booking is still being added to the cart; showing booking details")
	}

	if len(items) == 0 {
		if lastErr != "" {
			out.fail(models.NotifyError, lastErr, models.ErrEmptyCart)
		}
		out.fail(models.NotifyWarning, "Your cart is empty. Pick an activity to continue", models.ErrEmptyCart)
		out.Redirect = ActivitiesPath
		return out
	}

	flow.Items = items
	flow.Loaded = true
	return out
}

// fetchCart reads the cart once, or with retries for a direct booking when
// retry is set. It returns the relevant items and the last remote error message.
func (c *Controller) fetchCart(ctx context.Context, opts LoadOptions, retry bool) ([]models.CartItem, string, error) {
	policy := c.retry
	if !opts.Direct || !retry {
		policy.Attempts = 1
	}

	var items []models.CartItem
	var lastErr string
	attempts, err := policy.Do(ctx, func(ctx context.Context, attempt int) bool {
		res := c.api.GetCarts(ctx)
		if !res.Success {
			lastErr = res.Error
			return false
		}
		lastErr = ""
		items = relevantItems(res.Data, opts)
		return len(items) > 0
	})
	if err != nil {
		return nil, "", err
	}
	if opts.Direct && retry && len(items) == 0 {
		log.Printf("Checkout: cart still empty after %d attempts for direct booking", attempts)
	}
	return items, lastErr, nil
}

// relevantItems narrows a direct booking to the booked activity
func relevantItems(items []models.CartItem, opts LoadOptions) []models.CartItem {
	if !opts.Direct || opts.Booking == nil {
		return items
	}
	matched := make([]models.CartItem, 0, 1)
	for _, item := range items {
		if item.ActivityID == opts.Booking.ActivityID || item.Activity.ID == opts.Booking.ActivityID {
			matched = append(matched, item)
		}
	}
	return matched
}

// SelectPaymentMethod records the chosen method. Selecting the current method
// again leaves the flow unchanged.
func (c *Controller) SelectPaymentMethod(flow *Flow, paymentMethodID string) Outcome {
	out := Outcome{Flow: flow}

	if flow.SelectedPaymentID == paymentMethodID && paymentMethodID != "" {
		return out
	}
	if flow.State != StateReviewAndSelectPayment {
		out.fail(models.NotifyWarning, "Go back to the review step to change the payment method", models.ErrTransactionCreated)
		return out
	}
	if _, ok := models.FindPaymentMethod(flow.PaymentMethods, paymentMethodID); !ok {
		out.fail(models.NotifyWarning, "Please choose one of the available payment methods", models.ErrUnknownPayment)
		return out
	}

	flow.SelectedPaymentID = paymentMethodID
	out.Changed = true
	return out
}

// CreateTransaction moves from review to proof upload by creating the remote
// transaction. Failures leave the flow on the review step; nothing is retried.
func (c *Controller) CreateTransaction(ctx context.Context, flow *Flow) Outcome {
	out := Outcome{Flow: flow}

	if !flow.Loaded {
		out.fail(models.NotifyWarning, "Checkout has expired, please reload the page", models.ErrCheckoutNotStarted)
		return out
	}
	if flow.State == StateUploadProof && flow.TransactionID() != "" {
		out.notify(models.NotifyInfo, "Transaction already created, upload your proof of payment")
		return out
	}
	if flow.State != StateReviewAndSelectPayment {
		out.fail(models.NotifyWarning, "Checkout is not ready for a new transaction", models.ErrCheckoutFinished)
		return out
	}

	method, ok := flow.SelectedPaymentMethod()
	if !ok {
		out.fail(models.NotifyWarning, "Please select a payment method", models.ErrNoPaymentMethod)
		return out
	}

	// Coming back from the proof step with the same method reuses the open transaction
	if tx := flow.Transaction; tx.IsOpen() && tx.ID != "" && tx.PaymentMethodID == method.ID {
		_ = flow.transition(StateUploadProof)
		out.Changed = true
		out.notify(models.NotifyInfo, "Continuing with your existing transaction")
		return out
	}

	if models.HasSynthetic(flow.Items) {
		if !c.resolveSyntheticItems(ctx, flow, &out) {
			return out
		}
	}

	cartIDs := flow.CartIDs()
	if len(cartIDs) == 0 {
		out.fail(models.NotifyWarning, "Your cart is empty", models.ErrEmptyCart)
		return out
	}

	_ = flow.transition(StateAwaitingTransaction)
	out.Changed = true

	res := c.api.CreateTransaction(ctx, models.CreateTransactionRequest{
		CartIDs:         cartIDs,
		PaymentMethodID: method.ID,
	})
	if !res.Success {
		_ = flow.transition(StateReviewAndSelectPayment)
		out.fail(models.NotifyError, res.Error, res.Err())
		return out
	}

	tx := res.Data
	if tx.ID == "" {
		found, ok := c.findCreatedTransaction(ctx, method.ID)
		if !ok {
			_ = flow.transition(StateReviewAndSelectPayment)
			out.fail(models.NotifyWarning, "Transaction created. Open My Transactions to upload your proof of payment", models.ErrNoTransaction)
			out.Redirect = TransactionsPath
			return out
		}
		tx = found
	}
	if tx.PaymentMethodID == "" {
		tx.PaymentMethodID = method.ID
	}
	if len(tx.CartIDs) == 0 {
		tx.CartIDs = cartIDs
	}
	if tx.Status == "" {
		tx.Status = models.TransactionPending
	}

	flow.Transaction = &tx
	flow.ProofURL = ""
	_ = flow.transition(StateUploadProof)
	out.notify(models.NotifySuccess, "Transaction created. Please transfer the total and upload your proof of payment")
	return out
}

// resolveSyntheticItems swaps locally synthesized items for the server's cart
// items. It reports false when no server item exists yet.
func (c *Controller) resolveSyntheticItems(ctx context.Context, flow *Flow, out *Outcome) bool {
	res := c.api.GetCarts(ctx)
	if !res.Success {
		out.fail(models.NotifyError, res.Error, res.Err())
		return false
	}

	items := relevantItems(res.Data, LoadOptions{Direct: flow.Direct, Booking: flow.Booking})
	if len(items) == 0 {
		out.fail(models.NotifyError, "Your booking has not reached the cart yet. Please try again in a moment", models.ErrEmptyCart)
		return false
	}

	flow.Items = items
	out.Changed = true
	return true
}

// findCreatedTransaction looks up the newest pending transaction for the
// method when the create call returned no body
func (c *Controller) findCreatedTransaction(ctx context.Context, paymentMethodID string) (models.Transaction, bool) {
	res := c.api.GetMyTransactions(ctx)
	if !res.Success {
		return models.Transaction{}, false
	}
	for i := len(res.Data) - 1; i >= 0; i-- {
		tx := res.Data[i]
		if tx.ID != "" && tx.IsOpen() && !tx.HasProof() && (tx.PaymentMethodID == "" || tx.PaymentMethodID == paymentMethodID) {
			return tx, true
		}
	}
	return models.Transaction{}, false
}

// UploadProof uploads the proof image and attaches its URL to the
// transaction. Failures keep the flow on the upload step.
func (c *Controller) UploadProof(ctx context.Context, flow *Flow, filename string, file io.Reader) Outcome {
	out := Outcome{Flow: flow}

	if flow.State != StateUploadProof || flow.TransactionID() == "" {
		out.fail(models.NotifyWarning, "Create a transaction before uploading a proof of payment", models.ErrNoTransaction)
		return out
	}

	// A stored URL means the image was uploaded but attaching it failed; only
	// the attach step is retried.
	proofURL := flow.ProofURL
	if proofURL == "" {
		if file == nil {
			out.fail(models.NotifyWarning, "Please choose a proof of payment image", models.ErrNoProofFile)
			return out
		}

		upload := c.proofs.UploadProof(ctx, filename, file)
		if !upload.Success {
			out.fail(models.NotifyError, upload.Error, upload.Err())
			return out
		}

		proofURL = upload.Data.URL
		flow.ProofURL = proofURL
		out.Changed = true
	}

	res := c.api.UpdateTransactionProof(ctx, flow.TransactionID(), models.UpdateProofRequest{
		ProofPaymentURL: proofURL,
	})
	if !res.Success {
		out.fail(models.NotifyError, res.Error, res.Err())
		return out
	}

	flow.Transaction.ProofPaymentURL = proofURL
	out.Changed = true
	_ = flow.transition(StateDone)
	out.notify(models.NotifySuccess, "Proof of payment uploaded. We will confirm your booking once the payment is verified")
	out.Redirect = TransactionsPath
	return out
}

// Back returns from the proof step to the review step. The transaction stays
// open on the server.
func (c *Controller) Back(flow *Flow) Outcome {
	out := Outcome{Flow: flow}
	if flow.State != StateUploadProof {
		return out
	}
	_ = flow.transition(StateReviewAndSelectPayment)
	out.Changed = true
	return out
}

// IsCancelled reports whether the outcome failed because the client went away
func (o Outcome) IsCancelled() bool {
	return errors.Is(o.Err, context.Canceled) || errors.Is(o.Err, context.DeadlineExceeded)
}
