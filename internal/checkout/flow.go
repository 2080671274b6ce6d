package checkout

import (
	"encoding/json"
	"fmt"
	"time"

	"travel-storefront/internal/models"
)

// Flow is the per-session checkout wizard. It is stored as JSON in the
// session between requests.
type Flow struct {
	State             State                  `json:"state"`
	Loaded            bool                   `json:"loaded"`
	Direct            bool                   `json:"direct,omitempty"`
	Booking           *models.BookingContext `json:"booking,omitempty"`
	Items             []models.CartItem      `json:"items"`
	PaymentMethods    []models.PaymentMethod `json:"paymentMethods"`
	SelectedPaymentID string                 `json:"selectedPaymentMethodId,omitempty"`
	Transaction       *models.Transaction    `json:"transaction,omitempty"`
	ProofURL          string                 `json:"proofPaymentUrl,omitempty"`
	UpdatedAt         time.Time              `json:"updatedAt"`
}

// NewFlow returns an empty flow at the first step
func NewFlow() *Flow {
	return &Flow{State: StateReviewAndSelectPayment}
}

// Total sums the cart subtotals
func (f *Flow) Total() int {
	return models.CartTotal(f.Items)
}

// CartIDs returns the server cart ids the transaction will reference
func (f *Flow) CartIDs() []string {
	return models.CartIDs(f.Items)
}

// SelectedPaymentMethod returns the chosen method, if any
func (f *Flow) SelectedPaymentMethod() (models.PaymentMethod, bool) {
	if f.SelectedPaymentID == "" {
		return models.PaymentMethod{}, false
	}
	return models.FindPaymentMethod(f.PaymentMethods, f.SelectedPaymentID)
}

// TransactionID returns the stored transaction id or ""
func (f *Flow) TransactionID() string {
	if f.Transaction == nil {
		return ""
	}
	return f.Transaction.ID
}

func (f *Flow) transition(next State) error {
	if !f.State.CanTransitionTo(next) {
		return fmt.Errorf("invalid checkout transition from %s to %s", f.State, next)
	}
	f.State = next
	f.UpdatedAt = time.Now()
	return nil
}

// Encode serializes the flow for the session
func (f *Flow) Encode() (string, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("failed to encode checkout flow: %w", err)
	}
	return string(data), nil
}

// DecodeFlow restores a flow from the session, falling back to a fresh flow
// when the stored value is missing or unreadable
func DecodeFlow(raw string) *Flow {
	if raw == "" {
		return NewFlow()
	}
	var f Flow
	if err := json.Unmarshal([]byte(raw), &f); err != nil || !f.State.IsValid() {
		return NewFlow()
	}
	return &f
}

// View is the JSON view model of the checkout page
type View struct {
	State                 State                  `json:"state"`
	Step                  int                    `json:"step"`
	Direct                bool                   `json:"direct"`
	Items                 []models.CartItem      `json:"items"`
	Total                 int                    `json:"total"`
	PaymentMethods        []models.PaymentMethod `json:"paymentMethods"`
	SelectedPaymentMethod *models.PaymentMethod  `json:"selectedPaymentMethod,omitempty"`
	Transaction           *models.Transaction    `json:"transaction,omitempty"`
	ProofPaymentURL       string                 `json:"proofPaymentUrl,omitempty"`
}

// View builds the page view model
func (f *Flow) View() View {
	v := View{
		State:           f.State,
		Step:            f.State.Step(),
		Direct:          f.Direct,
		Items:           f.Items,
		Total:           f.Total(),
		PaymentMethods:  f.PaymentMethods,
		Transaction:     f.Transaction,
		ProofPaymentURL: f.ProofURL,
	}
	if v.Items == nil {
		v.Items = []models.CartItem{}
	}
	if v.PaymentMethods == nil {
		v.PaymentMethods = []models.PaymentMethod{}
	}
	if m, ok := f.SelectedPaymentMethod(); ok {
		v.SelectedPaymentMethod = &m
	}
	return v
}
