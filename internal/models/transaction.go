package models

// TransactionStatus is the lifecycle status reported by the remote API
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionSuccess   TransactionStatus = "success"
	TransactionFailed    TransactionStatus = "failed"
	TransactionCancelled TransactionStatus = "cancelled"
)

// Transaction represents a booking transaction created from cart items
type Transaction struct {
	ID              string            `json:"id"`
	InvoiceID       string            `json:"invoiceId,omitempty"`
	CartIDs         []string          `json:"cartIds,omitempty"`
	PaymentMethodID string            `json:"paymentMethodId"`
	Status          TransactionStatus `json:"status"`
	TotalAmount     int               `json:"totalAmount,omitempty"`
	ProofPaymentURL string            `json:"proofPaymentUrl,omitempty"`
	OrderDate       string            `json:"orderDate,omitempty"`
	ExpiredDate     string            `json:"expiredDate,omitempty"`
}

// HasProof reports whether a proof of payment has been attached
func (t *Transaction) HasProof() bool {
	return t != nil && t.ProofPaymentURL != ""
}

// IsOpen reports whether the transaction can still receive a proof or be cancelled
func (t *Transaction) IsOpen() bool {
	return t != nil && (t.Status == "" || t.Status == TransactionPending)
}
