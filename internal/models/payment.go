package models

// PaymentMethod is a bank transfer destination offered by the remote API
type PaymentMethod struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	ImageURL             string `json:"imageUrl"`
	VirtualAccountNumber string `json:"virtual_account_number,omitempty"`
	VirtualAccountName   string `json:"virtual_account_name,omitempty"`
}

// FindPaymentMethod returns the method with the given id
func FindPaymentMethod(methods []PaymentMethod, id string) (PaymentMethod, bool) {
	for _, m := range methods {
		if m.ID == id {
			return m, true
		}
	}
	return PaymentMethod{}, false
}
