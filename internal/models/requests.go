package models

// LoginRequest is the payload for POST /login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterRequest is the payload for POST /register
type RegisterRequest struct {
	Email          string   `json:"email" validate:"required,email"`
	Name           string   `json:"name" validate:"required"`
	Password       string   `json:"password" validate:"required,min=6"`
	PasswordRepeat string   `json:"passwordRepeat" validate:"required,eqfield=Password"`
	Role           UserRole `json:"role,omitempty"`
	PhoneNumber    string   `json:"phoneNumber,omitempty"`
}

// AuthResponse is what the remote API returns from login
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"data"`
}

// AddToCartRequest is the payload for POST /add-to-cart
type AddToCartRequest struct {
	ActivityID string `json:"activityId" validate:"required"`
	Quantity   int    `json:"quantity,omitempty" validate:"omitempty,min=1"`
	Date       string `json:"date,omitempty"`
}

// UpdateCartRequest is the payload for POST /update-cart/{id}
type UpdateCartRequest struct {
	Quantity int `json:"quantity" validate:"min=1"`
}

// CreateTransactionRequest is the payload for POST /create-transaction
type CreateTransactionRequest struct {
	CartIDs         []string `json:"cartIds" validate:"required,min=1,dive,required"`
	PaymentMethodID string   `json:"paymentMethodId" validate:"required"`
}

// UpdateProofRequest is the payload for POST /update-transaction-proof-payment/{id}
type UpdateProofRequest struct {
	ProofPaymentURL string `json:"proofPaymentUrl" validate:"required"`
}

// UploadResult is the data returned from POST /upload-image
type UploadResult struct {
	URL string `json:"url"`
}
