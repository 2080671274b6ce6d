package models

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors used throughout the application
var (
	ErrUnauthorized       = errors.New("unauthorized access")
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrNoPaymentMethod    = errors.New("no payment method selected")
	ErrUnknownPayment     = errors.New("payment method not available")
	ErrNoTransaction      = errors.New("no transaction to attach proof to")
	ErrNoProofFile        = errors.New("no proof of payment selected")
	ErrInvalidImage       = errors.New("invalid image")
	ErrTransactionCreated = errors.New("transaction already created")
	ErrCheckoutNotStarted = errors.New("checkout has not been loaded")
	ErrCheckoutFinished   = errors.New("checkout already finished")
)

// ValidationError is a client-side validation failure, keyed by field
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Unwrap lets errors.Is match ErrInvalidInput
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewValidationError builds a single-field validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
