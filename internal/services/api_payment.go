package services

import (
	"context"
	"net/http"

	"travel-storefront/internal/models"
)

// GetPaymentMethods lists the bank transfer destinations
func (c *APIClient) GetPaymentMethods(ctx context.Context) Result[[]models.PaymentMethod] {
	return do[[]models.PaymentMethod](ctx, c, http.MethodGet, "/payment-methods", nil, "Failed to fetch payment methods")
}
