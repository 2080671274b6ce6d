package services

import (
	"context"
	"io"

	"travel-storefront/internal/models"
)

// AuthAPI covers token issuance and the logged-in account
type AuthAPI interface {
	Login(ctx context.Context, req models.LoginRequest) Result[models.AuthResponse]
	Register(ctx context.Context, req models.RegisterRequest) Result[models.User]
	GetLoggedUser(ctx context.Context) Result[models.User]
	Logout(ctx context.Context) Result[Ack]
}

// CatalogAPI covers the read-only browsing endpoints
type CatalogAPI interface {
	GetActivities(ctx context.Context) Result[[]models.Activity]
	GetActivity(ctx context.Context, id string) Result[models.Activity]
	GetActivitiesByCategory(ctx context.Context, categoryID string) Result[[]models.Activity]
	GetCategories(ctx context.Context) Result[[]models.Category]
	GetPromos(ctx context.Context) Result[[]models.Promo]
	GetBanners(ctx context.Context) Result[[]models.Banner]
}

// CartAPI defines the interface for remote cart operations
type CartAPI interface {
	AddToCart(ctx context.Context, req models.AddToCartRequest) Result[Ack]
	UpdateCart(ctx context.Context, cartID string, req models.UpdateCartRequest) Result[Ack]
	DeleteCart(ctx context.Context, cartID string) Result[Ack]
	GetCarts(ctx context.Context) Result[[]models.CartItem]
}

// PaymentAPI lists the manual transfer methods
type PaymentAPI interface {
	GetPaymentMethods(ctx context.Context) Result[[]models.PaymentMethod]
}

// TransactionAPI defines the interface for transaction operations
type TransactionAPI interface {
	CreateTransaction(ctx context.Context, req models.CreateTransactionRequest) Result[models.Transaction]
	UpdateTransactionProof(ctx context.Context, transactionID string, req models.UpdateProofRequest) Result[Ack]
	GetMyTransactions(ctx context.Context) Result[[]models.Transaction]
	GetTransaction(ctx context.Context, transactionID string) Result[models.Transaction]
	CancelTransaction(ctx context.Context, transactionID string) Result[Ack]
}

// ImageUploader sends one image to the remote upload endpoint
type ImageUploader interface {
	UploadImage(ctx context.Context, filename, contentType string, reader io.Reader) Result[models.UploadResult]
}

// StorefrontAPI is everything the storefront needs from the travel API
type StorefrontAPI interface {
	AuthAPI
	CatalogAPI
	CartAPI
	PaymentAPI
	TransactionAPI
	ImageUploader
}

// ProofUploader stores a proof of payment image and returns its public URL
type ProofUploader interface {
	UploadProof(ctx context.Context, filename string, reader io.Reader) Result[models.UploadResult]
}

var _ StorefrontAPI = (*APIClient)(nil)
