package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"travel-storefront/internal/models"
)

// CreateTransaction turns cart items into a pending transaction. Some API
// deployments answer with no data; callers must then look the transaction up.
func (c *APIClient) CreateTransaction(ctx context.Context, req models.CreateTransactionRequest) Result[models.Transaction] {
	return do[models.Transaction](ctx, c, http.MethodPost, "/create-transaction", req, "Failed to create transaction")
}

// UpdateTransactionProof attaches the uploaded proof of payment URL
func (c *APIClient) UpdateTransactionProof(ctx context.Context, transactionID string, req models.UpdateProofRequest) Result[Ack] {
	path := "/update-transaction-proof-payment/" + url.PathEscape(transactionID)
	return ack(do[json.RawMessage](ctx, c, http.MethodPost, path, req, "Failed to update proof of payment"))
}

// GetMyTransactions lists the caller's transactions
func (c *APIClient) GetMyTransactions(ctx context.Context) Result[[]models.Transaction] {
	return do[[]models.Transaction](ctx, c, http.MethodGet, "/my-transactions", nil, "Failed to fetch transactions")
}

// GetTransaction fetches one transaction
func (c *APIClient) GetTransaction(ctx context.Context, transactionID string) Result[models.Transaction] {
	return do[models.Transaction](ctx, c, http.MethodGet, "/transaction/"+url.PathEscape(transactionID), nil, "Failed to fetch transaction")
}

// CancelTransaction cancels a pending transaction
func (c *APIClient) CancelTransaction(ctx context.Context, transactionID string) Result[Ack] {
	return ack(do[json.RawMessage](ctx, c, http.MethodPost, "/cancel-transaction/"+url.PathEscape(transactionID), nil, "Failed to cancel transaction"))
}
