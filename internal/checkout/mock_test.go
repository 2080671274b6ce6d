package checkout

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"travel-storefront/internal/models"
	"travel-storefront/internal/services"
)

// MockAPI is a mock implementation of API
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) AddToCart(ctx context.Context, req models.AddToCartRequest) services.Result[services.Ack] {
	args := m.Called(ctx, req)
	return args.Get(0).(services.Result[services.Ack])
}

func (m *MockAPI) UpdateCart(ctx context.Context, cartID string, req models.UpdateCartRequest) services.Result[services.Ack] {
	args := m.Called(ctx, cartID, req)
	return args.Get(0).(services.Result[services.Ack])
}

func (m *MockAPI) DeleteCart(ctx context.Context, cartID string) services.Result[services.Ack] {
	args := m.Called(ctx, cartID)
	return args.Get(0).(services.Result[services.Ack])
}

func (m *MockAPI) GetCarts(ctx context.Context) services.Result[[]models.CartItem] {
	args := m.Called(ctx)
	return args.Get(0).(services.Result[[]models.CartItem])
}

func (m *MockAPI) GetPaymentMethods(ctx context.Context) services.Result[[]models.PaymentMethod] {
	args := m.Called(ctx)
	return args.Get(0).(services.Result[[]models.PaymentMethod])
}

func (m *MockAPI) CreateTransaction(ctx context.Context, req models.CreateTransactionRequest) services.Result[models.Transaction] {
	args := m.Called(ctx, req)
	return args.Get(0).(services.Result[models.Transaction])
}

func (m *MockAPI) UpdateTransactionProof(ctx context.Context, transactionID string, req models.UpdateProofRequest) services.Result[services.Ack] {
	args := m.Called(ctx, transactionID, req)
	return args.Get(0).(services.Result[services.Ack])
}

func (m *MockAPI) GetMyTransactions(ctx context.Context) services.Result[[]models.Transaction] {
	args := m.Called(ctx)
	return args.Get(0).(services.Result[[]models.Transaction])
}

func (m *MockAPI) GetTransaction(ctx context.Context, transactionID string) services.Result[models.Transaction] {
	args := m.Called(ctx, transactionID)
	return args.Get(0).(services.Result[models.Transaction])
}

func (m *MockAPI) CancelTransaction(ctx context.Context, transactionID string) services.Result[services.Ack] {
	args := m.Called(ctx, transactionID)
	return args.Get(0).(services.Result[services.Ack])
}

// MockProofUploader is a mock implementation of services.ProofUploader
type MockProofUploader struct {
	mock.Mock
}

func (m *MockProofUploader) UploadProof(ctx context.Context, filename string, reader io.Reader) services.Result[models.UploadResult] {
	args := m.Called(ctx, filename, reader)
	return args.Get(0).(services.Result[models.UploadResult])
}

func success[T any](data T) services.Result[T] {
	return services.Result[T]{Success: true, Data: data, Status: 200}
}

func failure[T any](status int, msg string) services.Result[T] {
	return services.Result[T]{Success: false, Error: msg, Status: status}
}

func intPtr(v int) *int {
	return &v
}

var testMethods = []models.PaymentMethod{
	{ID: "pm-bca", Name: "BCA", ImageURL: "https://img.test/bca.png"},
	{ID: "pm-bri", Name: "BRI", ImageURL: "https://img.test/bri.png"},
}

var testItems = []models.CartItem{
	{ID: "cart-1", ActivityID: "act-1", Activity: models.ActivityRef{ID: "act-1", Title: "Snorkeling", Price: 150000}, Quantity: 2},
	{ID: "cart-2", ActivityID: "act-2", Activity: models.ActivityRef{ID: "act-2", Title: "Rafting", Price: 300000}, Quantity: 1, TotalPrice: intPtr(280000)},
}

var (
	_ API                    = (*MockAPI)(nil)
	_ services.ProofUploader = (*MockProofUploader)(nil)
)
