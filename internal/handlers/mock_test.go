package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"travel-storefront/internal/middleware"
	"travel-storefront/internal/models"
	"travel-storefront/internal/services"
)

// MockAPI is a mock implementation of services.StorefrontAPI
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) Login(ctx context.Context, req models.LoginRequest) services.Result[models.AuthResponse] {
	args := m.Called(ctx, req)
	return args.Get(0).(services.Result[models.AuthResponse])
}

func (m *MockAPI) Register(ctx context.Context, req models.RegisterRequest) services.Result[models.User] {
	args := m.Called(ctx, req)
	return args.Get(0).(services.Result[models.User])
}

func (m *MockAPI) GetLoggedUser(ctx context.Context) services.Result[models.User] {
	args := m.Called(ctx)
	return args.Get(0).(services.Result[models.User])
}

func (m *MockAPI) Logout(ctx context.Context) services.Result[services.Ack] {
	args := m.Called(ctx)
	return args.Get(0).(services.Result[services.Ack])
}

func (m *MockAPI) GetActivities(ctx context.Context) services.Result[[]models.Activity] {
	args := m.Called(ctx)
	return args.Get(0).(services.Result[[]models.Activity])
}

func (m *MockAPI) GetActivity(ctx context.Context, id string) services.Result[models.Activity] {
	args := m.Called(ctx, id)
	return args.Get(0).(services.Result[models.Activity])
}

func (m *MockAPI) GetActivitiesByCategory(ctx context.Context, categoryID string) services.Result[[]models.Activity] {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(services.Result[[]models.Activity])
}

func (m *MockAPI) GetCategories(ctx context.Context) services.Result[[]models.Category] {
	args := m.Called(ctx)
	return args.Get(0).(services.Result[[]models.Category])
}

func (m *MockAPI) GetPromos(ctx context.Context) services.Result[[]models.Promo] {
	args := m.Called(ctx)
	return args.Get(0).(services.Result[[]models.Promo])
}

func (m *MockAPI) GetBanners(ctx context.Context) services.Result[[]models.Banner] {
	args := m.Called(ctx)
	return args.Get(0).(services.Result[[]models.Banner])
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

func (m *MockAPI) UploadImage(ctx context.Context, filename, contentType string, reader io.Reader) services.Result[models.UploadResult] {
	args := m.Called(ctx, filename, contentType, reader)
	return args.Get(0).(services.Result[models.UploadResult])
}

var _ services.StorefrontAPI = (*MockAPI)(nil)

// MockProofUploader is a mock implementation of services.ProofUploader
type MockProofUploader struct {
	mock.Mock
}

func (m *MockProofUploader) UploadProof(ctx context.Context, filename string, reader io.Reader) services.Result[models.UploadResult] {
	args := m.Called(ctx, filename, reader)
	return args.Get(0).(services.Result[models.UploadResult])
}

func success[T any](data T) services.Result[T] {
	return services.Result[T]{Success: true, Data: data, Status: http.StatusOK}
}

func failure[T any](status int, msg string) services.Result[T] {
	return services.Result[T]{Success: false, Error: msg, Status: status}
}

func newTestStore(t *testing.T) sessions.Store {
	t.Helper()
	store := sessions.NewFilesystemStore(t.TempDir(), []byte("test-secret-key-test-secret-key!"))
	store.MaxLength(64 * 1024)
	return store
}

// browser carries session cookies from one request to the next
type browser struct {
	t       *testing.T
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T) *browser {
	return &browser{t: t, cookies: map[string]*http.Cookie{}}
}

func (b *browser) do(handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	handler(rr, req)
	for _, c := range rr.Result().Cookies() {
		b.cookies[c.Name] = c
	}
	return rr
}

// session reads the current session the way the next request would see it
func (b *browser) session(store sessions.Store) *sessions.Session {
	b.t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	session, err := store.Get(req, middleware.SessionName)
	require.NoError(b.t, err)
	return session
}

// seed writes values into the browser's session
func (b *browser) seed(store sessions.Store, values map[string]interface{}) {
	b.t.Helper()
	b.do(func(w http.ResponseWriter, r *http.Request) {
		session, err := store.Get(r, middleware.SessionName)
		require.NoError(b.t, err)
		for k, v := range values {
			session.Values[k] = v
		}
		require.NoError(b.t, session.Save(r, w))
	}, httptest.NewRequest(http.MethodGet, "/", nil))
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, stringsReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req
}

func stringsReader(s string) io.Reader {
	if s == "" {
		return http.NoBody
	}
	return strings.NewReader(s)
}
