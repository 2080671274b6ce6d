package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"travel-storefront/internal/models"
	"travel-storefront/internal/services"
)

// MockAuthAPI is a mock implementation of services.AuthAPI
type MockAuthAPI struct {
	mock.Mock
}

func (m *MockAuthAPI) Login(ctx context.Context, req models.LoginRequest) services.Result[models.AuthResponse] {
	args := m.Called(ctx, req)
	return args.Get(0).(services.Result[models.AuthResponse])
}

func (m *MockAuthAPI) Register(ctx context.Context, req models.RegisterRequest) services.Result[models.User] {
	args := m.Called(ctx, req)
	return args.Get(0).(services.Result[models.User])
}

func (m *MockAuthAPI) GetLoggedUser(ctx context.Context) services.Result[models.User] {
	args := m.Called(ctx)
	return args.Get(0).(services.Result[models.User])
}

func (m *MockAuthAPI) Logout(ctx context.Context) services.Result[services.Ack] {
	args := m.Called(ctx)
	return args.Get(0).(services.Result[services.Ack])
}

func newTestStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret-key-test-secret-key!"))
}

// requestWithSession builds a request carrying a session cookie with the given values
func requestWithSession(t *testing.T, store sessions.Store, method, target string, values map[string]interface{}) *http.Request {
	t.Helper()

	seed := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	session, err := store.Get(seed, SessionName)
	require.NoError(t, err)
	for k, v := range values {
		session.Values[k] = v
	}
	require.NoError(t, session.Save(seed, rec))

	req := httptest.NewRequest(method, target, nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "user-1",
		"exp": exp.Unix(),
	}).SignedString([]byte("remote-secret"))
	require.NoError(t, err)
	return token
}
