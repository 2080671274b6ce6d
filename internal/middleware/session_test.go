package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel-storefront/internal/config"
	"travel-storefront/internal/models"
)

func TestNewSessionStore(t *testing.T) {
	cookie, err := NewSessionStore(config.SessionConfig{Secret: "s", Store: "cookie", MaxAge: 60})
	require.NoError(t, err)
	assert.IsType(t, &sessions.CookieStore{}, cookie)

	fs, err := NewSessionStore(config.SessionConfig{Secret: "s", Store: "filesystem", Dir: t.TempDir(), MaxAge: 60})
	require.NoError(t, err)
	assert.IsType(t, &sessions.FilesystemStore{}, fs)

	_, err = NewSessionStore(config.SessionConfig{Secret: "s", Store: "redis"})
	assert.Error(t, err)
}

func TestNotifications_RoundTrip(t *testing.T) {
	store := newTestStore()

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	session, err := store.Get(req, SessionName)
	require.NoError(t, err)

	AddNotification(session, models.Notification{Level: models.NotifyWarning, Message: "Please select a payment method"})
	AddNotification(session, models.Notification{Level: models.NotifySuccess, Message: "Transaction created"})
	require.NoError(t, session.Save(req, rec))

	next := httptest.NewRequest("GET", "/notifications", nil)
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}
	session, err = store.Get(next, SessionName)
	require.NoError(t, err)

	got := PopNotifications(session)
	require.Len(t, got, 2)
	assert.Equal(t, models.NotifyWarning, got[0].Level)
	assert.Equal(t, "Transaction created", got[1].Message)
	assert.Empty(t, PopNotifications(session))
}

func TestSecureHeaders(t *testing.T) {
	rr := httptest.NewRecorder()
	SecureHeaders(okHandler()).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Empty(t, rr.Header().Get("Strict-Transport-Security"))
}

func TestCORSMiddleware(t *testing.T) {
	cfg := DefaultCORSConfig(config.CORSConfig{AllowedOrigins: []string{"https://shop.test", "*.travel.test"}})
	handler := CORSMiddleware(cfg)(okHandler())

	tests := []struct {
		name      string
		origin    string
		preflight bool
		allowed   bool
		status    int
	}{
		{"exact origin", "https://shop.test", false, true, http.StatusOK},
		{"subdomain wildcard", "https://m.travel.test", false, true, http.StatusOK},
		{"unknown origin", "https://evil.test", false, false, http.StatusOK},
		{"suffix trick is rejected", "https://eviltravel.test", false, false, http.StatusOK},
		{"preflight", "https://shop.test", true, true, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := "GET"
			if tt.preflight {
				method = "OPTIONS"
			}
			req := httptest.NewRequest(method, "/carts", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", "POST")
			}

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.status, rr.Code)
			if tt.allowed {
				assert.Equal(t, tt.origin, rr.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}
