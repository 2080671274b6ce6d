package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"travel-storefront/internal/middleware"
	"travel-storefront/internal/models"
	"travel-storefront/internal/services"
)

func TestAuthHandler_LoginSubmit(t *testing.T) {
	t.Run("successful login stores the token", func(t *testing.T) {
		api := new(MockAPI)
		store := newTestStore(t)
		limiter := middleware.NewLoginRateLimiter(1, time.Minute)
		limiter.RecordAttempt("192.0.2.1")
		h := NewAuthHandler(api, store, limiter)

		api.On("Login", mock.Anything, models.LoginRequest{Email: "ayu@example.com", Password: "secret1"}).
			Return(success(models.AuthResponse{Token: "jwt-abc", User: models.User{ID: "user-1", Name: "Ayu"}}))

		b := newBrowser(t)
		b.seed(store, map[string]interface{}{middleware.SessionKeyCheckout: `{"state":"upload_proof"}`})

		req := jsonRequest("POST", "/login?redirect=%2Fcheckout", `{"email":"ayu@example.com","password":"secret1"}`)
		req.RemoteAddr = "192.0.2.1:1234"
		rr := b.do(h.LoginSubmit, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"success":true,"redirect":"/checkout"}`, rr.Body.String())

		session := b.session(store)
		assert.Equal(t, "jwt-abc", session.Values[middleware.SessionKeyToken])
		assert.Contains(t, session.Values[middleware.SessionKeyUser], `"id":"user-1"`)
		assert.Nil(t, session.Values[middleware.SessionKeyCheckout])
		assert.Equal(t, time.Duration(0), limiter.GetTimeUntilAllowed("192.0.2.1"))
		api.AssertExpectations(t)
	})

	t.Run("form login redirects the browser", func(t *testing.T) {
		api := new(MockAPI)
		h := NewAuthHandler(api, newTestStore(t), nil)
		api.On("Login", mock.Anything, mock.Anything).Return(success(models.AuthResponse{Token: "jwt-abc"}))

		form := url.Values{"email": {"ayu@example.com"}, "password": {"secret1"}}
		req := httptest.NewRequest("POST", "/login?redirect=https://evil.test", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := newBrowser(t).do(h.LoginSubmit, req)

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/", rr.Header().Get("Location"))
	})

	t.Run("validation errors never reach the API", func(t *testing.T) {
		api := new(MockAPI)
		h := NewAuthHandler(api, newTestStore(t), nil)

		rr := newBrowser(t).do(h.LoginSubmit, jsonRequest("POST", "/login", `{"email":"","password":""}`))

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		var body Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Contains(t, body.Errors, "email")
		assert.Contains(t, body.Errors, "password")
		api.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
	})

	t.Run("rejected credentials", func(t *testing.T) {
		api := new(MockAPI)
		h := NewAuthHandler(api, newTestStore(t), nil)
		api.On("Login", mock.Anything, mock.Anything).
			Return(failure[models.AuthResponse](http.StatusBadRequest, "Email or password is incorrect"))

		rr := newBrowser(t).do(h.LoginSubmit, jsonRequest("POST", "/login", `{"email":"ayu@example.com","password":"wrong12"}`))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Email or password is incorrect")
	})

	t.Run("API unreachable", func(t *testing.T) {
		api := new(MockAPI)
		h := NewAuthHandler(api, newTestStore(t), nil)
		api.On("Login", mock.Anything, mock.Anything).Return(failure[models.AuthResponse](0, "Login failed"))

		rr := newBrowser(t).do(h.LoginSubmit, jsonRequest("POST", "/login", `{"email":"ayu@example.com","password":"secret1"}`))
		assert.Equal(t, http.StatusBadGateway, rr.Code)
	})
}

func TestAuthHandler_RegisterSubmit(t *testing.T) {
	api := new(MockAPI)
	store := newTestStore(t)
	h := NewAuthHandler(api, store, nil)

	api.On("Register", mock.Anything, mock.MatchedBy(func(req models.RegisterRequest) bool {
		return req.Email == "new@example.com" && req.Role == models.UserRoleUser
	})).Return(success(models.User{ID: "user-9"}))

	b := newBrowser(t)
	rr := b.do(h.RegisterSubmit, jsonRequest("POST", "/register",
		`{"email":"new@example.com","name":"New","password":"secret1","passwordRepeat":"secret1","role":"admin"}`))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"redirect":"/login"}`, rr.Body.String())

	notes := middleware.PopNotifications(b.session(store))
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotifySuccess, notes[0].Level)
	api.AssertExpectations(t)
}

func TestAuthHandler_Logout(t *testing.T) {
	api := new(MockAPI)
	store := newTestStore(t)
	h := NewAuthHandler(api, store, nil)
	api.On("Logout", mock.Anything).Return(success(services.Ack{}))

	b := newBrowser(t)
	b.seed(store, map[string]interface{}{
		middleware.SessionKeyToken:    "jwt-abc",
		middleware.SessionKeyUser:     `{"id":"user-1"}`,
		middleware.SessionKeyCheckout: `{"state":"review_and_select_payment"}`,
	})

	req := jsonRequest("POST", "/logout", "")
	req = req.WithContext(services.ContextWithToken(req.Context(), "jwt-abc"))
	rr := b.do(h.Logout, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	session := b.session(store)
	assert.Nil(t, session.Values[middleware.SessionKeyToken])
	assert.Nil(t, session.Values[middleware.SessionKeyCheckout])
	api.AssertExpectations(t)
}

func TestAuthHandler_CurrentUser(t *testing.T) {
	h := NewAuthHandler(new(MockAPI), newTestStore(t), nil)

	rr := httptest.NewRecorder()
	h.CurrentUser(rr, httptest.NewRequest("GET", "/user", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest("GET", "/user", nil)
	req = req.WithContext(middleware.SetUserContext(context.Background(), &models.User{ID: "user-1", Name: "Ayu"}))
	rr = httptest.NewRecorder()
	h.CurrentUser(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"name":"Ayu"`)
}

func TestAuthHandler_LoginPage(t *testing.T) {
	h := NewAuthHandler(new(MockAPI), newTestStore(t), nil)

	rr := httptest.NewRecorder()
	h.LoginPage(rr, httptest.NewRequest("GET", "/login?redirect=%2Fcheckout", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"redirect":"/checkout"`)

	req := httptest.NewRequest("GET", "/login?redirect=%2Fcheckout", nil)
	req = req.WithContext(middleware.SetUserContext(req.Context(), &models.User{ID: "user-1"}))
	rr = httptest.NewRecorder()
	h.LoginPage(rr, req)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/checkout", rr.Header().Get("Location"))
}
