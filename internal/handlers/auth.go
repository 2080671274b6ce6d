package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/sessions"

	"travel-storefront/internal/middleware"
	"travel-storefront/internal/models"
	"travel-storefront/internal/services"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	api         services.AuthAPI
	store       sessions.Store
	rateLimiter *middleware.LoginRateLimiter
}

// NewAuthHandler creates a new authentication handler. rateLimiter may be nil.
func NewAuthHandler(api services.AuthAPI, store sessions.Store, rateLimiter *middleware.LoginRateLimiter) *AuthHandler {
	return &AuthHandler{
		api:         api,
		store:       store,
		rateLimiter: rateLimiter,
	}
}

// LoginPage tells the client whether it is already logged in and hands out the CSRF token
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	redirect := safeRedirect(r.URL.Query().Get("redirect"))

	if middleware.GetUserFromContext(r.Context()) != nil {
		handleRedirect(w, r, redirect, http.StatusSeeOther)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]string{
			"csrfToken": middleware.GetCSRFToken(r.Context()),
			"redirect":  redirect,
		},
	})
}

// LoginSubmit exchanges credentials for an API token and stores it in the session
func (h *AuthHandler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	errs, err := bind(w, r, &req)
	if err != nil {
		middleware.WriteJSONError(w, http.StatusBadRequest, "Invalid login request", "")
		return
	}
	if errs != nil {
		writeValidation(w, errs)
		return
	}

	res := h.api.Login(r.Context(), req)
	if !res.Success {
		log.Printf("Login failed for %s: %s", req.Email, res.Error)
		status := http.StatusUnauthorized
		if res.Status == 0 || res.Status >= 500 {
			status = http.StatusBadGateway
		}
		middleware.WriteJSONError(w, status, res.Error, "")
		return
	}

	session, err := getSession(h.store, r)
	if err != nil {
		handleSessionError(w, err)
		return
	}

	// a new login never inherits the previous visitor's checkout
	middleware.ClearAuth(session)
	session.Values[middleware.SessionKeyToken] = res.Data.Token
	user := res.Data.User
	if user.ID != "" {
		middleware.StoreUser(session, &user)
	}
	middleware.AddNotification(session, models.Notification{
		Level:   models.NotifySuccess,
		Message: "Welcome back, " + user.DisplayName(),
	})
	saveSession(w, r, session)

	if h.rateLimiter != nil {
		h.rateLimiter.Reset(middleware.ClientIP(r))
	}

	handleRedirect(w, r, safeRedirect(r.URL.Query().Get("redirect")), http.StatusSeeOther)
}

// RegisterSubmit creates an account on the travel API
func (h *AuthHandler) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	errs, err := bind(w, r, &req)
	if err != nil {
		middleware.WriteJSONError(w, http.StatusBadRequest, "Invalid registration request", "")
		return
	}
	if errs != nil {
		writeValidation(w, errs)
		return
	}
	// only the API decides who is an admin
	req.Role = models.UserRoleUser

	res := h.api.Register(r.Context(), req)
	if !res.Success {
		middleware.WriteJSONError(w, statusForRemote(res.Status), res.Error, "")
		return
	}

	session, err := getSession(h.store, r)
	if err != nil {
		handleSessionError(w, err)
		return
	}
	middleware.AddNotification(session, models.Notification{
		Level:   models.NotifySuccess,
		Message: "Registration successful. Please log in",
	})
	saveSession(w, r, session)

	handleRedirect(w, r, middleware.LoginPath, http.StatusSeeOther)
}

// Logout invalidates the token remotely and clears the session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if services.TokenFromContext(r.Context()) != "" {
		if res := h.api.Logout(r.Context()); !res.Success {
			log.Printf("Remote logout failed: %s", res.Error)
		}
	}

	session, err := getSession(h.store, r)
	if err != nil {
		handleSessionError(w, err)
		return
	}
	middleware.ClearAuth(session)
	middleware.AddNotification(session, models.Notification{Level: models.NotifyInfo, Message: "You have been logged out"})
	saveSession(w, r, session)

	handleRedirect(w, r, "/", http.StatusSeeOther)
}

// CurrentUser returns the logged-in account
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		middleware.WriteJSONError(w, http.StatusUnauthorized, "Please log in to continue", middleware.LoginPath)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: user})
}
