package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/sessions"

	"travel-storefront/internal/models"
	"travel-storefront/internal/services"
	"travel-storefront/internal/utils"
)

type contextKey string

const (
	UserContextKey contextKey = "user"
	csrfContextKey contextKey = "csrf_token"
)

// LoginPath is where unauthenticated visitors are sent
const LoginPath = "/login"

// AuthMiddleware resolves the storefront user from the API token kept in the session
type AuthMiddleware struct {
	api   services.AuthAPI
	store sessions.Store
	now   func() time.Time
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(api services.AuthAPI, store sessions.Store) *AuthMiddleware {
	return &AuthMiddleware{
		api:   api,
		store: store,
		now:   time.Now,
	}
}

// LoadUser adds the user and API token to the request context. Expired or
// rejected tokens log the visitor out.
func (m *AuthMiddleware) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.store.Get(r, SessionName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		token, _ := session.Values[SessionKeyToken].(string)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		if TokenExpired(token, m.now()) {
			log.Printf("Session token expired, logging out")
			ClearAuth(session)
			AddNotification(session, models.Notification{Level: models.NotifyWarning, Message: "Your session has expired, please log in again"})
			if err := session.Save(r, w); err != nil {
				log.Printf("Failed to save session: %v", err)
			}
			next.ServeHTTP(w, r)
			return
		}

		ctx := services.ContextWithToken(r.Context(), token)

		user := userFromSession(session)
		if user == nil {
			res := m.api.GetLoggedUser(ctx)
			if !res.Success {
				var apiErr *services.APIError
				if err := res.Err(); err != nil {
					apiErr, _ = err.(*services.APIError)
				}
				if apiErr != nil && apiErr.IsUnauthorized() {
					ClearAuth(session)
					_ = session.Save(r, w)
				}
				next.ServeHTTP(w, r)
				return
			}
			user = &res.Data
			StoreUser(session, user)
			if err := session.Save(r, w); err != nil {
				log.Printf("Failed to save session: %v", err)
			}
		}

		ctx = SetUserContext(ctx, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth middleware ensures user is authenticated
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return RequireAuth(next)
}

// RequireAuth sends anonymous visitors to the login page, keeping the
// requested URL for the redirect back
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserFromContext(r.Context()) != nil {
			next.ServeHTTP(w, r)
			return
		}

		target := LoginPath + "?redirect=" + url.QueryEscape(r.URL.RequestURI())
		switch {
		case IsHTMXRequest(r):
			w.Header().Set("HX-Redirect", target)
			w.WriteHeader(http.StatusUnauthorized)
		case WantsJSON(r):
			WriteJSONError(w, http.StatusUnauthorized, "Please log in to continue", target)
		default:
			http.Redirect(w, r, target, http.StatusSeeOther)
		}
	})
}

// GetUserFromContext retrieves the user from request context
func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// SetUserContext sets the user in the context
func SetUserContext(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

// IsHTMXRequest checks if the request is from HTMX
func IsHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// WantsJSON reports whether the client asked for a JSON response
func WantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.Contains(r.Header.Get("Content-Type"), "application/json")
}

// StoreUser snapshots the user in the session
func StoreUser(session *sessions.Session, user *models.User) {
	data, err := json.Marshal(user)
	if err != nil {
		return
	}
	session.Values[SessionKeyUser] = string(data)
}

func userFromSession(session *sessions.Session) *models.User {
	raw, ok := session.Values[SessionKeyUser].(string)
	if !ok || raw == "" {
		return nil
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user.ID == "" {
		return nil
	}
	return &user
}

// ClearAuth removes the token, the user and every per-user checkout value
func ClearAuth(session *sessions.Session) {
	delete(session.Values, SessionKeyToken)
	delete(session.Values, SessionKeyUser)
	delete(session.Values, SessionKeyCheckout)
	delete(session.Values, SessionKeyBooking)
}

// GenerateCSRFToken generates a CSRF token for the session
func GenerateCSRFToken() string {
	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		log.Printf("Failed to generate CSRF token: %v", err)
		return ""
	}
	return token
}

// GetCSRFToken returns the token EnsureCSRFToken put in the context
func GetCSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(csrfContextKey).(string)
	return token
}
