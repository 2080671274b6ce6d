package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/sessions"

	"travel-storefront/internal/utils"
)

// HeaderCSRFToken carries the token both ways
const HeaderCSRFToken = "X-CSRF-Token"

// CSRFMiddleware provides CSRF protection functionality
type CSRFMiddleware struct {
	store sessions.Store
}

// NewCSRFMiddleware creates a new CSRF middleware
func NewCSRFMiddleware(store sessions.Store) *CSRFMiddleware {
	return &CSRFMiddleware{
		store: store,
	}
}

// CSRFProtection rejects state-changing requests whose token does not match the session
func (m *CSRFMiddleware) CSRFProtection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		session, err := m.store.Get(r, SessionName)
		if err != nil {
			WriteJSONError(w, http.StatusForbidden, "Session expired. Please refresh the page and try again.", "")
			return
		}

		sessionToken, _ := session.Values[SessionKeyCSRF].(string)

		requestToken := r.Header.Get(HeaderCSRFToken)
		if requestToken == "" {
			requestToken = r.FormValue("csrf_token")
		}

		if !utils.SecureCompare(requestToken, sessionToken) {
			log.Printf("CSRF token mismatch on %s %s", r.Method, r.URL.Path)
			WriteJSONError(w, http.StatusForbidden, "Security token mismatch. Please refresh the page and try again.", "")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// EnsureCSRFToken makes sure the session has a CSRF token and exposes it in
// the context and the response header
func (m *CSRFMiddleware) EnsureCSRFToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.store.Get(r, SessionName)
		if err != nil {
			log.Printf("Failed to get session for CSRF token: %v", err)
			next.ServeHTTP(w, r)
			return
		}

		token, ok := session.Values[SessionKeyCSRF].(string)
		if !ok || token == "" {
			token = GenerateCSRFToken()
			session.Values[SessionKeyCSRF] = token
			if err := session.Save(r, w); err != nil {
				log.Printf("Failed to save CSRF token: %v", err)
			}
		}

		w.Header().Set(HeaderCSRFToken, token)
		ctx := context.WithValue(r.Context(), csrfContextKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
