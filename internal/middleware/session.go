package middleware

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/sessions"

	"travel-storefront/internal/config"
	"travel-storefront/internal/models"
)

// SessionName is the cookie holding the storefront session
const SessionName = "session"

// Session value keys
const (
	SessionKeyToken    = "api_token"
	SessionKeyUser     = "user"
	SessionKeyCSRF     = "csrf_token"
	SessionKeyCheckout = "checkout_flow"
	SessionKeyBooking  = "booking_context"
)

const notificationFlashKey = "notifications"

// NewSessionStore builds the configured gorilla session store. The
// filesystem store keeps the checkout flow out of the 4KB cookie limit.
func NewSessionStore(cfg config.SessionConfig) (sessions.Store, error) {
	opts := &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	switch cfg.Store {
	case "cookie":
		store := sessions.NewCookieStore([]byte(cfg.Secret))
		store.Options = opts
		return store, nil
	case "filesystem", "":
		if cfg.Dir != "" {
			if err := os.MkdirAll(cfg.Dir, 0o700); err != nil {
				return nil, fmt.Errorf("failed to create session directory: %w", err)
			}
		}
		store := sessions.NewFilesystemStore(cfg.Dir, []byte(cfg.Secret))
		store.Options = opts
		// checkout flows with many items exceed securecookie's default 4096
		store.MaxLength(64 * 1024)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown SESSION_STORE %q (want filesystem or cookie)", cfg.Store)
	}
}

// AddNotification queues a notification to be shown on the next screen
func AddNotification(session *sessions.Session, n models.Notification) {
	data, err := json.Marshal(n)
	if err != nil {
		return
	}
	session.AddFlash(string(data), notificationFlashKey)
}

// PopNotifications drains queued notifications. The caller must save the session.
func PopNotifications(session *sessions.Session) []models.Notification {
	flashes := session.Flashes(notificationFlashKey)
	out := make([]models.Notification, 0, len(flashes))
	for _, f := range flashes {
		raw, ok := f.(string)
		if !ok {
			continue
		}
		var n models.Notification
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			log.Printf("Dropping unreadable notification: %v", err)
			continue
		}
		out = append(out, n)
	}
	return out
}

// SecureHeaders adds security headers to responses
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Cache-Control", "no-store")

		if r.TLS != nil {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}
