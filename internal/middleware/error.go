package middleware

import (
	"encoding/json"
	"log"
	"net/http"
	"runtime/debug"

	"travel-storefront/internal/services"
)

// ErrorResponse is the JSON body of every error the storefront returns
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Redirect  string `json:"redirect,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// WriteJSONError writes an error body with the given status
func WriteJSONError(w http.ResponseWriter, status int, message, redirect string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Success:   false,
		Error:     message,
		Redirect:  redirect,
		RequestID: w.Header().Get(services.HeaderRequestID),
	})
}

// ErrorHandlingMiddleware turns panics into a 500 JSON response
func ErrorHandlingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}
				log.Printf("PANIC [%s] %s %s: %v\n%s",
					services.RequestIDFromContext(r.Context()), r.Method, r.URL.Path, err, debug.Stack())
				WriteJSONError(w, http.StatusInternalServerError, "Something went wrong. Please try again.", "")
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteJSONError(w, http.StatusNotFound, "The page you're looking for doesn't exist.", "")
	})
}

// MethodNotAllowedHandler handles 405 errors
func MethodNotAllowedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteJSONError(w, http.StatusMethodNotAllowed, "Method not allowed for this endpoint.", "")
	})
}
