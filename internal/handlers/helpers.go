package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"

	"travel-storefront/internal/middleware"
	"travel-storefront/internal/models"
	"travel-storefront/internal/services"
)

// maxJSONBody caps non-upload request bodies
const maxJSONBody = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report fields by their wire name
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// FieldErrors maps a request field to a human readable problem
type FieldErrors map[string]string

// Response is the JSON body of every storefront endpoint
type Response struct {
	Success       bool                  `json:"success"`
	Data          interface{}           `json:"data,omitempty"`
	Message       string                `json:"message,omitempty"`
	Error         string                `json:"error,omitempty"`
	Errors        FieldErrors           `json:"errors,omitempty"`
	Redirect      string                `json:"redirect,omitempty"`
	Notifications []models.Notification `json:"notifications,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// respondResult forwards a travel API result to the browser
func respondResult[T any](w http.ResponseWriter, res services.Result[T]) {
	if !res.Success {
		writeJSON(w, statusForRemote(res.Status), Response{Success: false, Error: res.Error})
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: res.Data, Message: res.Message})
}

// statusForRemote maps a travel API status to the status we answer with
func statusForRemote(status int) int {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return http.StatusUnauthorized
	case status == http.StatusNotFound:
		return http.StatusNotFound
	case status >= 400 && status < 500:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

// bind decodes a JSON or form body into dst and validates it
func bind(w http.ResponseWriter, r *http.Request, dst interface{}) (FieldErrors, error) {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
		if err := dec.Decode(dst); err != nil {
			return nil, fmt.Errorf("invalid JSON body: %w", err)
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("invalid form data: %w", err)
		}
		if err := decodeForm(r, dst); err != nil {
			return nil, err
		}
	}

	if err := validate.Struct(dst); err != nil {
		return fieldErrors(err), nil
	}
	return nil, nil
}

// decodeForm fills the string and int fields of dst from form values keyed by json name
func decodeForm(r *http.Request, dst interface{}) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return errors.New("decodeForm: dst must be a struct pointer")
	}
	v = v.Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		raw := strings.TrimSpace(r.FormValue(name))
		if raw == "" {
			continue
		}

		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(raw)
		case reflect.Int, reflect.Int64:
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for %s", name)
			}
			field.SetInt(n)
		}
	}
	return nil
}

func fieldErrors(err error) FieldErrors {
	out := FieldErrors{}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			out[fe.Field()] = messageForTag(fe.Tag(), fe.Param())
		}
		return out
	}

	out["_"] = "Invalid request"
	return out
}

func messageForTag(tag, param string) string {
	switch tag {
	case "required":
		return "This field is required"
	case "email":
		return "Please enter a valid email address"
	case "min":
		return "Must be at least " + param
	case "max":
		return "Must be at most " + param
	case "eqfield":
		return "Does not match " + strings.ToLower(param)
	default:
		return "Invalid value"
	}
}

// writeValidation answers a request that failed client-side validation
func writeValidation(w http.ResponseWriter, errs FieldErrors) {
	writeJSON(w, http.StatusUnprocessableEntity, Response{
		Success: false,
		Error:   "Please check the highlighted fields",
		Errors:  errs,
	})
}

// handleRedirect handles redirects appropriately for HTMX, JSON and plain requests
func handleRedirect(w http.ResponseWriter, r *http.Request, url string, statusCode int) {
	switch {
	case middleware.IsHTMXRequest(r):
		w.Header().Set("HX-Redirect", url)
		w.WriteHeader(http.StatusOK)
	case middleware.WantsJSON(r):
		writeJSON(w, http.StatusOK, Response{Success: true, Redirect: url})
	default:
		http.Redirect(w, r, url, statusCode)
	}
}

// getSession loads the storefront session. A session that cannot be decoded is
// replaced with a fresh one.
func getSession(store sessions.Store, r *http.Request) (*sessions.Session, error) {
	session, err := store.Get(r, middleware.SessionName)
	if session == nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if err != nil {
		log.Printf("Discarding unreadable session: %v", err)
	}
	return session, nil
}

func saveSession(w http.ResponseWriter, r *http.Request, session *sessions.Session) {
	if err := session.Save(r, w); err != nil {
		log.Printf("Failed to save session: %v", err)
	}
}

// handleSessionError answers when no session could be loaded at all
func handleSessionError(w http.ResponseWriter, err error) {
	log.Printf("Session error: %v", err)
	middleware.WriteJSONError(w, http.StatusInternalServerError, "Session error. Please refresh the page and try again.", "")
}

// safeRedirect only allows local paths as a post-login target
func safeRedirect(target string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "/"
	}
	return target
}
