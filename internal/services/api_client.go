package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"travel-storefront/internal/config"
)

// Result is the uniform outcome of one remote API call. Exactly one of Data or
// Error is meaningful, depending on Success.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Status  int    `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

// Err converts a failed result into an error, nil on success
func (r Result[T]) Err() error {
	if r.Success {
		return nil
	}
	return &APIError{StatusCode: r.Status, Message: r.Error}
}

// Ack is the payload of calls whose only output is a server message
type Ack struct {
	Message string `json:"message,omitempty"`
}

// APIError represents an error response from the travel API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("travel API error (status %d): %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether the remote API rejected the caller's token
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// envelope is the JSON shape every travel API response follows
type envelope struct {
	Code    string          `json:"code"`
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
	Errors  json.RawMessage `json:"errors"`
	Data    json.RawMessage `json:"data"`
	Token   string          `json:"token"`
	URL     string          `json:"url"`
}

// errorMessage picks the most specific human-readable message from the envelope
func (e *envelope) errorMessage() string {
	if msg := strings.TrimSpace(e.Message); msg != "" {
		return msg
	}
	for _, raw := range []json.RawMessage{e.Error, e.Errors} {
		if msg := rawMessage(raw); msg != "" {
			return msg
		}
	}
	return ""
}

// rawMessage extracts text from an error field that may be a string, an object
// with a message, or a list of strings
func rawMessage(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Message != "" {
		return obj.Message
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return strings.Join(list, ", ")
	}
	return ""
}

// APIClient calls the remote travel REST API
type APIClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewAPIClient creates a new travel API client
func NewAPIClient(cfg config.APIConfig) *APIClient {
	return &APIClient{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.Key,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// NewAPIClientWithHTTP creates a client on top of an existing http.Client
func NewAPIClientWithHTTP(cfg config.APIConfig, httpClient *http.Client) *APIClient {
	c := NewAPIClient(cfg)
	c.client = httpClient
	return c
}

// BaseURL returns the API root the client talks to
func (c *APIClient) BaseURL() string {
	return c.baseURL
}

// newRequest builds a request carrying the api key, bearer token and request id
func (c *APIClient) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.apiKey != "" {
		req.Header.Set("apiKey", c.apiKey)
	}
	if token := TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if rid := RequestIDFromContext(ctx); rid != "" {
		req.Header.Set(HeaderRequestID, rid)
	}
	return req, nil
}

// send issues the request and decodes the envelope. It never returns a Go
// error: every failure is folded into the envelope/status pair.
func (c *APIClient) send(req *http.Request, fallback string) (*envelope, int, string) {
	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(req.Context().Err(), context.Canceled) {
			return nil, 0, "Request was cancelled"
		}
		log.Printf("travel API %s %s failed: %v", req.Method, req.URL.Path, err)
		return nil, 0, fallback
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("travel API %s %s: failed to read response body: %v", req.Method, req.URL.Path, err)
		return nil, resp.StatusCode, fallback
	}

	var env envelope
	if len(bytes.TrimSpace(bodyBytes)) > 0 {
		if err := json.Unmarshal(bodyBytes, &env); err != nil {
			log.Printf("travel API %s %s: non-JSON response (status %d)", req.Method, req.URL.Path, resp.StatusCode)
			return nil, resp.StatusCode, fallback
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.errorMessage()
		if msg == "" {
			msg = fallback
		}
		return nil, resp.StatusCode, msg
	}

	return &env, resp.StatusCode, ""
}

// do performs one JSON call and maps the response into a Result
func do[T any](ctx context.Context, c *APIClient, method, path string, payload any, fallback string) Result[T] {
	var body io.Reader
	contentType := ""
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			log.Printf("travel API %s %s: failed to marshal request: %v", method, path, err)
			return Result[T]{Success: false, Error: fallback}
		}
		body = bytes.NewReader(jsonData)
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, path, body, contentType)
	if err != nil {
		log.Printf("travel API %s %s: failed to create request: %v", method, path, err)
		return Result[T]{Success: false, Error: fallback}
	}

	env, status, errMsg := c.send(req, fallback)
	if env == nil {
		return Result[T]{Success: false, Error: errMsg, Status: status}
	}
	return decodeData[T](env, status, fallback)
}

// decodeData unmarshals the data envelope into T
func decodeData[T any](env *envelope, status int, fallback string) Result[T] {
	result := Result[T]{Success: true, Status: status, Message: env.Message}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return result
	}
	if err := json.Unmarshal(env.Data, &result.Data); err != nil {
		log.Printf("travel API: failed to decode data envelope: %v", err)
		return Result[T]{Success: false, Error: fallback, Status: status}
	}
	return result
}

// ack converts a data-less call into an Ack result carrying the server message
func ack(r Result[json.RawMessage]) Result[Ack] {
	return Result[Ack]{
		Success: r.Success,
		Data:    Ack{Message: r.Message},
		Error:   r.Error,
		Status:  r.Status,
		Message: r.Message,
	}
}
