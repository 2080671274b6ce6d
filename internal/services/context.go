package services

import "context"

// HeaderRequestID is forwarded to the travel API so its logs can be joined with ours
const HeaderRequestID = "X-Request-ID"

type contextKey string

const (
	tokenContextKey     contextKey = "api_token"
	requestIDContextKey contextKey = "request_id"
)

// ContextWithToken attaches the caller's API bearer token
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey, token)
}

// TokenFromContext returns the bearer token, or "" for anonymous calls
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey).(string)
	return token
}

// ContextWithRequestID attaches the inbound request id
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, id)
}

// RequestIDFromContext returns the request id, or ""
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey).(string)
	return id
}
