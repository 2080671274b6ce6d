package services

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"

	"travel-storefront/internal/models"
)

// Login exchanges credentials for an API token. The token sits next to the
// data envelope rather than inside it.
func (c *APIClient) Login(ctx context.Context, req models.LoginRequest) Result[models.AuthResponse] {
	const fallback = "Login failed"

	jsonData, err := json.Marshal(req)
	if err != nil {
		return Result[models.AuthResponse]{Error: fallback}
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, "/login", bytes.NewReader(jsonData), "application/json")
	if err != nil {
		log.Printf("travel API POST /login: failed to create request: %v", err)
		return Result[models.AuthResponse]{Error: fallback}
	}

	env, status, errMsg := c.send(httpReq, fallback)
	if env == nil {
		return Result[models.AuthResponse]{Error: errMsg, Status: status}
	}

	user := decodeData[models.User](env, status, fallback)
	if !user.Success {
		return Result[models.AuthResponse]{Error: user.Error, Status: status}
	}
	if env.Token == "" {
		return Result[models.AuthResponse]{Error: "Login response did not include a token", Status: status}
	}

	return Result[models.AuthResponse]{
		Success: true,
		Data:    models.AuthResponse{Token: env.Token, User: user.Data},
		Status:  status,
		Message: env.Message,
	}
}

// Register creates a new account
func (c *APIClient) Register(ctx context.Context, req models.RegisterRequest) Result[models.User] {
	if req.Role == "" {
		req.Role = models.UserRoleUser
	}
	return do[models.User](ctx, c, http.MethodPost, "/register", req, "Registration failed")
}

// GetLoggedUser returns the account that owns the token in ctx
func (c *APIClient) GetLoggedUser(ctx context.Context) Result[models.User] {
	return do[models.User](ctx, c, http.MethodGet, "/user", nil, "Failed to fetch user")
}

// Logout invalidates the token in ctx on the remote side
func (c *APIClient) Logout(ctx context.Context) Result[Ack] {
	return ack(do[json.RawMessage](ctx, c, http.MethodGet, "/logout", nil, "Logout failed"))
}
