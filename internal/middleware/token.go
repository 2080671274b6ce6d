package middleware

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// expirySkew treats tokens about to expire as already expired
const expirySkew = 30 * time.Second

// TokenExpired reports whether the API token has passed its exp claim. The
// signature is not checked here: the travel API verifies it on every call.
// Tokens that are not JWTs or carry no exp never expire locally.
func TokenExpired(token string, now time.Time) bool {
	if token == "" {
		return true
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return now.Add(expirySkew).After(exp.Time)
}
