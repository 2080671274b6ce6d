package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// LoginRateLimiter limits login and registration attempts per client IP
type LoginRateLimiter struct {
	attempts    map[string][]time.Time
	mutex       sync.Mutex
	maxAttempts int
	window      time.Duration
	now         func() time.Time
}

// NewLoginRateLimiter creates a new login rate limiter
func NewLoginRateLimiter(maxAttempts int, window time.Duration) *LoginRateLimiter {
	return &LoginRateLimiter{
		attempts:    make(map[string][]time.Time),
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
	}
}

// IsAllowed checks if a login attempt from the given IP is allowed
func (rl *LoginRateLimiter) IsAllowed(ip string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	valid := rl.prune(ip)
	return len(valid) < rl.maxAttempts
}

// RecordAttempt records a login attempt for the given IP
func (rl *LoginRateLimiter) RecordAttempt(ip string) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	rl.attempts[ip] = append(rl.prune(ip), rl.now())
}

// Reset forgets the attempts of an IP after a successful login
func (rl *LoginRateLimiter) Reset(ip string) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	delete(rl.attempts, ip)
}

// GetTimeUntilAllowed returns the time until the next login attempt is allowed
func (rl *LoginRateLimiter) GetTimeUntilAllowed(ip string) time.Duration {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	valid := rl.prune(ip)
	if len(valid) < rl.maxAttempts {
		return 0
	}
	return valid[0].Add(rl.window).Sub(rl.now())
}

// prune drops attempts outside the window. Caller holds the lock.
func (rl *LoginRateLimiter) prune(ip string) []time.Time {
	cutoff := rl.now().Add(-rl.window)
	attempts := rl.attempts[ip]

	valid := attempts[:0]
	for _, attempt := range attempts {
		if attempt.After(cutoff) {
			valid = append(valid, attempt)
		}
	}
	if len(valid) == 0 {
		delete(rl.attempts, ip)
		return nil
	}
	rl.attempts[ip] = valid
	return valid
}

// Cleanup removes idle IPs; run it from a ticker
func (rl *LoginRateLimiter) Cleanup() {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	for ip := range rl.attempts {
		rl.prune(ip)
	}
}

// LoginRateLimit provides rate limiting middleware for login endpoints
func LoginRateLimit(rateLimiter *LoginRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			ip := ClientIP(r)
			if !rateLimiter.IsAllowed(ip) {
				wait := rateLimiter.GetTimeUntilAllowed(ip)
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				WriteJSONError(w, http.StatusTooManyRequests,
					fmt.Sprintf("Too many login attempts. Please try again in %s.", wait.Round(time.Second)), "")
				return
			}

			rateLimiter.RecordAttempt(ip)
			next.ServeHTTP(w, r)
		})
	}
}
