package httpapi

import (
	"math"
	"net/http"
	"strconv"

	"golang.org/x/time/rate"
)

// RateLimitConfig holds the token bucket configuration.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit. Zero disables limiting.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// RateLimiter rejects requests that exceed a token bucket shared by
// all clients of the server.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a rate limiter. It returns nil when limiting is disabled.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.RequestsPerSecond <= 0 {
		return nil
	}
	burst := cfg.BurstSize
	if burst <= 0 {
		burst = int(math.Ceil(cfg.RequestsPerSecond))
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst),
	}
}

// Allow checks if a request can be served immediately.
// When it cannot, it also returns how many seconds the client should wait.
func (l *RateLimiter) Allow() (bool, int) {
	if l == nil {
		return true, 0
	}
	res := l.limiter.Reserve()
	if !res.OK() {
		return false, 1
	}
	delay := res.Delay()
	if delay == 0 {
		return true, 0
	}
	res.Cancel()
	return false, int(math.Ceil(delay.Seconds()))
}

// Middleware answers 429 with a Retry-After header when the bucket is empty.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, retryAfter := l.Allow()
		if !ok {
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			writeJSON(w, http.StatusTooManyRequests, errorBody{
				Error:  KindRateLimited,
				Detail: "too many requests",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
