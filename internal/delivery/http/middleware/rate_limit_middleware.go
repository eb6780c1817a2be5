package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	"clinic-management/config"
	"clinic-management/pkg/response"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long an unused per-client limiter is kept.
const limiterIdleTTL = 10 * time.Minute

// RateLimiter throttles a route per client IP with a token bucket.
type RateLimiter struct {
	limiters *cache.Cache
	limit    rate.Limit
	burst    int
}

func NewLoginRateLimiter(cfg config.LoginConfig) *RateLimiter {
	perMinute := cfg.RatePerMinute
	if perMinute <= 0 {
		perMinute = 10
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limiters: cache.New(limiterIdleTTL, limiterIdleTTL),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
	}
}

func (m *RateLimiter) limiterFor(key string) *rate.Limiter {
	if v, ok := m.limiters.Get(key); ok {
		limiter := v.(*rate.Limiter)
		m.limiters.SetDefault(key, limiter)
		return limiter
	}
	limiter := rate.NewLimiter(m.limit, m.burst)
	// Add fails if another request created the limiter first; use theirs.
	if err := m.limiters.Add(key, limiter, cache.DefaultExpiration); err != nil {
		if v, ok := m.limiters.Get(key); ok {
			return v.(*rate.Limiter)
		}
	}
	return limiter
}

func (m *RateLimiter) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.limiterFor(clientIP(r)).Allow() {
			w.Header().Set("Retry-After", "60")
			response.TooManyRequests(w, "Too many login attempts, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.SplitN(forwarded, ",", 2)[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
