package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// clientBucket pairs a token bucket with its last activity time so idle
// clients can be evicted.
type clientBucket struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles callers per client IP. Limits are expressed in
// requests per minute, matching how the endpoint budgets are stated (session
// resolves, manage-user writes, relay submissions).
type RateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientBucket
	perMinute int
	burst     int
}

// NewRateLimiter creates a limiter allowing perMinute requests per client IP
// with the given burst. Buckets idle for more than ten minutes are evicted.
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	rl := &RateLimiter{
		clients:   make(map[string]*clientBucket),
		perMinute: perMinute,
		burst:     burst,
	}
	go rl.evictIdle()
	return rl
}

// bucketFor returns the client's token bucket, creating one on first sight.
func (rl *RateLimiter) bucketFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if cb, ok := rl.clients[ip]; ok {
		cb.lastSeen = time.Now()
		return cb.bucket
	}

	bucket := rate.NewLimiter(rate.Limit(float64(rl.perMinute)/60.0), rl.burst)
	rl.clients[ip] = &clientBucket{bucket: bucket, lastSeen: time.Now()}
	return bucket
}

func (rl *RateLimiter) evictIdle() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		for ip, cb := range rl.clients {
			if time.Since(cb.lastSeen) > 10*time.Minute {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// Middleware rejects over-limit requests with 429 and a Retry-After hint of
// one token's worth of seconds. Throttled callers never reach the identity
// authority or the backing store.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	retryAfter := strconv.Itoa(max(int(math.Ceil(60.0/float64(rl.perMinute))), 1))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rl.bucketFor(c.RealIP()).Allow() {
				c.Response().Header().Set("Retry-After", retryAfter)
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
