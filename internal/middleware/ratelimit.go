// Package middleware provides HTTP middleware functions.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kyiku/shapefill/internal/response"
)

// RateLimiter counts requests per client IP in fixed windows.
type RateLimiter struct {
	requests map[string]*requestInfo
	mu       sync.Mutex
	limit    int           // max requests per window
	window   time.Duration // time window
	done     chan struct{}
	stopOnce sync.Once
}

type requestInfo struct {
	count     int
	resetTime time.Time
}

// NewRateLimiter creates a RateLimiter and starts its cleanup goroutine.
// Call Stop to release it.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		requests: make(map[string]*requestInfo),
		limit:    limit,
		window:   window,
		done:     make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// Stop ends the cleanup goroutine.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

// cleanup periodically removes expired entries.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for ip, info := range rl.requests {
				if now.After(info.resetTime) {
					delete(rl.requests, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Allow reports whether another request from ip fits in the current window.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	info, exists := rl.requests[ip]

	if !exists || now.After(info.resetTime) {
		rl.requests[ip] = &requestInfo{
			count:     1,
			resetTime: now.Add(rl.window),
		}
		return true
	}

	if info.count >= rl.limit {
		return false
	}

	info.count++
	return true
}

// Middleware rejects requests over the limit with 429.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rl.Allow(c.RealIP()) {
				return response.ErrorWithCode(c, http.StatusTooManyRequests, response.CodeRateLimited,
					"クリックが多すぎます。しばらく待ってから再試行してください。")
			}
			return next(c)
		}
	}
}

// RateLimitMiddleware returns a rate limiting middleware with its own limiter.
// A non-positive limit disables limiting.
func RateLimitMiddleware(limit int, window time.Duration) echo.MiddlewareFunc {
	if limit <= 0 || window <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return NewRateLimiter(limit, window).Middleware()
}
