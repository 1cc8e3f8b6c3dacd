package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestLimiter(capacity int, refill time.Duration) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	limiter := NewRateLimiter(capacity, refill)
	limiter.now = clock.Now
	return limiter, clock
}

func TestRateLimiterAllow(t *testing.T) {
	limiter, clock := newTestLimiter(3, time.Minute)
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		allowed, _ := limiter.Allow("10.0.0.1")
		assert.True(t, allowed, "request %d", i)
	}

	clock.now = clock.now.Add(20 * time.Second)
	allowed, retryAfter := limiter.Allow("10.0.0.1")
	assert.False(t, allowed)
	assert.Equal(t, 40*time.Second, retryAfter)

	allowed, _ = limiter.Allow("10.0.0.2")
	assert.True(t, allowed, "clients have separate buckets")

	clock.now = clock.now.Add(40 * time.Second)
	allowed, _ = limiter.Allow("10.0.0.1")
	assert.True(t, allowed, "bucket refills after the window")
}

func TestRateLimiterCleanup(t *testing.T) {
	limiter, clock := newTestLimiter(1, time.Minute)
	defer limiter.Stop()

	limiter.Allow("10.0.0.1")
	clock.now = clock.now.Add(2 * time.Hour)
	limiter.Allow("10.0.0.2")

	limiter.cleanup()

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.NotContains(t, limiter.clients, "10.0.0.1")
	assert.Contains(t, limiter.clients, "10.0.0.2")
}

func TestRateLimiterStopTwice(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	limiter.Stop()
	assert.NotPanics(t, limiter.Stop)
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter, _ := newTestLimiter(1, 90*time.Second)
	defer limiter.Stop()

	handler := RateLimitMiddleware(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/plans", nil)
	req.RemoteAddr = "203.0.113.9:5123"

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	req.RemoteAddr = "203.0.113.9:6000"
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "90", w.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error": "rate limit exceeded"}`, w.Body.String())
}
