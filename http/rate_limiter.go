package http

import (
	"sync"
	"time"
)

const (
	minIdleBeforeEviction = time.Hour
	evictionInterval      = 30 * time.Minute
)

type bucket struct {
	tokens   int
	filledAt time.Time
}

// refill tops the bucket up when a full window has passed since it was last
// filled and returns the time left in the current window.
func (b *bucket) refill(now time.Time, capacity int, window time.Duration) time.Duration {
	if elapsed := now.Sub(b.filledAt); elapsed < window {
		return window - elapsed
	}
	b.tokens = capacity
	b.filledAt = now
	return window
}

// RateLimiter hands every client a bucket of capacity tokens that refills
// completely once per window.
type RateLimiter struct {
	mu        sync.Mutex
	capacity  int
	window    time.Duration
	idleAfter time.Duration
	clients   map[string]*bucket
	now       func() time.Time
	done      chan struct{}
	stopOnce  sync.Once
}

func NewRateLimiter(capacity int, window time.Duration) *RateLimiter {
	idleAfter := 2 * window
	if idleAfter < minIdleBeforeEviction {
		idleAfter = minIdleBeforeEviction
	}

	rl := &RateLimiter{
		capacity:  capacity,
		window:    window,
		idleAfter: idleAfter,
		clients:   make(map[string]*bucket),
		now:       time.Now,
		done:      make(chan struct{}),
	}
	go rl.evictLoop()
	return rl
}

func (r *RateLimiter) evictLoop() {
	ticker := time.NewTicker(evictionInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.cleanup()
		case <-r.done:
			return
		}
	}
}

// cleanup drops buckets that have sat idle long enough to be full again.
func (r *RateLimiter) cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for client, b := range r.clients {
		if now.Sub(b.filledAt) > r.idleAfter {
			delete(r.clients, client)
		}
	}
}

// Stop ends the eviction loop. It is safe to call more than once.
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.done) })
}

// Allow takes a token from the client's bucket. When the bucket is empty it
// reports how long until the next refill.
func (r *RateLimiter) Allow(client string) (bool, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	b, ok := r.clients[client]
	if !ok {
		b = &bucket{tokens: r.capacity, filledAt: now}
		r.clients[client] = b
	}

	remaining := b.refill(now, r.capacity, r.window)
	if b.tokens <= 0 {
		return false, remaining
	}
	b.tokens--
	return true, 0
}
