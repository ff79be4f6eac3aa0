package notification

import (
	"sync"
	"time"

	"github.com/Veraticus/idle-reminder/pkg/interfaces"
)

// TokenBucketRateLimiter implements token bucket rate limiting
type TokenBucketRateLimiter struct {
	capacity   int
	tokens     int
	refillRate time.Duration
	lastRefill time.Time
	now        func() time.Time
	mu         sync.Mutex
}

// NewTokenBucketRateLimiter creates a limiter holding capacity tokens, adding
// one token back every refillRate.
func NewTokenBucketRateLimiter(capacity int, refillRate time.Duration) *TokenBucketRateLimiter {
	capacity = max(capacity, 0)
	return &TokenBucketRateLimiter{
		capacity:   capacity,
		tokens:     capacity,
		refillRate: refillRate,
		lastRefill: time.Now(),
		now:        time.Now,
	}
}

// NewPerMinuteRateLimiter allows bursts of perMinute notifications and refills
// them evenly over a minute. Zero disables limiting and returns nil.
func NewPerMinuteRateLimiter(perMinute int) interfaces.RateLimiter {
	if perMinute <= 0 {
		return nil
	}
	return NewTokenBucketRateLimiter(perMinute, time.Minute/time.Duration(perMinute))
}

// Allow checks if a request is allowed under the rate limit
func (tb *TokenBucketRateLimiter) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	if tb.refillRate > 0 {
		now := tb.now()
		if tokensToAdd := int(now.Sub(tb.lastRefill) / tb.refillRate); tokensToAdd > 0 {
			tb.tokens = min(tb.capacity, tb.tokens+tokensToAdd)
			tb.lastRefill = tb.lastRefill.Add(time.Duration(tokensToAdd) * tb.refillRate)
		}
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true
	}
	return false
}

// Reset resets the rate limiter to full capacity
func (tb *TokenBucketRateLimiter) Reset() {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.tokens = tb.capacity
	tb.lastRefill = tb.now()
}
