package llm

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// rateLimiter spaces out provider calls and backs off after a 429.
type rateLimiter struct {
	retryAt time.Time
	limiter *rate.Limiter
	mu      sync.Mutex
}

// newRateLimiter creates a limiter allowing requestsPerMinute calls,
// with bursts of up to the same amount.
func newRateLimiter(requestsPerMinute int) *rateLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}

	return &rateLimiter{
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), requestsPerMinute),
	}
}

// wait blocks until a call is allowed or the context is canceled.
func (rl *rateLimiter) wait(ctx context.Context) error {
	rl.mu.Lock()
	retryAt := rl.retryAt
	rl.mu.Unlock()

	if delay := time.Until(retryAt); delay > 0 {
		select {
		case <-ctx.Done():
			return fmt.Errorf("rate limiter canceled: %w", ctx.Err())
		case <-time.After(delay):
		}
	}

	if err := rl.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter canceled: %w", err)
	}
	return nil
}

// backoff holds all calls for d after the provider reports rate limiting.
func (rl *rateLimiter) backoff(d time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if until := time.Now().Add(d); until.After(rl.retryAt) {
		rl.retryAt = until
	}
}
