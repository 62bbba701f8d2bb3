package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_AllowsBurst(t *testing.T) {
	rl := newRateLimiter(5)

	start := time.Now()
	for range 5 {
		require.NoError(t, rl.wait(context.Background()))
	}
	assert.Less(t, time.Since(start), time.Second)
}

func TestRateLimiter_WaitRespectsContext(t *testing.T) {
	rl := newRateLimiter(1)
	require.NoError(t, rl.wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := rl.wait(ctx)
	assert.Error(t, err)
}

func TestRateLimiter_Backoff(t *testing.T) {
	rl := newRateLimiter(100)
	rl.backoff(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := rl.wait(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRateLimiter_DefaultRate(t *testing.T) {
	rl := newRateLimiter(0)
	assert.Equal(t, 60, rl.limiter.Burst())
}
