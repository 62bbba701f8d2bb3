package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/tech-concierge/internal/service"
)

var (
	// ErrRateLimit indicates that the API rate limit has been exceeded.
	ErrRateLimit = errors.New("rate limit exceeded")
	// ErrMaxRetries indicates that all retry attempts have been exhausted.
	ErrMaxRetries = errors.New("max retries exceeded")
)

// RetryableError wraps an error with retry-specific metadata.
type RetryableError struct {
	Err       error
	Retryable bool
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err, Retryable: false}
}

// WithRetry calls operation until it succeeds, returns a permanent error,
// or runs out of attempts. Rate limit errors wait the full MaxDelay before
// the next attempt. opts.Operation prefixes the final error.
func WithRetry(ctx context.Context, operation func() error, opts service.RetryOptions) error {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.InitialDelay <= 0 {
		opts.InitialDelay = 100 * time.Millisecond
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = 30 * time.Second
	}
	if opts.Multiplier <= 0 {
		opts.Multiplier = 2.0
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Operation == "" {
		opts.Operation = "operation"
	}

	delay := opts.InitialDelay
	for attempt := 1; ; attempt++ {
		err := operation()
		if err == nil {
			if attempt > 1 {
				opts.Logger.Debug("recovered after retry", "operation", opts.Operation, "attempts", attempt)
			}
			return nil
		}

		if isPermanent(err) {
			return err
		}
		if attempt >= opts.MaxAttempts {
			return fmt.Errorf("%s: %w after %d attempts: %w", opts.Operation, ErrMaxRetries, attempt, err)
		}

		wait := delay
		if errors.Is(err, ErrRateLimit) {
			wait = opts.MaxDelay
		}

		opts.Logger.Warn("call failed, retrying",
			"operation", opts.Operation,
			"attempt", attempt,
			"max_attempts", opts.MaxAttempts,
			"wait", wait,
			"error", err)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%s: %w", opts.Operation, ctx.Err())
		case <-timer.C:
		}

		delay = min(time.Duration(float64(delay)*opts.Multiplier), opts.MaxDelay)
	}
}

func isPermanent(err error) bool {
	var retryableErr *RetryableError
	return errors.As(err, &retryableErr) && !retryableErr.Retryable
}
