package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/tech-concierge/internal/common"
	"github.com/Veraticus/tech-concierge/internal/model"
	"github.com/Veraticus/tech-concierge/internal/service"
)

// rateLimitBackoff is how long calls pause after the provider returns 429.
const rateLimitBackoff = 5 * time.Second

// Responder produces concierge replies from a model client, adding rate
// limiting, retries and a short-lived cache of identical requests.
type Responder struct {
	client      Client
	cache       *replyCache
	limiter     *rateLimiter
	logger      *slog.Logger
	retryOpts   service.RetryOptions
	temperature float64
	maxTokens   int
}

// NewResponder creates the provider client named by cfg and wraps it.
func NewResponder(cfg Config, logger *slog.Logger) (*Responder, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return NewResponderWithClient(client, cfg, logger), nil
}

// NewResponderWithClient wraps an existing client.
func NewResponderWithClient(client Client, cfg Config, logger *slog.Logger) *Responder {
	if logger == nil {
		logger = slog.Default()
	}

	provider := strings.ToLower(cfg.Provider)
	if provider == "" {
		provider = "llm"
	}

	retryOpts := service.RetryOptions{
		Logger:       logger,
		Operation:    provider + " chat",
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 3
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = DefaultTemperature
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = DefaultMaxTokens
	}

	return &Responder{
		client:      client,
		cache:       newReplyCache(cfg.CacheTTL, 0),
		limiter:     newRateLimiter(cfg.RateLimit),
		logger:      logger,
		retryOpts:   retryOpts,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

// Respond asks the model for the next assistant turn given the shopper's
// context, the prior conversation and the new message.
func (r *Responder) Respond(ctx context.Context, c model.Context, history []model.Message, message string) (string, error) {
	req := ChatRequest{
		System:      BuildSystemPrompt(c),
		Messages:    append(FromHistory(history), Message{Role: model.RoleUser, Content: message}),
		Temperature: r.temperature,
		MaxTokens:   r.maxTokens,
	}
	return r.Complete(ctx, req)
}

// Complete runs a raw chat request through the cache, limiter and retry loop.
func (r *Responder) Complete(ctx context.Context, req ChatRequest) (string, error) {
	key := requestKey(req)
	if reply, ok := r.cache.get(key); ok {
		r.logger.Debug("cache hit for chat request")
		return reply, nil
	}

	var reply string
	err := common.WithRetry(ctx, func() error {
		if err := r.limiter.wait(ctx); err != nil {
			return common.Permanent(err)
		}

		resp, err := r.client.Chat(ctx, req)
		if err != nil {
			if errors.Is(err, common.ErrRateLimit) {
				r.limiter.backoff(rateLimitBackoff)
			}
			return err
		}

		reply = resp.Content
		return nil
	}, r.retryOpts)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	r.cache.set(key, reply)
	r.logger.Debug("chat completion received", "messages", len(req.Messages), "reply_length", len(reply))
	return reply, nil
}

// Close releases the cache's background goroutine.
func (r *Responder) Close() {
	r.cache.Close()
}
