package llm

import (
	"context"
	"time"

	"github.com/Veraticus/tech-concierge/internal/model"
)

// Default generation settings.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1000
)

// Client defines the interface for LLM providers.
type Client interface {
	Chat(ctx context.Context, req ChatRequest) (ChatResponse, error)
}

// Message is one turn sent to the model.
type Message struct {
	Role    model.Role `json:"role"`
	Content string     `json:"content"`
}

// ChatRequest is a provider-neutral chat completion request.
type ChatRequest struct {
	System      string    `json:"system"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// ChatResponse contains the model's reply.
type ChatResponse struct {
	Content      string
	Model        string
	FinishReason string
}

// Config holds provider selection and tuning.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	MaxRetries  int
	RetryDelay  time.Duration
	CacheTTL    time.Duration
	Timeout     time.Duration
	RateLimit   int // requests per minute
	Temperature float64
	MaxTokens   int
}

// FromHistory converts stored session messages to model messages,
// dropping system entries.
func FromHistory(history []model.Message) []Message {
	out := make([]Message, 0, len(history))
	for _, m := range history {
		if m.Role != model.RoleUser && m.Role != model.RoleAssistant {
			continue
		}
		out = append(out, Message{Role: m.Role, Content: m.Content})
	}
	return out
}
