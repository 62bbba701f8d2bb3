package llm

import (
	"fmt"
	"strings"

	"github.com/Veraticus/tech-concierge/internal/common"
)

// NewClient creates a raw LLM client based on the provided configuration.
func NewClient(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai", "":
		return newOpenAIClient(cfg)
	case "anthropic":
		return newAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("%w: unsupported LLM provider: %s", common.ErrInvalidConfig, cfg.Provider)
	}
}
