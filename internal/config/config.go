package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/tech-concierge/internal/bestbuy"
	"github.com/Veraticus/tech-concierge/internal/common"
	"github.com/Veraticus/tech-concierge/internal/llm"
	"github.com/Veraticus/tech-concierge/internal/storage"
)

// SetDefaults registers the default value of every setting.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.temperature", llm.DefaultTemperature)
	v.SetDefault("llm.max_tokens", llm.DefaultMaxTokens)
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.retry_delay", time.Second)
	v.SetDefault("llm.cache_ttl", 10*time.Minute)
	v.SetDefault("llm.rate_limit", 60)
	v.SetDefault("llm.timeout", 30*time.Second)

	v.SetDefault("sessions.backend", storage.BackendMemory)
	v.SetDefault("database.path", DefaultDatabasePath)

	v.SetDefault("bestbuy.base_url", bestbuy.DefaultBaseURL)
	v.SetDefault("bestbuy.rate_limit", 5.0)
	v.SetDefault("bestbuy.timeout", 10*time.Second)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("tui.theme", "default")
}

// LoadLLMConfig reads the llm.* settings. It follows this precedence:
// 1. Viper configuration (from config file or CONCIERGE_ env vars)
// 2. The provider's usual environment variable (OPENAI_API_KEY, ANTHROPIC_API_KEY)
// A missing API key returns common.ErrMissingConfig.
func LoadLLMConfig(v *viper.Viper) (llm.Config, error) {
	provider := strings.ToLower(v.GetString("llm.provider"))
	if provider == "" {
		provider = "openai"
	}

	cfg := llm.Config{
		Provider:    provider,
		Model:       v.GetString("llm.model"),
		BaseURL:     v.GetString("llm.base_url"),
		Temperature: v.GetFloat64("llm.temperature"),
		MaxTokens:   v.GetInt("llm.max_tokens"),
		MaxRetries:  v.GetInt("llm.max_retries"),
		RetryDelay:  v.GetDuration("llm.retry_delay"),
		CacheTTL:    v.GetDuration("llm.cache_ttl"),
		Timeout:     v.GetDuration("llm.timeout"),
		RateLimit:   v.GetInt("llm.rate_limit"),
	}

	var envKey string
	switch provider {
	case "openai":
		envKey = "OPENAI_API_KEY"
	case "anthropic":
		envKey = "ANTHROPIC_API_KEY"
	default:
		return llm.Config{}, fmt.Errorf("%w: unsupported LLM provider: %s", common.ErrInvalidConfig, provider)
	}

	cfg.APIKey = v.GetString("llm.api_key")
	if cfg.APIKey == "" {
		cfg.APIKey = v.GetString("llm." + provider + "_api_key")
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(envKey)
	}
	if cfg.APIKey == "" {
		return cfg, fmt.Errorf("%w: %s API key not found in config or %s environment variable",
			common.ErrMissingConfig, provider, envKey)
	}

	return cfg, nil
}

// LoadBestBuyConfig reads the bestbuy.* settings. BESTBUY_API_KEY is used
// when no key is configured; an empty key means the local catalog answers.
func LoadBestBuyConfig(v *viper.Viper) bestbuy.Config {
	cfg := bestbuy.Config{
		APIKey:    v.GetString("bestbuy.api_key"),
		BaseURL:   v.GetString("bestbuy.base_url"),
		Timeout:   v.GetDuration("bestbuy.timeout"),
		RateLimit: v.GetFloat64("bestbuy.rate_limit"),
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("BESTBUY_API_KEY")
	}
	return cfg
}

// DatabasePath returns the expanded SQLite path.
func DatabasePath(v *viper.Viper) string {
	path := v.GetString("database.path")
	if path == "" {
		path = DefaultDatabasePath
	}
	return ExpandPath(path)
}
