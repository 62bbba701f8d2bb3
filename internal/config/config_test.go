package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/tech-concierge/internal/bestbuy"
	"github.com/Veraticus/tech-concierge/internal/common"
	"github.com/Veraticus/tech-concierge/internal/storage"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("CONCIERGE_TEST_DIR", "/tmp/concierge")

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "empty", path: "", want: ""},
		{name: "tilde only", path: "~", want: home},
		{name: "tilde prefix", path: "~/data/db.sqlite", want: filepath.Join(home, "data/db.sqlite")},
		{name: "env var", path: "$CONCIERGE_TEST_DIR/db", want: "/tmp/concierge/db"},
		{name: "plain", path: "/var/lib/concierge.db", want: "/var/lib/concierge.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.path))
		})
	}
}

func TestSetDefaults(t *testing.T) {
	v := newViper()

	assert.Equal(t, storage.BackendMemory, v.GetString("sessions.backend"))
	assert.Equal(t, ":8080", v.GetString("server.addr"))
	assert.Equal(t, bestbuy.DefaultBaseURL, v.GetString("bestbuy.base_url"))
	assert.InDelta(t, 0.7, v.GetFloat64("llm.temperature"), 0.0001)
	assert.Equal(t, 1000, v.GetInt("llm.max_tokens"))
}

func TestLoadLLMConfig(t *testing.T) {
	tests := []struct {
		settings map[string]any
		env      map[string]string
		wantErr  error
		name     string
		wantKey  string
	}{
		{
			name:     "config key wins",
			settings: map[string]any{"llm.api_key": "from-config"},
			env:      map[string]string{"OPENAI_API_KEY": "from-env"},
			wantKey:  "from-config",
		},
		{
			name:     "provider specific key",
			settings: map[string]any{"llm.provider": "anthropic", "llm.anthropic_api_key": "ant"},
			wantKey:  "ant",
		},
		{
			name:    "environment fallback",
			env:     map[string]string{"OPENAI_API_KEY": "from-env"},
			wantKey: "from-env",
		},
		{
			name:    "missing key",
			wantErr: common.ErrMissingConfig,
		},
		{
			name:     "unknown provider",
			settings: map[string]any{"llm.provider": "mystery"},
			wantErr:  common.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", "")
			t.Setenv("ANTHROPIC_API_KEY", "")
			for k, val := range tt.env {
				t.Setenv(k, val)
			}
			v := newViper()
			for k, val := range tt.settings {
				v.Set(k, val)
			}

			cfg, err := LoadLLMConfig(v)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, cfg.APIKey)
			assert.Equal(t, 3, cfg.MaxRetries)
			assert.Equal(t, time.Second, cfg.RetryDelay)
		})
	}
}

func TestLoadBestBuyConfig(t *testing.T) {
	t.Setenv("BESTBUY_API_KEY", "env-key")
	v := newViper()

	cfg := LoadBestBuyConfig(v)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, 10*time.Second, cfg.Timeout)

	v.Set("bestbuy.api_key", "cfg-key")
	assert.Equal(t, "cfg-key", LoadBestBuyConfig(v).APIKey)
}

func TestDatabasePath(t *testing.T) {
	v := newViper()
	v.Set("database.path", "/tmp/x.db")
	assert.Equal(t, "/tmp/x.db", DatabasePath(v))
}
