package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/tech-concierge/internal/common"
	"github.com/Veraticus/tech-concierge/internal/model"
)

func TestNewAnthropicClient(t *testing.T) {
	_, err := newAnthropicClient(Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMissingConfig)

	client, err := newAnthropicClient(Config{APIKey: "test-key"})
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestAnthropicClient_Chat(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"model": "claude-3-5-sonnet-latest",
			"stop_reason": "end_turn",
			"content": [{"type": "text", "text": "What's your budget?"}, {"type": "text", "text": " 🎯"}]
		}`))
	}))
	defer server.Close()

	client, err := newAnthropicClient(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	resp, err := client.Chat(context.Background(), ChatRequest{
		System:    "persona",
		Messages:  []Message{{Role: model.RoleUser, Content: "I need a TV"}},
		MaxTokens: 500,
	})
	require.NoError(t, err)
	assert.Equal(t, "What's your budget? 🎯", resp.Content)
	assert.Equal(t, "end_turn", resp.FinishReason)

	assert.Equal(t, "persona", captured["system"])
	messages, ok := captured["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, messages, 1)
}

func TestAnthropicClient_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"content": []}`))
	}))
	defer server.Close()

	client, err := newAnthropicClient(Config{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Chat(context.Background(), ChatRequest{Messages: []Message{{Role: model.RoleUser, Content: "hi"}}})
	assert.ErrorIs(t, err, common.ErrEmptyCompletion)
	assert.False(t, common.IsRetryable(err))
}

func TestNewClient(t *testing.T) {
	_, err := NewClient(Config{Provider: "claudecode", APIKey: "k"})
	assert.ErrorIs(t, err, common.ErrInvalidConfig)

	c, err := NewClient(Config{Provider: "Anthropic", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &anthropicClient{}, c)

	c, err = NewClient(Config{APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &openAIClient{}, c)
}
