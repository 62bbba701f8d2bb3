package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/Veraticus/tech-concierge/internal/common"
)

const (
	defaultAnthropicBaseURL = "https://api.anthropic.com/v1"
	anthropicVersion        = "2023-06-01"
)

// anthropicClient implements the Client interface for the Anthropic messages API.
type anthropicClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
}

// newAnthropicClient creates a new Anthropic API client.
func newAnthropicClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: anthropic API key is required", common.ErrMissingConfig)
	}

	model := cfg.Model
	if model == "" {
		model = "claude-3-5-sonnet-latest"
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultAnthropicBaseURL
	}

	return &anthropicClient{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		model:      model,
		httpClient: newHTTPClient(cfg.Timeout),
	}, nil
}

// Chat sends a messages request to Anthropic. The system prompt travels in
// its own field; the API rejects system-role messages.
func (c *anthropicClient) Chat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	messages := make([]map[string]string, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, map[string]string{"role": string(m.Role), "content": m.Content})
	}

	requestBody := map[string]any{
		"model":       c.model,
		"max_tokens":  req.MaxTokens,
		"temperature": req.Temperature,
		"messages":    messages,
	}
	if req.System != "" {
		requestBody["system"] = req.System
	}

	headers := map[string]string{
		"x-api-key":         c.apiKey,
		"anthropic-version": anthropicVersion,
	}

	var response anthropicResponse
	if err := postJSON(ctx, c.httpClient, "anthropic", c.baseURL+"/messages", headers, requestBody, &response); err != nil {
		return ChatResponse{}, err
	}

	var text strings.Builder
	for _, block := range response.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	content := strings.TrimSpace(text.String())
	if content == "" {
		return ChatResponse{}, common.Permanent(fmt.Errorf("anthropic: %w", common.ErrEmptyCompletion))
	}

	return ChatResponse{
		Content:      content,
		Model:        response.Model,
		FinishReason: response.StopReason,
	}, nil
}

// anthropicResponse represents the Anthropic API response structure.
type anthropicResponse struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Role       string `json:"role"`
	Model      string `json:"model"`
	StopReason string `json:"stop_reason"`
	Content    []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}
