package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/Veraticus/tech-concierge/internal/common"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// openAIClient implements the Client interface for the OpenAI chat completions API.
type openAIClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
}

// newOpenAIClient creates a new OpenAI API client.
func newOpenAIClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: OpenAI API key is required", common.ErrMissingConfig)
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4"
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}

	return &openAIClient{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		model:      model,
		httpClient: newHTTPClient(cfg.Timeout),
	}, nil
}

// Chat sends a chat completion request to OpenAI.
func (c *openAIClient) Chat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	messages := make([]map[string]string, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, map[string]string{"role": "system", "content": req.System})
	}
	for _, m := range req.Messages {
		messages = append(messages, map[string]string{"role": string(m.Role), "content": m.Content})
	}

	requestBody := map[string]any{
		"model":             c.model,
		"messages":          messages,
		"temperature":       req.Temperature,
		"max_tokens":        req.MaxTokens,
		"presence_penalty":  0.6,
		"frequency_penalty": 0.3,
	}

	var response openAIResponse
	headers := map[string]string{"Authorization": "Bearer " + c.apiKey}
	if err := postJSON(ctx, c.httpClient, "OpenAI", c.baseURL+"/chat/completions", headers, requestBody, &response); err != nil {
		return ChatResponse{}, err
	}

	if len(response.Choices) == 0 || strings.TrimSpace(response.Choices[0].Message.Content) == "" {
		return ChatResponse{}, common.Permanent(fmt.Errorf("OpenAI: %w", common.ErrEmptyCompletion))
	}

	choice := response.Choices[0]
	return ChatResponse{
		Content:      strings.TrimSpace(choice.Message.Content),
		Model:        response.Model,
		FinishReason: choice.FinishReason,
	}, nil
}

// openAIResponse represents the OpenAI API response structure.
type openAIResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
		Index        int    `json:"index"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Created int64 `json:"created"`
}
