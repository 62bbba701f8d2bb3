package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Veraticus/tech-concierge/internal/common"
)

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// postJSON sends body to url and decodes a 200 response into out.
// Rate limiting and server errors come back retryable; other failures are permanent.
func postJSON(ctx context.Context, client *http.Client, provider, url string, headers map[string]string, body, out any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return common.Permanent(fmt.Errorf("failed to marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return common.Permanent(fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%s API: %w", provider, common.ErrRateLimit)
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%s API error (status %d): %w", provider, resp.StatusCode, common.ErrUpstreamUnavailable)
	case resp.StatusCode != http.StatusOK:
		return common.Permanent(fmt.Errorf("%s API error (status %d): %s", provider, resp.StatusCode, strings.TrimSpace(string(respBody))))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return common.Permanent(fmt.Errorf("failed to parse response: %w", err))
	}
	return nil
}
