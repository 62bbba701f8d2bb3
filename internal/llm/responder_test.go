package llm

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/tech-concierge/internal/common"
	"github.com/Veraticus/tech-concierge/internal/model"
)

// scriptedClient returns queued results in order and records requests.
type scriptedClient struct {
	results  []error
	requests []ChatRequest
	reply    string
	mu       sync.Mutex
}

func (c *scriptedClient) Chat(_ context.Context, req ChatRequest) (ChatResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.requests = append(c.requests, req)
	if len(c.results) > 0 {
		err := c.results[0]
		c.results = c.results[1:]
		if err != nil {
			return ChatResponse{}, err
		}
	}
	return ChatResponse{Content: c.reply}, nil
}

func (c *scriptedClient) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

func testResponder(t *testing.T, client Client) *Responder {
	t.Helper()
	r := NewResponderWithClient(client, Config{
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
		RateLimit:  6000,
	}, nil)
	t.Cleanup(r.Close)
	return r
}

func TestResponder_Respond(t *testing.T) {
	client := &scriptedClient{reply: "What's your budget?"}
	r := testResponder(t, client)

	history := []model.Message{
		{Role: model.RoleUser, Content: "hi"},
		{Role: model.RoleAssistant, Content: "Hi! What are you looking for?"},
		{Role: model.RoleSystem, Content: "internal note"},
	}

	reply, err := r.Respond(context.Background(), model.Context{UseCase: model.UseCaseGaming}, history, "a gaming laptop")
	require.NoError(t, err)
	assert.Equal(t, "What's your budget?", reply)

	require.Equal(t, 1, client.calls())
	req := client.requests[0]
	assert.Contains(t, req.System, "- Use case: gaming")
	assert.InDelta(t, DefaultTemperature, req.Temperature, 0.0001)
	assert.Equal(t, DefaultMaxTokens, req.MaxTokens)
	require.Len(t, req.Messages, 3)
	assert.Equal(t, Message{Role: model.RoleUser, Content: "a gaming laptop"}, req.Messages[2])
}

func TestResponder_CachesIdenticalRequests(t *testing.T) {
	client := &scriptedClient{reply: "cached"}
	r := testResponder(t, client)

	for range 3 {
		reply, err := r.Respond(context.Background(), model.Context{}, nil, "hello")
		require.NoError(t, err)
		assert.Equal(t, "cached", reply)
	}
	assert.Equal(t, 1, client.calls())

	_, err := r.Respond(context.Background(), model.Context{Budget: 500}, nil, "hello")
	require.NoError(t, err)
	assert.Equal(t, 2, client.calls())
}

func TestResponder_RetriesTransientErrors(t *testing.T) {
	client := &scriptedClient{
		reply:   "finally",
		results: []error{common.ErrUpstreamUnavailable, common.ErrUpstreamUnavailable, nil},
	}
	r := testResponder(t, client)

	reply, err := r.Respond(context.Background(), model.Context{}, nil, "hi")
	require.NoError(t, err)
	assert.Equal(t, "finally", reply)
	assert.Equal(t, 3, client.calls())
}

func TestResponder_PermanentErrorStops(t *testing.T) {
	errBadKey := errors.New("bad key")
	client := &scriptedClient{results: []error{common.Permanent(errBadKey)}}
	r := testResponder(t, client)

	_, err := r.Respond(context.Background(), model.Context{}, nil, "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, errBadKey)
	assert.Equal(t, 1, client.calls())
}

func TestResponder_CanceledContext(t *testing.T) {
	client := &scriptedClient{reply: "never"}
	r := testResponder(t, client)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Respond(ctx, model.Context{}, nil, "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFromHistory(t *testing.T) {
	got := FromHistory([]model.Message{
		{Role: model.RoleSystem, Content: "x"},
		{Role: model.RoleUser, Content: "a"},
		{Role: model.RoleAssistant, Content: "b"},
	})
	assert.Equal(t, []Message{
		{Role: model.RoleUser, Content: "a"},
		{Role: model.RoleAssistant, Content: "b"},
	}, got)
}
