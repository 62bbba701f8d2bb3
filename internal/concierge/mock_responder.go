package concierge

import (
	"context"
	"sync"

	"github.com/Veraticus/tech-concierge/internal/model"
)

// MockResponder is a test implementation of the Responder interface.
// It returns a fixed reply or error and records every call.
type MockResponder struct {
	Err   error
	Reply string
	calls []MockResponderCall
	mu    sync.Mutex
}

// MockResponderCall records the arguments of one Respond call.
type MockResponderCall struct {
	Message string
	History []model.Message
	Context model.Context
}

// NewMockResponder creates a mock that always answers reply.
func NewMockResponder(reply string) *MockResponder {
	return &MockResponder{Reply: reply}
}

// Respond records the call and returns the configured reply or error.
func (m *MockResponder) Respond(_ context.Context, c model.Context, history []model.Message, message string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, MockResponderCall{
		Message: message,
		History: append([]model.Message(nil), history...),
		Context: c.Clone(),
	})
	if m.Err != nil {
		return "", m.Err
	}
	return m.Reply, nil
}

// Calls returns a copy of the recorded calls.
func (m *MockResponder) Calls() []MockResponderCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockResponderCall(nil), m.calls...)
}
