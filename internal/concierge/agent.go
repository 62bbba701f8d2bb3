// Package concierge runs the chat loop: it accumulates shopper intent,
// replies through a language model or the built-in fallback, and attaches
// bundle recommendations when the shopper asks for them.
package concierge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/tech-concierge/internal/catalog"
	"github.com/Veraticus/tech-concierge/internal/common"
	"github.com/Veraticus/tech-concierge/internal/intent"
	"github.com/Veraticus/tech-concierge/internal/model"
	"github.com/Veraticus/tech-concierge/internal/service"
)

// ChatRequest is one shopper turn.
type ChatRequest struct {
	// Context is merged into the session context before extraction.
	Context *model.Context
	// SessionID continues an existing conversation. Empty starts a new one.
	SessionID string
	Message   string
	// History seeds a conversation the agent has no stored messages for.
	// It is ignored once a stored session exists.
	History []model.Message
}

// ChatResult is the agent's answer to one turn.
type ChatResult struct {
	SessionID       string         `json:"sessionId"`
	Reply           string         `json:"response"`
	Bundles         []model.Bundle `json:"bundles,omitempty"`
	Context         model.Context  `json:"context"`
	ShouldRecommend bool           `json:"shouldGenerateRecommendations"`
	UsedFallback    bool           `json:"-"`
}

// Agent orchestrates a concierge conversation.
type Agent struct {
	catalog   *catalog.Catalog
	responder Responder
	sessions  service.SessionStore
	logger    *slog.Logger
	now       func() time.Time
}

// NewAgent creates an agent. responder and sessions may be nil: without a
// responder every reply comes from FallbackReply, and without a session store
// the caller carries history in each request.
func NewAgent(cat *catalog.Catalog, responder Responder, sessions service.SessionStore, logger *slog.Logger) *Agent {
	if logger == nil {
		logger = slog.Default()
	}
	return &Agent{
		catalog:   cat,
		responder: responder,
		sessions:  sessions,
		logger:    logger,
		now:       time.Now,
	}
}

// Chat handles one shopper message and returns the assistant's reply.
func (a *Agent) Chat(ctx context.Context, req ChatRequest) (*ChatResult, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, common.NewUserError("message is required", common.ErrInvalidInput)
	}

	session, err := a.loadSession(ctx, req)
	if err != nil {
		return nil, err
	}

	if req.Context != nil {
		session.Context = session.Context.Merge(*req.Context)
	}
	session.Context = intent.Extract(message, session.Context)
	recommending := intent.ShouldRecommend(message, session.Context)

	reply, usedFallback := a.reply(ctx, session, message, recommending)

	result := &ChatResult{
		SessionID:       session.ID,
		Reply:           reply,
		Context:         session.Context.Clone(),
		ShouldRecommend: recommending,
		UsedFallback:    usedFallback,
	}
	if recommending {
		result.Bundles = a.catalog.Select(session.Context)
	}

	now := a.now()
	assistant := model.Message{Role: model.RoleAssistant, Content: reply, Timestamp: now}
	for _, b := range result.Bundles {
		assistant.BundleIDs = append(assistant.BundleIDs, b.ID)
	}
	session.Messages = append(session.Messages,
		model.Message{Role: model.RoleUser, Content: message, Timestamp: now},
		assistant,
	)

	if err := a.persist(ctx, session, result.Bundles, now); err != nil {
		return nil, err
	}

	a.logger.Debug("chat turn complete",
		"session", session.ID,
		"fallback", usedFallback,
		"recommend", recommending,
		"bundles", len(result.Bundles))

	return result, nil
}

func (a *Agent) reply(ctx context.Context, session *model.Session, message string, recommending bool) (string, bool) {
	history := session.Messages
	if a.responder == nil {
		return FallbackReply(message, session.Context, history, recommending), true
	}

	reply, err := a.responder.Respond(ctx, session.Context, history, message)
	switch {
	case err == nil:
		return reply, false
	case errors.Is(err, common.ErrEmptyCompletion):
		return ApologyReply, false
	default:
		a.logger.Warn("language model unavailable, using fallback reply",
			"session", session.ID,
			"error", err)
		return FallbackReply(message, session.Context, history, recommending), true
	}
}

func (a *Agent) loadSession(ctx context.Context, req ChatRequest) (*model.Session, error) {
	id := req.SessionID
	if id != "" && a.sessions != nil {
		session, err := a.sessions.GetSession(ctx, id)
		if err == nil {
			return session, nil
		}
		if !errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("failed to load session: %w", err)
		}
	}
	if id == "" {
		id = uuid.NewString()
	}

	return &model.Session{ID: id, Messages: seedHistory(req.History)}, nil
}

// seedHistory copies caller-supplied shopper and assistant turns, dropping
// blank messages and any other role.
func seedHistory(history []model.Message) []model.Message {
	var seeded []model.Message
	for _, m := range history {
		if m.Role != model.RoleUser && m.Role != model.RoleAssistant {
			continue
		}
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		m.BundleIDs = append([]string(nil), m.BundleIDs...)
		seeded = append(seeded, m)
	}
	return seeded
}

func (a *Agent) persist(ctx context.Context, session *model.Session, bundles []model.Bundle, shownAt time.Time) error {
	if a.sessions == nil {
		return nil
	}

	if err := a.sessions.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	if len(bundles) == 0 {
		return nil
	}
	recs := make([]model.Recommendation, len(bundles))
	for i, b := range bundles {
		recs[i] = model.Recommendation{
			SessionID: session.ID,
			BundleID:  b.ID,
			Price:     b.TotalPrice.OneTime,
			Rank:      i + 1,
			ShownAt:   shownAt,
		}
	}
	if err := a.sessions.RecordRecommendations(ctx, recs); err != nil {
		return fmt.Errorf("failed to record recommendations: %w", err)
	}
	return nil
}

// Recommend selects bundles for a context without a conversation.
func (a *Agent) Recommend(c model.Context) []model.Bundle {
	return a.catalog.Select(c)
}

// Extract applies intent extraction to message on top of current.
func (a *Agent) Extract(message string, current model.Context) model.Context {
	return intent.Extract(message, current)
}

// Session returns a stored conversation.
func (a *Agent) Session(ctx context.Context, id string) (*model.Session, error) {
	if a.sessions == nil {
		return nil, fmt.Errorf("session %s: %w", id, common.ErrNotFound)
	}
	return a.sessions.GetSession(ctx, id)
}

// EndSession deletes a stored conversation.
func (a *Agent) EndSession(ctx context.Context, id string) error {
	if a.sessions == nil {
		return fmt.Errorf("session %s: %w", id, common.ErrNotFound)
	}
	return a.sessions.DeleteSession(ctx, id)
}

// Catalog returns the bundle catalog the agent recommends from.
func (a *Agent) Catalog() *catalog.Catalog {
	return a.catalog
}
