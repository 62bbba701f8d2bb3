package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Veraticus/tech-concierge/internal/common"
	"github.com/Veraticus/tech-concierge/internal/concierge"
	"github.com/Veraticus/tech-concierge/internal/model"
)

type chatPayload struct {
	Context             *model.Context  `json:"context"`
	Message             string          `json:"message" validate:"required,max=4000"`
	SessionID           string          `json:"sessionId" validate:"omitempty,max=128"`
	ConversationHistory []model.Message `json:"conversationHistory" validate:"max=100"`
}

type extractPayload struct {
	Message string        `json:"message" validate:"required,max=4000"`
	Context model.Context `json:"context"`
}

func (s *Server) chat(c echo.Context) error {
	var payload chatPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse chat request", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	result, err := s.agent.Chat(c.Request().Context(), concierge.ChatRequest{
		Message:   payload.Message,
		SessionID: payload.SessionID,
		Context:   payload.Context,
		History:   payload.ConversationHistory,
	})
	if err != nil {
		var userErr *common.UserError
		if errors.As(err, &userErr) {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", userErr.UserMessage, nil)
		}
		s.logger.Error("chat failed", "error", err)
		return fail(c, http.StatusInternalServerError, "CHAT_FAILED", "Failed to process message", err.Error())
	}

	return ok(c, result)
}

func (s *Server) recommend(c echo.Context) error {
	var ctx model.Context
	if err := c.Bind(&ctx); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse context", nil)
	}
	if ctx.Budget < 0 {
		return fail(c, http.StatusBadRequest, "INVALID_BUDGET", "Budget cannot be negative", nil)
	}

	bundles := s.agent.Recommend(ctx)
	if bundles == nil {
		bundles = []model.Bundle{}
	}
	return ok(c, bundles)
}

func (s *Server) extract(c echo.Context) error {
	var payload extractPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse extract request", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	return ok(c, s.agent.Extract(payload.Message, payload.Context))
}
