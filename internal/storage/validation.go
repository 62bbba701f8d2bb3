// Package storage persists concierge sessions and recommendation history.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/tech-concierge/internal/model"
)

// Validation errors.
var (
	ErrNilContext            = errors.New("context cannot be nil")
	ErrEmptyString           = errors.New("string parameter cannot be empty")
	ErrNilParameter          = errors.New("parameter cannot be nil")
	ErrEmptySlice            = errors.New("slice cannot be empty")
	ErrInvalidSession        = errors.New("invalid session")
	ErrInvalidRecommendation = errors.New("invalid recommendation")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateSession validates a session before it is written.
func validateSession(session *model.Session) error {
	if session == nil {
		return fmt.Errorf("%w: session", ErrNilParameter)
	}
	if strings.TrimSpace(session.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidSession)
	}
	for i, m := range session.Messages {
		switch m.Role {
		case model.RoleUser, model.RoleAssistant, model.RoleSystem:
		default:
			return fmt.Errorf("%w: message %d has role %q", ErrInvalidSession, i, m.Role)
		}
	}
	return nil
}

// validateRecommendations validates a batch of recommendation records.
func validateRecommendations(recs []model.Recommendation) error {
	if recs == nil {
		return fmt.Errorf("%w: recommendations", ErrNilParameter)
	}
	if len(recs) == 0 {
		return fmt.Errorf("%w: recommendations", ErrEmptySlice)
	}
	for i, r := range recs {
		if r.SessionID == "" || r.BundleID == "" {
			return fmt.Errorf("%w: record %d needs session and bundle IDs", ErrInvalidRecommendation, i)
		}
		if r.Price < 0 {
			return fmt.Errorf("%w: record %d has negative price", ErrInvalidRecommendation, i)
		}
	}
	return nil
}
