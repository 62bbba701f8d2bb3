package concierge

import (
	"context"

	"github.com/Veraticus/tech-concierge/internal/model"
)

// Responder writes the assistant's next turn. llm.Responder implements it.
type Responder interface {
	Respond(ctx context.Context, c model.Context, history []model.Message, message string) (string, error)
}
