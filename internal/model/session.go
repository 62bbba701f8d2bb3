package model

import "time"

// Role identifies who authored a chat message.
type Role string

// Message roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is one turn of a concierge conversation.
type Message struct {
	Timestamp time.Time `json:"timestamp"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	BundleIDs []string  `json:"bundleIds,omitempty"`
}

// Session is the caller-held conversation state: the message history and
// the intent accumulated so far.
type Session struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	ID        string    `json:"id"`
	Messages  []Message `json:"messages"`
	Context   Context   `json:"context"`
}

// UserTurns counts the messages written by the shopper.
func (s *Session) UserTurns() int {
	n := 0
	for _, m := range s.Messages {
		if m.Role == RoleUser {
			n++
		}
	}
	return n
}

// Recommendation records that a bundle was shown in a session.
type Recommendation struct {
	ShownAt   time.Time `json:"shownAt"`
	SessionID string    `json:"sessionId"`
	BundleID  string    `json:"bundleId"`
	Price     float64   `json:"price"`
	Rank      int       `json:"rank"`
}

// Store is a retail location used for pickup and availability checks.
type Store struct {
	ID         string  `json:"storeId" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	Address    string  `json:"address" yaml:"address"`
	City       string  `json:"city" yaml:"city"`
	Region     string  `json:"region" yaml:"region"`
	PostalCode string  `json:"postalCode" yaml:"postal_code"`
	Phone      string  `json:"phone" yaml:"phone"`
	Distance   float64 `json:"distance" yaml:"distance"`
}
