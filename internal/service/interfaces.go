// Package service defines the interfaces shared between the concierge components.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Veraticus/tech-concierge/internal/model"
)

// SessionFilter limits session listings.
type SessionFilter struct {
	Since  *time.Time
	Limit  int
	Offset int
}

// SessionStore persists conversation state between chat turns.
type SessionStore interface {
	// Session operations
	GetSession(ctx context.Context, id string) (*model.Session, error)
	SaveSession(ctx context.Context, session *model.Session) error
	ListSessions(ctx context.Context, filter SessionFilter) ([]model.Session, error)
	DeleteSession(ctx context.Context, id string) error

	// Recommendation history
	RecordRecommendations(ctx context.Context, recs []model.Recommendation) error
	GetRecommendations(ctx context.Context, sessionID string) ([]model.Recommendation, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// MaxSearchPage is the deepest result page a search may request.
const MaxSearchPage = 1000

// SearchOptions narrows a product search.
type SearchOptions struct {
	Category string
	MaxPrice float64
	Page     int
	PageSize int
	InStock  bool
}

// StoreQuery locates stores either by free-text region or by coordinates.
type StoreQuery struct {
	Region    string
	Latitude  float64
	Longitude float64
	RadiusMi  int
	HasCoords bool
}

// ProductSearcher finds products and stores. The Best Buy client implements it
// against the live API; the catalog implements it against bundle data.
type ProductSearcher interface {
	SearchProducts(ctx context.Context, query string, opts SearchOptions) ([]model.Product, error)
	GetProduct(ctx context.Context, sku string) (*model.Product, error)
	FindStores(ctx context.Context, query StoreQuery) ([]model.Store, error)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	// Logger receives retry warnings. Defaults to slog.Default().
	Logger       *slog.Logger
	// Operation names the call in logs and in the final error, e.g. "openai chat".
	Operation    string
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
