package mcp

import (
	"errors"

	"github.com/Veraticus/tech-concierge/internal/model"
	"github.com/Veraticus/tech-concierge/internal/service"
)

// Errors returned when the server is missing a dependency.
var (
	ErrMissingAdvisor  = errors.New("advisor is required")
	ErrMissingCatalog  = errors.New("catalog is required")
	ErrMissingProducts = errors.New("product searcher is required")
)

// Advisor turns messages into shopper context and context into bundles.
// concierge.Agent implements it.
type Advisor interface {
	Extract(message string, current model.Context) model.Context
	Recommend(c model.Context) []model.Bundle
}

// BundleSource lists catalog bundles. catalog.Catalog implements it.
type BundleSource interface {
	Bundles() []model.Bundle
	Bundle(id string) (model.Bundle, bool)
}

// Ports aggregates the services exposed as MCP tools and resources.
type Ports struct {
	Advisor  Advisor
	Catalog  BundleSource
	Products service.ProductSearcher
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	switch {
	case p.Advisor == nil:
		return ErrMissingAdvisor
	case p.Catalog == nil:
		return ErrMissingCatalog
	case p.Products == nil:
		return ErrMissingProducts
	}
	return nil
}
