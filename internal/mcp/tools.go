package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Veraticus/tech-concierge/internal/common"
	"github.com/Veraticus/tech-concierge/internal/model"
	"github.com/Veraticus/tech-concierge/internal/service"
)

const defaultSearchPageSize = 10

// ExtractInput is the input schema for the extract_context tool.
type ExtractInput struct {
	Message string        `json:"message" jsonschema:"the shopper's latest chat message"`
	Context model.Context `json:"context,omitempty" jsonschema:"context gathered so far; known fields are never overwritten"`
}

// ExtractOutput is the output schema for the extract_context tool.
type ExtractOutput struct {
	Context model.Context `json:"context"`
}

// SelectInput is the input schema for the select_bundles tool.
type SelectInput struct {
	UseCase  string  `json:"use_case,omitempty" jsonschema:"what the purchase is for, e.g. gaming or video-editing"`
	Category string  `json:"category,omitempty" jsonschema:"device category, e.g. laptops or tvs"`
	Urgency  string  `json:"urgency,omitempty" jsonschema:"today, tomorrow, this-week or flexible"`
	Budget   float64 `json:"budget,omitempty" jsonschema:"budget in US dollars; 0 means unknown"`
}

// SelectOutput is the output schema for the select_bundles tool.
type SelectOutput struct {
	Bundles []model.Bundle `json:"bundles"`
	Count   int            `json:"count"`
}

// SearchInput is the input schema for the search_products tool.
type SearchInput struct {
	Query             string  `json:"query" jsonschema:"product search terms"`
	Category          string  `json:"category,omitempty" jsonschema:"category name to restrict results to"`
	MaxPrice          float64 `json:"max_price,omitempty" jsonschema:"highest sale price to include"`
	Page              int     `json:"page,omitempty" jsonschema:"result page, starting at 1"`
	IncludeOutOfStock bool    `json:"include_out_of_stock,omitempty" jsonschema:"also return products not available in store"`
}

// SearchOutput is the output schema for the search_products tool.
type SearchOutput struct {
	Products []model.Product `json:"products"`
	Count    int             `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_context",
		Description: "Extract budget, use case, device category and urgency from a shopper message",
	}, s.handleExtract)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "select_bundles",
		Description: "Pick up to three solution bundles that fit the shopper's budget and needs",
	}, s.handleSelect)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_products",
		Description: "Search individual products in the store catalog",
	}, s.handleSearch)
}

func (s *Server) handleExtract(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ExtractInput,
) (*mcp.CallToolResult, ExtractOutput, error) {
	return nil, ExtractOutput{Context: s.ports.Advisor.Extract(input.Message, input.Context)}, nil
}

func (s *Server) handleSelect(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SelectInput,
) (*mcp.CallToolResult, SelectOutput, error) {
	if input.Budget < 0 {
		return nil, SelectOutput{}, fmt.Errorf("budget cannot be negative: %v", input.Budget)
	}

	bundles := s.ports.Advisor.Recommend(model.Context{
		Budget:   input.Budget,
		UseCase:  model.UseCase(input.UseCase),
		Category: model.Category(input.Category),
		Urgency:  model.Urgency(input.Urgency),
	})
	if bundles == nil {
		bundles = []model.Bundle{}
	}

	return nil, SelectOutput{Bundles: bundles, Count: len(bundles)}, nil
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	page := input.Page
	if page <= 0 {
		page = 1
	}
	if page > service.MaxSearchPage {
		return nil, SearchOutput{}, fmt.Errorf("page %d is past the last page (%d): %w",
			page, service.MaxSearchPage, common.ErrInvalidInput)
	}

	products, err := s.ports.Products.SearchProducts(ctx, input.Query, service.SearchOptions{
		Category: input.Category,
		MaxPrice: input.MaxPrice,
		Page:     page,
		PageSize: defaultSearchPageSize,
		InStock:  !input.IncludeOutOfStock,
	})
	if err != nil {
		return nil, SearchOutput{}, fmt.Errorf("searching products: %w", err)
	}
	if products == nil {
		products = []model.Product{}
	}

	return nil, SearchOutput{Products: products, Count: len(products)}, nil
}
