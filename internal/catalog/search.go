package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/tech-concierge/internal/common"
	"github.com/Veraticus/tech-concierge/internal/model"
	"github.com/Veraticus/tech-concierge/internal/service"
)

// DefaultPageSize is used when a search does not specify one.
const DefaultPageSize = 10

// Compile-time check that Catalog can stand in for the remote product API.
var _ service.ProductSearcher = (*Catalog)(nil)

// Products returns every distinct product across all bundles, keyed by SKU,
// in catalog order.
func (c *Catalog) Products() []model.Product {
	seen := make(map[string]bool)
	var out []model.Product
	for _, g := range c.groups {
		for _, b := range g.Bundles {
			for _, p := range b.Products {
				if seen[p.SKU] {
					continue
				}
				seen[p.SKU] = true
				out = append(out, p)
			}
		}
	}
	return out
}

// SearchProducts matches query against product names, brands and categories.
func (c *Catalog) SearchProducts(_ context.Context, query string, opts service.SearchOptions) ([]model.Product, error) {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil, common.NewUserError("search query is required", common.ErrInvalidInput)
	}

	var matched []model.Product
	for _, p := range c.Products() {
		if !productMatches(p, terms, opts) {
			continue
		}
		matched = append(matched, p)
	}

	return paginate(matched, opts.Page, opts.PageSize), nil
}

// GetProduct returns the product with the given SKU.
func (c *Catalog) GetProduct(_ context.Context, sku string) (*model.Product, error) {
	for _, p := range c.Products() {
		if p.SKU == sku {
			found := p
			return &found, nil
		}
	}
	return nil, fmt.Errorf("product %s: %w", sku, common.ErrNotFound)
}

// FindStores returns catalog stores near q. Coordinates cannot be resolved
// locally, so a coordinate query returns every store within the radius by
// listed distance. A region query keeps stores whose city, region or postal
// code mentions it, or every store when none does.
func (c *Catalog) FindStores(_ context.Context, q service.StoreQuery) ([]model.Store, error) {
	stores := c.Stores()

	var out []model.Store
	switch {
	case q.HasCoords:
		for _, s := range stores {
			if q.RadiusMi <= 0 || s.Distance <= float64(q.RadiusMi) {
				out = append(out, s)
			}
		}
	case strings.TrimSpace(q.Region) != "":
		needle := strings.ToLower(strings.TrimSpace(q.Region))
		for _, s := range stores {
			if storeMentions(s, needle) {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			out = stores
		}
	default:
		return nil, common.NewUserError("a location or coordinates are required", common.ErrInvalidInput)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	return out, nil
}

func productMatches(p model.Product, terms []string, opts service.SearchOptions) bool {
	if opts.MaxPrice > 0 && p.Price > opts.MaxPrice {
		return false
	}
	if opts.InStock && !p.InStock {
		return false
	}
	if opts.Category != "" && !strings.EqualFold(p.Category, opts.Category) {
		return false
	}

	haystack := strings.ToLower(p.Name + " " + p.Brand + " " + p.Category)
	for _, t := range terms {
		if !strings.Contains(haystack, t) {
			return false
		}
	}
	return true
}

func storeMentions(s model.Store, needle string) bool {
	for _, field := range []string{s.City, s.Region, s.PostalCode, s.Name, s.Address} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func paginate(products []model.Product, page, size int) []model.Product {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page <= 0 {
		page = 1
	}
	// Bound the page before computing an offset; large pages overflow int.
	if len(products) == 0 || page-1 > (len(products)-1)/size {
		return []model.Product{}
	}
	start := (page - 1) * size
	end := start + min(size, len(products)-start)
	return products[start:end]
}
