package catalog

import (
	"math"
	"sort"

	"github.com/Veraticus/tech-concierge/internal/model"
)

const (
	// BudgetTolerance is how far over budget a bundle may be priced and still be offered.
	BudgetTolerance = 1.2
	// MaxRecommendations caps the number of bundles returned by Select.
	MaxRecommendations = 3
)

// Select returns up to MaxRecommendations bundles that fit c.
//
// The use case picks a group first, then the category. Without a match the
// first bundle of every featured group is considered. A budget drops anything
// priced above Budget*BudgetTolerance; when that removes everything the group's
// value bundle is returned on its own. With a budget, bundles closest in price
// come first; without one, the largest savings come first.
func (c *Catalog) Select(ctx model.Context) []model.Bundle {
	if c == nil || len(c.groups) == 0 {
		return nil
	}

	candidates, fallbackID := c.candidates(ctx)

	if ctx.HasBudget() {
		limit := ctx.Budget * BudgetTolerance
		affordable := make([]model.Bundle, 0, len(candidates))
		for _, b := range candidates {
			if b.TotalPrice.OneTime <= limit {
				affordable = append(affordable, b)
			}
		}
		if len(affordable) == 0 {
			if fallback, ok := c.byID[fallbackID]; ok {
				return []model.Bundle{fallback}
			}
			return nil
		}
		candidates = affordable

		sort.SliceStable(candidates, func(i, j int) bool {
			return math.Abs(candidates[i].TotalPrice.OneTime-ctx.Budget) <
				math.Abs(candidates[j].TotalPrice.OneTime-ctx.Budget)
		})
	} else {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].StatedSavings() > candidates[j].StatedSavings()
		})
	}

	if len(candidates) > MaxRecommendations {
		candidates = candidates[:MaxRecommendations]
	}
	return candidates
}

// MatchGroup returns the group serving c, or nil when c matches none.
func (c *Catalog) MatchGroup(ctx model.Context) *Group {
	for i := range c.groups {
		if c.groups[i].matches(string(ctx.UseCase)) {
			return &c.groups[i]
		}
	}
	for i := range c.groups {
		if c.groups[i].matches(string(ctx.Category)) {
			return &c.groups[i]
		}
	}
	return nil
}

// candidates returns a fresh slice of bundles to rank and the ID of the
// bundle to fall back to when a budget excludes all of them.
func (c *Catalog) candidates(ctx model.Context) ([]model.Bundle, string) {
	if g := c.MatchGroup(ctx); g != nil {
		out := make([]model.Bundle, len(g.Bundles))
		copy(out, g.Bundles)
		fallback := g.ValueBundle
		if fallback == "" {
			fallback = c.defaultValue
		}
		return out, fallback
	}

	var mixed []model.Bundle
	for _, g := range c.groups {
		if g.Featured && len(g.Bundles) > 0 {
			mixed = append(mixed, g.Bundles[0])
		}
	}
	return mixed, c.defaultValue
}
