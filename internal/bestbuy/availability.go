package bestbuy

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/tech-concierge/internal/model"
)

const maxConcurrentChecks = 4

// ProductAvailability is the pickup status of one bundle product at a store.
type ProductAvailability struct {
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// BundleAvailability summarizes pickup availability for a whole bundle.
type BundleAvailability struct {
	BundleID string                `json:"bundleId"`
	StoreID  string                `json:"storeId"`
	Products []ProductAvailability `json:"products"`
}

// AllAvailable reports whether every product can be picked up.
func (b BundleAvailability) AllAvailable() bool {
	for _, p := range b.Products {
		if !p.Available {
			return false
		}
	}
	return len(b.Products) > 0
}

// CheckBundleAvailability checks each product of bundle at storeID concurrently.
// Results keep the bundle's product order.
func (c *Client) CheckBundleAvailability(ctx context.Context, bundle model.Bundle, storeID string) (BundleAvailability, error) {
	result := BundleAvailability{
		BundleID: bundle.ID,
		StoreID:  storeID,
		Products: make([]ProductAvailability, len(bundle.Products)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentChecks)

	for i, p := range bundle.Products {
		g.Go(func() error {
			ok, err := c.CheckStoreAvailability(gctx, p.SKU, storeID)
			if err != nil {
				return fmt.Errorf("check %s: %w", p.SKU, err)
			}
			result.Products[i] = ProductAvailability{SKU: p.SKU, Name: p.Name, Available: ok}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return BundleAvailability{}, err
	}
	return result, nil
}
