package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tech-concierge/internal/bestbuy"
	"github.com/Veraticus/tech-concierge/internal/cli"
	"github.com/Veraticus/tech-concierge/internal/model"
	"github.com/Veraticus/tech-concierge/internal/service"
)

func searchCmd() *cobra.Command {
	var (
		category       string
		maxPrice       float64
		page           int
		includeSoldOut bool
		asJSON         bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search products",
		Long: `Search the Best Buy product API. Without a bestbuy.api_key the products in the
local bundle catalog are searched instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if maxPrice < 0 {
				return fmt.Errorf("max price cannot be negative")
			}
			if page < 1 || page > service.MaxSearchPage {
				return fmt.Errorf("page must be between 1 and %d", service.MaxSearchPage)
			}

			cat, err := loadCatalog()
			if err != nil {
				return err
			}
			searcher := newSearcher(cat, slog.Default())

			query := strings.Join(args, " ")
			products, err := searcher.SearchProducts(cmd.Context(), query, service.SearchOptions{
				Category: category,
				MaxPrice: maxPrice,
				Page:     page,
				PageSize: 20,
				InStock:  !includeSoldOut,
			})
			if err != nil {
				return fmt.Errorf("failed to search products: %w", err)
			}

			if asJSON {
				if products == nil {
					products = []model.Product{}
				}
				return printJSON(cmd.OutOrStdout(), products)
			}
			return cli.WriteProducts(cmd.OutOrStdout(), products)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "limit to a category")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "maximum price in dollars")
	cmd.Flags().IntVar(&page, "page", 1, "result page")
	cmd.Flags().BoolVar(&includeSoldOut, "include-sold-out", false, "include products that are not in stock")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print products as JSON")

	return cmd
}

func storesCmd() *cobra.Command {
	var (
		location string
		lat      float64
		lng      float64
		radius   int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "stores",
		Short: "Find nearby stores",
		Long:  `Find stores by --location (postal code, city or state) or by --lat and --lng.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q := service.StoreQuery{RadiusMi: radius}
			switch {
			case cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng"):
				q.Latitude, q.Longitude, q.HasCoords = lat, lng, true
			case strings.TrimSpace(location) != "":
				q.Region = strings.TrimSpace(location)
			default:
				return fmt.Errorf("either --location or both --lat and --lng are required")
			}
			if q.RadiusMi <= 0 {
				return fmt.Errorf("radius must be positive")
			}

			cat, err := loadCatalog()
			if err != nil {
				return err
			}

			stores, err := newSearcher(cat, slog.Default()).FindStores(cmd.Context(), q)
			if err != nil {
				return fmt.Errorf("failed to find stores: %w", err)
			}

			if asJSON {
				if stores == nil {
					stores = []model.Store{}
				}
				return printJSON(cmd.OutOrStdout(), stores)
			}
			return cli.WriteStores(cmd.OutOrStdout(), stores)
		},
	}

	cmd.Flags().StringVar(&location, "location", "", "postal code, city or state")
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitude")
	cmd.Flags().IntVar(&radius, "radius", bestbuy.DefaultRadiusMi, "search radius in miles")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print stores as JSON")

	return cmd
}
