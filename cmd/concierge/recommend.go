package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tech-concierge/internal/cli"
	"github.com/Veraticus/tech-concierge/internal/model"
)

func recommendCmd() *cobra.Command {
	var (
		budget   float64
		useCase  string
		category string
		urgency  string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend bundles for a shopper context",
		Long: `Select up to three bundles for the given budget, use case, category and urgency.
With no flags the catalog's default picks are shown.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			shopper, err := contextFromFlags(budget, useCase, category, urgency)
			if err != nil {
				return err
			}

			cat, err := loadCatalog()
			if err != nil {
				return err
			}

			bundles := cat.Select(shopper)
			if asJSON {
				if bundles == nil {
					bundles = []model.Bundle{}
				}
				return printJSON(cmd.OutOrStdout(), bundles)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatTitle("Recommended bundles"))
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBundles(bundles))
			return nil
		},
	}

	cmd.Flags().Float64Var(&budget, "budget", 0, "budget in dollars")
	cmd.Flags().StringVar(&useCase, "use-case", "", "use case (gaming, work, student, video-editing, ...)")
	cmd.Flags().StringVar(&category, "category", "", "device category (laptops, tvs, ...)")
	cmd.Flags().StringVar(&urgency, "urgency", "", "today, tomorrow, this-week or flexible")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print bundles as JSON")

	return cmd
}

func contextFromFlags(budget float64, useCase, category, urgency string) (model.Context, error) {
	if budget < 0 {
		return model.Context{}, fmt.Errorf("budget cannot be negative")
	}
	c := model.Context{
		Budget:   budget,
		UseCase:  model.UseCase(useCase),
		Category: model.Category(category),
	}
	if urgency != "" {
		u := model.Urgency(urgency)
		if !u.Valid() {
			return model.Context{}, fmt.Errorf("invalid urgency %q: use today, tomorrow, this-week or flexible", urgency)
		}
		c.Urgency = u
	}
	return c, nil
}
