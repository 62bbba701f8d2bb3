package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tech-concierge/internal/cli"
)

func bundlesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundles",
		Short: "Browse the bundle catalog",
	}

	cmd.AddCommand(listBundlesCmd())
	cmd.AddCommand(showBundleCmd())

	return cmd
}

func listBundlesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all bundles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := loadCatalog()
			if err != nil {
				return err
			}
			bundles := cat.Bundles()

			if asJSON {
				return printJSON(cmd.OutOrStdout(), bundles)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("ID"),
				cli.TableHeaderStyle.Render("Group"),
				cli.TableHeaderStyle.Render("Name"),
				cli.TableHeaderStyle.Render("Total"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 24),
				strings.Repeat("-", 14),
				strings.Repeat("-", 30),
				strings.Repeat("-", 12))

			for _, b := range bundles {
				group, _ := cat.GroupOf(b.ID)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", b.ID, group, b.Name, cli.FormatTotal(b.TotalPrice))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print bundles as JSON")

	return cmd
}

func showBundleCmd() *cobra.Command {
	var storeID string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a bundle",
		Long:  `Show a bundle's products, services and price. With --store, check pickup availability at that store.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog()
			if err != nil {
				return err
			}

			bundle, found := cat.Bundle(args[0])
			if !found {
				return fmt.Errorf("bundle %q not found", args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.RenderBundle(bundle))

			if storeID == "" {
				return nil
			}

			availability, err := newSearcher(cat, slog.Default()).CheckBundleAvailability(cmd.Context(), bundle, storeID)
			if err != nil {
				return fmt.Errorf("failed to check availability: %w", err)
			}

			fmt.Fprintln(out)
			for _, p := range availability.Products {
				if p.Available {
					fmt.Fprintln(out, cli.FormatSuccess(p.Name))
				} else {
					fmt.Fprintln(out, cli.FormatError(p.Name+" (not available for pickup)"))
				}
			}
			if availability.AllAvailable() {
				fmt.Fprintln(out, cli.FormatInfo(cli.StoreIcon+" Everything is ready for pickup at store "+storeID))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&storeID, "store", "", "store ID to check pickup availability")

	return cmd
}
