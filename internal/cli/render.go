package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/tech-concierge/internal/model"
)

func formatDollars(amount float64) string {
	return "$" + model.FormatAmount(amount)
}

// FormatTotal renders a bundle price as "$1779.98" or "$1779.98 + $9.99/mo".
func FormatTotal(p model.Price) string {
	if p.Monthly > 0 {
		return formatDollars(p.OneTime) + " + " + formatDollars(p.Monthly) + "/mo"
	}
	return formatDollars(p.OneTime)
}

// RenderBundle draws a bundle card.
func RenderBundle(b model.Bundle) string {
	var sb strings.Builder

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render(BundleIcon+" "+b.Name) + "\n")
	if b.Description != "" {
		sb.WriteString(SubtleStyle.Render(b.Description) + "\n")
	}

	sb.WriteString("\n")
	for _, p := range b.Products {
		fmt.Fprintf(&sb, "  • %s  %s\n", p.Name, formatDollars(p.Price))
	}
	for _, s := range b.Services {
		price := formatDollars(s.Price)
		switch {
		case s.Monthly:
			price += "/mo"
		case s.Annual:
			price += "/yr"
		}
		fmt.Fprintf(&sb, "  + %s  %s\n", s.Name, price)
	}

	sb.WriteString("\nTotal: " + PriceStyle.Render(FormatTotal(b.TotalPrice)))
	if savings := b.StatedSavings(); savings > 0 {
		sb.WriteString("  " + SuccessStyle.Render("Save "+formatDollars(savings)))
	}
	if b.MemberPrice != nil {
		sb.WriteString("\n" + SubtleStyle.Render("Members: "+FormatTotal(*b.MemberPrice)))
	}
	if len(b.Fulfillment) > 0 {
		options := make([]string, 0, len(b.Fulfillment))
		for _, f := range b.Fulfillment {
			if !f.Available {
				continue
			}
			option := string(f.Kind)
			if f.Timing != "" {
				option += " (" + f.Timing + ")"
			}
			options = append(options, option)
		}
		if len(options) > 0 {
			sb.WriteString("\n" + SubtleStyle.Render("Get it: "+strings.Join(options, ", ")))
		}
	}
	if b.WhyThisPick != "" {
		sb.WriteString("\n\n" + InfoStyle.Render("Why this pick: ") + b.WhyThisPick)
	}

	return BoxStyle.Render(sb.String())
}

// RenderBundles draws each bundle card, numbered in rank order.
func RenderBundles(bundles []model.Bundle) string {
	if len(bundles) == 0 {
		return InfoStyle.Render("No bundles match yet.")
	}
	cards := make([]string, 0, len(bundles))
	for i, b := range bundles {
		cards = append(cards, SubtleStyle.Render(fmt.Sprintf("#%d", i+1))+"\n"+RenderBundle(b))
	}
	return strings.Join(cards, "\n")
}

// RenderContext lists the captured intent fields.
func RenderContext(c model.Context) string {
	if c.IsEmpty() {
		return SubtleStyle.Render("Nothing captured yet.")
	}

	var lines []string
	add := func(label, value string) {
		if value != "" {
			lines = append(lines, SubtleStyle.Render(label+":")+" "+value)
		}
	}
	if c.HasBudget() {
		add("Budget", formatDollars(c.Budget))
	}
	add("Use case", string(c.UseCase))
	add("Category", string(c.Category))
	add("Urgency", string(c.Urgency))
	add("Location", c.Location)
	add("Devices", strings.Join(c.ExistingDevices, ", "))

	return strings.Join(lines, "\n")
}

// WriteProducts prints search results as a table.
func WriteProducts(out io.Writer, products []model.Product) error {
	if len(products) == 0 {
		_, err := fmt.Fprintln(out, InfoStyle.Render("No products found."))
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		TableHeaderStyle.Render("SKU"),
		TableHeaderStyle.Render("Name"),
		TableHeaderStyle.Render("Price"),
		TableHeaderStyle.Render("Rating"),
		TableHeaderStyle.Render("Stock"))
	for _, p := range products {
		stock := SuccessStyle.Render("in stock")
		if !p.InStock {
			stock = ErrorStyle.Render("sold out")
		}
		rating := "-"
		if p.Rating > 0 {
			rating = fmt.Sprintf("%.1f (%d)", p.Rating, p.ReviewCount)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.SKU, p.Name, formatDollars(p.Price), rating, stock)
	}
	return w.Flush()
}

// WriteStores prints nearby stores as a table.
func WriteStores(out io.Writer, stores []model.Store) error {
	if len(stores) == 0 {
		_, err := fmt.Fprintln(out, InfoStyle.Render("No stores found nearby."))
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		TableHeaderStyle.Render("Store"),
		TableHeaderStyle.Render("Address"),
		TableHeaderStyle.Render("Phone"),
		TableHeaderStyle.Render("Distance"))
	for _, s := range stores {
		address := fmt.Sprintf("%s, %s, %s %s", s.Address, s.City, s.Region, s.PostalCode)
		fmt.Fprintf(w, "%s %s\t%s\t%s\t%.1f mi\n", StoreIcon, s.Name, address, s.Phone, s.Distance)
	}
	return w.Flush()
}

// RenderTranscript prints a session's messages in order.
func RenderTranscript(messages []model.Message) string {
	var sb strings.Builder
	for _, m := range messages {
		switch m.Role {
		case model.RoleUser:
			sb.WriteString(PromptStyle.Render("You: "))
		case model.RoleAssistant:
			sb.WriteString(AssistantStyle.Render("Concierge: "))
		default:
			sb.WriteString(SubtleStyle.Render(string(m.Role) + ": "))
		}
		sb.WriteString(m.Content + "\n")
		if len(m.BundleIDs) > 0 {
			sb.WriteString(SubtleStyle.Render("  bundles: "+strings.Join(m.BundleIDs, ", ")) + "\n")
		}
	}
	return sb.String()
}
