// Package intent derives structured shopper intent from free-text chat messages.
//
// Extraction is keyword based and never overwrites a field that is already
// known, so applying it to every turn of a conversation accumulates intent
// with a first-value-wins policy.
package intent

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Veraticus/tech-concierge/internal/model"
)

// MinBudget is the smallest amount accepted as a budget. Smaller numbers in a
// message are usually quantities or model numbers. Tunable.
const MinBudget = 100.0

var amountPattern = regexp.MustCompile(`\$?(\d+(?:,\d{3})*(?:\.\d{2})?)`)

// Extract returns current with at most one new value added per unset field.
// It has no side effects and never fails; a message with nothing recognizable
// returns current unchanged.
func Extract(message string, current model.Context) model.Context {
	ctx := current.Clone()
	lower := strings.ToLower(message)

	if !ctx.HasBudget() {
		if budget, ok := ParseBudget(message); ok {
			ctx.Budget = budget
		}
	}

	if ctx.Urgency == "" {
		if urgency, ok := firstMatch(urgencyRules, lower); ok {
			ctx.Urgency = urgency
		}
	}

	if ctx.UseCase == "" {
		if useCase, ok := firstMatch(useCaseRules, lower); ok {
			ctx.UseCase = useCase
		}
	}

	if ctx.Category == "" {
		if category, ok := firstMatch(categoryRules, lower); ok {
			ctx.Category = category
		}
	}

	return ctx
}

// ParseBudget reads the first currency-like number in message.
// Only the first number is considered; it is rejected when below MinBudget.
func ParseBudget(message string) (float64, bool) {
	match := amountPattern.FindString(message)
	if match == "" {
		return 0, false
	}

	cleaned := strings.NewReplacer("$", "", ",", "").Replace(match)
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || amount < MinBudget {
		return 0, false
	}
	return amount, true
}
