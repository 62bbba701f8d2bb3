package intent

import (
	"strings"

	"github.com/Veraticus/tech-concierge/internal/model"
)

// ShouldRecommend reports whether the host should run bundle selection after
// this message: the context must carry a budget, use case or category, and the
// message must ask for options.
func ShouldRecommend(message string, c model.Context) bool {
	if !c.HasSignal() {
		return false
	}
	return RequestsRecommendation(message)
}

// RequestsRecommendation reports whether message asks to see products.
func RequestsRecommendation(message string) bool {
	lower := strings.ToLower(message)
	for _, phrase := range recommendPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
