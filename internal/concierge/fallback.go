package concierge

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Veraticus/tech-concierge/internal/model"
)

// ApologyReply is sent when the model returns nothing usable.
const ApologyReply = "I'm having trouble processing that. Would you like to speak with a human expert?"

var greetingPattern = regexp.MustCompile(`^(hi|hello|hey)\s*$`)

// FallbackReply answers without a language model. It asks for whichever of
// budget, use and timing is still missing, and announces recommendations
// once enough is known. history holds the turns before message.
func FallbackReply(message string, c model.Context, history []model.Message, recommending bool) string {
	lower := strings.ToLower(strings.TrimSpace(message))
	subject := c.Subject()
	budget := "$" + model.FormatAmount(c.Budget)

	switch {
	case len(history) == 0 && greetingPattern.MatchString(lower):
		return "Hi! I'm your Tech Pro. I can help you find the perfect tech solution. What are you looking for today?"

	case c.HasBudget() && subject != "" && recommending:
		return fmt.Sprintf("Perfect! Based on your %s budget for %s, I'm preparing some complete solutions for you. "+
			"Each will include products, services, installation, and protection. One moment! ✨", budget, subject)

	case !c.HasBudget() && subject != "":
		return fmt.Sprintf("Great! I can help you with %s. What's your budget range? "+
			"This helps me find the best options for you.\n\n"+
			"For example: \"Under $1500\" or \"Around $2000\"", subject)

	case c.HasBudget() && subject == "":
		return fmt.Sprintf("Perfect! I see you have a budget of %s. What will you primarily use this for?\n\n"+
			"For example: \"Video editing\", \"Gaming\", \"Work\", \"Student needs\"", budget)

	case !c.HasBudget() && subject == "":
		return openingQuestions(lower)

	case c.Urgency == "":
		return fmt.Sprintf("Excellent! I can find some great %s options within your %s budget. When do you need this?\n\n"+
			"• Today (same-day pickup/delivery)\n"+
			"• This week\n"+
			"• I'm flexible", subject, budget)

	default:
		return "I'm here to help! Tell me what you're looking for, your budget, and when you need it, " +
			"and I'll design a complete solution for you. 🎯"
	}
}

func openingQuestions(lower string) string {
	switch {
	case strings.Contains(lower, "laptop") || strings.Contains(lower, "computer"):
		return "I can help you find the perfect laptop! To give you the best recommendations, could you tell me:\n\n" +
			"1. What's your budget range?\n" +
			"2. What will you use it for? (video editing, gaming, work, etc.)"
	case strings.Contains(lower, "tv") || strings.Contains(lower, "television"):
		return "I can help you set up an amazing home theater! To get started:\n\n" +
			"1. What's your budget?\n" +
			"2. What size screen are you thinking?"
	default:
		return "I'd love to help you! Could you tell me:\n\n" +
			"1. What type of tech are you looking for? (laptop, TV, phone, etc.)\n" +
			"2. What's your budget range?\n" +
			"3. What will you use it for?"
	}
}
