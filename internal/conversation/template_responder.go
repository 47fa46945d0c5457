package conversation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/brightdoor/realty-ai-platform/internal/leads"
)

var greetingRE = regexp.MustCompile(`(?i)^(hi|hello|hey|greetings)\b`)

// TemplateReply produces a deterministic reply from the message and what
// is already known about the lead. It walks the qualification flow in a
// fixed order and asks for the first missing attribute. This is the
// backstop when generation fails, so it must never fail itself.
func TemplateReply(message string, lead *leads.Lead) string {
	trimmed := strings.TrimSpace(message)

	if greetingRE.MatchString(trimmed) {
		if lead.Name != "" {
			return fmt.Sprintf("Hello %s! Great to hear from you again. How can I help with your property search today?", lead.Name)
		}
		return "Hello! Welcome to BrightDoor Realty. I'd love to help you find your next home. May I have your name?"
	}

	if lead.Name == "" && len(trimmed) > 3 {
		if attrs := ExtractAttributes(trimmed); attrs.Name != "" {
			return fmt.Sprintf("Nice to meet you, %s! What type of property are you looking for? For example an apartment, house, condo or villa.", attrs.Name)
		}
		return "I'd love to help you find the right property. May I have your name first?"
	}

	if lead.Name != "" && lead.PropertyType == "" {
		if attrs := ExtractAttributes(trimmed); attrs.PropertyType != "" {
			return fmt.Sprintf("A %s sounds like a great choice, %s! What budget range do you have in mind?", attrs.PropertyType, lead.Name)
		}
		return fmt.Sprintf("%s, what type of property are you interested in? An apartment, house, condo, villa, flat, studio, penthouse or duplex?", lead.Name)
	}

	if lead.Name != "" && lead.PropertyType != "" && lead.Budget == "" {
		if attrs := ExtractAttributes(trimmed); attrs.Budget != "" {
			return fmt.Sprintf("Got it, a budget of %s. Which area or location would you prefer?", attrs.Budget)
		}
		return fmt.Sprintf("What budget do you have in mind for your %s, %s?", lead.PropertyType, lead.Name)
	}

	if lead.Name != "" && lead.PropertyType != "" && lead.Budget != "" && lead.PreferredLocation == "" {
		if attrs := ExtractAttributes(trimmed); attrs.PreferredLocation != "" {
			return fmt.Sprintf("%s is a lovely area! So: a %s with a budget of %s in %s. Is there anything specific you're looking for, like the number of bedrooms?", attrs.PreferredLocation, lead.PropertyType, lead.Budget, attrs.PreferredLocation)
		}
		return fmt.Sprintf("Which location or area are you interested in for your %s, %s?", lead.PropertyType, lead.Name)
	}

	if lead.Qualified() {
		return fmt.Sprintf("Thanks %s! To recap: you're looking for a %s in %s with a budget of %s. One of our agents will reach out shortly with matching listings. Is there anything else I can help you with?", lead.Name, lead.PropertyType, lead.PreferredLocation, lead.Budget)
	}

	return "Thanks for your message! Could you tell me a bit more about what you're looking for?"
}
