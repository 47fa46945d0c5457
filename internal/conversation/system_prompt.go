package conversation

import (
	"fmt"
	"strings"

	"github.com/brightdoor/realty-ai-platform/internal/leads"
)

// PromptFlags carry UI hints that shape the system instruction.
type PromptFlags struct {
	// RichFormatting asks for paragraph/bullet-oriented output, set when
	// the client viewport is large enough to render it.
	RichFormatting bool
	// EnforceSingleQuestion appends a stronger restatement of the
	// one-question-per-turn rule.
	EnforceSingleQuestion bool
}

const singleQuestionInstruction = "IMPORTANT: Ask only ONE question per reply. Never ask multiple questions in the same message; wait for the user's answer before asking the next one."

const singleQuestionRestatement = "Remember: exactly one question mark per reply. If you are tempted to ask a second question, save it for your next turn."

// BuildSystemPrompt assembles the system instruction for the completion
// request from the current lead snapshot and UI flags. Output is
// deterministic for the same inputs.
func BuildSystemPrompt(lead *leads.Lead, flags PromptFlags) string {
	var b strings.Builder

	b.WriteString("You are a friendly and professional real-estate assistant for BrightDoor Realty. ")
	b.WriteString("Your goal is to qualify the lead by learning their name, preferred property type, budget and preferred location, then help them find matching properties.")

	if lead.Name != "" {
		fmt.Fprintf(&b, " The client's name is %s; address them by name.", lead.Name)
	}
	if lead.Budget != "" {
		fmt.Fprintf(&b, " Their budget is %s.", lead.Budget)
	}
	if lead.PreferredLocation != "" {
		fmt.Fprintf(&b, " They prefer the %s area.", lead.PreferredLocation)
	}
	if lead.PropertyType != "" {
		fmt.Fprintf(&b, " They are looking for a %s.", lead.PropertyType)
	}

	if flags.RichFormatting {
		b.WriteString(" Format your replies for readability: use short paragraphs separated by blank lines, bullet points for lists of options, and UPPERCASE sparingly for emphasis. Keep the structure concise and hierarchical.")
	}

	b.WriteString(" ")
	b.WriteString(singleQuestionInstruction)

	if flags.EnforceSingleQuestion {
		b.WriteString(" ")
		b.WriteString(singleQuestionRestatement)
	}

	return b.String()
}
