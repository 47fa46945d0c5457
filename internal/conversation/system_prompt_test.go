package conversation

import (
	"strings"
	"testing"

	"github.com/brightdoor/realty-ai-platform/internal/leads"
)

func TestBuildSystemPrompt_AlwaysConstrainsQuestions(t *testing.T) {
	for _, flags := range []PromptFlags{
		{},
		{RichFormatting: true},
		{EnforceSingleQuestion: true},
		{RichFormatting: true, EnforceSingleQuestion: true},
	} {
		prompt := BuildSystemPrompt(&leads.Lead{}, flags)
		if !strings.Contains(prompt, singleQuestionInstruction) {
			t.Errorf("flags %+v: prompt missing the single-question instruction", flags)
		}
		hasRestatement := strings.Contains(prompt, singleQuestionRestatement)
		if hasRestatement != flags.EnforceSingleQuestion {
			t.Errorf("flags %+v: restatement present = %v", flags, hasRestatement)
		}
	}
}

func TestBuildSystemPrompt_IncludesKnownAttributes(t *testing.T) {
	lead := &leads.Lead{
		Name:              "Alice",
		Budget:            "750,000",
		PreferredLocation: "Austin",
		PropertyType:      "villa",
	}

	prompt := BuildSystemPrompt(lead, PromptFlags{})
	for _, part := range []string{"Alice", "750,000", "Austin", "villa"} {
		if !strings.Contains(prompt, part) {
			t.Errorf("prompt missing known attribute %q", part)
		}
	}
}

func TestBuildSystemPrompt_OmitsUnknownAttributes(t *testing.T) {
	prompt := BuildSystemPrompt(&leads.Lead{Name: "Bob"}, PromptFlags{})
	if strings.Contains(prompt, "Their budget is") {
		t.Error("prompt mentions a budget that was never extracted")
	}
	if !strings.Contains(prompt, "Bob") {
		t.Error("prompt missing the known name")
	}
}

func TestBuildSystemPrompt_FormattingGuidance(t *testing.T) {
	plain := BuildSystemPrompt(&leads.Lead{}, PromptFlags{})
	rich := BuildSystemPrompt(&leads.Lead{}, PromptFlags{RichFormatting: true})

	if strings.Contains(plain, "bullet points") {
		t.Error("formatting guidance present without the flag")
	}
	if !strings.Contains(rich, "bullet points") {
		t.Error("formatting guidance missing with the flag set")
	}
}

func TestBuildSystemPrompt_Deterministic(t *testing.T) {
	lead := &leads.Lead{Name: "Alice", PropertyType: "condo"}
	flags := PromptFlags{RichFormatting: true, EnforceSingleQuestion: true}
	if BuildSystemPrompt(lead, flags) != BuildSystemPrompt(lead, flags) {
		t.Error("prompt is not deterministic for identical input")
	}
}
