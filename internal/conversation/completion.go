package conversation

import (
	"context"
	"time"

	"github.com/brightdoor/realty-ai-platform/internal/leads"
	"github.com/brightdoor/realty-ai-platform/internal/observability/metrics"
)

const (
	completionTimeout     = 10 * time.Second
	completionMaxTokens   = 300
	completionTemperature = 0.7
	historyWindow         = 10
)

// CompletionClient turns a user message plus conversation state into a
// single LLM request. It owns the request policy (history window, token
// budget, per-request deadline); provider mechanics live in the LLMClient.
type CompletionClient struct {
	llm     LLMClient
	model   string
	metrics *metrics.Metrics
}

// NewCompletionClient wires a provider and model identifier. metrics may
// be nil.
func NewCompletionClient(llm LLMClient, model string, m *metrics.Metrics) *CompletionClient {
	if llm == nil {
		panic("conversation: LLM client is required")
	}
	return &CompletionClient{llm: llm, model: model, metrics: m}
}

// Generate produces a raw reply for the message. History is bounded to
// the most recent turns; the current message is always the final entry.
// Failures come back as a *CompletionError and carry no reply text.
func (c *CompletionClient) Generate(ctx context.Context, message string, lead *leads.Lead, flags PromptFlags) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	history := lead.History
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	messages := make([]ChatMessage, 0, len(history)+1)
	for _, turn := range history {
		role := ChatRoleAssistant
		if turn.Sender == leads.SenderUser {
			role = ChatRoleUser
		}
		messages = append(messages, ChatMessage{Role: role, Content: turn.Message})
	}
	messages = append(messages, ChatMessage{Role: ChatRoleUser, Content: message})

	start := time.Now()
	resp, err := c.llm.Complete(ctx, LLMRequest{
		Model:       c.model,
		System:      BuildSystemPrompt(lead, flags),
		Messages:    messages,
		MaxTokens:   completionMaxTokens,
		Temperature: completionTemperature,
	})
	if err != nil {
		c.metrics.ObserveCompletion(c.model, "error", time.Since(start))
		return "", err
	}
	c.metrics.ObserveCompletion(c.model, "ok", time.Since(start))
	c.metrics.AddTokens(c.model, resp.Usage.InputTokens, resp.Usage.OutputTokens)
	return resp.Text, nil
}
