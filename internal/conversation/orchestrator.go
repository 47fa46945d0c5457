package conversation

import (
	"context"
	"fmt"
	"time"

	"github.com/brightdoor/realty-ai-platform/internal/leads"
	"github.com/brightdoor/realty-ai-platform/internal/observability/metrics"
	"github.com/brightdoor/realty-ai-platform/pkg/logging"
)

const generationTimeout = 15 * time.Second

// Orchestrator is the top-level reply policy: try the LLM under a
// deadline, format whatever comes back, and degrade to the template
// responder on error, timeout, or panic. It always returns a reply.
type Orchestrator struct {
	completion *CompletionClient
	metrics    *metrics.Metrics
	logger     *logging.Logger
}

// NewOrchestrator builds the reply policy. metrics may be nil.
func NewOrchestrator(completion *CompletionClient, m *metrics.Metrics, logger *logging.Logger) *Orchestrator {
	if completion == nil {
		panic("conversation: completion client is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Orchestrator{completion: completion, metrics: m, logger: logger}
}

type generationResult struct {
	text string
	err  error
}

// Reply generates a reply for the message given the current lead state.
// The completion call races a deadline; if it loses, its eventual result
// is discarded and the template responder answers instead. The goroutine
// gets its own copy of the lead: after a fallback the caller mutates the
// original while the abandoned branch may still be reading.
func (o *Orchestrator) Reply(ctx context.Context, message string, lead *leads.Lead, flags PromptFlags) string {
	ctx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	snapshot := lead.Clone()
	results := make(chan generationResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				results <- generationResult{err: fmt.Errorf("conversation: generation panicked: %v", r)}
			}
		}()
		text, err := o.completion.Generate(ctx, message, snapshot, flags)
		results <- generationResult{text: text, err: err}
	}()

	select {
	case res := <-results:
		if res.err == nil {
			return FormatReply(res.text)
		}
		o.logger.Warn("completion failed, using template fallback", "error", res.err)
		o.metrics.IncFallback("completion_error")
		return TemplateReply(message, lead)
	case <-ctx.Done():
		o.logger.Warn("generation deadline exceeded, using template fallback", "error", ctx.Err())
		o.metrics.IncFallback("timeout")
		return TemplateReply(message, lead)
	}
}
