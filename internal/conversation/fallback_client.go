package conversation

import (
	"context"

	"github.com/brightdoor/realty-ai-platform/pkg/logging"
)

// FallbackLLMClient tries a primary provider and falls back to a secondary
// one when the primary fails. Both failures surface as a single error so
// the orchestrator still has its template path behind this.
type FallbackLLMClient struct {
	primary  LLMClient
	fallback LLMClient
	logger   *logging.Logger
}

// NewFallbackLLMClient creates a client that prefers primary and degrades
// to fallback on any error.
func NewFallbackLLMClient(primary, fallback LLMClient, logger *logging.Logger) *FallbackLLMClient {
	if primary == nil {
		panic("conversation: primary LLM client is required")
	}
	if fallback == nil {
		panic("conversation: fallback LLM client is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &FallbackLLMClient{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Complete attempts the primary provider first. If it fails and the
// context is still live, the same request is replayed against the
// fallback provider.
func (c *FallbackLLMClient) Complete(ctx context.Context, req LLMRequest) (LLMResponse, error) {
	resp, err := c.primary.Complete(ctx, req)
	if err == nil {
		return resp, nil
	}

	if ctx.Err() != nil {
		return LLMResponse{}, err
	}

	c.logger.Warn("primary LLM provider failed, trying fallback", "error", err)

	resp, fbErr := c.fallback.Complete(ctx, req)
	if fbErr != nil {
		c.logger.Error("fallback LLM provider also failed", "error", fbErr)
		return LLMResponse{}, &CompletionError{Reason: "all providers failed", Err: fbErr}
	}
	return resp, nil
}
