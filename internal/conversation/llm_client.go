package conversation

import (
	"context"
	"fmt"
)

const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is an internal message representation that can include system prompts.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type TokenUsage struct {
	InputTokens  int32
	OutputTokens int32
	TotalTokens  int32
}

type LLMRequest struct {
	Model       string
	System      string
	Messages    []ChatMessage
	MaxTokens   int32
	Temperature float32
}

type LLMResponse struct {
	Text  string
	Usage TokenUsage
}

type LLMClient interface {
	Complete(ctx context.Context, req LLMRequest) (LLMResponse, error)
}

// CompletionError marks a failure anywhere on the completion path:
// missing credential, transport failure, non-2xx status, or a malformed
// payload. The orchestrator treats all of them the same way and degrades
// to the template responder; it is never surfaced to the caller.
type CompletionError struct {
	Reason string
	Err    error
}

func (e *CompletionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("conversation: completion failed: %s", e.Reason)
	}
	return fmt.Sprintf("conversation: completion failed: %s: %v", e.Reason, e.Err)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}

// UnavailableLLMClient stands in when no provider credential is
// configured. Every call fails with a CompletionError, which keeps the
// rest of the pipeline on the template fallback path.
type UnavailableLLMClient struct{}

func (UnavailableLLMClient) Complete(context.Context, LLMRequest) (LLMResponse, error) {
	return LLMResponse{}, &CompletionError{Reason: "no completion provider configured"}
}
