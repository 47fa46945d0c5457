package conversation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightdoor/realty-ai-platform/pkg/logging"
)

func TestFallbackLLMClient_PrimarySucceeds(t *testing.T) {
	primary := &stubLLM{resp: LLMResponse{Text: "from primary"}}
	fallback := &stubLLM{resp: LLMResponse{Text: "from fallback"}}
	client := NewFallbackLLMClient(primary, fallback, logging.Default())

	resp, err := client.Complete(context.Background(), LLMRequest{Messages: []ChatMessage{{Role: ChatRoleUser, Content: "hi"}}})
	require.NoError(t, err)
	assert.Equal(t, "from primary", resp.Text)
	assert.Empty(t, fallback.lastReq.Messages)
}

func TestFallbackLLMClient_FallsBack(t *testing.T) {
	primary := &stubLLM{err: &CompletionError{Reason: "transport"}}
	fallback := &stubLLM{resp: LLMResponse{Text: "from fallback"}}
	client := NewFallbackLLMClient(primary, fallback, logging.Default())

	resp, err := client.Complete(context.Background(), LLMRequest{Messages: []ChatMessage{{Role: ChatRoleUser, Content: "hi"}}})
	require.NoError(t, err)
	assert.Equal(t, "from fallback", resp.Text)
}

func TestFallbackLLMClient_BothFail(t *testing.T) {
	primary := &stubLLM{err: &CompletionError{Reason: "transport"}}
	fallback := &stubLLM{err: &CompletionError{Reason: "gemini transport"}}
	client := NewFallbackLLMClient(primary, fallback, logging.Default())

	_, err := client.Complete(context.Background(), LLMRequest{Messages: []ChatMessage{{Role: ChatRoleUser, Content: "hi"}}})
	require.Error(t, err)

	var cerr *CompletionError
	assert.ErrorAs(t, err, &cerr)
}

func TestFallbackLLMClient_SkipsFallbackOnDeadContext(t *testing.T) {
	primary := &stubLLM{err: &CompletionError{Reason: "transport"}}
	fallback := &stubLLM{resp: LLMResponse{Text: "from fallback"}}
	client := NewFallbackLLMClient(primary, fallback, logging.Default())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Complete(ctx, LLMRequest{Messages: []ChatMessage{{Role: ChatRoleUser, Content: "hi"}}})
	require.Error(t, err)
	assert.Empty(t, fallback.lastReq.Messages)
}
