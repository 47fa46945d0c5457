package conversation

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/brightdoor/realty-ai-platform/internal/leads"
)

type stubLLM struct {
	lastReq LLMRequest
	resp    LLMResponse
	err     error
}

func (s *stubLLM) Complete(_ context.Context, req LLMRequest) (LLMResponse, error) {
	s.lastReq = req
	return s.resp, s.err
}

func TestCompletionClient_RequestShape(t *testing.T) {
	stub := &stubLLM{resp: LLMResponse{Text: "Sure!"}}
	client := NewCompletionClient(stub, "gpt-4o-mini", nil)

	lead := &leads.Lead{Name: "Alice"}
	lead.AppendTurn(leads.SenderUser, "hi", time.Now())
	lead.AppendTurn(leads.SenderBot, "hello Alice", time.Now())

	got, err := client.Generate(context.Background(), "show me condos", lead, PromptFlags{})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if got != "Sure!" {
		t.Errorf("Generate = %q, want %q", got, "Sure!")
	}

	req := stub.lastReq
	if req.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q", req.Model)
	}
	if req.Temperature != 0.7 {
		t.Errorf("Temperature = %v, want 0.7", req.Temperature)
	}
	if req.MaxTokens != 300 {
		t.Errorf("MaxTokens = %d, want 300", req.MaxTokens)
	}
	if req.System == "" {
		t.Error("System instruction is empty")
	}

	want := []ChatMessage{
		{Role: ChatRoleUser, Content: "hi"},
		{Role: ChatRoleAssistant, Content: "hello Alice"},
		{Role: ChatRoleUser, Content: "show me condos"},
	}
	if len(req.Messages) != len(want) {
		t.Fatalf("got %d messages, want %d", len(req.Messages), len(want))
	}
	for i := range want {
		if req.Messages[i] != want[i] {
			t.Errorf("message %d = %+v, want %+v", i, req.Messages[i], want[i])
		}
	}
}

func TestCompletionClient_BoundsHistory(t *testing.T) {
	stub := &stubLLM{resp: LLMResponse{Text: "ok"}}
	client := NewCompletionClient(stub, "gpt-4o-mini", nil)

	lead := &leads.Lead{}
	for i := 0; i < 25; i++ {
		lead.AppendTurn(leads.SenderUser, fmt.Sprintf("turn %d", i), time.Now())
	}

	if _, err := client.Generate(context.Background(), "latest", lead, PromptFlags{}); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if got := len(stub.lastReq.Messages); got != historyWindow+1 {
		t.Fatalf("got %d messages, want %d turns plus the current message", got, historyWindow)
	}
	if first := stub.lastReq.Messages[0].Content; first != "turn 15" {
		t.Errorf("oldest retained turn = %q, want the most recent window", first)
	}
	if last := stub.lastReq.Messages[historyWindow].Content; last != "latest" {
		t.Errorf("final message = %q, want the current user message", last)
	}
}

func TestCompletionClient_PropagatesCompletionError(t *testing.T) {
	stub := &stubLLM{err: &CompletionError{Reason: "transport", Err: errors.New("boom")}}
	client := NewCompletionClient(stub, "gpt-4o-mini", nil)

	_, err := client.Generate(context.Background(), "hi", &leads.Lead{}, PromptFlags{})
	var cerr *CompletionError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *CompletionError, got %v", err)
	}
}
