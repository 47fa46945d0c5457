package conversation

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// chatClient is the slice of the go-openai client we depend on.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIClient implements LLMClient against an OpenAI-compatible chat
// completions endpoint. The credential is injected here, never read from
// the environment deeper in the call stack.
type OpenAIClient struct {
	client chatClient
}

// NewOpenAIClient builds a client for the given credential. baseURL
// overrides the default endpoint for self-hosted gateways; leave it
// empty for api.openai.com.
func NewOpenAIClient(apiKey, baseURL string) (*OpenAIClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("conversation: completion api key is required")
	}
	cfg := openai.DefaultConfig(apiKey)
	if strings.TrimSpace(baseURL) != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIClient{client: openai.NewClientWithConfig(cfg)}, nil
}

// newOpenAIClientWith wraps an existing chat client, used by tests.
func newOpenAIClientWith(client chatClient) *OpenAIClient {
	return &OpenAIClient{client: client}
}

// Complete sends a single chat completion request and returns the first choice.
func (c *OpenAIClient) Complete(ctx context.Context, req LLMRequest) (LLMResponse, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if strings.TrimSpace(req.System) != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, msg := range req.Messages {
		role := openai.ChatMessageRoleAssistant
		if msg.Role == ChatRoleUser {
			role = openai.ChatMessageRoleUser
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		MaxTokens:   int(req.MaxTokens),
		Temperature: req.Temperature,
	})
	if err != nil {
		return LLMResponse{}, &CompletionError{Reason: "transport", Err: err}
	}
	if len(resp.Choices) == 0 {
		return LLMResponse{}, &CompletionError{Reason: "no choices in response"}
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return LLMResponse{}, &CompletionError{Reason: "empty message content"}
	}

	return LLMResponse{
		Text: text,
		Usage: TokenUsage{
			InputTokens:  int32(resp.Usage.PromptTokens),
			OutputTokens: int32(resp.Usage.CompletionTokens),
			TotalTokens:  int32(resp.Usage.TotalTokens),
		},
	}, nil
}
