package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Default completion model.
const defaultModel = openai.GPT4oMini

// Option applies a configuration option to the OpenAICompleter.
type Option func(*OpenAICompleter)

// WithModel overrides the completion model.
func WithModel(model string) Option {
	return func(c *OpenAICompleter) {
		if model != "" {
			c.model = model
		}
	}
}

// OpenAICompleter implements Completer against the OpenAI chat-completions
// endpoint.
type OpenAICompleter struct {
	client *openai.Client
	model  string
}

// NewOpenAICompleter creates a live completer with configuration options.
func NewOpenAICompleter(apiKey string, opts ...Option) *OpenAICompleter {
	c := &OpenAICompleter{
		client: openai.NewClient(apiKey),
		model:  defaultModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Complete sends the prompt as a single user message and returns the reply.
func (c *OpenAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", ErrCompletion)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// classify maps upstream errors onto this package's sentinel kinds.
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %v", ErrQuotaExhausted, err)
	}
	return fmt.Errorf("%w: %v", ErrCompletion, err)
}
