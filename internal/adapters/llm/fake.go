package llm

import (
	"context"
	"fmt"
)

// FakeCompleter implements Completer without any network calls. Replies are
// served from a queue in order; when the queue is exhausted the Default
// reply is returned.
type FakeCompleter struct {
	// Replies are returned one per call, in order.
	Replies []string
	// Errs pairs with Replies by index; a non-nil entry is returned
	// instead of the reply.
	Errs []error
	// Default is returned once Replies runs out.
	Default string
	// Prompts records every prompt received.
	Prompts []string

	next int
}

// NewFakeCompleter creates a fake that always answers with reply.
func NewFakeCompleter(reply string) *FakeCompleter {
	return &FakeCompleter{Default: reply}
}

// Complete returns the next queued reply or the default.
func (f *FakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context cancelled: %w", err)
	}
	f.Prompts = append(f.Prompts, prompt)
	i := f.next
	f.next++
	if i < len(f.Errs) && f.Errs[i] != nil {
		return "", f.Errs[i]
	}
	if i < len(f.Replies) {
		return f.Replies[i], nil
	}
	return f.Default, nil
}

// Calls reports how many completions were requested.
func (f *FakeCompleter) Calls() int {
	return f.next
}
