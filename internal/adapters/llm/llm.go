// Package llm adapts external text-completion services behind a single
// completion interface.
package llm

import (
	"context"
	"errors"
)

// Sentinel kinds for completion errors.
var (
	// ErrQuotaExhausted marks rate-limit responses from the upstream service.
	ErrQuotaExhausted = errors.New("completion quota exhausted")
	// ErrCompletion marks any other transport or upstream failure.
	ErrCompletion = errors.New("completion failed")
)

// Completer converts a text prompt into a free-text reply.
type Completer interface {
	// Complete sends the prompt and returns the raw reply text, honoring
	// ctx for cancellation.
	Complete(ctx context.Context, prompt string) (string, error)
}

// IsQuota reports whether err is a rate-limit failure.
func IsQuota(err error) bool {
	return errors.Is(err, ErrQuotaExhausted)
}
