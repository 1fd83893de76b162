package stt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// Default transcription model.
const defaultModel = openai.Whisper1

// Option applies a configuration option to the OpenAITranscriber.
type Option func(*OpenAITranscriber)

// WithModel overrides the transcription model.
func WithModel(model string) Option {
	return func(t *OpenAITranscriber) {
		if model != "" {
			t.model = model
		}
	}
}

// OpenAITranscriber implements Transcriber against the OpenAI
// audio-transcriptions endpoint.
type OpenAITranscriber struct {
	client *openai.Client
	model  string
}

// NewOpenAITranscriber creates a live transcriber with configuration options.
func NewOpenAITranscriber(apiKey string, opts ...Option) *OpenAITranscriber {
	t := &OpenAITranscriber{
		client: openai.NewClient(apiKey),
		model:  defaultModel,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Transcribe uploads the audio stream and returns the transcript text.
func (t *OpenAITranscriber) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.model,
		FilePath: filename,
		Reader:   audio,
	})
	if err != nil {
		return "", classify(err)
	}
	return resp.Text, nil
}

// classify maps upstream errors onto this package's sentinel kinds.
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %v", ErrQuotaExhausted, err)
	}
	return fmt.Errorf("%w: %v", ErrTranscription, err)
}
