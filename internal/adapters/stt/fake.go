package stt

import (
	"context"
	"fmt"
	"io"
)

// Default transcript returned by the fake when none is configured.
const defaultFakeTranscript = "Agent: Thank you for calling, this is Dana speaking. How can I help you today?\n" +
	"Customer: Hi, I was double charged on my last invoice.\n" +
	"Agent: I'm sorry about that, let me look into it right away."

// FakeTranscriber implements Transcriber without any network calls. It is
// used for mock deployments and tests.
type FakeTranscriber struct {
	// Transcript is returned on success.
	Transcript string
	// Err, when set, is returned instead of a transcript.
	Err error
	// Calls counts Transcribe invocations.
	Calls int
}

// NewFakeTranscriber creates a fake that returns a canned transcript.
func NewFakeTranscriber() *FakeTranscriber {
	return &FakeTranscriber{Transcript: defaultFakeTranscript}
}

// Transcribe drains the audio stream and returns the configured transcript.
func (f *FakeTranscriber) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	f.Calls++
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context cancelled: %w", err)
	}
	// Drain so callers see the same stream consumption as the live client.
	_, _ = io.Copy(io.Discard, audio)
	if f.Err != nil {
		return "", f.Err
	}
	return f.Transcript, nil
}
