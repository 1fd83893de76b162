// Package stt adapts external speech-to-text services behind a single
// transcription interface.
package stt

import (
	"context"
	"errors"
	"io"
)

// Sentinel kinds for transcription errors.
var (
	// ErrQuotaExhausted marks rate-limit responses from the upstream service.
	ErrQuotaExhausted = errors.New("transcription quota exhausted")
	// ErrTranscription marks any other transport or upstream failure.
	ErrTranscription = errors.New("transcription failed")
)

// Transcriber converts audio bytes into text.
type Transcriber interface {
	// Transcribe reads the audio stream and returns its transcript,
	// honoring ctx for cancellation. The filename carries the container
	// extension the upstream service uses to sniff the format.
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}

// IsQuota reports whether err is a rate-limit failure.
func IsQuota(err error) bool {
	return errors.Is(err, ErrQuotaExhausted)
}
