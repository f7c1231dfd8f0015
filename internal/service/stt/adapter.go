// Package stt defines the interface for Speech-to-Text adapters.
package stt

import (
	"context"
	"errors"
)

// ErrEmptyTranscript means the provider recognized no speech in the audio.
var ErrEmptyTranscript = errors.New("stt: no speech recognized")

// Result holds a recognized transcript with its confidence score.
type Result struct {
	Text       string
	Confidence float64
}

// Transcriber defines the interface for batch STT providers (Google, mock, etc.).
type Transcriber interface {
	// Transcribe converts a complete audio clip to text.
	Transcribe(ctx context.Context, audio []byte) (Result, error)

	// Close releases provider resources.
	Close() error
}
