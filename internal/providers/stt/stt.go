package stt

import "context"

type Provider interface {
	// Transcribe reads the audio file at audioPath and returns its text.
	// An empty (zero-byte) file is an error, not an empty transcript.
	Transcribe(ctx context.Context, audioPath string) (string, error)
	Close() error
}
