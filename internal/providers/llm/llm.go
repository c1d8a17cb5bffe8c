package llm

import "context"

// Options are the per-call sampling parameters; the caller always supplies
// all three.
type Options struct {
	Model       string
	Temperature float64
	TopP        float64
}

type Provider interface {
	// Complete returns the whole completion text. Streaming is deliberately
	// not part of the contract: downstream structured-output parsing needs
	// the full response.
	Complete(ctx context.Context, prompt string, opts Options) (string, error)
	Close() error
}
