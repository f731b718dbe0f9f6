// Package llm abstracts the AI text-completion providers used by the
// verification pipeline. A nil Provider is a valid configuration: every AI
// call site carries a deterministic fallback and absorbs provider failure.
package llm

import (
	"context"
	"time"
)

// Provider performs a single text completion. Responses are expected, but
// not guaranteed, to be strict JSON; callers parse defensively.
type Provider interface {
	// Name returns the provider name ("anthropic", "openai").
	Name() string

	// Complete sends one prompt and returns the raw text of the response.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds provider construction settings.
type Config struct {
	Provider  string
	Key       string
	Model     string
	BaseURL   string
	Timeout   time.Duration
	MaxTokens int
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return 8 * time.Second
	}
	return c.Timeout
}

func (c Config) maxTokens() int {
	if c.MaxTokens <= 0 {
		return 1024
	}
	return c.MaxTokens
}
