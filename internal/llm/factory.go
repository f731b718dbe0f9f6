package llm

import (
	"strings"

	"github.com/rotisserie/eris"
)

// NewProvider creates a provider from configuration. Returns (nil, nil) when
// no provider or no key is configured, which disables AI paths entirely.
func NewProvider(cfg Config) (Provider, error) {
	if cfg.Key == "" {
		return nil, nil
	}

	switch strings.ToLower(cfg.Provider) {
	case "anthropic", "claude":
		return newAnthropicProvider(cfg), nil
	case "openai":
		return newOpenAIProvider(cfg), nil
	case "":
		return nil, nil
	default:
		return nil, eris.Errorf("llm: unknown provider %q (supported: anthropic, openai)", cfg.Provider)
	}
}
