package llm

import (
	"context"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
)

const defaultAnthropicModel = "claude-haiku-4-5-20251001"

// anthropicProvider implements Provider using the official anthropic-sdk-go.
type anthropicProvider struct {
	client    sdk.Client
	model     string
	timeout   time.Duration
	maxTokens int
}

func newAnthropicProvider(cfg Config) *anthropicProvider {
	opts := []option.RequestOption{option.WithAPIKey(cfg.Key)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = defaultAnthropicModel
	}

	return &anthropicProvider{
		client:    sdk.NewClient(opts...),
		model:     model,
		timeout:   cfg.timeout(),
		maxTokens: cfg.maxTokens(),
	}
}

func (p *anthropicProvider) Name() string { return "anthropic" }

func (p *anthropicProvider) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	msg, err := p.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(p.model),
		MaxTokens: int64(p.maxTokens),
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", eris.Wrap(err, "anthropic: create message")
	}

	var parts []string
	for _, block := range msg.Content {
		if block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	text := strings.Join(parts, "\n")
	if text == "" {
		return "", eris.New("anthropic: empty response")
	}
	return text, nil
}
