package llm

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	openai "github.com/sashabaranov/go-openai"
)

// openaiProvider implements Provider using the OpenAI Chat Completions API.
type openaiProvider struct {
	client    *openai.Client
	model     string
	timeout   time.Duration
	maxTokens int
}

func newOpenAIProvider(cfg Config) *openaiProvider {
	clientConfig := openai.DefaultConfig(cfg.Key)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	return &openaiProvider{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     model,
		timeout:   cfg.timeout(),
		maxTokens: cfg.maxTokens(),
	}
}

func (p *openaiProvider) Name() string { return "openai" }

func (p *openaiProvider) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     p.model,
		MaxTokens: p.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", eris.Wrap(err, "openai: chat completion")
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", eris.New("openai: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
