package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderDisabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"no key", Config{Provider: "anthropic"}},
		{"no provider", Config{Key: "sk-test"}},
		{"nothing configured", Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.cfg)
			require.NoError(t, err)
			assert.Nil(t, p)
		})
	}
}

func TestNewProviderAnthropic(t *testing.T) {
	p, err := NewProvider(Config{Provider: "anthropic", Key: "sk-test"})
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "anthropic", p.Name())

	// "claude" is accepted as an alias.
	p, err = NewProvider(Config{Provider: "Claude", Key: "sk-test"})
	require.NoError(t, err)
	assert.Equal(t, "anthropic", p.Name())
}

func TestNewProviderOpenAI(t *testing.T) {
	p, err := NewProvider(Config{Provider: "openai", Key: "sk-test"})
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "openai", p.Name())
}

func TestNewProviderUnknown(t *testing.T) {
	_, err := NewProvider(Config{Provider: "cohere", Key: "key"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	assert.Equal(t, 8*time.Second, cfg.timeout())
	assert.Equal(t, 1024, cfg.maxTokens())

	cfg = Config{Timeout: time.Minute, MaxTokens: 256}
	assert.Equal(t, time.Minute, cfg.timeout())
	assert.Equal(t, 256, cfg.maxTokens())
}
