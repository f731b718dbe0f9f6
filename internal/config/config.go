package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	LLM       LLMConfig       `yaml:"llm" mapstructure:"llm"`
	Wikipedia WikipediaConfig `yaml:"wikipedia" mapstructure:"wikipedia"`
	Search    SearchConfig    `yaml:"search" mapstructure:"search"`
	Verify    VerifyConfig    `yaml:"verify" mapstructure:"verify"`
	Scoring   ScoringConfig   `yaml:"scoring" mapstructure:"scoring"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// LLMConfig holds AI completion provider settings. An empty provider or key
// disables AI calls entirely; the pipeline then runs on heuristic fallbacks.
type LLMConfig struct {
	Provider    string `yaml:"provider" mapstructure:"provider"` // "anthropic", "openai" or ""
	Key         string `yaml:"key" mapstructure:"key"`
	Model       string `yaml:"model" mapstructure:"model"`
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxTokens   int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// WikipediaConfig holds encyclopedia lookup settings.
type WikipediaConfig struct {
	BaseURL       string  `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs   int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	CacheTTLMins  int     `yaml:"cache_ttl_mins" mapstructure:"cache_ttl_mins"`
	RatePerSecond float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"`
}

// SearchConfig holds web search API settings. An empty key disables the
// web-search evidence source.
type SearchConfig struct {
	Key         string `yaml:"key" mapstructure:"key"`
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// VerifyConfig configures the claim verification pipeline.
type VerifyConfig struct {
	MaxConcurrentClaims int `yaml:"max_concurrent_claims" mapstructure:"max_concurrent_claims"`
	MaxClaims           int `yaml:"max_claims" mapstructure:"max_claims"`
}

// ScoringConfig selects the trust scoring policy.
type ScoringConfig struct {
	Mode string `yaml:"mode" mapstructure:"mode"` // "centered" (default) or "legacy"
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("VERIFY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "verify.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("llm.provider", "anthropic")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.timeout_secs", 8)
	v.SetDefault("llm.max_tokens", 1024)
	v.SetDefault("wikipedia.base_url", "https://en.wikipedia.org")
	v.SetDefault("wikipedia.timeout_secs", 8)
	v.SetDefault("wikipedia.cache_ttl_mins", 60)
	v.SetDefault("wikipedia.rate_per_second", 5)
	v.SetDefault("search.base_url", "https://api.search.brave.com/res/v1")
	v.SetDefault("search.timeout_secs", 8)
	v.SetDefault("verify.max_concurrent_claims", 8)
	v.SetDefault("verify.max_claims", 10)
	v.SetDefault("scoring.mode", "centered")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
