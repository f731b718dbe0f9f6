package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ByteQuest-2025/GFGBQ-Team-team-99/internal/analysis"
	"github.com/ByteQuest-2025/GFGBQ-Team-team-99/internal/config"
	"github.com/ByteQuest-2025/GFGBQ-Team-team-99/internal/llm"
	"github.com/ByteQuest-2025/GFGBQ-Team-team-99/internal/score"
	"github.com/ByteQuest-2025/GFGBQ-Team-team-99/internal/store"
	"github.com/ByteQuest-2025/GFGBQ-Team-team-99/internal/verify"
	"github.com/ByteQuest-2025/GFGBQ-Team-team-99/pkg/websearch"
	"github.com/ByteQuest-2025/GFGBQ-Team-team-99/pkg/wikipedia"
)

// pipelineEnv bundles the wired components for a command run.
type pipelineEnv struct {
	Store        store.Store
	Orchestrator *analysis.Orchestrator
}

// Close releases store resources.
func (e *pipelineEnv) Close() {
	if err := e.Store.Close(); err != nil {
		zap.L().Warn("store close failed", zap.Error(err))
	}
}

// initPipeline wires the verification pipeline from loaded config.
func initPipeline(ctx context.Context) (*pipelineEnv, error) {
	st, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}

	provider, err := llm.NewProvider(llm.Config{
		Provider:  cfg.LLM.Provider,
		Key:       cfg.LLM.Key,
		Model:     cfg.LLM.Model,
		BaseURL:   cfg.LLM.BaseURL,
		Timeout:   time.Duration(cfg.LLM.TimeoutSecs) * time.Second,
		MaxTokens: cfg.LLM.MaxTokens,
	})
	if err != nil {
		st.Close()
		return nil, err
	}
	if provider == nil {
		zap.L().Info("no AI provider configured, using heuristic fallbacks only")
	}

	wiki := wikipedia.NewClient(
		wikipedia.WithBaseURL(cfg.Wikipedia.BaseURL),
		wikipedia.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Wikipedia.TimeoutSecs) * time.Second}),
		wikipedia.WithCacheTTL(time.Duration(cfg.Wikipedia.CacheTTLMins)*time.Minute),
		wikipedia.WithRateLimit(cfg.Wikipedia.RatePerSecond),
	)

	var search websearch.Client
	if cfg.Search.Key != "" {
		search = websearch.NewClient(cfg.Search.Key,
			websearch.WithBaseURL(cfg.Search.BaseURL),
			websearch.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Search.TimeoutSecs) * time.Second}),
		)
	}

	verifier := verify.NewClaimVerifier(
		verify.NewEntityExtractor(provider),
		verify.NewSemanticMatcher(provider),
		verify.NewWikipediaSource(wiki),
		verify.NewWebSource(search),
	)
	extractor := verify.NewClaimExtractor(provider, cfg.Verify.MaxClaims)
	scorer := score.New(score.Mode(cfg.Scoring.Mode))

	orchestrator := analysis.New(extractor, verifier, scorer, st, cfg.Verify.MaxConcurrentClaims)

	return &pipelineEnv{Store: st, Orchestrator: orchestrator}, nil
}

func openStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Driver {
	case "postgres":
		return store.NewPostgres(ctx, cfg.DatabaseURL)
	case "sqlite", "":
		return store.NewSQLite(cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q (supported: sqlite, postgres)", cfg.Driver)
	}
}
