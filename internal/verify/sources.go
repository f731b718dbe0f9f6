package verify

import (
	"context"

	"go.uber.org/zap"

	"github.com/ByteQuest-2025/GFGBQ-Team-team-99/pkg/websearch"
	"github.com/ByteQuest-2025/GFGBQ-Team-team-99/pkg/wikipedia"
)

// SourceHit is one evidence snippet returned by an encyclopedia lookup.
type SourceHit struct {
	Title   string
	Extract string
	URL     string
}

// EncyclopediaSource turns an entity into an evidence snippet, or nil when
// nothing was found. Implementations absorb network errors locally; a failed
// step is indistinguishable from a miss.
type EncyclopediaSource interface {
	Lookup(ctx context.Context, entity string) *SourceHit
}

// WebSource performs a web search for a claim. Returns an empty slice on any
// failure or when the provider is not configured.
type WebSource interface {
	Search(ctx context.Context, query string) []websearch.Result
}

// wikipediaSource implements EncyclopediaSource over the Wikipedia client.
type wikipediaSource struct {
	client wikipedia.Client
}

// NewWikipediaSource wraps a Wikipedia client as an evidence source.
func NewWikipediaSource(client wikipedia.Client) EncyclopediaSource {
	return &wikipediaSource{client: client}
}

// Lookup tries a direct summary fetch for the entity, then falls back to a
// full-text search and retries the summary for the top-ranked title.
func (s *wikipediaSource) Lookup(ctx context.Context, entity string) *SourceHit {
	if entity == "" {
		return nil
	}

	summary, err := s.client.Summary(ctx, entity)
	if err != nil {
		zap.L().Debug("wikipedia summary lookup failed", zap.String("entity", entity), zap.Error(err))
	}
	if summary == nil {
		results, err := s.client.Search(ctx, entity, 3)
		if err != nil {
			zap.L().Debug("wikipedia search failed", zap.String("entity", entity), zap.Error(err))
			return nil
		}
		if len(results) == 0 {
			return nil
		}
		summary, err = s.client.Summary(ctx, results[0].Title)
		if err != nil {
			zap.L().Debug("wikipedia summary via search failed", zap.String("title", results[0].Title), zap.Error(err))
			return nil
		}
	}
	if summary == nil || summary.Extract == "" {
		return nil
	}

	return &SourceHit{
		Title:   summary.Title,
		Extract: summary.Extract,
		URL:     summary.URL,
	}
}

// maxWebResults caps results taken from a single web search.
const maxWebResults = 5

// webSource implements WebSource over the search client. A nil client means
// no credential was configured and every search returns empty immediately.
type webSource struct {
	client websearch.Client
}

// NewWebSource wraps a web search client as an evidence source. client may
// be nil.
func NewWebSource(client websearch.Client) WebSource {
	return &webSource{client: client}
}

func (s *webSource) Search(ctx context.Context, query string) []websearch.Result {
	if s.client == nil || query == "" {
		return nil
	}

	results, err := s.client.Search(ctx, query, maxWebResults)
	if err != nil {
		zap.L().Debug("web search failed", zap.String("query", query), zap.Error(err))
		return nil
	}
	return results
}
