package verify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeProvider returns a canned completion for every prompt.
type fakeProvider struct {
	resp string
	err  error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(context.Context, string) (string, error) {
	return f.resp, f.err
}

func TestEntityExtractorEmptyClaim(t *testing.T) {
	e := NewEntityExtractor(nil)

	got := e.Extract(context.Background(), "")
	assert.Empty(t, got.MainEntity)
	assert.Empty(t, got.SearchTerms)
}

func TestEntityExtractorHeuristic(t *testing.T) {
	e := NewEntityExtractor(nil)

	tests := []struct {
		name       string
		claim      string
		wantEntity string
		wantTerms  []string
	}{
		{
			name:       "longest proper noun run wins",
			claim:      "The Eiffel Tower was built in 1889 by Gustave Eiffel",
			wantEntity: "Gustave Eiffel",
			wantTerms:  []string{"Eiffel Tower"},
		},
		{
			name:       "tie breaks by first occurrence",
			claim:      "Marie Curie won the Nobel Prize in chemistry",
			wantEntity: "Marie Curie",
			wantTerms:  []string{"Nobel Prize", "chemistry"},
		},
		{
			name:       "topic keyword appended as search term",
			claim:      "Einstein made key contributions to physics",
			wantEntity: "Einstein",
			wantTerms:  []string{"physics"},
		},
		{
			name:       "no proper nouns falls back to long words",
			claim:      "it was a very sunny afternoon there",
			wantEntity: "very sunny afternoon",
		},
		{
			name:       "punctuation stripped from tokens",
			claim:      "Paris, the capital, hosted the games",
			wantEntity: "Paris",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(context.Background(), tt.claim)
			assert.Equal(t, tt.wantEntity, got.MainEntity)
			assert.Equal(t, tt.wantTerms, got.SearchTerms)
		})
	}
}

func TestEntityExtractorAIPath(t *testing.T) {
	e := NewEntityExtractor(&fakeProvider{
		resp: "```json\n{\"main_entity\": \"Albert Einstein\", \"search_terms\": [\"Einstein\", \"Theory of relativity\"]}\n```",
	})

	got := e.Extract(context.Background(), "Einstein was born in 1879")
	assert.Equal(t, "Albert Einstein", got.MainEntity)
	assert.Equal(t, []string{"Einstein", "Theory of relativity"}, got.SearchTerms)
}

func TestEntityExtractorAIFailureFallsBack(t *testing.T) {
	tests := []struct {
		name     string
		provider *fakeProvider
	}{
		{"provider error", &fakeProvider{err: errors.New("rate limited")}},
		{"malformed response", &fakeProvider{resp: "not json at all"}},
		{"empty main entity", &fakeProvider{resp: `{"main_entity": "", "search_terms": ["x"]}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEntityExtractor(tt.provider)
			got := e.Extract(context.Background(), "The Eiffel Tower was built in 1889")
			assert.Equal(t, "Eiffel Tower", got.MainEntity)
		})
	}
}

func TestEntityExtractorAITermsCapped(t *testing.T) {
	e := NewEntityExtractor(&fakeProvider{
		resp: `{"main_entity": "Apollo 11", "search_terms": ["a", "b", "c", "d", "e"]}`,
	})

	got := e.Extract(context.Background(), "Apollo 11 landed on the Moon in 1969")
	assert.Equal(t, "Apollo 11", got.MainEntity)
	assert.Len(t, got.SearchTerms, 3)
}
