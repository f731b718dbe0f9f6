package analysis

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByteQuest-2025/GFGBQ-Team-team-99/internal/model"
	"github.com/ByteQuest-2025/GFGBQ-Team-team-99/internal/score"
	"github.com/ByteQuest-2025/GFGBQ-Team-team-99/internal/store"
	"github.com/ByteQuest-2025/GFGBQ-Team-team-99/internal/verify"
)

// memStore is an in-memory Store for orchestrator tests.
type memStore struct {
	mu       sync.Mutex
	analyses []*model.Analysis
}

func (m *memStore) CreateAnalysis(_ context.Context, a *model.Analysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.analyses = append(m.analyses, a)
	return nil
}

func (m *memStore) GetAnalysis(_ context.Context, id string) (*model.Analysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.analyses {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStore) FindClaim(_ context.Context, claimID string) (*model.ClaimResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.analyses) - 1; i >= 0; i-- {
		for j := range m.analyses[i].Claims {
			if m.analyses[i].Claims[j].ClaimID == claimID {
				return &m.analyses[i].Claims[j], nil
			}
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStore) Migrate(context.Context) error { return nil }
func (m *memStore) Close() error                  { return nil }

// stubEncyclopedia serves canned extracts by entity.
type stubEncyclopedia struct {
	hits map[string]*verify.SourceHit
}

func (s *stubEncyclopedia) Lookup(_ context.Context, entity string) *verify.SourceHit {
	return s.hits[entity]
}

func newEiffelOrchestrator(st store.Store) *Orchestrator {
	enc := &stubEncyclopedia{hits: map[string]*verify.SourceHit{
		"Gustave Eiffel": {
			Title:   "Gustave Eiffel",
			Extract: "The Eiffel Tower is a wrought-iron lattice tower in Paris, built in 1889 and named after the engineer Gustave Eiffel.",
			URL:     "https://en.wikipedia.org/wiki/Gustave_Eiffel",
		},
	}}
	verifier := verify.NewClaimVerifier(
		verify.NewEntityExtractor(nil),
		verify.NewSemanticMatcher(nil),
		enc,
		verify.NewWebSource(nil),
	)
	return New(verify.NewClaimExtractor(nil, 10), verifier, score.New(score.ModeCentered), st, 4)
}

func TestAnalyzeEndToEnd(t *testing.T) {
	st := &memStore{}
	o := newEiffelOrchestrator(st)
	ctx := context.Background()

	summary, err := o.Analyze(ctx, "The Eiffel Tower was built in 1889 by Gustave Eiffel.")
	require.NoError(t, err)
	require.NotEmpty(t, summary.AnalysisID)
	assert.Equal(t, 100, summary.TrustScore)
	assert.Equal(t, model.LabelHighConfidence, summary.Label)
	assert.Equal(t, "1 claims analyzed", summary.Summary)

	claims, err := o.Claims(ctx, summary.AnalysisID)
	require.NoError(t, err)
	require.Len(t, claims, 1)
	assert.Equal(t, "c1", claims[0].ClaimID)
	assert.Equal(t, model.VerdictVerified, claims[0].Verdict)
	assert.GreaterOrEqual(t, claims[0].Confidence, 50)
	require.NotEmpty(t, claims[0].Evidence)
	assert.Equal(t, "Wikipedia: Gustave Eiffel", claims[0].Evidence[0].Source)
}

func TestAnalyzeClaimsAreIdempotent(t *testing.T) {
	st := &memStore{}
	o := newEiffelOrchestrator(st)
	ctx := context.Background()

	summary, err := o.Analyze(ctx, "The Eiffel Tower was built in 1889 by Gustave Eiffel.")
	require.NoError(t, err)

	first, err := o.Claims(ctx, summary.AnalysisID)
	require.NoError(t, err)
	second, err := o.Claims(ctx, summary.AnalysisID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// slowVerifier completes later claims faster, so unordered completion would
// scramble results if slots were not index-addressed.
type slowVerifier struct{}

func (slowVerifier) Verify(_ context.Context, claim model.Claim) model.ClaimResult {
	n, _ := strconv.Atoi(claim.ID[1:])
	time.Sleep(time.Duration(30-10*n) * time.Millisecond)
	return model.ClaimResult{
		ClaimID:  claim.ID,
		Text:     claim.Text,
		Verdict:  model.VerdictVerified,
		Evidence: []model.EvidenceItem{{Source: "test", Verdict: model.EvidenceSupports}},
	}
}

func TestAnalyzePreservesClaimOrder(t *testing.T) {
	st := &memStore{}
	o := New(verify.NewClaimExtractor(nil, 10), slowVerifier{}, score.New(score.ModeCentered), st, 4)
	ctx := context.Background()

	summary, err := o.Analyze(ctx,
		"The first sentence has five words. The second sentence also has words. The third sentence closes the passage.")
	require.NoError(t, err)

	claims, err := o.Claims(ctx, summary.AnalysisID)
	require.NoError(t, err)
	require.Len(t, claims, 3)
	assert.Equal(t, "c1", claims[0].ClaimID)
	assert.Contains(t, claims[0].Text, "first")
	assert.Equal(t, "c2", claims[1].ClaimID)
	assert.Contains(t, claims[1].Text, "second")
	assert.Equal(t, "c3", claims[2].ClaimID)
	assert.Contains(t, claims[2].Text, "third")
}

// mixedVerifier returns a fixed verdict per claim index.
type mixedVerifier struct {
	verdicts []model.Verdict
}

func (m mixedVerifier) Verify(_ context.Context, claim model.Claim) model.ClaimResult {
	n, _ := strconv.Atoi(claim.ID[1:])
	return model.ClaimResult{
		ClaimID:  claim.ID,
		Text:     claim.Text,
		Verdict:  m.verdicts[n-1],
		Evidence: []model.EvidenceItem{{Source: "test", Verdict: model.EvidenceRelated}},
	}
}

func TestVerifiedTextAccessor(t *testing.T) {
	st := &memStore{}
	o := New(
		verify.NewClaimExtractor(nil, 10),
		mixedVerifier{verdicts: []model.Verdict{model.VerdictVerified, model.VerdictHallucinated, model.VerdictVerified}},
		score.New(score.ModeCentered),
		st,
		1,
	)
	ctx := context.Background()

	summary, err := o.Analyze(ctx,
		"The tower opened in 1889. The tower is made of cheese. The tower stands in Paris.")
	require.NoError(t, err)

	got, err := o.VerifiedText(ctx, summary.AnalysisID)
	require.NoError(t, err)
	assert.Equal(t, "The tower opened in 1889. The tower stands in Paris", got.VerifiedText)
	assert.Equal(t, []string{"The tower is made of cheese"}, got.RemovedClaims)
}

func TestVerifiedTextAllRemoved(t *testing.T) {
	st := &memStore{}
	o := New(
		verify.NewClaimExtractor(nil, 10),
		mixedVerifier{verdicts: []model.Verdict{model.VerdictUncertain}},
		score.New(score.ModeCentered),
		st,
		1,
	)
	ctx := context.Background()

	summary, err := o.Analyze(ctx, "The tower is made of cheese.")
	require.NoError(t, err)

	got, err := o.VerifiedText(ctx, summary.AnalysisID)
	require.NoError(t, err)
	assert.Empty(t, got.VerifiedText)
	assert.NotNil(t, got.RemovedClaims)
	assert.Len(t, got.RemovedClaims, 1)
}

func TestEvidenceAccessor(t *testing.T) {
	st := &memStore{}
	o := newEiffelOrchestrator(st)
	ctx := context.Background()

	_, err := o.Analyze(ctx, "The Eiffel Tower was built in 1889 by Gustave Eiffel.")
	require.NoError(t, err)

	got, err := o.Evidence(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", got.ClaimID)
	assert.Equal(t, model.VerdictVerified, got.Status)
	assert.NotEmpty(t, got.Evidence)
	assert.True(t, got.CitationCheck.Exists)
	assert.True(t, got.CitationCheck.Valid)
	assert.Equal(t, "Citation matches supporting source", got.CitationCheck.Reason)
}

func TestEvidenceAccessorMissingClaim(t *testing.T) {
	st := &memStore{}
	o := newEiffelOrchestrator(st)

	_, err := o.Evidence(context.Background(), "c99")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAccessorsMissingAnalysis(t *testing.T) {
	st := &memStore{}
	o := newEiffelOrchestrator(st)
	ctx := context.Background()

	_, err := o.Claims(ctx, "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = o.VerifiedText(ctx, "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
