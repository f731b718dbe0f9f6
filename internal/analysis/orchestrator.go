// Package analysis runs the full passage verification flow: claim
// decomposition, concurrent per-claim verification, trust scoring, and
// persistence, plus the read accessors over stored results.
package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ByteQuest-2025/GFGBQ-Team-team-99/internal/model"
	"github.com/ByteQuest-2025/GFGBQ-Team-team-99/internal/score"
	"github.com/ByteQuest-2025/GFGBQ-Team-team-99/internal/store"
	"github.com/ByteQuest-2025/GFGBQ-Team-team-99/internal/verify"
)

// defaultConcurrency bounds simultaneous per-claim pipelines.
const defaultConcurrency = 8

// Verifier is the per-claim pipeline consumed by the orchestrator.
type Verifier interface {
	Verify(ctx context.Context, claim model.Claim) model.ClaimResult
}

// Orchestrator fans claim verification out across a passage and aggregates
// the results.
type Orchestrator struct {
	extractor   verify.ClaimExtractor
	verifier    Verifier
	scorer      *score.Scorer
	store       store.Store
	concurrency int
}

// New creates an orchestrator.
func New(extractor verify.ClaimExtractor, verifier Verifier, scorer *score.Scorer, st store.Store, concurrency int) *Orchestrator {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Orchestrator{
		extractor:   extractor,
		verifier:    verifier,
		scorer:      scorer,
		store:       st,
		concurrency: concurrency,
	}
}

// Analyze decomposes the passage, verifies every claim concurrently, scores
// the passage, persists the record, and returns the summary view.
func (o *Orchestrator) Analyze(ctx context.Context, text string) (*model.Summary, error) {
	claimTexts := o.extractor.Extract(ctx, text)

	claims := make([]model.Claim, len(claimTexts))
	for i, t := range claimTexts {
		claims[i] = model.Claim{ID: fmt.Sprintf("c%d", i+1), Text: t}
	}

	// Fan out one pipeline per claim; results land in their original slot so
	// the persisted order is deterministic regardless of completion order.
	results := make([]model.ClaimResult, len(claims))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, claim := range claims {
		g.Go(func() error {
			results[i] = o.verifier.Verify(gctx, claim)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "analysis: verify claims")
	}

	scored := o.scorer.Score(results)

	analysis := &model.Analysis{
		ID:           uuid.New().String(),
		OriginalText: text,
		TrustScore:   scored.Score,
		Label:        scored.Label,
		Claims:       results,
		VerifiedText: verifiedText(results),
	}
	if err := o.store.CreateAnalysis(ctx, analysis); err != nil {
		return nil, eris.Wrap(err, "analysis: persist")
	}

	zap.L().Info("analysis complete",
		zap.String("analysis_id", analysis.ID),
		zap.Int("claims", len(results)),
		zap.Int("trust_score", scored.Score),
		zap.String("label", string(scored.Label)),
	)

	return &model.Summary{
		AnalysisID: analysis.ID,
		TrustScore: scored.Score,
		Label:      scored.Label,
		Summary:    fmt.Sprintf("%d claims analyzed", len(results)),
	}, nil
}

// verifiedText joins the texts of verified claims in original order.
func verifiedText(results []model.ClaimResult) string {
	var parts []string
	for _, r := range results {
		if r.Verdict == model.VerdictVerified {
			parts = append(parts, r.Text)
		}
	}
	return strings.Join(parts, ". ")
}

// Claims returns the ordered claim results of an analysis.
func (o *Orchestrator) Claims(ctx context.Context, id string) ([]model.ClaimResult, error) {
	analysis, err := o.store.GetAnalysis(ctx, id)
	if err != nil {
		return nil, err
	}
	return analysis.Claims, nil
}

// VerifiedTextResult is the verified-text accessor response.
type VerifiedTextResult struct {
	VerifiedText  string   `json:"verifiedText"`
	RemovedClaims []string `json:"removedClaims"`
}

// VerifiedText returns the verified text plus the texts of claims that were
// removed from it.
func (o *Orchestrator) VerifiedText(ctx context.Context, id string) (*VerifiedTextResult, error) {
	analysis, err := o.store.GetAnalysis(ctx, id)
	if err != nil {
		return nil, err
	}

	removed := []string{}
	for _, c := range analysis.Claims {
		if c.Verdict != model.VerdictVerified {
			removed = append(removed, c.Text)
		}
	}
	return &VerifiedTextResult{
		VerifiedText:  analysis.VerifiedText,
		RemovedClaims: removed,
	}, nil
}

// EvidenceResult is the claim-evidence accessor response.
type EvidenceResult struct {
	ClaimID       string               `json:"claimId"`
	Status        model.Verdict        `json:"status"`
	Evidence      []model.EvidenceItem `json:"evidence"`
	CitationCheck model.CitationCheck  `json:"citationCheck"`
}

// Evidence returns a claim's evidence plus a citation-check summary, scanning
// the most recent stored analyses for the claim id.
func (o *Orchestrator) Evidence(ctx context.Context, claimID string) (*EvidenceResult, error) {
	claim, err := o.store.FindClaim(ctx, claimID)
	if err != nil {
		return nil, err
	}

	check := model.CitationCheck{
		Exists: len(claim.Evidence) > 0,
		Valid:  claim.Verdict == model.VerdictVerified,
	}
	if check.Valid {
		check.Reason = "Citation matches supporting source"
	} else {
		check.Reason = "Citation missing or contradicted"
	}

	return &EvidenceResult{
		ClaimID:       claim.ClaimID,
		Status:        claim.Verdict,
		Evidence:      claim.Evidence,
		CitationCheck: check,
	}, nil
}
