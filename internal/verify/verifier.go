package verify

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ByteQuest-2025/GFGBQ-Team-team-99/internal/model"
)

const (
	// earlyExitConfidence stops the provider cascade once a Verified result
	// reaches this confidence.
	earlyExitConfidence = 70

	// maxAlternates limits how many alternate search terms are tried.
	maxAlternates = 2

	// maxWebEvidence limits web results attached as evidence items.
	maxWebEvidence = 3

	// webTitleLimit truncates web result titles used as evidence source labels.
	webTitleLimit = 60
)

const unresolvedExplanation = "Could not find sufficient sources to verify this claim"

// candidate is one tentative claim outcome produced by a single lookup+match
// step. The verifier folds candidates in provider order.
type candidate struct {
	verdict     model.Verdict
	confidence  int
	explanation string
	supports    bool // derived from a Supports matcher verdict
}

// updateBest is the fold step: a candidate replaces the best so far only if
// it is Supports-derived and strictly more confident. The first candidate
// always establishes the baseline.
func updateBest(best *candidate, next candidate) *candidate {
	if best == nil {
		return &next
	}
	if next.supports && next.confidence > best.confidence {
		return &next
	}
	return best
}

// shouldStop reports whether the cascade can exit early.
func shouldStop(best *candidate) bool {
	return best != nil && best.verdict == model.VerdictVerified && best.confidence >= earlyExitConfidence
}

// ClaimVerifier orchestrates the per-claim pipeline: entity extraction,
// encyclopedia lookup, semantic matching, alternate terms, and the web
// search fallback.
type ClaimVerifier struct {
	entities     *EntityExtractor
	matcher      *SemanticMatcher
	encyclopedia EncyclopediaSource
	web          WebSource
}

// NewClaimVerifier creates a claim verifier.
func NewClaimVerifier(entities *EntityExtractor, matcher *SemanticMatcher, encyclopedia EncyclopediaSource, web WebSource) *ClaimVerifier {
	return &ClaimVerifier{
		entities:     entities,
		matcher:      matcher,
		encyclopedia: encyclopedia,
		web:          web,
	}
}

// Verify runs the full pipeline for one claim. It never returns an error: a
// claim no provider can resolve comes back Uncertain with a fixed
// explanation, and absence of evidence is never treated as hallucination.
func (v *ClaimVerifier) Verify(ctx context.Context, claim model.Claim) model.ClaimResult {
	log := zap.L().With(zap.String("claim_id", claim.ID))

	extraction := v.entities.Extract(ctx, claim.Text)
	log.Debug("entity extracted",
		zap.String("main_entity", extraction.MainEntity),
		zap.Strings("search_terms", extraction.SearchTerms),
	)

	var best *candidate
	var evidence []model.EvidenceItem

	// Primary lookup on the main entity.
	best, evidence = v.checkEntity(ctx, claim.Text, extraction.MainEntity, best, evidence)
	if shouldStop(best) {
		return v.resolve(claim, best, evidence)
	}

	// Alternate search terms, first two only, skipped once verified.
	if best == nil || best.verdict != model.VerdictVerified {
		terms := extraction.SearchTerms
		if len(terms) > maxAlternates {
			terms = terms[:maxAlternates]
		}
		for _, term := range terms {
			best, evidence = v.checkEntity(ctx, claim.Text, term, best, evidence)
			if shouldStop(best) {
				break
			}
		}
	}

	// Web search fallback on the raw claim text.
	if !shouldStop(best) && (best == nil || best.verdict != model.VerdictVerified) {
		best, evidence = v.checkWeb(ctx, claim.Text, best, evidence)
	}

	return v.resolve(claim, best, evidence)
}

// checkEntity performs one encyclopedia lookup plus match and folds the
// outcome into the running best.
func (v *ClaimVerifier) checkEntity(ctx context.Context, claimText, entity string, best *candidate, evidence []model.EvidenceItem) (*candidate, []model.EvidenceItem) {
	hit := v.encyclopedia.Lookup(ctx, entity)
	if hit == nil {
		return best, evidence
	}

	label := "Wikipedia: " + hit.Title
	match := v.matcher.Match(ctx, claimText, hit.Extract, label)

	evidence = append(evidence, model.EvidenceItem{
		Source:  label,
		Verdict: evidenceVerdict(match.Verdict),
		URL:     hit.URL,
	})

	if next, ok := toCandidate(match); ok {
		best = updateBest(best, next)
	}
	return best, evidence
}

// checkWeb issues one web search, matches the combined results once, and
// attaches up to three results as evidence.
func (v *ClaimVerifier) checkWeb(ctx context.Context, claimText string, best *candidate, evidence []model.EvidenceItem) (*candidate, []model.EvidenceItem) {
	results := v.web.Search(ctx, claimText)
	if len(results) == 0 {
		return best, evidence
	}

	var lines []string
	for _, r := range results {
		lines = append(lines, fmt.Sprintf("%s: %s", r.Title, r.Snippet))
	}
	match := v.matcher.Match(ctx, claimText, strings.Join(lines, "\n"), "Web Search Results")

	for i, r := range results {
		if i == maxWebEvidence {
			break
		}
		title := r.Title
		if len(title) > webTitleLimit {
			title = title[:webTitleLimit]
		}
		evidence = append(evidence, model.EvidenceItem{
			Source:  title,
			Verdict: evidenceVerdict(match.Verdict),
			URL:     r.URL,
		})
	}

	if next, ok := toCandidate(match); ok {
		best = updateBest(best, next)
	}
	return best, evidence
}

// toCandidate maps a matcher result to a tentative claim outcome. Neutral
// produces no candidate. A Contradicts verdict inverts the confidence: the
// more certain the contradiction, the less trustworthy the claim.
func toCandidate(match MatchResult) (candidate, bool) {
	switch match.Verdict {
	case MatchSupports:
		verdict := model.VerdictUncertain
		if match.Confidence >= 50 {
			verdict = model.VerdictVerified
		}
		return candidate{
			verdict:     verdict,
			confidence:  match.Confidence,
			explanation: match.Explanation,
			supports:    true,
		}, true
	case MatchContradicts:
		return candidate{
			verdict:     model.VerdictHallucinated,
			confidence:  100 - match.Confidence,
			explanation: match.Explanation,
		}, true
	default:
		return candidate{}, false
	}
}

func evidenceVerdict(v MatchVerdict) model.EvidenceVerdict {
	switch v {
	case MatchSupports:
		return model.EvidenceSupports
	case MatchContradicts:
		return model.EvidenceContradicts
	default:
		return model.EvidenceRelated
	}
}

// resolve produces the final claim result, substituting placeholder evidence
// when nothing real was gathered.
func (v *ClaimVerifier) resolve(claim model.Claim, best *candidate, evidence []model.EvidenceItem) model.ClaimResult {
	if best == nil {
		if len(evidence) == 0 {
			evidence = []model.EvidenceItem{{
				Source:  "Manual review required",
				Verdict: model.EvidenceNoMatch,
			}}
		}
		return model.ClaimResult{
			ClaimID:     claim.ID,
			Text:        claim.Text,
			Verdict:     model.VerdictUncertain,
			Confidence:  40,
			Explanation: unresolvedExplanation,
			Evidence:    evidence,
		}
	}

	if len(evidence) == 0 {
		evidence = []model.EvidenceItem{{
			Source:  "Verification pipeline",
			Verdict: model.EvidenceNoMatch,
		}}
	}
	return model.ClaimResult{
		ClaimID:     claim.ID,
		Text:        claim.Text,
		Verdict:     best.verdict,
		Confidence:  best.confidence,
		Explanation: best.explanation,
		Evidence:    evidence,
	}
}
