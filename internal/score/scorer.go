// Package score aggregates per-claim verdicts into one trust score and label
// for a whole passage.
package score

import (
	"math"

	"github.com/ByteQuest-2025/GFGBQ-Team-team-99/internal/model"
)

// Mode selects the scoring policy.
type Mode string

const (
	// ModeCentered is the primary policy: contributions centered on 50 so a
	// passage with no claims, or all-Uncertain claims, lands near the middle
	// instead of at zero.
	ModeCentered Mode = "centered"

	// ModeLegacy is the earlier plain-average policy kept for comparison
	// runs; it punishes hallucinations harder and has no centering.
	ModeLegacy Mode = "legacy"
)

// Result is the aggregate outcome for a passage.
type Result struct {
	Score int         `json:"score"` // 0..100
	Label model.Label `json:"label"`
}

// Scorer computes trust scores over claim verification results.
type Scorer struct {
	mode Mode
}

// New creates a scorer. An unknown mode falls back to centered.
func New(mode Mode) *Scorer {
	if mode != ModeLegacy {
		mode = ModeCentered
	}
	return &Scorer{mode: mode}
}

// Score aggregates the ordered claim results into a single score and label.
func (s *Scorer) Score(claims []model.ClaimResult) Result {
	if s.mode == ModeLegacy {
		return legacyScore(claims)
	}
	return centeredScore(claims)
}

func centeredScore(claims []model.ClaimResult) Result {
	points := 0.0
	for _, c := range claims {
		switch c.Verdict {
		case model.VerdictVerified:
			points += 1
		case model.VerdictUncertain:
			points += 0.5
		case model.VerdictHallucinated:
			points -= 0.5
		}
	}

	raw := points / math.Max(1, float64(len(claims))) * 100
	final := clamp(50 + raw/2)

	return Result{
		Score: int(math.Round(final)),
		Label: centeredLabel(final),
	}
}

// centeredLabel maps the unrounded final score to a four-tier label.
func centeredLabel(final float64) model.Label {
	switch {
	case final > 75:
		return model.LabelHighConfidence
	case final >= 50:
		return model.LabelModerateConfidence
	case final >= 25:
		return model.LabelReviewRecommended
	default:
		return model.LabelHighRisk
	}
}

func legacyScore(claims []model.ClaimResult) Result {
	points := 0.0
	for _, c := range claims {
		switch c.Verdict {
		case model.VerdictVerified:
			points += 1
		case model.VerdictUncertain:
			points += 0.5
		default:
			points -= 1
		}
	}

	final := clamp(points / math.Max(1, float64(len(claims))) * 100)

	label := model.LabelHighRisk
	switch {
	case final > 75:
		label = model.LabelHighConfidence
	case final > 40:
		label = model.LabelReviewRecommended
	}

	return Result{
		Score: int(math.Round(final)),
		Label: label,
	}
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
