package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/ByteQuest-2025/GFGBQ-Team-team-99/internal/llm"
)

// MatchVerdict is the matcher's three-way decision for one source.
type MatchVerdict string

const (
	MatchSupports    MatchVerdict = "supports"
	MatchContradicts MatchVerdict = "contradicts"
	MatchNeutral     MatchVerdict = "neutral"
)

// MatchResult is the matcher's judgment of one evidence snippet.
type MatchResult struct {
	Verdict     MatchVerdict `json:"verdict"`
	Confidence  int          `json:"confidence"` // 0..100
	Explanation string       `json:"explanation"`
}

const matchPrompt = `You are a fact-checking assistant comparing a claim against a source.

Claim: %q

Source (%s):
%s

Decide whether the source supports, contradicts, or is neutral toward the
claim. Return a valid JSON object and nothing else:
{"verdict": "supports" | "contradicts" | "neutral", "confidence": <0-100>, "explanation": "<one short sentence>"}`

// maxSourceChars bounds the source content included in the AI prompt.
const maxSourceChars = 2000

// SemanticMatcher decides whether evidence supports, contradicts, or is
// neutral toward a claim. The AI path is primary; any failure falls back to
// deterministic keyword and number overlap.
type SemanticMatcher struct {
	provider llm.Provider
}

// NewSemanticMatcher creates a matcher. provider may be nil.
func NewSemanticMatcher(provider llm.Provider) *SemanticMatcher {
	return &SemanticMatcher{provider: provider}
}

// Match compares a claim against source content from the named source.
func (m *SemanticMatcher) Match(ctx context.Context, claim, sourceContent, sourceLabel string) MatchResult {
	if m.provider != nil {
		if result, ok := m.aiMatch(ctx, claim, sourceContent, sourceLabel); ok {
			return result
		}
	}
	return keywordMatch(claim, sourceContent)
}

func (m *SemanticMatcher) aiMatch(ctx context.Context, claim, sourceContent, sourceLabel string) (MatchResult, bool) {
	content := sourceContent
	if len(content) > maxSourceChars {
		content = content[:maxSourceChars]
	}

	text, err := m.provider.Complete(ctx, fmt.Sprintf(matchPrompt, claim, sourceLabel, content))
	if err != nil {
		zap.L().Debug("semantic match AI call failed, using keyword fallback",
			zap.String("provider", m.provider.Name()),
			zap.Error(err),
		)
		return MatchResult{}, false
	}

	var parsed MatchResult
	if err := json.Unmarshal([]byte(cleanJSON(text)), &parsed); err != nil {
		zap.L().Debug("semantic match response unparseable, using keyword fallback", zap.Error(err))
		return MatchResult{}, false
	}

	switch parsed.Verdict {
	case MatchSupports, MatchContradicts, MatchNeutral:
	default:
		return MatchResult{}, false
	}
	if parsed.Confidence < 0 || parsed.Confidence > 100 {
		return MatchResult{}, false
	}
	return parsed, true
}

// fallbackStopwords is the small closed list excluded from keyword overlap.
var fallbackStopwords = map[string]bool{
	"this": true, "that": true, "these": true, "those": true,
	"with": true, "from": true, "have": true, "been": true, "were": true,
	"they": true, "their": true, "there": true, "which": true, "would": true,
	"could": true, "should": true, "about": true, "into": true, "also": true,
	"when": true, "where": true, "while": true, "than": true, "then": true,
}

var digitRun = regexp.MustCompile(`\d+`)

// keywordMatch is the deterministic fallback scorer. It never returns
// Contradicts: low overlap means missing evidence, not counter-evidence.
func keywordMatch(claim, source string) MatchResult {
	claimLower := strings.ToLower(claim)
	sourceLower := strings.ToLower(source)

	var totalWeight, matchedWeight int
	for _, word := range strings.Fields(claimLower) {
		word = strings.Trim(word, ".,;:!?\"'()")
		if len(word) <= 3 || fallbackStopwords[word] {
			continue
		}
		weight := 1
		if len(word) > 6 {
			weight = 2
		}
		totalWeight += weight
		if strings.Contains(sourceLower, word) {
			matchedWeight += weight
		}
	}

	matchRatio := 0.0
	if totalWeight > 0 {
		matchRatio = float64(matchedWeight) / float64(totalWeight)
	}

	claimNumbers := digitRun.FindAllString(claimLower, -1)
	sourceNumbers := make(map[string]bool)
	for _, n := range digitRun.FindAllString(sourceLower, -1) {
		sourceNumbers[n] = true
	}

	numberBonus := 0.0
	if len(claimNumbers) > 0 {
		numberMatches := 0
		yearBonus := 0.0
		for _, n := range claimNumbers {
			if !sourceNumbers[n] {
				continue
			}
			numberMatches++
			if len(n) == 4 {
				yearBonus += 15
			}
		}
		numberBonus = float64(numberMatches)/float64(len(claimNumbers))*25 + yearBonus
	}

	confidence := int(math.Round(matchRatio*60 + numberBonus + 10))
	if confidence > 100 {
		confidence = 100
	}
	if confidence < 0 {
		confidence = 0
	}

	switch {
	case confidence >= 50:
		return MatchResult{
			Verdict:     MatchSupports,
			Confidence:  confidence,
			Explanation: "Keyword and number overlap with the source supports the claim",
		}
	case confidence >= 30:
		return MatchResult{
			Verdict:     MatchNeutral,
			Confidence:  confidence,
			Explanation: "Source is related but does not verify the claim",
		}
	default:
		return MatchResult{
			Verdict:     MatchNeutral,
			Confidence:  confidence,
			Explanation: "Insufficient evidence in the source to assess the claim",
		}
	}
}
