package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ByteQuest-2025/GFGBQ-Team-team-99/internal/llm"
)

const claimsPrompt = `You are decomposing a passage into discrete factual claims.

Passage:
%s

List every atomic, checkable factual assertion the passage makes, one per
entry, at most %d. Return a valid JSON array of strings and nothing else:
["<claim 1>", "<claim 2>"]`

// defaultMaxClaims bounds the claims checked per passage.
const defaultMaxClaims = 10

// ClaimExtractor decomposes a passage into discrete factual claims.
type ClaimExtractor interface {
	Extract(ctx context.Context, text string) []string
}

// NewClaimExtractor creates the default extractor: an AI decomposition with a
// sentence-split fallback. provider may be nil.
func NewClaimExtractor(provider llm.Provider, maxClaims int) ClaimExtractor {
	if maxClaims <= 0 {
		maxClaims = defaultMaxClaims
	}
	return &claimExtractor{provider: provider, maxClaims: maxClaims}
}

type claimExtractor struct {
	provider  llm.Provider
	maxClaims int
}

func (e *claimExtractor) Extract(ctx context.Context, text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	if e.provider != nil {
		if claims, ok := e.aiExtract(ctx, text); ok {
			return claims
		}
	}
	return e.splitSentences(text)
}

func (e *claimExtractor) aiExtract(ctx context.Context, text string) ([]string, bool) {
	resp, err := e.provider.Complete(ctx, fmt.Sprintf(claimsPrompt, text, e.maxClaims))
	if err != nil {
		zap.L().Debug("claim extraction AI call failed, splitting sentences",
			zap.String("provider", e.provider.Name()),
			zap.Error(err),
		)
		return nil, false
	}

	var claims []string
	if err := json.Unmarshal([]byte(cleanJSONArray(resp)), &claims); err != nil {
		zap.L().Debug("claim extraction response unparseable, splitting sentences", zap.Error(err))
		return nil, false
	}

	kept := claims[:0]
	for _, c := range claims {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		kept = append(kept, c)
		if len(kept) == e.maxClaims {
			break
		}
	}
	if len(kept) == 0 {
		return nil, false
	}
	return kept, true
}

// splitSentences keeps sentences with at least four words as claims.
func (e *claimExtractor) splitSentences(text string) []string {
	var claims []string
	for _, sentence := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}) {
		sentence = strings.TrimSpace(sentence)
		if len(strings.Fields(sentence)) < 4 {
			continue
		}
		claims = append(claims, sentence)
		if len(claims) == e.maxClaims {
			break
		}
	}
	return claims
}
