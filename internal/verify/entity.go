package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/ByteQuest-2025/GFGBQ-Team-team-99/internal/llm"
	"github.com/ByteQuest-2025/GFGBQ-Team-team-99/internal/model"
)

const entityPrompt = `You are extracting lookup keys for an encyclopedia search.

Claim: %q

Identify the single best encyclopedia article title to verify this claim, plus
2-3 alternate search terms. Return a valid JSON object and nothing else:
{"main_entity": "<best title>", "search_terms": ["<alt 1>", "<alt 2>"]}`

// maxSearchTerms caps the alternates carried per claim.
const maxSearchTerms = 3

// stopwords are tokens that never start or form a proper-noun run.
var stopwords = map[string]bool{
	"the": true, "and": true, "but": true, "for": true, "nor": true,
	"was": true, "were": true, "been": true, "being": true, "are": true,
	"has": true, "have": true, "had": true, "will": true, "would": true,
	"could": true, "should": true, "this": true, "that": true, "these": true,
	"those": true, "they": true, "their": true, "there": true, "them": true,
	"his": true, "her": true, "hers": true, "its": true, "our": true,
	"your": true, "who": true, "whom": true, "which": true, "what": true,
	"when": true, "where": true, "while": true, "with": true, "from": true,
	"into": true, "over": true, "after": true, "before": true, "during": true,
	"between": true, "because": true, "about": true, "also": true,
	"made": true, "makes": true, "said": true, "says": true, "became": true,
	"become": true, "developed": true, "created": true, "invented": true,
	"discovered": true, "founded": true, "built": true, "wrote": true,
	"according": true, "however": true, "many": true, "most": true,
	"some": true, "such": true, "than": true, "then": true,
}

// topicKeywords is a fixed list of domain, award and field terms appended as
// extra search terms when they appear in the claim.
var topicKeywords = []string{
	"Nobel Prize",
	"Academy Award",
	"World War",
	"Olympic Games",
	"United Nations",
	"World Cup",
	"Pulitzer Prize",
	"theory of relativity",
	"quantum mechanics",
	"physics",
	"chemistry",
	"medicine",
	"literature",
	"economics",
	"astronomy",
}

// EntityExtractor turns a claim into a primary lookup key plus alternate
// search terms. This component never errors past its boundary: AI failure is
// absorbed into the heuristic fallback, and an empty claim yields an empty
// result, which downstream treats as "no evidence found".
type EntityExtractor struct {
	provider llm.Provider
}

// NewEntityExtractor creates an entity extractor. provider may be nil.
func NewEntityExtractor(provider llm.Provider) *EntityExtractor {
	return &EntityExtractor{provider: provider}
}

// Extract derives the lookup entity and search terms for a claim.
func (e *EntityExtractor) Extract(ctx context.Context, claim string) model.EntityExtraction {
	if e.provider != nil {
		if result, ok := e.aiExtract(ctx, claim); ok {
			return result
		}
	}
	return heuristicEntity(claim)
}

func (e *EntityExtractor) aiExtract(ctx context.Context, claim string) (model.EntityExtraction, bool) {
	text, err := e.provider.Complete(ctx, fmt.Sprintf(entityPrompt, claim))
	if err != nil {
		zap.L().Debug("entity extraction AI call failed, using heuristic",
			zap.String("provider", e.provider.Name()),
			zap.Error(err),
		)
		return model.EntityExtraction{}, false
	}

	var parsed model.EntityExtraction
	if err := json.Unmarshal([]byte(cleanJSON(text)), &parsed); err != nil {
		zap.L().Debug("entity extraction response unparseable, using heuristic", zap.Error(err))
		return model.EntityExtraction{}, false
	}
	if parsed.MainEntity == "" {
		return model.EntityExtraction{}, false
	}
	if len(parsed.SearchTerms) > maxSearchTerms {
		parsed.SearchTerms = parsed.SearchTerms[:maxSearchTerms]
	}
	return parsed, true
}

// heuristicEntity is the deterministic fallback: merge consecutive
// capitalized tokens into proper-noun runs and pick the longest.
func heuristicEntity(claim string) model.EntityExtraction {
	tokens := strings.Fields(claim)

	// Collect runs of consecutive proper-noun candidates.
	var runs []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			runs = append(runs, strings.Join(current, " "))
			current = nil
		}
	}
	for _, tok := range tokens {
		word := stripNonLetters(tok)
		if isProperCandidate(word) {
			current = append(current, word)
		} else {
			flush()
		}
	}
	flush()

	// Discard runs that are too short or are themselves stopwords.
	kept := runs[:0]
	for _, run := range runs {
		if len(run) <= 2 || stopwords[strings.ToLower(run)] {
			continue
		}
		kept = append(kept, run)
	}
	runs = kept

	var result model.EntityExtraction
	if len(runs) > 0 {
		// Longest run by character count wins; ties break by first occurrence.
		order := make([]int, len(runs))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return len(runs[order[a]]) > len(runs[order[b]])
		})

		result.MainEntity = runs[order[0]]
		for _, idx := range order[1:] {
			if len(result.SearchTerms) >= maxSearchTerms {
				break
			}
			result.SearchTerms = append(result.SearchTerms, runs[idx])
		}
	} else {
		// No proper-noun runs: join the first three words longer than 3 chars.
		var words []string
		for _, tok := range tokens {
			word := stripNonLetters(tok)
			if len(word) > 3 {
				words = append(words, word)
			}
			if len(words) == 3 {
				break
			}
		}
		result.MainEntity = strings.Join(words, " ")
	}

	// Append matching topic keywords not already present.
	lower := strings.ToLower(claim)
	for _, kw := range topicKeywords {
		if len(result.SearchTerms) >= maxSearchTerms {
			break
		}
		if !strings.Contains(lower, strings.ToLower(kw)) {
			continue
		}
		if strings.EqualFold(kw, result.MainEntity) || containsFold(result.SearchTerms, kw) {
			continue
		}
		result.SearchTerms = append(result.SearchTerms, kw)
	}

	return result
}

func isProperCandidate(word string) bool {
	if len(word) <= 2 {
		return false
	}
	first := []rune(word)[0]
	if !unicode.IsUpper(first) {
		return false
	}
	return !stopwords[strings.ToLower(word)]
}

func stripNonLetters(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		return -1
	}, s)
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
