package model

import "time"

// Verdict is the tri-state outcome of checking a claim against evidence.
type Verdict string

const (
	VerdictVerified     Verdict = "verified"
	VerdictUncertain    Verdict = "uncertain"
	VerdictHallucinated Verdict = "hallucinated"
)

// EvidenceVerdict is the matcher's judgment of a single evidence snippet.
type EvidenceVerdict string

const (
	EvidenceSupports    EvidenceVerdict = "Supports claim"
	EvidenceContradicts EvidenceVerdict = "Contradicts claim"
	EvidenceRelated     EvidenceVerdict = "Related content"
	EvidenceNoMatch     EvidenceVerdict = "No match found"
)

// Label summarizes a whole passage's aggregate claim verdicts.
type Label string

const (
	LabelHighConfidence     Label = "High Confidence"
	LabelModerateConfidence Label = "Moderate Confidence"
	LabelReviewRecommended  Label = "Review Recommended"
	LabelHighRisk           Label = "High Risk"
)

// Claim is one atomic factual assertion extracted from a passage.
type Claim struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// EntityExtraction holds the best lookup key for a claim plus alternates.
type EntityExtraction struct {
	MainEntity  string   `json:"main_entity"`
	SearchTerms []string `json:"search_terms"` // at most 3
}

// EvidenceItem is one source snippet plus the matcher's judgment of it.
type EvidenceItem struct {
	Source  string          `json:"source"`
	Verdict EvidenceVerdict `json:"verdict"`
	URL     string          `json:"url,omitempty"`
}

// ClaimResult is the immutable verification outcome for one claim.
// Evidence is never empty in a final result; a placeholder entry is
// substituted when no real evidence was gathered.
type ClaimResult struct {
	ClaimID     string         `json:"id"`
	Text        string         `json:"text"`
	Verdict     Verdict        `json:"verdict"`
	Confidence  int            `json:"confidence"` // 0..100
	Explanation string         `json:"explanation"`
	Evidence    []EvidenceItem `json:"evidence"`
}

// Analysis is the persisted record of one verification run over a passage.
// Never mutated after creation; re-analysis creates a new record.
type Analysis struct {
	ID           string        `json:"id"`
	OriginalText string        `json:"original_text"`
	TrustScore   int           `json:"trust_score"` // 0..100
	Label        Label         `json:"label"`
	Claims       []ClaimResult `json:"claims"`
	VerifiedText string        `json:"verified_text"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Summary is the response view returned from an analyze call.
type Summary struct {
	AnalysisID string `json:"analysisId"`
	TrustScore int    `json:"trustScore"`
	Label      Label  `json:"label"`
	Summary    string `json:"summary"`
}

// CitationCheck reports whether a claim's citations exist and hold up.
type CitationCheck struct {
	Exists bool   `json:"exists"`
	Valid  bool   `json:"valid"`
	Reason string `json:"reason"`
}
