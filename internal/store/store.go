package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/ByteQuest-2025/GFGBQ-Team-team-99/internal/model"
)

// ErrNotFound is returned when a requested analysis or claim does not exist.
var ErrNotFound = eris.New("not found")

// recentLimit bounds how many recent analyses a claim lookup scans.
const recentLimit = 50

// Store defines the persistence interface for analysis records. Records are
// write-once: a re-analysis creates a new record rather than mutating one.
type Store interface {
	// CreateAnalysis persists a completed analysis.
	CreateAnalysis(ctx context.Context, analysis *model.Analysis) error

	// GetAnalysis returns an analysis by id, or ErrNotFound.
	GetAnalysis(ctx context.Context, id string) (*model.Analysis, error)

	// FindClaim scans the most recent analyses for a claim id, or ErrNotFound.
	FindClaim(ctx context.Context, claimID string) (*model.ClaimResult, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// findClaimIn searches a batch of analyses (newest first) for a claim id.
func findClaimIn(analyses []model.Analysis, claimID string) *model.ClaimResult {
	for _, a := range analyses {
		for i := range a.Claims {
			if a.Claims[i].ClaimID == claimID {
				return &a.Claims[i]
			}
		}
	}
	return nil
}
