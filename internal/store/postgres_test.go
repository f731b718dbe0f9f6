package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByteQuest-2025/GFGBQ-Team-team-99/internal/model"
)

func newMockPostgres(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewPostgresWithPool(mock), mock
}

func analysisRow(a *model.Analysis) *pgxmock.Rows {
	claimsJSON, _ := json.Marshal(a.Claims)
	return pgxmock.NewRows([]string{"id", "original_text", "trust_score", "label", "claims", "verified_text", "created_at"}).
		AddRow(a.ID, a.OriginalText, a.TrustScore, string(a.Label), string(claimsJSON), a.VerifiedText, a.CreatedAt)
}

func TestPostgresMigrate(t *testing.T) {
	s, mock := newMockPostgres(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS analyses").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreateAnalysis(t *testing.T) {
	s, mock := newMockPostgres(t)

	a := sampleAnalysis("a1", time.Now().UTC())
	claimsJSON, err := json.Marshal(a.Claims)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO analyses").
		WithArgs(a.ID, a.OriginalText, a.TrustScore, string(a.Label), string(claimsJSON), a.VerifiedText, a.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.CreateAnalysis(context.Background(), a))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetAnalysis(t *testing.T) {
	s, mock := newMockPostgres(t)

	want := sampleAnalysis("a1", time.Now().UTC())
	mock.ExpectQuery("SELECT .* FROM analyses WHERE id").
		WithArgs("a1").
		WillReturnRows(analysisRow(want))

	got, err := s.GetAnalysis(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Claims, got.Claims)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetAnalysisMissing(t *testing.T) {
	s, mock := newMockPostgres(t)

	mock.ExpectQuery("SELECT .* FROM analyses WHERE id").
		WithArgs("nope").
		WillReturnRows(pgxmock.NewRows([]string{"id", "original_text", "trust_score", "label", "claims", "verified_text", "created_at"}))

	_, err := s.GetAnalysis(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFindClaim(t *testing.T) {
	s, mock := newMockPostgres(t)

	a := sampleAnalysis("a1", time.Now().UTC())
	mock.ExpectQuery("SELECT .* FROM analyses ORDER BY created_at DESC").
		WithArgs(recentLimit).
		WillReturnRows(analysisRow(a))

	claim, err := s.FindClaim(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", claim.ClaimID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFindClaimMissing(t *testing.T) {
	s, mock := newMockPostgres(t)

	mock.ExpectQuery("SELECT .* FROM analyses ORDER BY created_at DESC").
		WithArgs(recentLimit).
		WillReturnRows(pgxmock.NewRows([]string{"id", "original_text", "trust_score", "label", "claims", "verified_text", "created_at"}))

	_, err := s.FindClaim(context.Background(), "c1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
