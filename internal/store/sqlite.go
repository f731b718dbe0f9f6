package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/ByteQuest-2025/GFGBQ-Team-team-99/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS analyses (
	id            TEXT PRIMARY KEY,
	original_text TEXT NOT NULL,
	trust_score   INTEGER NOT NULL,
	label         TEXT NOT NULL,
	claims        TEXT NOT NULL,
	verified_text TEXT NOT NULL DEFAULT '',
	created_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateAnalysis(ctx context.Context, analysis *model.Analysis) error {
	claimsJSON, err := json.Marshal(analysis.Claims)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal claims")
	}

	if analysis.CreatedAt.IsZero() {
		analysis.CreatedAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO analyses (id, original_text, trust_score, label, claims, verified_text, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		analysis.ID, analysis.OriginalText, analysis.TrustScore, string(analysis.Label),
		string(claimsJSON), analysis.VerifiedText, analysis.CreatedAt,
	)
	return eris.Wrap(err, "sqlite: insert analysis")
}

func (s *SQLiteStore) GetAnalysis(ctx context.Context, id string) (*model.Analysis, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, original_text, trust_score, label, claims, verified_text, created_at
		 FROM analyses WHERE id = ?`,
		id,
	)
	return scanAnalysis(row)
}

func (s *SQLiteStore) FindClaim(ctx context.Context, claimID string) (*model.ClaimResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, original_text, trust_score, label, claims, verified_text, created_at
		 FROM analyses ORDER BY created_at DESC LIMIT ?`,
		recentLimit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list recent analyses")
	}
	defer rows.Close()

	var analyses []model.Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate analyses")
	}

	if claim := findClaimIn(analyses, claimID); claim != nil {
		return claim, nil
	}
	return nil, ErrNotFound
}

type scannable interface {
	Scan(dest ...any) error
}

func scanAnalysis(row scannable) (*model.Analysis, error) {
	var a model.Analysis
	var label, claimsJSON string

	err := row.Scan(&a.ID, &a.OriginalText, &a.TrustScore, &label, &claimsJSON, &a.VerifiedText, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan analysis")
	}

	a.Label = model.Label(label)
	if err := json.Unmarshal([]byte(claimsJSON), &a.Claims); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal claims")
	}
	return &a, nil
}
