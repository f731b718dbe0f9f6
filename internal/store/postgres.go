package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/ByteQuest-2025/GFGBQ-Team-team-99/internal/db"
	"github.com/ByteQuest-2025/GFGBQ-Team-team-99/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresWithPool wraps an existing pool; used by tests with pgxmock.
func NewPostgresWithPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS analyses (
	id            TEXT PRIMARY KEY,
	original_text TEXT NOT NULL,
	trust_score   INTEGER NOT NULL,
	label         TEXT NOT NULL,
	claims        JSONB NOT NULL,
	verified_text TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at DESC);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) CreateAnalysis(ctx context.Context, analysis *model.Analysis) error {
	claimsJSON, err := json.Marshal(analysis.Claims)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal claims")
	}

	if analysis.CreatedAt.IsZero() {
		analysis.CreatedAt = time.Now().UTC()
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO analyses (id, original_text, trust_score, label, claims, verified_text, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		analysis.ID, analysis.OriginalText, analysis.TrustScore, string(analysis.Label),
		string(claimsJSON), analysis.VerifiedText, analysis.CreatedAt,
	)
	return eris.Wrap(err, "postgres: insert analysis")
}

func (s *PostgresStore) GetAnalysis(ctx context.Context, id string) (*model.Analysis, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, original_text, trust_score, label, claims, verified_text, created_at
		 FROM analyses WHERE id = $1`,
		id,
	)
	return scanPgAnalysis(row)
}

func (s *PostgresStore) FindClaim(ctx context.Context, claimID string) (*model.ClaimResult, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, original_text, trust_score, label, claims, verified_text, created_at
		 FROM analyses ORDER BY created_at DESC LIMIT $1`,
		recentLimit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list recent analyses")
	}
	defer rows.Close()

	var analyses []model.Analysis
	for rows.Next() {
		a, err := scanPgAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate analyses")
	}

	if claim := findClaimIn(analyses, claimID); claim != nil {
		return claim, nil
	}
	return nil, ErrNotFound
}

func scanPgAnalysis(row pgx.Row) (*model.Analysis, error) {
	var a model.Analysis
	var label, claimsJSON string

	err := row.Scan(&a.ID, &a.OriginalText, &a.TrustScore, &label, &claimsJSON, &a.VerifiedText, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: scan analysis")
	}

	a.Label = model.Label(label)
	if err := json.Unmarshal([]byte(claimsJSON), &a.Claims); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal claims")
	}
	return &a, nil
}
