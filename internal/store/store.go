package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"skillfit/internal/config"
	"skillfit/internal/errors"
	"skillfit/internal/types"
)

// Store persists candidate profiles and parsed job descriptions in
// Postgres. Profiles use replace semantics: the stored document is the
// whole CareerData, overwritten on every upsert. Jobs are immutable once
// saved; the parsed form is reconstructed verbatim and never re-parsed.
type Store struct {
	pool   *pgxpool.Pool
	logger *errors.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
	user_id    TEXT PRIMARY KEY,
	data       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS jobs (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	raw_text   TEXT NOT NULL,
	parsed     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS jobs_user_id_idx ON jobs (user_id);
`

// New connects to Postgres and ensures the schema exists.
func New(ctx context.Context, cfg config.StoreConfig, logger *errors.Logger) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"invalid store DSN", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStoreUnavailable,
			"failed to create connection pool", err)
	}

	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, errors.NewStorageError(errors.ErrCodeStoreUnavailable,
			"store is unreachable", err)
	}

	s := &Store{pool: pool, logger: logger}
	if err := s.migrate(connectCtx); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("Store connected", "max_conns", poolConfig.MaxConns)
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return errors.NewStorageError(errors.ErrCodeStoreUnavailable,
			"schema migration failed", err)
	}
	return nil
}

// GetProfile loads the candidate profile for a user.
func (s *Store) GetProfile(ctx context.Context, userID string) (types.CareerData, error) {
	var career types.CareerData
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM profiles WHERE user_id = $1`, userID,
	).Scan(&career)
	if err != nil {
		if err == pgx.ErrNoRows {
			return types.CareerData{}, errors.NewStorageError(errors.ErrCodeProfileNotFound,
				fmt.Sprintf("no profile for user %s", userID), nil)
		}
		return types.CareerData{}, errors.NewStorageError(errors.ErrCodeStoreUnavailable,
			"profile lookup failed", err)
	}
	return career, nil
}

// UpsertProfile replaces the stored profile document for a user.
func (s *Store) UpsertProfile(ctx context.Context, userID string, career types.CareerData) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO profiles (user_id, data) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		userID, career,
	)
	if err != nil {
		return errors.NewStorageError(errors.ErrCodeStoreUnavailable,
			"profile upsert failed", err)
	}
	return nil
}

// SaveJob stores the raw posting alongside its parsed form and returns
// the new job id.
func (s *Store) SaveJob(ctx context.Context, userID, rawText string, parsed types.ParsedJobDescription) (string, error) {
	id := uuid.NewString()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO jobs (id, user_id, raw_text, parsed) VALUES ($1, $2, $3, $4)`,
		id, userID, rawText, parsed,
	)
	if err != nil {
		return "", errors.NewStorageError(errors.ErrCodeStoreUnavailable,
			"job insert failed", err)
	}
	return id, nil
}

// GetJob returns the persisted parsed form of a job.
func (s *Store) GetJob(ctx context.Context, id string) (types.ParsedJobDescription, error) {
	var parsed types.ParsedJobDescription
	err := s.pool.QueryRow(ctx,
		`SELECT parsed FROM jobs WHERE id = $1`, id,
	).Scan(&parsed)
	if err != nil {
		if err == pgx.ErrNoRows {
			return types.ParsedJobDescription{}, errors.NewStorageError(errors.ErrCodeJobNotFound,
				fmt.Sprintf("no job with id %s", id), nil)
		}
		return types.ParsedJobDescription{}, errors.NewStorageError(errors.ErrCodeStoreUnavailable,
			"job lookup failed", err)
	}
	return parsed, nil
}

// ListJobs returns job ids for a user, newest first, capped at limit.
func (s *Store) ListJobs(ctx context.Context, userID string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id FROM jobs WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStoreUnavailable,
			"job listing failed", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.NewStorageError(errors.ErrCodeStoreUnavailable,
				"job listing scan failed", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStoreUnavailable,
			"job listing failed", err)
	}
	return ids, nil
}

// Ping reports whether the store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}
