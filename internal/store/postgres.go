package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// PostgresStore keeps each document as one row of the documents table.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgres returns a Store backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger zerolog.Logger) *PostgresStore {
	return &PostgresStore{pool: pool, logger: logger}
}

func (s *PostgresStore) Read(ctx context.Context, doc DocumentID) ([]byte, error) {
	const q = `SELECT body::text FROM documents WHERE id = $1`
	var body string
	err := s.pool.QueryRow(ctx, q, string(doc)).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w %s: %w", ErrRead, doc, ErrMissing)
		}
		s.logger.Error().Err(err).Str("document", string(doc)).Msg("select document")
		return nil, fmt.Errorf("%w %s: %v", ErrRead, doc, err)
	}
	return []byte(body), nil
}

func (s *PostgresStore) Write(ctx context.Context, doc DocumentID, data []byte) error {
	const q = `
INSERT INTO documents (id, body, updated_at)
VALUES ($1, $2::jsonb, now())
ON CONFLICT (id) DO UPDATE
SET body = EXCLUDED.body,
    updated_at = EXCLUDED.updated_at
`
	if _, err := s.pool.Exec(ctx, q, string(doc), string(data)); err != nil {
		s.logger.Error().Err(err).Str("document", string(doc)).Msg("upsert document")
		return fmt.Errorf("%w %s: %v", ErrWrite, doc, err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
