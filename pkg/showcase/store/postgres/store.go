package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pandar-ch/kigurumi-showcase/pkg/showcase"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Store implements showcase.Store on PostgreSQL. The collection is one JSONB
// blob in a single keyed row, mirroring the full-state-persist discipline of
// the other backends rather than normalizing items into tables.
//
// Schema:
//
//	CREATE TABLE showcase (
//	    key        TEXT PRIMARY KEY,
//	    data       JSONB NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type Store struct {
	db  DBTX
	key string
}

// DefaultKey is the row key used when none is configured.
const DefaultKey = "default"

// New creates a new PostgreSQL store. An empty key falls back to DefaultKey,
// which is right for the usual one-collection deployment.
func New(db DBTX, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{db: db, key: key}
}

// NewWithPool creates a new PostgreSQL store with a connection pool.
func NewWithPool(pool *pgxpool.Pool, key string) *Store {
	return New(pool, key)
}

// Migrate creates the showcase table if it does not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS showcase (
			key        TEXT PRIMARY KEY,
			data       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`

	if _, err := s.db.Exec(ctx, query); err != nil {
		return s.handlePostgresError("migrate", err)
	}
	return nil
}

// Load retrieves the collection blob.
func (s *Store) Load(ctx context.Context) (*showcase.ShowcaseData, error) {
	query := `SELECT data FROM showcase WHERE key = $1`

	var raw []byte
	err := s.db.QueryRow(ctx, query, s.key).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, showcase.ErrDataNotFound
		}
		return nil, s.handlePostgresError("load", err)
	}

	var data showcase.ShowcaseData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode stored data: %w", err)
	}

	return &data, nil
}

// Save upserts the collection blob wholesale.
func (s *Store) Save(ctx context.Context, data *showcase.ShowcaseData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode data: %w", err)
	}

	query := `
		INSERT INTO showcase (key, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`

	if _, err := s.db.Exec(ctx, query, s.key, raw); err != nil {
		return s.handlePostgresError("save", err)
	}

	return nil
}

// Error handling helper
func (s *Store) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42P01": // undefined_table
			return fmt.Errorf("showcase table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}
	return fmt.Errorf("database error in %s: %w", operation, err)
}
