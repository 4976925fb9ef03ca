package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresDB is a collections backend over a pgx pool
type PostgresDB struct {
	pool *pgxpool.Pool
}

func NewPostgresDB(ctx context.Context, dsn string) (*PostgresDB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresDB{pool: pool}, nil
}

func (db *PostgresDB) Close() error {
	db.pool.Close()
	return nil
}

func (db *PostgresDB) Migrate(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS collections (
			name TEXT PRIMARY KEY,
			payload JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create collections table: %w", err)
	}
	return nil
}

func (db *PostgresDB) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var payload []byte
	err := db.pool.QueryRow(ctx, `SELECT payload::text FROM collections WHERE name = $1`, key).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query collection %s: %w", key, err)
	}
	return payload, true, nil
}

func (db *PostgresDB) Save(ctx context.Context, key string, data []byte) error {
	_, err := db.pool.Exec(ctx, `
		INSERT INTO collections (name, payload, updated_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()
	`, key, string(data))
	if err != nil {
		return fmt.Errorf("failed to save collection %s: %w", key, err)
	}
	return nil
}

// Modify runs fn over the document stored under key inside one transaction.
// The advisory lock serializes writers even before the row exists, where
// FOR UPDATE has nothing to lock.
func (db *PostgresDB) Modify(ctx context.Context, key string, fn func(data []byte, found bool) ([]byte, error)) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction on %s: %w", key, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
		return fmt.Errorf("failed to lock collection %s: %w", key, err)
	}

	var payload []byte
	found := true
	err = tx.QueryRow(ctx, `SELECT payload::text FROM collections WHERE name = $1 FOR UPDATE`, key).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		found, err = false, nil
	}
	if err != nil {
		return fmt.Errorf("failed to query collection %s: %w", key, err)
	}

	next, err := fn(payload, found)
	if err != nil {
		return err
	}

	if next != nil {
		_, err = tx.Exec(ctx, `
			INSERT INTO collections (name, payload, updated_at)
			VALUES ($1, $2::jsonb, NOW())
			ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()
		`, key, string(next))
		if err != nil {
			return fmt.Errorf("failed to save collection %s: %w", key, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit collection %s: %w", key, err)
	}
	return nil
}
