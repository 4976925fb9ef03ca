package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const createTableMySQL = `
	CREATE TABLE IF NOT EXISTS collections (
		name VARCHAR(64) NOT NULL PRIMARY KEY,
		payload LONGTEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)
`

const createTableSQLite = `
	CREATE TABLE IF NOT EXISTS collections (
		name TEXT NOT NULL PRIMARY KEY,
		payload TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)
`

const selectCollection = `SELECT payload FROM collections WHERE name = ?`

const selectCollectionForUpdate = `SELECT payload FROM collections WHERE name = ? FOR UPDATE`

const upsertMySQL = `
	INSERT INTO collections (name, payload)
	VALUES (?, ?)
	ON DUPLICATE KEY UPDATE payload = VALUES(payload), updated_at = CURRENT_TIMESTAMP
`

const upsertSQLite = `
	INSERT INTO collections (name, payload, updated_at)
	VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP
`

// Load returns the document stored under key
func (db *DB) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var payload string
	err := db.QueryRowContext(ctx, selectCollection, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query collection %s: %w", key, err)
	}
	return []byte(payload), true, nil
}

// Save replaces the document stored under key
func (db *DB) Save(ctx context.Context, key string, data []byte) error {
	stmt := upsertMySQL
	if db.dialect == DialectSQLite {
		stmt = upsertSQLite
	}
	if _, err := db.ExecContext(ctx, stmt, key, string(data)); err != nil {
		return fmt.Errorf("failed to save collection %s: %w", key, err)
	}
	return nil
}

// Modify runs fn over the document stored under key inside one transaction.
// MySQL holds the row lock from SELECT ... FOR UPDATE; SQLite transactions
// begin IMMEDIATE (see sqliteDSN) and so hold the database write lock.
// A nil result from fn commits without writing.
func (db *DB) Modify(ctx context.Context, key string, fn func(data []byte, found bool) ([]byte, error)) (err error) {
	query, upsert := selectCollectionForUpdate, upsertMySQL
	if db.dialect == DialectSQLite {
		query, upsert = selectCollection, upsertSQLite
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction on %s: %w", key, err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var payload string
	found := true
	err = tx.QueryRowContext(ctx, query, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		found, err = false, nil
	}
	if err != nil {
		return fmt.Errorf("failed to query collection %s: %w", key, err)
	}

	var current []byte
	if found {
		current = []byte(payload)
	}
	next, err := fn(current, found)
	if err != nil {
		return err
	}

	if next != nil {
		if _, err = tx.ExecContext(ctx, upsert, key, string(next)); err != nil {
			return fmt.Errorf("failed to save collection %s: %w", key, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit collection %s: %w", key, err)
	}
	return nil
}
