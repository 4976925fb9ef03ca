package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// Supported database/sql dialects
const (
	DialectMySQL  = "mysql"
	DialectSQLite = "sqlite"
)

// DB is a collections backend over database/sql
type DB struct {
	*sql.DB
	dialect string
}

func NewDB(dialect, dsn string) (*DB, error) {
	if dialect != DialectMySQL && dialect != DialectSQLite {
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}

	if dialect == DialectSQLite {
		dsn = sqliteDSN(dsn)
	}

	db, err := sql.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	if dialect == DialectSQLite {
		// single writer per process; other processes wait on busy_timeout
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db, dialect: dialect}, nil
}

// sqliteDSN adds the pragmas that let several processes share one file:
// writers wait for the lock instead of failing with SQLITE_BUSY, readers do
// not block writers, and transactions take the write lock when they begin.
// Options already present in dsn are left alone.
func sqliteDSN(dsn string) string {
	var opts []string
	if !strings.Contains(dsn, "busy_timeout") {
		opts = append(opts, "_pragma=busy_timeout(5000)")
	}
	if !strings.Contains(dsn, "journal_mode") {
		opts = append(opts, "_pragma=journal_mode(WAL)")
	}
	if !strings.Contains(dsn, "_txlock") {
		opts = append(opts, "_txlock=immediate")
	}
	if len(opts) == 0 {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(opts, "&")
}

// Wrap adapts an already opened handle, mainly for tests
func Wrap(db *sql.DB, dialect string) *DB {
	return &DB{DB: db, dialect: dialect}
}

func (db *DB) Close() error {
	return db.DB.Close()
}

// Migrate creates the collections table when it is missing
func (db *DB) Migrate(ctx context.Context) error {
	stmt := createTableMySQL
	if db.dialect == DialectSQLite {
		stmt = createTableSQLite
	}
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("failed to create collections table: %w", err)
	}
	return nil
}
