package store

import (
	"context"
	"fmt"

	"travel-agency/internal/database"
)

// Backend drivers
const (
	DriverMemory   = "memory"
	DriverMySQL    = database.DialectMySQL
	DriverSQLite   = database.DialectSQLite
	DriverPostgres = "postgres"
)

// Backend is a Blobs implementation that owns a connection
type Backend interface {
	Blobs
	Close() error
}

type memoryBackend struct {
	*MemoryBlobs
}

func (memoryBackend) Close() error { return nil }

type migrator interface {
	Backend
	Migrate(ctx context.Context) error
}

// Open connects the named driver and creates the collections table
func Open(ctx context.Context, driver, dsn string) (Backend, error) {
	var b migrator
	switch driver {
	case DriverMemory:
		return memoryBackend{NewMemoryBlobs()}, nil
	case DriverMySQL, DriverSQLite:
		db, err := database.NewDB(driver, dsn)
		if err != nil {
			return nil, err
		}
		b = db
	case DriverPostgres:
		db, err := database.NewPostgresDB(ctx, dsn)
		if err != nil {
			return nil, err
		}
		b = db
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	if err := b.Migrate(ctx); err != nil {
		b.Close()
		return nil, err
	}
	return b, nil
}
