package database

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLite_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db, err := NewDB(DialectSQLite, filepath.Join(t.TempDir(), "travel.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Migrate(ctx))

	_, ok, err := db.Load(ctx, "packages")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, db.Save(ctx, "packages", []byte(`[{"id":"1"}]`)))
	require.NoError(t, db.Save(ctx, "packages", []byte(`[{"id":"1"},{"id":"2"}]`)))

	data, ok, err := db.Load(ctx, "packages")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":"1"},{"id":"2"}]`, string(data))
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{
			name: "plain path",
			dsn:  "travel.db",
			want: "travel.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate",
		},
		{
			name: "existing query",
			dsn:  "file:travel.db?cache=shared",
			want: "file:travel.db?cache=shared&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate",
		},
		{
			name: "caller timeout kept",
			dsn:  "travel.db?_pragma=busy_timeout(100)",
			want: "travel.db?_pragma=busy_timeout(100)&_pragma=journal_mode(WAL)&_txlock=immediate",
		},
		{
			name: "fully configured",
			dsn:  "travel.db?_pragma=busy_timeout(100)&_pragma=journal_mode(DELETE)&_txlock=exclusive",
			want: "travel.db?_pragma=busy_timeout(100)&_pragma=journal_mode(DELETE)&_txlock=exclusive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sqliteDSN(tt.dsn))
		})
	}
}

func TestSQLite_TwoHandlesWriteConcurrently(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "travel.db")

	first, err := NewDB(DialectSQLite, path)
	require.NoError(t, err)
	defer first.Close()
	second, err := NewDB(DialectSQLite, path)
	require.NoError(t, err)
	defer second.Close()

	require.NoError(t, first.Migrate(ctx))
	require.NoError(t, second.Migrate(ctx))

	appendID := func(id string) func([]byte, bool) ([]byte, error) {
		return func(data []byte, found bool) ([]byte, error) {
			var ids []string
			if found {
				if err := json.Unmarshal(data, &ids); err != nil {
					return nil, err
				}
			}
			return json.Marshal(append(ids, id))
		}
	}

	const perHandle = 20
	var wg sync.WaitGroup
	errs := make(chan error, 4*perHandle)
	for h, db := range []*DB{first, second} {
		for i := 0; i < perHandle; i++ {
			wg.Add(2)
			go func(db *DB, id string) {
				defer wg.Done()
				errs <- db.Modify(ctx, "bookings", appendID(id))
			}(db, fmt.Sprintf("BK%d-%d", h, i))
			go func(db *DB, id string) {
				defer wg.Done()
				errs <- db.Save(ctx, "leads", []byte(`["`+id+`"]`))
			}(db, fmt.Sprintf("L%d-%d", h, i))
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	data, ok, err := second.Load(ctx, "bookings")
	require.NoError(t, err)
	require.True(t, ok)
	var ids []string
	require.NoError(t, json.Unmarshal(data, &ids))
	assert.Len(t, ids, 2*perHandle)
}
