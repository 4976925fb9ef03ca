package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T, dialect string) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return Wrap(db, dialect), mock
}

func TestDB_LoadFound(t *testing.T) {
	db, mock := newMockDB(t, DialectMySQL)

	mock.ExpectQuery("SELECT payload FROM collections WHERE name = \\?").
		WithArgs("packages").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(`[{"id":"1"}]`))

	data, ok, err := db.Load(context.Background(), "packages")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":"1"}]`, string(data))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_LoadMissing(t *testing.T) {
	db, mock := newMockDB(t, DialectMySQL)

	mock.ExpectQuery("SELECT payload FROM collections").
		WithArgs("bookings").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}))

	data, ok, err := db.Load(context.Background(), "bookings")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_LoadError(t *testing.T) {
	db, mock := newMockDB(t, DialectMySQL)

	boom := errors.New("connection reset")
	mock.ExpectQuery("SELECT payload FROM collections").
		WithArgs("leads").
		WillReturnError(boom)

	_, _, err := db.Load(context.Background(), "leads")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestDB_SaveUsesDialectUpsert(t *testing.T) {
	tests := []struct {
		name    string
		dialect string
		pattern string
	}{
		{name: "mysql", dialect: DialectMySQL, pattern: "ON DUPLICATE KEY UPDATE"},
		{name: "sqlite", dialect: DialectSQLite, pattern: "ON CONFLICT\\(name\\) DO UPDATE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t, tt.dialect)

			mock.ExpectExec(tt.pattern).
				WithArgs("users", `[]`).
				WillReturnResult(sqlmock.NewResult(0, 1))

			require.NoError(t, db.Save(context.Background(), "users", []byte(`[]`)))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDB_ModifyLocksRowForMySQL(t *testing.T) {
	db, mock := newMockDB(t, DialectMySQL)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT payload FROM collections WHERE name = \\? FOR UPDATE").
		WithArgs("bookings").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(`["BK1"]`))
	mock.ExpectExec("ON DUPLICATE KEY UPDATE").
		WithArgs("bookings", `["BK1","BK2"]`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := db.Modify(context.Background(), "bookings", func(data []byte, found bool) ([]byte, error) {
		assert.True(t, found)
		assert.Equal(t, `["BK1"]`, string(data))
		return []byte(`["BK1","BK2"]`), nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_ModifyMissingRowForSQLite(t *testing.T) {
	db, mock := newMockDB(t, DialectSQLite)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT payload FROM collections WHERE name = \\?$").
		WithArgs("leads").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}))
	mock.ExpectExec("ON CONFLICT\\(name\\) DO UPDATE").
		WithArgs("leads", `[]`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := db.Modify(context.Background(), "leads", func(data []byte, found bool) ([]byte, error) {
		assert.False(t, found)
		assert.Nil(t, data)
		return []byte(`[]`), nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_ModifyNilResultSkipsWrite(t *testing.T) {
	db, mock := newMockDB(t, DialectMySQL)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs("users").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(`[]`))
	mock.ExpectCommit()

	err := db.Modify(context.Background(), "users", func([]byte, bool) ([]byte, error) {
		return nil, nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_ModifyErrorRollsBack(t *testing.T) {
	db, mock := newMockDB(t, DialectMySQL)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs("invoices").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(`[]`))
	mock.ExpectRollback()

	refused := errors.New("refused")
	err := db.Modify(context.Background(), "invoices", func([]byte, bool) ([]byte, error) {
		return nil, refused
	})
	assert.ErrorIs(t, err, refused)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_Migrate(t *testing.T) {
	db, mock := newMockDB(t, DialectSQLite)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS collections").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, db.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewDB_UnsupportedDialect(t *testing.T) {
	_, err := NewDB("oracle", "dsn")
	assert.Error(t, err)
}
