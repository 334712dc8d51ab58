// Package dbtest opens throwaway SQLite databases with the application schema applied.
package dbtest

import (
	"database/sql"
	"path/filepath"
	"testing"

	"streetbite_backend/internal/database"

	"github.com/stretchr/testify/require"
)

// Open returns a migrated SQLite database in a per-test temp directory.
func Open(t testing.TB) *sql.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on&_busy_timeout=5000"

	db, err := database.InitDB("sqlite3", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.ApplySchema(db, "sqlite3"))
	return db
}

// Count returns SELECT COUNT(*) for the given table and optional WHERE clause.
func Count(t testing.TB, db *sql.DB, table, where string, args ...interface{}) int {
	t.Helper()
	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	var n int
	require.NoError(t, db.QueryRow(query, args...).Scan(&n))
	return n
}
