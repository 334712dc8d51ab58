package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplySchema_SQLiteIsRepeatable(t *testing.T) {
	db, err := InitDB("sqlite3", filepath.Join(t.TempDir(), "schema.db")+"?_foreign_keys=on")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, ApplySchema(db, "sqlite3"))
	require.NoError(t, ApplySchema(db, "sqlite3"), "schema must be idempotent")

	for _, table := range []string{"users", "settings", "categories", "menu_items", "orders", "order_items", "page_views"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = $1`, table).Scan(&name)
		assert.NoError(t, err, table)
	}
}

func TestApplySchema_UnknownDriver(t *testing.T) {
	_, err := schemaFile("mysql")
	assert.Error(t, err)
}

func TestEmbeddedSchemasPresent(t *testing.T) {
	for _, driver := range []string{"postgres", "sqlite3"} {
		name, err := schemaFile(driver)
		require.NoError(t, err)
		content, err := schemaFS.ReadFile(name)
		require.NoError(t, err)
		assert.Contains(t, string(content), "CREATE TABLE IF NOT EXISTS orders")
	}
}
