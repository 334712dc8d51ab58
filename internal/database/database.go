package database

import (
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/rs/zerolog/log"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// InitDB opens and pings a connection pool for the given driver ("postgres" or "sqlite3").
func InitDB(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if driver == "postgres" {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	log.Info().Str("driver", driver).Msg("Successfully connected to the database")
	return db, nil
}

// ApplySchema executes the embedded schema for the driver. Every statement is
// CREATE ... IF NOT EXISTS, so running it on every start is safe.
func ApplySchema(db *sql.DB, driver string) error {
	name, err := schemaFile(driver)
	if err != nil {
		return err
	}
	content, err := schemaFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("could not read schema file %s: %w", name, err)
	}

	if _, err := db.Exec(string(content)); err != nil {
		return fmt.Errorf("could not execute schema script: %w", err)
	}
	log.Info().Str("schema", name).Msg("Database schema applied successfully")
	return nil
}

func schemaFile(driver string) (string, error) {
	switch driver {
	case "postgres":
		return "schema/postgres.sql", nil
	case "sqlite3":
		return "schema/sqlite.sql", nil
	}
	return "", fmt.Errorf("no schema for driver %q", driver)
}
