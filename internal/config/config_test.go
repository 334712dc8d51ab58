package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"streetbite_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir()) // no .env here
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, models.PricingServer, cfg.PricingMode)
	assert.Equal(t, int64(5<<20), cfg.Uploads.MaxBytes)
	assert.Equal(t, 72*time.Hour, cfg.JWT.TTL)
	assert.Contains(t, cfg.DSN(), "dbname=streetbite")
}

func TestLoad_YAMLThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	yamlPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
port: "9000"
database:
  driver: sqlite3
  url: "file:test.db"
pricing_mode: client
timezone: Asia/Kolkata
cors_allowed_origins:
  - https://shop.example
`), 0o600))

	t.Setenv("CONFIG_FILE", yamlPath)
	t.Setenv("PORT", "9100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Port, "env wins over yaml")
	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "file:test.db", cfg.DSN())
	assert.Equal(t, models.PricingClient, cfg.PricingMode)
	assert.Equal(t, []string{"https://shop.example"}, cfg.CORSAllowedOrigins)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", loc.String())
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("CONFIG_FILE", "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ADMIN_USERNAME=stall-owner\n"), 0o600))
	os.Unsetenv("ADMIN_USERNAME")
	t.Cleanup(func() { os.Unsetenv("ADMIN_USERNAME") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "stall-owner", cfg.Admin.Username)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.DB.Driver = "mysql"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.PricingMode = "whatever"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Timezone = "Mars/Olympus_Mons"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	assert.NoError(t, cfg.Validate())
}

func TestSplitAndTrim(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitAndTrim(" a, ,b "))
}
