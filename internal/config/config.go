package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"streetbite_backend/internal/models"
	"streetbite_backend/pkg/utils"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// Config is the full process configuration.
// Precedence: defaults, then CONFIG_FILE (YAML), then environment variables.
type Config struct {
	Port string `yaml:"port"`

	DB       Database `yaml:"database"`
	Session  Session  `yaml:"session"`
	JWT      JWT      `yaml:"jwt"`
	Uploads  Uploads  `yaml:"uploads"`
	Admin    Admin    `yaml:"admin"`
	Logging  Logging  `yaml:"logging"`
	Timezone string   `yaml:"timezone"`

	// PricingMode is "server" (re-price order lines from the catalog) or "client" (trust the request).
	PricingMode        string   `yaml:"pricing_mode"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

type Database struct {
	Driver     string `yaml:"driver"`
	URL        string `yaml:"url"`
	Host       string `yaml:"host"`
	Port       string `yaml:"port"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	Name       string `yaml:"name"`
	SSLMode    string `yaml:"sslmode"`
	AutoSchema bool   `yaml:"auto_schema"`
}

type Session struct {
	Secret       string `yaml:"secret"`
	MaxAgeSecs   int    `yaml:"max_age_seconds"`
	CookieSecure bool   `yaml:"cookie_secure"`
}

type JWT struct {
	Secret string        `yaml:"secret"`
	TTL    time.Duration `yaml:"ttl"`
}

type Uploads struct {
	Dir      string `yaml:"dir"`
	MaxBytes int64  `yaml:"max_bytes"`
}

type Admin struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type Logging struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Port: "8080",
		DB: Database{
			Driver:     DriverPostgres,
			Host:       "localhost",
			Port:       "5432",
			User:       "streetbite",
			Password:   "streetbite",
			Name:       "streetbite",
			SSLMode:    "disable",
			AutoSchema: true,
		},
		Session: Session{
			MaxAgeSecs: int((30 * 24 * time.Hour).Seconds()),
		},
		JWT: JWT{
			TTL: 72 * time.Hour,
		},
		Uploads: Uploads{
			Dir:      "uploads",
			MaxBytes: 5 << 20,
		},
		Logging: Logging{
			Level: "info",
		},
		PricingMode:        models.PricingServer,
		CORSAllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// Load reads .env (optional), CONFIG_FILE (optional) and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeYAMLFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeYAMLFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = utils.Getenv("PORT", c.Port)

	c.DB.Driver = utils.Getenv("DB_DRIVER", c.DB.Driver)
	c.DB.URL = utils.Getenv("DATABASE_URL", c.DB.URL)
	c.DB.Host = utils.Getenv("DB_HOST", c.DB.Host)
	c.DB.Port = utils.Getenv("DB_PORT", c.DB.Port)
	c.DB.User = utils.Getenv("DB_USER", c.DB.User)
	c.DB.Password = utils.Getenv("DB_PASSWORD", c.DB.Password)
	c.DB.Name = utils.Getenv("DB_NAME", c.DB.Name)
	c.DB.SSLMode = utils.Getenv("DB_SSLMODE", c.DB.SSLMode)
	c.DB.AutoSchema = utils.GetenvBool("DB_AUTO_SCHEMA", c.DB.AutoSchema)

	c.Session.Secret = utils.Getenv("SESSION_SECRET", c.Session.Secret)
	c.Session.MaxAgeSecs = int(utils.GetenvInt64("SESSION_MAX_AGE", int64(c.Session.MaxAgeSecs)))
	c.Session.CookieSecure = utils.GetenvBool("COOKIE_SECURE", c.Session.CookieSecure)

	c.JWT.Secret = utils.Getenv("JWT_SECRET", c.JWT.Secret)
	c.JWT.TTL = utils.GetenvDuration("JWT_TTL", c.JWT.TTL)

	c.Uploads.Dir = utils.Getenv("UPLOAD_DIR", c.Uploads.Dir)
	c.Uploads.MaxBytes = utils.GetenvInt64("MAX_UPLOAD_BYTES", c.Uploads.MaxBytes)

	c.Admin.Username = utils.Getenv("ADMIN_USERNAME", c.Admin.Username)
	c.Admin.Password = utils.Getenv("ADMIN_PASSWORD", c.Admin.Password)

	c.Logging.Level = utils.Getenv("LOG_LEVEL", c.Logging.Level)
	c.Logging.Pretty = utils.GetenvBool("LOG_PRETTY", c.Logging.Pretty)

	c.Timezone = utils.Getenv("TIMEZONE", c.Timezone)
	c.PricingMode = strings.ToLower(utils.Getenv("PRICING_MODE", c.PricingMode))

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		c.CORSAllowedOrigins = splitAndTrim(origins)
	}
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want %s or %s)", c.DB.Driver, DriverPostgres, DriverSQLite)
	}
	switch c.PricingMode {
	case models.PricingServer, models.PricingClient:
	default:
		return fmt.Errorf("unsupported PRICING_MODE %q (want %s or %s)", c.PricingMode, models.PricingServer, models.PricingClient)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Uploads.MaxBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.Uploads.MaxBytes)
	}
	return nil
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DB.URL != "" {
		return c.DB.URL
	}
	if c.DB.Driver == DriverSQLite {
		return "streetbite.db?_foreign_keys=on"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Name, c.DB.SSLMode)
}

// Location is the timezone that defines "today" for every date-bucketed query.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
