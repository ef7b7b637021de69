// Package config provides application configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/writewithwrabit/wordstreak/db"
	"github.com/writewithwrabit/wordstreak/settings"
)

const (
	SourceVault   = "vault"
	SourceEntries = "entries"
)

// Config holds all application configuration.
type Config struct {
	NotesDir      string
	NoteLayout    string
	NoteExtension string
	NotesSource   string
	StoreEngine   string
	StorePath     string
	Database      db.Options
	Port          string
	CORSOrigins   []string
	FirebaseCreds string
	Mailgun       MailgunConfig
	LogLevel      slog.Level
	Location      *time.Location
}

// MailgunConfig enables email notices when Domain and Key are set.
type MailgunConfig struct {
	Domain    string
	Key       string
	Sender    string
	Recipient string
}

// Enabled reports whether email notices are configured.
func (m MailgunConfig) Enabled() bool {
	return m.Domain != "" && m.Key != "" && m.Recipient != ""
}

// LoadEnv reads a .env file into the environment. A missing file is not an error.
func LoadEnv(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg, err := Read()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Read reads configuration from environment variables without validating
// it, so callers can apply overrides first.
func Read() (*Config, error) {
	level, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	loc := time.Local
	if name := getEnv("TZ_NAME", ""); name != "" {
		loc, err = time.LoadLocation(name)
		if err != nil {
			return nil, fmt.Errorf("TZ_NAME: %w", err)
		}
	}

	cfg := &Config{
		NotesDir:      getEnv("NOTES_DIR", "."),
		NoteLayout:    getEnv("NOTE_DATE_LAYOUT", "2006-01-02"),
		NoteExtension: getEnv("NOTE_EXTENSION", ".md"),
		NotesSource:   strings.ToLower(getEnv("NOTES_SOURCE", SourceVault)),
		StoreEngine:   strings.ToLower(getEnv("STORE_ENGINE", settings.EngineJSON)),
		StorePath:     getEnv("STORE_PATH", "./data/streak.json"),
		Database: db.Options{
			URL:                getEnv("DATABASE_URL", ""),
			CloudSQLConnection: getEnv("CLOUDSQL_CONNECTION_NAME", ""),
			CloudSQLUser:       getEnv("CLOUDSQL_USER", ""),
			CloudSQLPassword:   getEnv("CLOUDSQL_PASSWORD", ""),
			CloudSQLDatabase:   getEnv("CLOUDSQL_DATABASE_NAME", ""),
		},
		Port:          getEnv("PORT", "8080"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "*")),
		FirebaseCreds: getEnv("FIREBASE_CREDENTIALS", ""),
		Mailgun: MailgunConfig{
			Domain:    getEnv("MAILGUN_DOMAIN", ""),
			Key:       getEnv("MAILGUN_KEY", ""),
			Sender:    getEnv("MAILGUN_SENDER", "Wordstreak <streak@localhost>"),
			Recipient: getEnv("MAILGUN_RECIPIENT", ""),
		},
		LogLevel: level,
		Location: loc,
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.NotesSource != SourceVault && c.NotesSource != SourceEntries {
		return fmt.Errorf("NOTES_SOURCE must be %q or %q, got %q", SourceVault, SourceEntries, c.NotesSource)
	}
	if c.NotesSource == SourceVault && c.NotesDir == "" {
		return fmt.Errorf("NOTES_DIR cannot be empty")
	}
	if c.NoteLayout == "" {
		return fmt.Errorf("NOTE_DATE_LAYOUT cannot be empty")
	}
	switch c.StoreEngine {
	case settings.EngineJSON, settings.EngineSQLite:
		if c.StorePath == "" {
			return fmt.Errorf("STORE_PATH cannot be empty")
		}
	case settings.EnginePostgres, settings.EngineMemory:
	default:
		return fmt.Errorf("STORE_ENGINE %q is not supported", c.StoreEngine)
	}
	if c.NeedsDatabase() && c.Database.URL == "" && c.Database.CloudSQLConnection == "" {
		return fmt.Errorf("DATABASE_URL or CLOUDSQL_CONNECTION_NAME must be set")
	}
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	return nil
}

// NeedsDatabase reports whether any component reads from Postgres.
func (c *Config) NeedsDatabase() bool {
	return c.StoreEngine == settings.EnginePostgres || c.NotesSource == SourceEntries
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(value)
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseLevel(value string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}
