// Package config reads CLI defaults from the environment.
package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"nickandperla.net/tracery/internal/store"
)

// StoreType selects a grammar store backend.
type StoreType string

const (
	MemoryStore   StoreType = "memory"
	SQLiteStore   StoreType = "sqlite"
	PostgresStore StoreType = "postgres"
)

// Config holds store and logging settings.
type Config struct {
	Store       StoreType
	DBPath      string
	PostgresDSN string
	LogLevel    string
	LogFormat   string
}

// FromEnv returns the configuration based on environment variables.
func FromEnv() Config {
	return Config{
		Store:       ParseStoreType(os.Getenv("TRACERY_STORE")),
		DBPath:      getDBPath(),
		PostgresDSN: getConnectionString(),
		LogLevel:    getOr("TRACERY_LOG_LEVEL", "warn"),
		LogFormat:   getOr("TRACERY_LOG_FORMAT", "text"),
	}
}

// ParseStoreType maps a store name to a StoreType. Unknown or empty names
// select SQLite.
func ParseStoreType(s string) StoreType {
	switch strings.ToLower(s) {
	case "memory", "mem":
		return MemoryStore
	case "postgresql", "postgres", "pg":
		return PostgresStore
	default:
		return SQLiteStore
	}
}

// getDBPath returns the SQLite database path
func getDBPath() string {
	return getOr("TRACERY_DB", "tracery.db")
}

// getConnectionString returns the database connection string
func getConnectionString() string {
	// Default connection string for local development
	return getOr("TRACERY_PG_DSN", "postgres://localhost:5432/tracery?sslmode=disable")
}

func getOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// OpenStore opens the configured grammar store.
func (c Config) OpenStore(ctx context.Context) (store.Store, error) {
	switch c.Store {
	case MemoryStore:
		return store.NewMemory(), nil
	case PostgresStore:
		return store.NewPostgres(ctx, c.PostgresDSN)
	case SQLiteStore, "":
		s, err := store.NewSQLite(c.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", c.DBPath, err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown store type: %s", c.Store)
}

// NewLogger creates and configures a new slog.Logger instance. It does not
// set the global logger.
func NewLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(levelStr) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler

	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(outW, handlerOpts)
	}

	return slog.New(handler)
}

// Logger builds the logger described by c.
func (c Config) Logger(w io.Writer) *slog.Logger {
	return NewLogger(c.LogLevel, c.LogFormat, w)
}
