package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort   string
	DBPath    string
	LogLevel  slog.Level
	LogFormat string

	// Chunking policy knobs. Defaults match the historical behavior;
	// none of them are semantic contracts.
	ScriptureChunkMode string // "granular" (verse+passage+chapter) or "book"
	VerseGroupSize     int    // fallback passage size for books without headings
	VerseContextChars  int    // neighboring-verse context on verse chunks
	AcademyChunkMode   string // "article" or "sections"
}

// Load reads configuration from environment variables and returns a Config
// struct. It applies defaults for optional fields and validates the rest.
// If a .env file exists in the current directory or project root, it is
// loaded automatically; variables already set take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	// Walk up a few levels so running from cmd/ still finds the root .env.
	if wd, err := os.Getwd(); err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		APIPort:            getEnv("API_PORT", "9000"),
		DBPath:             getEnv("DB_PATH", "./data/translation-helps.db"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
		ScriptureChunkMode: getEnv("SCRIPTURE_CHUNK_MODE", "granular"),
		AcademyChunkMode:   getEnv("ACADEMY_CHUNK_MODE", "article"),
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	cfg.VerseGroupSize, err = getEnvInt("SCRIPTURE_VERSE_GROUP_SIZE", 10)
	if err != nil {
		return nil, err
	}
	cfg.VerseContextChars, err = getEnvInt("VERSE_CONTEXT_CHARS", 100)
	if err != nil {
		return nil, err
	}

	switch cfg.ScriptureChunkMode {
	case "granular", "book":
	default:
		return nil, fmt.Errorf("SCRIPTURE_CHUNK_MODE must be granular or book, got %q", cfg.ScriptureChunkMode)
	}
	switch cfg.AcademyChunkMode {
	case "article", "sections":
	default:
		return nil, fmt.Errorf("ACADEMY_CHUNK_MODE must be article or sections, got %q", cfg.AcademyChunkMode)
	}

	// Create the data directory if it doesn't exist (for the DB file)
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", s)
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return n, nil
}
