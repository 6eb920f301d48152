package main

import (
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"translation-helps/internal/chunker"
	"translation-helps/internal/config"
	"translation-helps/internal/http"
	"translation-helps/internal/storage"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	chunkRepo := storage.NewChunkRepo(db)
	resourceRepo := storage.NewResourceRepo(db)

	// Build the chunker dispatcher from the configured policies
	dispatcher := chunker.NewDispatcher(chunker.Options{
		ScriptureMode:  cfg.ScriptureChunkMode,
		VerseGroupSize: cfg.VerseGroupSize,
		ContextChars:   cfg.VerseContextChars,
		AcademyMode:    cfg.AcademyChunkMode,
	})
	slog.Info("Chunker dispatcher ready",
		"scripture_mode", cfg.ScriptureChunkMode,
		"academy_mode", cfg.AcademyChunkMode,
		"verse_group_size", cfg.VerseGroupSize)

	router := http.NewRouter(&http.Deps{
		DB:         db,
		Dispatcher: dispatcher,
		Chunks:     chunkRepo,
		Resources:  resourceRepo,
	})

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
