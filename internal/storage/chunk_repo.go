package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chunk_store.go -package=mocks translation-helps/internal/storage ChunkStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// ChunkStore defines the interface for chunk storage operations.
type ChunkStore interface {
	// Insert inserts a single chunk into the database.
	Insert(ctx context.Context, chunk *ChunkRecord) error
	// DeleteByResource deletes all chunks for a resource release.
	// Used before re-ingesting so stale paths never survive.
	DeleteByResource(ctx context.Context, language, organization, resource, version string) error
	// GetByPath gets a chunk by its path. Returns ErrNotFound if not found.
	GetByPath(ctx context.Context, path string) (*ChunkRecord, error)
	// CountByResource counts the stored chunks for a resource release.
	CountByResource(ctx context.Context, language, organization, resource, version string) (int, error)
}

// ChunkRepo provides methods for chunk operations.
// It implements the ChunkStore interface.
type ChunkRepo struct {
	db *sql.DB
}

// NewChunkRepo creates a new ChunkRepo.
func NewChunkRepo(db *sql.DB) *ChunkRepo {
	return &ChunkRepo{db: db}
}

// Insert inserts a single chunk into the database.
func (r *ChunkRepo) Insert(ctx context.Context, chunk *ChunkRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO chunks (path, language, organization, resource, version, content, metadata, run_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			content = excluded.content,
			metadata = excluded.metadata,
			run_id = excluded.run_id`,
		chunk.Path, chunk.Language, chunk.Organization, chunk.Resource, chunk.Version,
		chunk.Content, chunk.Metadata, chunk.RunID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert chunk: %w", err)
	}
	return nil
}

// DeleteByResource deletes all chunks for a resource release.
func (r *ChunkRepo) DeleteByResource(ctx context.Context, language, organization, resource, version string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM chunks WHERE language = ? AND organization = ? AND resource = ? AND version = ?",
		language, organization, resource, version,
	)
	if err != nil {
		return fmt.Errorf("failed to delete chunks by resource: %w", err)
	}
	return nil
}

// GetByPath gets a chunk by its path. Returns ErrNotFound if not found.
func (r *ChunkRepo) GetByPath(ctx context.Context, path string) (*ChunkRecord, error) {
	var chunk ChunkRecord
	err := r.db.QueryRowContext(ctx,
		`SELECT path, language, organization, resource, version, content, metadata, run_id
		 FROM chunks WHERE path = ?`,
		path,
	).Scan(&chunk.Path, &chunk.Language, &chunk.Organization, &chunk.Resource, &chunk.Version,
		&chunk.Content, &chunk.Metadata, &chunk.RunID)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query chunk: %w", err)
	}

	return &chunk, nil
}

// CountByResource counts the stored chunks for a resource release.
func (r *ChunkRepo) CountByResource(ctx context.Context, language, organization, resource, version string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM chunks WHERE language = ? AND organization = ? AND resource = ? AND version = ?",
		language, organization, resource, version,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	return count, nil
}
