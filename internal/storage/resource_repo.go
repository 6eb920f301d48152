package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_resource_store.go -package=mocks translation-helps/internal/storage ResourceStore

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ResourceStore defines the interface for resource catalog operations.
type ResourceStore interface {
	// Upsert inserts a new catalog entry or replaces the existing one for
	// the same resource release.
	Upsert(ctx context.Context, record *ResourceRecord) error
	// List returns all catalog entries ordered by language, organization,
	// resource, version.
	List(ctx context.Context) ([]ResourceRecord, error)
}

// ResourceRepo provides methods for resource catalog operations.
// It implements the ResourceStore interface.
type ResourceRepo struct {
	db *sql.DB
}

// NewResourceRepo creates a new ResourceRepo.
func NewResourceRepo(db *sql.DB) *ResourceRepo {
	return &ResourceRepo{db: db}
}

// Upsert inserts a new catalog entry or replaces the existing one.
func (r *ResourceRepo) Upsert(ctx context.Context, record *ResourceRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO resources (language, organization, resource, version, run_id, chunk_count, indexed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(language, organization, resource, version) DO UPDATE SET
			run_id = excluded.run_id,
			chunk_count = excluded.chunk_count,
			indexed_at = excluded.indexed_at`,
		record.Language, record.Organization, record.Resource, record.Version,
		record.RunID, record.ChunkCount, record.IndexedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert resource: %w", err)
	}
	return nil
}

// List returns all catalog entries.
func (r *ResourceRepo) List(ctx context.Context) ([]ResourceRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT language, organization, resource, version, run_id, chunk_count, indexed_at
		 FROM resources ORDER BY language, organization, resource, version`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query resources: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []ResourceRecord
	for rows.Next() {
		var rec ResourceRecord
		var indexedAtStr string
		if err := rows.Scan(&rec.Language, &rec.Organization, &rec.Resource, &rec.Version,
			&rec.RunID, &rec.ChunkCount, &indexedAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan resource: %w", err)
		}
		rec.IndexedAt, err = time.Parse(time.RFC3339, indexedAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse indexed_at: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}
