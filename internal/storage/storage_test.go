package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

// testDB opens a throwaway database file. A shared on-disk file rather
// than :memory: because the pool hands out multiple connections and each
// in-memory connection would see its own empty database.
func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func testChunk(path string) *ChunkRecord {
	return &ChunkRecord{
		Path:         path,
		Language:     "en",
		Organization: "unfoldingword",
		Resource:     "ult",
		Version:      "v85",
		Content:      "For God so loved the world",
		Metadata:     `{"chunk_level":"verse"}`,
		RunID:        "run-1",
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := testDB(t)
	if err := Migrate(db); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}
}

func TestChunkRepo_InsertAndGet(t *testing.T) {
	repo := NewChunkRepo(testDB(t))
	ctx := context.Background()

	chunk := testChunk("en/unfoldingword/ult/v85/JHN/3/16")
	if err := repo.Insert(ctx, chunk); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	got, err := repo.GetByPath(ctx, chunk.Path)
	if err != nil {
		t.Fatalf("GetByPath() error = %v", err)
	}
	if got.Content != chunk.Content {
		t.Errorf("content = %q, want %q", got.Content, chunk.Content)
	}
	if got.Metadata != chunk.Metadata {
		t.Errorf("metadata = %q, want %q", got.Metadata, chunk.Metadata)
	}
	if got.RunID != "run-1" {
		t.Errorf("run_id = %q", got.RunID)
	}
}

func TestChunkRepo_InsertReplacesSamePath(t *testing.T) {
	repo := NewChunkRepo(testDB(t))
	ctx := context.Background()

	chunk := testChunk("en/unfoldingword/ult/v85/JHN/3/16")
	if err := repo.Insert(ctx, chunk); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	updated := testChunk(chunk.Path)
	updated.Content = "updated text"
	updated.RunID = "run-2"
	if err := repo.Insert(ctx, updated); err != nil {
		t.Fatalf("second Insert() error = %v", err)
	}

	got, err := repo.GetByPath(ctx, chunk.Path)
	if err != nil {
		t.Fatalf("GetByPath() error = %v", err)
	}
	if got.Content != "updated text" || got.RunID != "run-2" {
		t.Errorf("replacement not applied: %+v", got)
	}

	count, err := repo.CountByResource(ctx, "en", "unfoldingword", "ult", "v85")
	if err != nil {
		t.Fatalf("CountByResource() error = %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestChunkRepo_GetByPath_NotFound(t *testing.T) {
	repo := NewChunkRepo(testDB(t))

	_, err := repo.GetByPath(context.Background(), "en/missing/path")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByPath() error = %v, want ErrNotFound", err)
	}
}

func TestChunkRepo_DeleteByResource(t *testing.T) {
	repo := NewChunkRepo(testDB(t))
	ctx := context.Background()

	for _, path := range []string{
		"en/unfoldingword/ult/v85/JHN/3/16",
		"en/unfoldingword/ult/v85/JHN/3/17",
	} {
		if err := repo.Insert(ctx, testChunk(path)); err != nil {
			t.Fatalf("Insert(%s) error = %v", path, err)
		}
	}
	other := testChunk("en/unfoldingword/ult/v86/JHN/3/16")
	other.Version = "v86"
	if err := repo.Insert(ctx, other); err != nil {
		t.Fatalf("Insert(other) error = %v", err)
	}

	if err := repo.DeleteByResource(ctx, "en", "unfoldingword", "ult", "v85"); err != nil {
		t.Fatalf("DeleteByResource() error = %v", err)
	}

	count, err := repo.CountByResource(ctx, "en", "unfoldingword", "ult", "v85")
	if err != nil {
		t.Fatalf("CountByResource() error = %v", err)
	}
	if count != 0 {
		t.Errorf("v85 count after delete = %d, want 0", count)
	}

	// The other release is untouched.
	count, err = repo.CountByResource(ctx, "en", "unfoldingword", "ult", "v86")
	if err != nil {
		t.Fatalf("CountByResource(v86) error = %v", err)
	}
	if count != 1 {
		t.Errorf("v86 count = %d, want 1", count)
	}
}

func TestResourceRepo_UpsertAndList(t *testing.T) {
	repo := NewResourceRepo(testDB(t))
	ctx := context.Background()

	indexedAt := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	rec := &ResourceRecord{
		Language:     "en",
		Organization: "unfoldingword",
		Resource:     "ult",
		Version:      "v85",
		RunID:        "run-1",
		ChunkCount:   42,
		IndexedAt:    indexedAt,
	}
	if err := repo.Upsert(ctx, rec); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("List() returned %d records, want 1", len(records))
	}
	got := records[0]
	if got.Resource != "ult" || got.ChunkCount != 42 || got.RunID != "run-1" {
		t.Errorf("record = %+v", got)
	}
	if !got.IndexedAt.Equal(indexedAt) {
		t.Errorf("indexed_at = %v, want %v", got.IndexedAt, indexedAt)
	}
}

func TestResourceRepo_UpsertReplaces(t *testing.T) {
	repo := NewResourceRepo(testDB(t))
	ctx := context.Background()

	rec := &ResourceRecord{
		Language: "en", Organization: "unfoldingword", Resource: "ult", Version: "v85",
		RunID: "run-1", ChunkCount: 42, IndexedAt: time.Now().UTC(),
	}
	if err := repo.Upsert(ctx, rec); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	rec.RunID = "run-2"
	rec.ChunkCount = 50
	if err := repo.Upsert(ctx, rec); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("List() returned %d records, want 1", len(records))
	}
	if records[0].RunID != "run-2" || records[0].ChunkCount != 50 {
		t.Errorf("record not replaced: %+v", records[0])
	}
}

func TestResourceRepo_ListOrder(t *testing.T) {
	repo := NewResourceRepo(testDB(t))
	ctx := context.Background()

	for _, res := range []string{"tw", "tn", "ult"} {
		rec := &ResourceRecord{
			Language: "en", Organization: "unfoldingword", Resource: res, Version: "v85",
			RunID: "run-1", ChunkCount: 1, IndexedAt: time.Now().UTC(),
		}
		if err := repo.Upsert(ctx, rec); err != nil {
			t.Fatalf("Upsert(%s) error = %v", res, err)
		}
	}

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("List() returned %d records, want 3", len(records))
	}
	want := []string{"tn", "tw", "ult"}
	for i, w := range want {
		if records[i].Resource != w {
			t.Errorf("records[%d].Resource = %s, want %s", i, records[i].Resource, w)
		}
	}
}
