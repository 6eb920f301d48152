package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"translation-helps/internal/chunker"
	"translation-helps/internal/contextutil"
	"translation-helps/internal/storage"
)

// maxArchiveBytes caps uploaded archives. Single-book resources are a few
// megabytes; whole-Bible archives stay well under this.
const maxArchiveBytes = 256 << 20

// IngestHandler accepts a resource ZIP archive, runs the matching chunker,
// and replaces the stored chunks for that resource release.
type IngestHandler struct {
	dispatcher *chunker.Dispatcher
	chunks     storage.ChunkStore
	resources  storage.ResourceStore
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(dispatcher *chunker.Dispatcher, chunks storage.ChunkStore, resources storage.ResourceStore) *IngestHandler {
	return &IngestHandler{
		dispatcher: dispatcher,
		chunks:     chunks,
		resources:  resources,
	}
}

// IngestResponse reports what one ingest run did.
type IngestResponse struct {
	Resource string            `json:"resource"`
	Stats    *chunker.RunStats `json:"stats"`
}

// ServeHTTP handles POST /api/resources/{language}/{organization}/{resource}/{version}.
func (h *IngestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	key := chunker.ResourceKey{
		Language:     chi.URLParam(r, "language"),
		Organization: chi.URLParam(r, "organization"),
		Resource:     chi.URLParam(r, "resource"),
		Version:      chi.URLParam(r, "version"),
	}

	c, ok := h.dispatcher.ForResource(key.Resource)
	if !ok {
		logger.WarnContext(ctx, "unknown resource tag", "resource", key.Resource)
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown resource type: %s", key.Resource))
		return
	}

	zipData, err := io.ReadAll(io.LimitReader(r.Body, maxArchiveBytes+1))
	if err != nil {
		logger.ErrorContext(ctx, "failed to read request body", "error", err)
		writeError(w, http.StatusBadRequest, "failed to read archive body")
		return
	}
	if len(zipData) > maxArchiveBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "archive too large")
		return
	}
	if len(zipData) == 0 {
		writeError(w, http.StatusBadRequest, "empty archive body")
		return
	}

	indexedAt := time.Now().UTC()
	chunks, stats, err := c.Process(zipData, key, indexedAt)
	if err != nil {
		logger.ErrorContext(ctx, "failed to process archive", "resource", key.Resource, "error", err)
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to process archive: %v", err))
		return
	}

	// Replace semantics: chunk paths are canonical identity, so stale
	// paths from a previous ingest of this release must not survive.
	if err := h.chunks.DeleteByResource(ctx, key.Language, key.Organization, key.Resource, key.Version); err != nil {
		logger.ErrorContext(ctx, "failed to clear previous chunks", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to clear previous chunks")
		return
	}

	for i := range chunks {
		record, err := toRecord(&chunks[i], key, stats.RunID)
		if err != nil {
			logger.ErrorContext(ctx, "failed to encode chunk metadata", "path", chunks[i].Path, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to encode chunk metadata")
			return
		}
		if err := h.chunks.Insert(ctx, record); err != nil {
			logger.ErrorContext(ctx, "failed to store chunk", "path", chunks[i].Path, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to store chunks")
			return
		}
	}

	if err := h.resources.Upsert(ctx, &storage.ResourceRecord{
		Language:     key.Language,
		Organization: key.Organization,
		Resource:     key.Resource,
		Version:      key.Version,
		RunID:        stats.RunID,
		ChunkCount:   len(chunks),
		IndexedAt:    indexedAt,
	}); err != nil {
		logger.ErrorContext(ctx, "failed to update resource catalog", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update resource catalog")
		return
	}

	logger.InfoContext(ctx, "ingested resource",
		"language", key.Language, "organization", key.Organization,
		"resource", key.Resource, "version", key.Version,
		"chunks", stats.ChunksEmitted, "files_skipped", stats.FilesSkipped,
		"run_id", stats.RunID)

	writeJSON(w, http.StatusOK, IngestResponse{Resource: key.Base(), Stats: stats})
}

func toRecord(chunk *chunker.IndexChunk, key chunker.ResourceKey, runID string) (*storage.ChunkRecord, error) {
	meta, err := json.Marshal(chunk.Metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return &storage.ChunkRecord{
		Path:         chunk.Path,
		Language:     key.Language,
		Organization: key.Organization,
		Resource:     key.Resource,
		Version:      key.Version,
		Content:      chunk.Content,
		Metadata:     string(meta),
		RunID:        runID,
	}, nil
}
