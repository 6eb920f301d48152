package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"translation-helps/internal/contextutil"
	"translation-helps/internal/storage"
)

// ChunksHandler serves single chunks by their canonical path.
type ChunksHandler struct {
	chunks storage.ChunkStore
}

// NewChunksHandler creates a new ChunksHandler.
func NewChunksHandler(chunks storage.ChunkStore) *ChunksHandler {
	return &ChunksHandler{chunks: chunks}
}

// ChunkResponse is one stored chunk with its metadata envelope.
type ChunkResponse struct {
	Path     string          `json:"path"`
	Content  string          `json:"content"`
	Metadata json.RawMessage `json:"metadata"`
}

// ServeHTTP handles GET /api/chunks?path=...
func (h *ChunksHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, "path query parameter is required")
		return
	}

	record, err := h.chunks.GetByPath(ctx, path)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "chunk not found")
		return
	}
	if err != nil {
		logger.ErrorContext(ctx, "failed to load chunk", "path", path, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load chunk")
		return
	}

	writeJSON(w, http.StatusOK, ChunkResponse{
		Path:     record.Path,
		Content:  record.Content,
		Metadata: json.RawMessage(record.Metadata),
	})
}
