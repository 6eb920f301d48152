package handlers

import (
	"net/http"
	"time"

	"translation-helps/internal/contextutil"
	"translation-helps/internal/storage"
)

// ResourcesHandler lists the ingested resource catalog.
type ResourcesHandler struct {
	resources storage.ResourceStore
}

// NewResourcesHandler creates a new ResourcesHandler.
func NewResourcesHandler(resources storage.ResourceStore) *ResourcesHandler {
	return &ResourcesHandler{resources: resources}
}

// ResourceEntry is one catalog row.
type ResourceEntry struct {
	Language     string `json:"language"`
	Organization string `json:"organization"`
	Resource     string `json:"resource"`
	Version      string `json:"version"`
	ChunkCount   int    `json:"chunk_count"`
	IndexedAt    string `json:"indexed_at"`
}

// ResourcesResponse wraps the catalog listing.
type ResourcesResponse struct {
	Resources []ResourceEntry `json:"resources"`
}

// ServeHTTP handles GET /api/resources.
func (h *ResourcesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	records, err := h.resources.List(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list resources", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list resources")
		return
	}

	entries := make([]ResourceEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, ResourceEntry{
			Language:     rec.Language,
			Organization: rec.Organization,
			Resource:     rec.Resource,
			Version:      rec.Version,
			ChunkCount:   rec.ChunkCount,
			IndexedAt:    rec.IndexedAt.UTC().Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, ResourcesResponse{Resources: entries})
}
