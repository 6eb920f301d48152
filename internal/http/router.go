package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"translation-helps/internal/chunker"
	"translation-helps/internal/handlers"
	"translation-helps/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	DB         *sql.DB
	Dispatcher *chunker.Dispatcher
	Chunks     storage.ChunkStore
	Resources  storage.ResourceStore
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)
	r.Use(LoggerMiddleware)

	ingestHandler := handlers.NewIngestHandler(deps.Dispatcher, deps.Chunks, deps.Resources)
	chunksHandler := handlers.NewChunksHandler(deps.Chunks)
	resourcesHandler := handlers.NewResourcesHandler(deps.Resources)
	healthHandler := handlers.NewHealthHandler(deps.DB)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/resources/{language}/{organization}/{resource}/{version}", ingestHandler)
		r.Method(http.MethodGet, "/resources", resourcesHandler)
		r.Method(http.MethodGet, "/chunks", chunksHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
