package storage

import "time"

// ChunkRecord is one persisted index chunk. Path is canonical identity:
// re-ingesting a resource replaces records at the same paths.
type ChunkRecord struct {
	Path         string
	Language     string
	Organization string
	Resource     string
	Version      string
	Content      string
	Metadata     string // metadata envelope serialized as JSON
	RunID        string
}

// ResourceRecord is one catalog entry describing the latest ingest of a
// (language, organization, resource, version) tuple.
type ResourceRecord struct {
	Language     string
	Organization string
	Resource     string
	Version      string
	RunID        string
	ChunkCount   int
	IndexedAt    time.Time
}
