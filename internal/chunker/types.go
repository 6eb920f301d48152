// Package chunker turns extracted resource archives into uniform streams of
// addressable, metadata-rich index chunks. Each resource family (scripture,
// translation notes, translation words, translation academy) has its own
// chunker behind a shared interface; a dispatcher selects one by resource
// tag. Chunkers are pure: no I/O, no shared state, safe to run concurrently
// for different archives.
package chunker

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Level is the granularity of an emitted chunk. It always matches what the
// chunk actually contains.
type Level string

const (
	LevelVerse   Level = "verse"
	LevelPassage Level = "passage"
	LevelChapter Level = "chapter"
	LevelBook    Level = "book"
	LevelNote    Level = "note"
	LevelArticle Level = "article"
	LevelSection Level = "section"
)

// ResourceKey identifies one resource release: a (language, organization,
// resource, version) tuple. All chunk paths derive deterministically from
// it plus a locator, which makes re-processing idempotent.
type ResourceKey struct {
	Language     string
	Organization string
	Resource     string
	Version      string
}

// Base is the common path prefix shared by every chunk of this resource.
func (k ResourceKey) Base() string {
	return fmt.Sprintf("%s/%s/%s/%s", k.Language, k.Organization, k.Resource, k.Version)
}

// Metadata is the envelope attached to every chunk: shared fields are
// always set, variant fields are populated per chunk level.
type Metadata struct {
	Language     string    `json:"language"`
	LanguageName string    `json:"language_name"`
	Organization string    `json:"organization"`
	Resource     string    `json:"resource"`
	ResourceName string    `json:"resource_name"`
	Version      string    `json:"version"`
	ChunkLevel   Level     `json:"chunk_level"`
	IndexedAt    time.Time `json:"indexed_at"`

	// scripture
	Book          string   `json:"book,omitempty"`
	BookName      string   `json:"book_name,omitempty"`
	Chapter       int      `json:"chapter,omitempty"`
	Verse         string   `json:"verse,omitempty"`
	ContextBefore string   `json:"context_before,omitempty"`
	ContextAfter  string   `json:"context_after,omitempty"`
	SectionTitles []string `json:"section_titles,omitempty"`

	// notes
	NoteID           string `json:"note_id,omitempty"`
	SupportReference string `json:"support_reference,omitempty"`

	// words and academy articles
	ArticleID       string   `json:"article_id,omitempty"`
	Category        string   `json:"category,omitempty"`
	Related         []string `json:"related,omitempty"`
	BibleReferences []string `json:"bible_references,omitempty"`
	SectionCount    int      `json:"section_count,omitempty"`
	Summary         string   `json:"summary,omitempty"`
}

// IndexChunk is the sole output type of the pipeline. Path is the chunk's
// global identity: deterministic for a given key and locator, and usable as
// the storage key by any downstream store.
type IndexChunk struct {
	Path     string   `json:"path"`
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata"`
}

// RunStats carries per-run counters so silent data loss stays observable
// without being mistaken for a crash. A run that emits zero chunks is a
// valid result.
type RunStats struct {
	RunID            string `json:"run_id"`
	FilesScanned     int    `json:"files_scanned"`
	FilesSkipped     int    `json:"files_skipped"`
	RowsSkipped      int    `json:"rows_skipped"`
	ChunksEmitted    int    `json:"chunks_emitted"`
	ChunksSuppressed int    `json:"chunks_suppressed"`
}

func newRunStats() *RunStats {
	return &RunStats{RunID: uuid.New().String()}
}

// Chunker is the uniform signature every resource chunker implements:
// archive bytes in, chunk list out, no side effects beyond diagnostics.
// indexedAt is injected by the caller so identical input produces identical
// output modulo that timestamp.
type Chunker interface {
	Process(zipData []byte, key ResourceKey, indexedAt time.Time) ([]IndexChunk, *RunStats, error)
}

// metadata seeds the shared envelope fields for one chunk.
func (k ResourceKey) metadata(level Level, indexedAt time.Time) Metadata {
	return Metadata{
		Language:     k.Language,
		LanguageName: languageName(k.Language),
		Organization: k.Organization,
		Resource:     k.Resource,
		ResourceName: resourceName(k.Resource),
		Version:      k.Version,
		ChunkLevel:   level,
		IndexedAt:    indexedAt,
	}
}
