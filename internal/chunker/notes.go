package chunker

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"translation-helps/internal/books"
	"translation-helps/internal/extract"
	"translation-helps/internal/tsvnotes"
)

// NotesChunker turns translation-notes TSV archives into one chunk per
// decoded row. The path keys on (book, chapter, verse, noteID), which keeps
// multiple notes on one verse distinct.
type NotesChunker struct{}

// NewNotesChunker creates a notes chunker.
func NewNotesChunker() *NotesChunker {
	return &NotesChunker{}
}

// Process implements Chunker.
func (c *NotesChunker) Process(zipData []byte, key ResourceKey, indexedAt time.Time) ([]IndexChunk, *RunStats, error) {
	files, err := extract.Extract(zipData)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to extract notes archive: %w", err)
	}

	stats := newRunStats()
	var chunks []IndexChunk

	for _, f := range extract.FilterExt(files, ".tsv") {
		stats.FilesScanned++

		book, ok := books.FromNotesPath(f.Path)
		if !ok {
			stats.FilesSkipped++
			slog.Warn("skipping notes file with unresolvable book", "path", f.Path, "run_id", stats.RunID)
			continue
		}

		notes, dropped := tsvnotes.Parse(f.Content, book.Code)
		stats.RowsSkipped += dropped

		for _, n := range notes {
			content := noteContent(n)
			if content == "" {
				stats.ChunksSuppressed++
				continue
			}

			meta := key.metadata(LevelNote, indexedAt)
			meta.Book = book.Code
			meta.BookName = book.Name
			meta.Chapter = n.Chapter
			meta.Verse = fmt.Sprintf("%d", n.Verse)
			meta.NoteID = n.ID
			meta.SupportReference = n.SupportReference

			chunks = append(chunks, IndexChunk{
				Path:     fmt.Sprintf("%s/%s/%d/%d/%s", key.Base(), book.Code, n.Chapter, n.Verse, n.ID),
				Content:  content,
				Metadata: meta,
			})
		}
	}

	stats.ChunksEmitted = len(chunks)
	return chunks, stats, nil
}

// noteContent joins the quoted source phrase and the note body.
func noteContent(n tsvnotes.Note) string {
	parts := make([]string, 0, 2)
	if n.Quote != "" {
		parts = append(parts, n.Quote)
	}
	if n.Note != "" {
		parts = append(parts, n.Note)
	}
	return strings.TrimSpace(strings.Join(parts, "\n\n"))
}
