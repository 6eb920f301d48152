package chunker

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"translation-helps/internal/extract"
	"translation-helps/internal/markdown"
)

// Translation Words categories, inferred from folder convention rather
// than content analysis.
const (
	CategoryKeyTerms = "kt"
	CategoryNames    = "names"
	CategoryOther    = "other"
)

// WordsChunker rolls Translation Words term files up into one chunk per
// term article.
type WordsChunker struct{}

// NewWordsChunker creates a words chunker.
func NewWordsChunker() *WordsChunker {
	return &WordsChunker{}
}

// Process implements Chunker.
func (c *WordsChunker) Process(zipData []byte, key ResourceKey, indexedAt time.Time) ([]IndexChunk, *RunStats, error) {
	files, err := extract.Extract(zipData)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to extract words archive: %w", err)
	}

	stats := newRunStats()
	groups := markdown.Group(files)

	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var chunks []IndexChunk
	for _, id := range ids {
		group := groups[id]
		stats.FilesScanned += len(group)

		article, ok := markdown.RollUp(id, group)
		if !ok {
			stats.ChunksSuppressed++
			continue
		}

		category := wordCategory(group[0].Path)

		meta := key.metadata(LevelArticle, indexedAt)
		meta.ArticleID = article.ID
		meta.Category = category
		meta.Related = markdown.ListSection(article.Content, "See also")
		meta.BibleReferences = markdown.ListSection(article.Content, "Bible References")

		chunks = append(chunks, IndexChunk{
			Path:     fmt.Sprintf("%s/%s/%s", key.Base(), category, article.ID),
			Content:  article.Content,
			Metadata: meta,
		})
	}

	stats.ChunksEmitted = len(chunks)
	return chunks, stats, nil
}

// wordCategory classifies a term by its folder. Pure path convention.
func wordCategory(p string) string {
	switch {
	case strings.Contains(p, "/kt/"):
		return CategoryKeyTerms
	case strings.Contains(p, "/names/"):
		return CategoryNames
	default:
		return CategoryOther
	}
}
