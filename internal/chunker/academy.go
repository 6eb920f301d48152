package chunker

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"translation-helps/internal/extract"
	"translation-helps/internal/markdown"
)

// Academy chunk modes.
const (
	AcademyModeArticle  = "article"  // one chunk per rolled-up article
	AcademyModeSections = "sections" // one chunk per H2 section plus a _full article chunk
)

// AcademyChunker rolls Translation Academy module files up into article
// chunks, optionally splitting H2 sections into their own chunks.
type AcademyChunker struct {
	Mode string
}

// NewAcademyChunker applies the default article-only policy.
func NewAcademyChunker() *AcademyChunker {
	return &AcademyChunker{Mode: AcademyModeArticle}
}

// Process implements Chunker.
func (c *AcademyChunker) Process(zipData []byte, key ResourceKey, indexedAt time.Time) ([]IndexChunk, *RunStats, error) {
	files, err := extract.Extract(zipData)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to extract academy archive: %w", err)
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

		sections := markdown.Sections(article.Content)
		summary := markdown.Summarize(article.Content)

		meta := key.metadata(LevelArticle, indexedAt)
		meta.ArticleID = article.ID
		meta.SectionCount = len(sections)
		meta.Summary = summary

		if c.Mode != AcademyModeSections {
			chunks = append(chunks, IndexChunk{
				Path:     fmt.Sprintf("%s/%s", key.Base(), article.ID),
				Content:  article.Content,
				Metadata: meta,
			})
			continue
		}

		for _, sec := range sections {
			content := strings.TrimSpace(sec.Title + "\n\n" + sec.Body)
			if content == "" {
				stats.ChunksSuppressed++
				continue
			}

			secMeta := key.metadata(LevelSection, indexedAt)
			secMeta.ArticleID = article.ID
			secMeta.SectionTitles = []string{sec.Title}

			chunks = append(chunks, IndexChunk{
				Path:     fmt.Sprintf("%s/%s/%s", key.Base(), article.ID, sectionSlug(sec.Title)),
				Content:  content,
				Metadata: secMeta,
			})
		}

		chunks = append(chunks, IndexChunk{
			Path:     fmt.Sprintf("%s/%s_full", key.Base(), article.ID),
			Content:  article.Content,
			Metadata: meta,
		})
	}

	stats.ChunksEmitted = len(chunks)
	return chunks, stats, nil
}

var slugStripRe = regexp.MustCompile(`[^a-z0-9-]+`)

// sectionSlug turns a heading into a stable path segment.
func sectionSlug(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = slugStripRe.ReplaceAllString(slug, "")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "section"
	}
	return slug
}
