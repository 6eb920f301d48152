package chunker

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"translation-helps/internal/books"
	"translation-helps/internal/extract"
	"translation-helps/internal/usfm"
)

// Scripture chunk modes.
const (
	ScriptureModeGranular = "granular" // verse + passage + chapter chunks
	ScriptureModeBook     = "book"     // one chunk per whole book
)

const chapterSummaryLen = 150

// ScriptureChunker turns USFM archives into scripture chunks. In granular
// mode each book emits three independent granularities (verse, passage,
// chapter); in book mode it emits a single whole-book chunk with
// chapter:verse inline, suited to large-context retrieval.
type ScriptureChunker struct {
	Mode         string
	GroupSize    int // fallback verses per passage when a book has no \s headings
	ContextChars int // neighboring-verse context attached to verse chunks
}

// NewScriptureChunker applies the default policy knobs.
func NewScriptureChunker() *ScriptureChunker {
	return &ScriptureChunker{
		Mode:         ScriptureModeGranular,
		GroupSize:    usfm.DefaultVerseGroupSize,
		ContextChars: 100,
	}
}

// Process implements Chunker.
func (c *ScriptureChunker) Process(zipData []byte, key ResourceKey, indexedAt time.Time) ([]IndexChunk, *RunStats, error) {
	files, err := extract.Extract(zipData)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to extract scripture archive: %w", err)
	}

	stats := newRunStats()
	var chunks []IndexChunk

	for _, f := range files {
		if !isUSFMFile(f.Path) {
			continue
		}
		stats.FilesScanned++

		book, ok := books.FromUSFMPath(f.Path)
		if !ok {
			stats.FilesSkipped++
			slog.Warn("skipping unrecognized scripture file", "path", f.Path, "run_id", stats.RunID)
			continue
		}

		verses := usfm.ParseVerses(f.Content)
		if len(verses) == 0 {
			stats.FilesSkipped++
			slog.Warn("no verses parsed from scripture file", "path", f.Path, "book", book.Code, "run_id", stats.RunID)
			continue
		}

		if c.Mode == ScriptureModeBook {
			chunks = c.appendBook(chunks, stats, key, book, verses, indexedAt)
			continue
		}

		sections := usfm.ParseSections(f.Content, verses, c.GroupSize)
		chunks = c.appendVerses(chunks, stats, key, book, verses, indexedAt)
		chunks = c.appendPassages(chunks, stats, key, book, sections, indexedAt)
		chunks = c.appendChapters(chunks, stats, key, book, verses, sections, indexedAt)
	}

	stats.ChunksEmitted = len(chunks)
	return chunks, stats, nil
}

func isUSFMFile(p string) bool {
	lower := strings.ToLower(p)
	return strings.HasSuffix(lower, ".usfm") || strings.HasSuffix(lower, ".sfm")
}

func (c *ScriptureChunker) appendVerses(chunks []IndexChunk, stats *RunStats, key ResourceKey, book books.Book, verses []usfm.Verse, indexedAt time.Time) []IndexChunk {
	for i, v := range verses {
		if strings.TrimSpace(v.Text) == "" {
			stats.ChunksSuppressed++
			continue
		}

		meta := key.metadata(LevelVerse, indexedAt)
		meta.Book = book.Code
		meta.BookName = book.Name
		meta.Chapter = v.Chapter
		meta.Verse = v.Verse
		if i > 0 {
			meta.ContextBefore = tail(verses[i-1].Text, c.ContextChars)
		}
		if i+1 < len(verses) {
			meta.ContextAfter = head(verses[i+1].Text, c.ContextChars)
		}

		chunks = append(chunks, IndexChunk{
			Path:     fmt.Sprintf("%s/%s/%d/%s", key.Base(), book.Code, v.Chapter, v.Verse),
			Content:  v.Text,
			Metadata: meta,
		})
	}
	return chunks
}

func (c *ScriptureChunker) appendPassages(chunks []IndexChunk, stats *RunStats, key ResourceKey, book books.Book, sections []usfm.Section, indexedAt time.Time) []IndexChunk {
	for _, s := range sections {
		content := s.Text
		if s.Title != "" {
			content = s.Title + "\n\n" + content
		}
		if strings.TrimSpace(s.Text) == "" {
			stats.ChunksSuppressed++
			continue
		}

		meta := key.metadata(LevelPassage, indexedAt)
		meta.Book = book.Code
		meta.BookName = book.Name
		if s.Title != "" {
			meta.SectionTitles = []string{s.Title}
		}

		// Single-chapter ranges keep the chapter directory; cross-chapter
		// ranges encode both endpoints in the filename.
		var path string
		if s.StartChapter == s.EndChapter {
			meta.Chapter = s.StartChapter
			meta.Verse = s.StartVerse + "-" + s.EndVerse
			path = fmt.Sprintf("%s/%s/%d/%s-%s", key.Base(), book.Code, s.StartChapter, s.StartVerse, s.EndVerse)
		} else {
			meta.Verse = fmt.Sprintf("%d:%s-%d:%s", s.StartChapter, s.StartVerse, s.EndChapter, s.EndVerse)
			path = fmt.Sprintf("%s/%s/%d_%s-%d_%s", key.Base(), book.Code, s.StartChapter, s.StartVerse, s.EndChapter, s.EndVerse)
		}

		chunks = append(chunks, IndexChunk{Path: path, Content: content, Metadata: meta})
	}
	return chunks
}

func (c *ScriptureChunker) appendChapters(chunks []IndexChunk, stats *RunStats, key ResourceKey, book books.Book, verses []usfm.Verse, sections []usfm.Section, indexedAt time.Time) []IndexChunk {
	type chapterBody struct {
		number int
		lines  []string
	}

	var chapters []chapterBody
	byNumber := make(map[int]int)
	for _, v := range verses {
		if strings.TrimSpace(v.Text) == "" {
			continue
		}
		idx, ok := byNumber[v.Chapter]
		if !ok {
			idx = len(chapters)
			byNumber[v.Chapter] = idx
			chapters = append(chapters, chapterBody{number: v.Chapter})
		}
		chapters[idx].lines = append(chapters[idx].lines, fmt.Sprintf("%s. %s", v.Verse, v.Text))
	}

	for _, ch := range chapters {
		content := strings.Join(ch.lines, "\n")
		if content == "" {
			stats.ChunksSuppressed++
			continue
		}

		meta := key.metadata(LevelChapter, indexedAt)
		meta.Book = book.Code
		meta.BookName = book.Name
		meta.Chapter = ch.number
		meta.SectionTitles = chapterTitles(sections, ch.number)
		meta.Summary = head(content, chapterSummaryLen)

		chunks = append(chunks, IndexChunk{
			Path:     fmt.Sprintf("%s/%s/%d", key.Base(), book.Code, ch.number),
			Content:  content,
			Metadata: meta,
		})
	}
	return chunks
}

func (c *ScriptureChunker) appendBook(chunks []IndexChunk, stats *RunStats, key ResourceKey, book books.Book, verses []usfm.Verse, indexedAt time.Time) []IndexChunk {
	lines := make([]string, 0, len(verses))
	for _, v := range verses {
		if strings.TrimSpace(v.Text) == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%d:%s %s", v.Chapter, v.Verse, v.Text))
	}

	content := strings.Join(lines, "\n")
	if content == "" {
		stats.ChunksSuppressed++
		return chunks
	}

	meta := key.metadata(LevelBook, indexedAt)
	meta.Book = book.Code
	meta.BookName = book.Name

	return append(chunks, IndexChunk{
		Path:     fmt.Sprintf("%s/%s", key.Base(), book.Code),
		Content:  content,
		Metadata: meta,
	})
}

// chapterTitles collects the headings of sections that start in a chapter.
func chapterTitles(sections []usfm.Section, chapter int) []string {
	var titles []string
	for _, s := range sections {
		if s.StartChapter == chapter && s.Title != "" {
			titles = append(titles, s.Title)
		}
	}
	return titles
}

func head(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n]))
}

func tail(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[len(runes)-n:]))
}
