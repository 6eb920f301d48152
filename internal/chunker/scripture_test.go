package chunker

import (
	"reflect"
	"strings"
	"testing"
)

const johnUSFM = `\id JHN unfoldingWord Literal Text
\h John
\c 3
\v 16 For God so loved the world
\v 17 For God did not send the Son to condemn
\c 4
\v 1 Now when Jesus knew
`

var scriptureKey = ResourceKey{Language: "en", Organization: "unfoldingword", Resource: "ult", Version: "v85"}

func TestScriptureChunker_Granular(t *testing.T) {
	zipData := buildZip(t, map[string]string{
		"en_ult/44-JHN.usfm":   johnUSFM,
		"en_ult/manifest.yaml": "dublin_core:\n",
	}, []string{"en_ult/44-JHN.usfm", "en_ult/manifest.yaml"})

	c := NewScriptureChunker()
	chunks, stats, err := c.Process(zipData, scriptureKey, testIndexedAt)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	// 3 verses + 1 passage (fallback group spans the chapter break) + 2 chapters
	if len(chunks) != 6 {
		t.Fatalf("Process() emitted %d chunks, want 6: %v", len(chunks), chunkPaths(chunks))
	}
	if stats.FilesScanned != 1 || stats.FilesSkipped != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.ChunksEmitted != 6 {
		t.Errorf("stats.ChunksEmitted = %d, want 6", stats.ChunksEmitted)
	}

	verse, ok := chunkByPath(chunks, "en/unfoldingword/ult/v85/JHN/3/16")
	if !ok {
		t.Fatalf("verse chunk missing, paths = %v", chunkPaths(chunks))
	}
	if verse.Content != "For God so loved the world" {
		t.Errorf("verse content = %q", verse.Content)
	}
	if verse.Metadata.ChunkLevel != LevelVerse {
		t.Errorf("verse level = %s", verse.Metadata.ChunkLevel)
	}
	if verse.Metadata.Book != "JHN" || verse.Metadata.BookName != "John" {
		t.Errorf("verse book metadata = %s/%s", verse.Metadata.Book, verse.Metadata.BookName)
	}
	if verse.Metadata.Chapter != 3 || verse.Metadata.Verse != "16" {
		t.Errorf("verse reference = %d:%s", verse.Metadata.Chapter, verse.Metadata.Verse)
	}
	if verse.Metadata.ResourceName != "unfoldingWord Literal Text" {
		t.Errorf("resource name = %q", verse.Metadata.ResourceName)
	}
	if verse.Metadata.IndexedAt != testIndexedAt {
		t.Errorf("indexed_at = %v, want %v", verse.Metadata.IndexedAt, testIndexedAt)
	}

	// First verse has no preceding context, middle verse has both sides.
	if verse.Metadata.ContextBefore != "" {
		t.Errorf("first verse ContextBefore = %q, want empty", verse.Metadata.ContextBefore)
	}
	middle, _ := chunkByPath(chunks, "en/unfoldingword/ult/v85/JHN/3/17")
	if middle.Metadata.ContextBefore == "" || middle.Metadata.ContextAfter == "" {
		t.Errorf("middle verse context = %q / %q", middle.Metadata.ContextBefore, middle.Metadata.ContextAfter)
	}

	// Cross-chapter passage encodes both endpoints in the filename.
	passage, ok := chunkByPath(chunks, "en/unfoldingword/ult/v85/JHN/3_16-4_1")
	if !ok {
		t.Fatalf("passage chunk missing, paths = %v", chunkPaths(chunks))
	}
	if passage.Metadata.ChunkLevel != LevelPassage {
		t.Errorf("passage level = %s", passage.Metadata.ChunkLevel)
	}
	if passage.Metadata.Verse != "3:16-4:1" {
		t.Errorf("passage verse range = %q", passage.Metadata.Verse)
	}

	chapter, ok := chunkByPath(chunks, "en/unfoldingword/ult/v85/JHN/3")
	if !ok {
		t.Fatalf("chapter chunk missing, paths = %v", chunkPaths(chunks))
	}
	if !strings.Contains(chapter.Content, "16. For God so loved the world") {
		t.Errorf("chapter content = %q", chapter.Content)
	}
	if chapter.Metadata.Summary == "" {
		t.Error("chapter summary empty")
	}
}

func TestScriptureChunker_SectionPassages(t *testing.T) {
	raw := `\c 3
\s God Loves the World
\v 16 For God so loved the world
\v 17 For God did not send the Son
`
	zipData := buildZip(t, map[string]string{"44-JHN.usfm": raw}, []string{"44-JHN.usfm"})

	c := NewScriptureChunker()
	chunks, _, err := c.Process(zipData, scriptureKey, testIndexedAt)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	passage, ok := chunkByPath(chunks, "en/unfoldingword/ult/v85/JHN/3/16-17")
	if !ok {
		t.Fatalf("section passage missing, paths = %v", chunkPaths(chunks))
	}
	if !strings.HasPrefix(passage.Content, "God Loves the World\n\n") {
		t.Errorf("passage content missing heading: %q", passage.Content)
	}
	if len(passage.Metadata.SectionTitles) != 1 || passage.Metadata.SectionTitles[0] != "God Loves the World" {
		t.Errorf("passage section titles = %v", passage.Metadata.SectionTitles)
	}

	chapter, _ := chunkByPath(chunks, "en/unfoldingword/ult/v85/JHN/3")
	if len(chapter.Metadata.SectionTitles) != 1 {
		t.Errorf("chapter section titles = %v", chapter.Metadata.SectionTitles)
	}
}

func TestScriptureChunker_BookMode(t *testing.T) {
	zipData := buildZip(t, map[string]string{"44-JHN.usfm": johnUSFM}, []string{"44-JHN.usfm"})

	c := NewScriptureChunker()
	c.Mode = ScriptureModeBook
	chunks, _, err := c.Process(zipData, scriptureKey, testIndexedAt)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if len(chunks) != 1 {
		t.Fatalf("Process() emitted %d chunks, want 1", len(chunks))
	}
	book := chunks[0]
	if book.Path != "en/unfoldingword/ult/v85/JHN" {
		t.Errorf("book path = %q", book.Path)
	}
	if book.Metadata.ChunkLevel != LevelBook {
		t.Errorf("book level = %s", book.Metadata.ChunkLevel)
	}
	if !strings.Contains(book.Content, "3:16 For God so loved the world") {
		t.Errorf("book content = %q", book.Content)
	}
	if !strings.Contains(book.Content, "4:1 Now when Jesus knew") {
		t.Errorf("book content missing chapter 4: %q", book.Content)
	}
}

func TestScriptureChunker_Idempotent(t *testing.T) {
	zipData := buildZip(t, map[string]string{"44-JHN.usfm": johnUSFM}, []string{"44-JHN.usfm"})
	c := NewScriptureChunker()

	first, _, err := c.Process(zipData, scriptureKey, testIndexedAt)
	if err != nil {
		t.Fatalf("first Process() error = %v", err)
	}
	second, _, err := c.Process(zipData, scriptureKey, testIndexedAt)
	if err != nil {
		t.Fatalf("second Process() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("re-processing identical input produced different chunks")
	}
}

func TestScriptureChunker_SuppressesEmptyVerses(t *testing.T) {
	raw := "\\c 1\n\\v 1\n\\v 2 real text here\n"
	zipData := buildZip(t, map[string]string{"01-GEN.usfm": raw}, []string{"01-GEN.usfm"})

	c := NewScriptureChunker()
	chunks, stats, err := c.Process(zipData, scriptureKey, testIndexedAt)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if _, ok := chunkByPath(chunks, "en/unfoldingword/ult/v85/GEN/1/1"); ok {
		t.Error("empty verse chunk was emitted")
	}
	if _, ok := chunkByPath(chunks, "en/unfoldingword/ult/v85/GEN/1/2"); !ok {
		t.Errorf("real verse chunk missing, paths = %v", chunkPaths(chunks))
	}
	if stats.ChunksSuppressed == 0 {
		t.Error("stats.ChunksSuppressed = 0, want > 0")
	}
}

func TestScriptureChunker_SkipsUnrecognizedFiles(t *testing.T) {
	zipData := buildZip(t, map[string]string{
		"99-ZZZ.usfm": "\\c 1\n\\v 1 text\n",
		"44-JHN.usfm": johnUSFM,
	}, []string{"99-ZZZ.usfm", "44-JHN.usfm"})

	c := NewScriptureChunker()
	chunks, stats, err := c.Process(zipData, scriptureKey, testIndexedAt)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if stats.FilesScanned != 2 || stats.FilesSkipped != 1 {
		t.Errorf("stats = %+v, want 2 scanned / 1 skipped", stats)
	}
	for _, c := range chunks {
		if strings.Contains(c.Path, "ZZZ") {
			t.Errorf("unrecognized book leaked into chunks: %s", c.Path)
		}
	}
}

func TestScriptureChunker_EmptyArchive(t *testing.T) {
	zipData := buildZip(t, nil, nil)

	c := NewScriptureChunker()
	chunks, stats, err := c.Process(zipData, scriptureKey, testIndexedAt)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(chunks) != 0 || stats.ChunksEmitted != 0 {
		t.Errorf("empty archive emitted %d chunks", len(chunks))
	}
	if stats.RunID == "" {
		t.Error("stats.RunID empty")
	}
}

func chunkPaths(chunks []IndexChunk) []string {
	paths := make([]string, len(chunks))
	for i, c := range chunks {
		paths[i] = c.Path
	}
	return paths
}
