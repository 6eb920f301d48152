package chunker

import (
	"archive/zip"
	"bytes"
	"testing"
	"time"
)

var testIndexedAt = time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)

// buildZip assembles an in-memory archive from path/content pairs.
func buildZip(t *testing.T, entries map[string]string, order []string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, path := range order {
		f, err := w.Create(path)
		if err != nil {
			t.Fatalf("failed to create zip entry %s: %v", path, err)
		}
		if _, err := f.Write([]byte(entries[path])); err != nil {
			t.Fatalf("failed to write zip entry %s: %v", path, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close zip writer: %v", err)
	}
	return buf.Bytes()
}

func chunkByPath(chunks []IndexChunk, path string) (IndexChunk, bool) {
	for _, c := range chunks {
		if c.Path == path {
			return c, true
		}
	}
	return IndexChunk{}, false
}
