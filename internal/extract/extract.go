package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// RawFile is one text file pulled out of a resource archive.
// Path keeps the archive's internal prefix (e.g. "en_ult/01-GEN.usfm") so
// callers can resolve identity from directory conventions.
type RawFile struct {
	Path    string
	Content string
}

// Extract reads a ZIP archive fully in memory and returns its text entries
// in archive order. Directories and unreadable entries are skipped with a
// diagnostic; an archive with no readable entries yields an empty slice.
func Extract(zipData []byte) ([]RawFile, error) {
	reader, err := zip.NewReader(bytes.NewReader(zipData), int64(len(zipData)))
	if err != nil {
		return nil, fmt.Errorf("failed to open zip archive: %w", err)
	}

	var files []RawFile
	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() {
			continue
		}

		content, err := readEntry(entry)
		if err != nil {
			slog.Warn("skipping unreadable archive entry", "path", entry.Name, "error", err)
			continue
		}

		files = append(files, RawFile{
			Path:    strings.ReplaceAll(entry.Name, "\\", "/"),
			Content: content,
		})
	}

	return files, nil
}

// FilterExt returns the files whose path ends with the given extension,
// case-insensitively. The input order is preserved.
func FilterExt(files []RawFile, ext string) []RawFile {
	var out []RawFile
	for _, f := range files {
		if strings.HasSuffix(strings.ToLower(f.Path), strings.ToLower(ext)) {
			out = append(out, f)
		}
	}
	return out
}

func readEntry(entry *zip.File) (string, error) {
	rc, err := entry.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open entry: %w", err)
	}
	defer func() {
		_ = rc.Close()
	}()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("failed to read entry: %w", err)
	}

	// Normalize BOM and CRLF once here so parsers never see them.
	content := strings.TrimPrefix(string(data), "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return content, nil
}
