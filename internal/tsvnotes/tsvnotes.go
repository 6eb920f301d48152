// Package tsvnotes decodes Door43 translation-notes TSV files.
//
// The schema is fixed at seven columns:
//
//	Reference  ID  Tags  SupportReference  Quote  Occurrence  Note
//
// Rows are split on literal tabs rather than decoded with encoding/csv:
// note prose routinely contains unescaped double quotes, which a CSV reader
// in quote mode mangles, and the upstream files never quote fields.
package tsvnotes

import (
	"regexp"
	"strconv"
	"strings"
)

const columnCount = 7

// Note is one decoded translation-notes row.
type Note struct {
	Book             string
	Chapter          int
	Verse            int
	ID               string
	SupportReference string
	Quote            string
	Note             string
}

// referenceRe gates the Reference column. Anything that is not a plain
// chapter:verse pair (front matter "front:intro", chapter intros "1:intro",
// ranges) is dropped by design, not reported as an error.
var referenceRe = regexp.MustCompile(`^(\d+):(\d+)$`)

// Parse decodes a whole TSV file for one book. The header row is always
// skipped. Malformed rows are dropped and counted, never fatal.
func Parse(content, book string) (notes []Note, dropped int) {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}
		note, ok := ParseRow(line, book)
		if !ok {
			dropped++
			continue
		}
		notes = append(notes, note)
	}
	return notes, dropped
}

// ParseRow decodes a single data row. It returns false for rows short on
// columns, rows whose reference is not chapter:verse, and rows with no
// usable note text.
func ParseRow(line, book string) (Note, bool) {
	cols := strings.Split(line, "\t")
	if len(cols) < columnCount {
		return Note{}, false
	}

	m := referenceRe.FindStringSubmatch(strings.TrimSpace(cols[0]))
	if m == nil {
		return Note{}, false
	}
	chapter, err := strconv.Atoi(m[1])
	if err != nil {
		return Note{}, false
	}
	verse, err := strconv.Atoi(m[2])
	if err != nil {
		return Note{}, false
	}

	id := strings.TrimSpace(cols[1])
	if id == "" {
		return Note{}, false
	}

	note := Note{
		Book:             book,
		Chapter:          chapter,
		Verse:            verse,
		ID:               id,
		SupportReference: strings.TrimSpace(cols[3]),
		Quote:            strings.TrimSpace(cols[4]),
		Note:             CleanNote(cols[6]),
	}
	if note.Note == "" && note.Quote == "" {
		return Note{}, false
	}
	return note, true
}

var (
	mdLinkRe = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`)
	rcLinkRe = regexp.MustCompile(`rc://[^\s)\]]+`)
)

// CleanNote converts markdown links to their label text and strips rc://
// targets while keeping the prose intact. Escaped newlines from the TSV
// encoding become real line breaks.
func CleanNote(s string) string {
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = mdLinkRe.ReplaceAllString(s, "$1")
	s = rcLinkRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	return s
}
