package usfm

import (
	"regexp"
	"strconv"
	"strings"
)

// Verse is one \v marker resolved to its enclosing chapter. The verse label
// is kept verbatim: merged-verse labels like "16-17" and gaps in the source
// are preserved, not normalized.
type Verse struct {
	Chapter int
	Verse   string
	Text    string
}

// Section is a contiguous verse range forming a passage, either delimited
// by \s heading markers or produced by fixed-size fallback grouping.
type Section struct {
	Title        string
	StartChapter int
	StartVerse   string
	EndChapter   int
	EndVerse     string
	Text         string
	Verses       []Verse
}

// DefaultVerseGroupSize is the fallback passage size for books without
// section headings. Tunable, not a contract.
const DefaultVerseGroupSize = 10

// markerRe locates the structural markers the parsers care about. Section
// markers participate so that heading text never bleeds into verse text.
var markerRe = regexp.MustCompile(`\\(s[12]?|c|v)[ \t]+`)

type marker struct {
	name  string
	start int // index of the backslash
	body  int // index just past the marker and its separating space
}

func scanMarkers(raw string) []marker {
	matches := markerRe.FindAllStringSubmatchIndex(raw, -1)
	out := make([]marker, 0, len(matches))
	for _, m := range matches {
		out = append(out, marker{
			name:  raw[m[2]:m[3]],
			start: m[0],
			body:  m[1],
		})
	}
	return out
}

// label reads the chapter/verse label token following a \c or \v marker.
func label(raw string, m marker) (string, int) {
	j := m.body
	for j < len(raw) && raw[j] != ' ' && raw[j] != '\t' && raw[j] != '\n' && raw[j] != '\\' {
		j++
	}
	return strings.TrimSpace(raw[m.body:j]), j
}

// ParseVerses scans \c and \v tokens sequentially, carrying the last-seen
// chapter forward. Verses seen before any chapter marker resolve to the
// sentinel chapter 0 and are dropped.
func ParseVerses(raw string) []Verse {
	return parseVersesFrom(raw, 0)
}

func parseVersesFrom(raw string, chapter int) []Verse {
	markers := scanMarkers(raw)
	var verses []Verse

	for idx, m := range markers {
		switch m.name {
		case "c":
			lbl, _ := label(raw, m)
			if n, err := strconv.Atoi(lbl); err == nil {
				chapter = n
			}
		case "v":
			lbl, textStart := label(raw, m)
			if lbl == "" {
				continue
			}
			textEnd := len(raw)
			if idx+1 < len(markers) {
				textEnd = markers[idx+1].start
			}
			if chapter == 0 {
				continue
			}
			verses = append(verses, Verse{
				Chapter: chapter,
				Verse:   lbl,
				Text:    Clean(raw[textStart:textEnd]),
			})
		}
	}

	return verses
}

// ParseSections splits a book into passages. When \s/\s1/\s2 headings
// exist, each section spans marker-to-next-marker (or EOF) and its verses
// are attributed by re-scanning the span with the chapter carried in from
// before the heading. Without headings every book still yields passages via
// fixed grouping of groupSize verses.
func ParseSections(raw string, verses []Verse, groupSize int) []Section {
	if groupSize <= 0 {
		groupSize = DefaultVerseGroupSize
	}

	heads := sectionMarkers(raw)
	if len(heads) == 0 {
		return groupVerses(verses, groupSize)
	}

	var sections []Section
	for i, h := range heads {
		end := len(raw)
		if i+1 < len(heads) {
			end = heads[i+1].start
		}

		title := Clean(headingText(raw, h))
		spanVerses := parseVersesFrom(raw[h.start:end], chapterBefore(raw, h.start))
		if len(spanVerses) == 0 {
			continue
		}

		sections = append(sections, buildSection(title, spanVerses))
	}

	return sections
}

func sectionMarkers(raw string) []marker {
	var heads []marker
	for _, m := range scanMarkers(raw) {
		if strings.HasPrefix(m.name, "s") {
			heads = append(heads, m)
		}
	}
	return heads
}

// headingText returns the raw heading line following a section marker.
func headingText(raw string, m marker) string {
	end := strings.IndexByte(raw[m.body:], '\n')
	if end < 0 {
		return raw[m.body:]
	}
	return raw[m.body : m.body+end]
}

// chapterBefore finds the chapter in effect at a given offset.
func chapterBefore(raw string, offset int) int {
	chapter := 0
	for _, m := range scanMarkers(raw[:offset]) {
		if m.name != "c" {
			continue
		}
		lbl, _ := label(raw, m)
		if n, err := strconv.Atoi(lbl); err == nil {
			chapter = n
		}
	}
	return chapter
}

func groupVerses(verses []Verse, groupSize int) []Section {
	var sections []Section
	for start := 0; start < len(verses); start += groupSize {
		end := start + groupSize
		if end > len(verses) {
			end = len(verses)
		}
		sections = append(sections, buildSection("", verses[start:end]))
	}
	return sections
}

func buildSection(title string, verses []Verse) Section {
	texts := make([]string, 0, len(verses))
	for _, v := range verses {
		if v.Text != "" {
			texts = append(texts, v.Text)
		}
	}
	first, last := verses[0], verses[len(verses)-1]
	return Section{
		Title:        title,
		StartChapter: first.Chapter,
		StartVerse:   first.Verse,
		EndChapter:   last.Chapter,
		EndVerse:     last.Verse,
		Text:         strings.Join(texts, " "),
		Verses:       verses,
	}
}
