package usfm

import (
	"strings"
)

// Clean strips USFM markup from a text span and returns plain prose.
// It is total: unknown or unterminated markers degrade to whitespace and
// never abort. The pass is a single left-to-right scan that classifies each
// marker rather than a stack of regex substitutions, so every edge case is
// handled at exactly one place:
//
//   - \zaln-s |...\*  alignment openers: attributes skipped, enclosed text kept
//   - \zaln-e\*       alignment closers: removed
//   - \w word|attrs\w* word-level markers: resolved to the surface word
//   - \x* / \marker   any other opening or closing marker: replaced by a space
//   - |attr runs terminated by \* outside a \w span: skipped
func Clean(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	i, n := 0, len(raw)
	for i < n {
		c := raw[i]

		if c == '|' {
			// Attribute run left behind by an opening marker. Only treat it
			// as markup if it terminates with \* on the same line; a bare
			// pipe in prose stays.
			if end := attrEnd(raw, i); end > 0 {
				i = end
				continue
			}
			b.WriteByte(c)
			i++
			continue
		}

		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}

		name, j, closing := readMarker(raw, i)
		switch {
		case name == "" && closing:
			// standalone \* closer (ends zaln-s openers and milestones)
			b.WriteByte(' ')
			i = j
		case name == "":
			// lone backslash, keep nothing
			b.WriteByte(' ')
			i = j
		case name == "zaln-s" && !closing:
			// skip "|attrs ... \*", keep scanning after the closer
			if end := strings.Index(raw[j:], `\*`); end >= 0 {
				i = j + end + 2
			} else {
				i = j
			}
			b.WriteByte(' ')
		case name == "w" && !closing:
			i = resolveWord(&b, raw, j)
		default:
			// every other marker, opening or closing, degrades to whitespace
			b.WriteByte(' ')
			i = j
		}
	}

	return normalizeSpacing(b.String())
}

// readMarker reads the marker name starting at the backslash at position i.
// It returns the name, the index just past the marker (including a trailing
// '*' if present), and whether the marker was a closing form.
func readMarker(raw string, i int) (name string, next int, closing bool) {
	j := i + 1
	for j < len(raw) && isMarkerChar(raw[j]) {
		j++
	}
	name = raw[i+1 : j]
	if j < len(raw) && raw[j] == '*' {
		return name, j + 1, true
	}
	return name, j, false
}

func isMarkerChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-'
}

// resolveWord handles the span after "\w": the surface word runs to the
// first pipe or the closing \w*, whichever comes first. An unterminated
// span degrades to dropping just the marker.
func resolveWord(b *strings.Builder, raw string, j int) int {
	end := strings.Index(raw[j:], `\w*`)
	if end < 0 {
		b.WriteByte(' ')
		return j
	}
	inner := raw[j : j+end]
	if p := strings.IndexByte(inner, '|'); p >= 0 {
		inner = inner[:p]
	}
	b.WriteString(inner)
	return j + end + 3
}

// attrEnd returns the index just past a "|...\*" attribute run starting at
// the pipe, or 0 when the pipe is not part of one. The run must close on
// the same line. The closing \* is left for the scanner to consume.
func attrEnd(raw string, i int) int {
	for j := i + 1; j < len(raw); j++ {
		switch raw[j] {
		case '\n':
			return 0
		case '\\':
			if j+1 < len(raw) && raw[j+1] == '*' {
				return j
			}
			return 0
		}
	}
	return 0
}

var punctReplacer = strings.NewReplacer(
	" ,", ",", " .", ".", " ;", ";", " :", ":",
	" !", "!", " ?", "?", " )", ")", "( ", "(",
)

// normalizeSpacing collapses whitespace runs to single spaces and closes
// gaps the marker removal opened before punctuation.
func normalizeSpacing(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return punctReplacer.Replace(s)
}
