package books

import (
	"path"
	"regexp"
	"strings"
)

// Book identifies one of the 66 protestant-canon books by its USFM code.
type Book struct {
	Code   string // three-letter USFM identifier, e.g. "JHN"
	Name   string // English display name
	Number int    // Paratext file-number convention (GEN=1 ... MAL=39, MAT=41 ... REV=67)
}

// table is the canonical 66-entry book list. Read-only after init.
// Note the Paratext numbering gap: 40 is reserved, so Matthew is 41.
var table = []Book{
	{"GEN", "Genesis", 1}, {"EXO", "Exodus", 2}, {"LEV", "Leviticus", 3},
	{"NUM", "Numbers", 4}, {"DEU", "Deuteronomy", 5}, {"JOS", "Joshua", 6},
	{"JDG", "Judges", 7}, {"RUT", "Ruth", 8}, {"1SA", "1 Samuel", 9},
	{"2SA", "2 Samuel", 10}, {"1KI", "1 Kings", 11}, {"2KI", "2 Kings", 12},
	{"1CH", "1 Chronicles", 13}, {"2CH", "2 Chronicles", 14}, {"EZR", "Ezra", 15},
	{"NEH", "Nehemiah", 16}, {"EST", "Esther", 17}, {"JOB", "Job", 18},
	{"PSA", "Psalms", 19}, {"PRO", "Proverbs", 20}, {"ECC", "Ecclesiastes", 21},
	{"SNG", "Song of Solomon", 22}, {"ISA", "Isaiah", 23}, {"JER", "Jeremiah", 24},
	{"LAM", "Lamentations", 25}, {"EZK", "Ezekiel", 26}, {"DAN", "Daniel", 27},
	{"HOS", "Hosea", 28}, {"JOL", "Joel", 29}, {"AMO", "Amos", 30},
	{"OBA", "Obadiah", 31}, {"JON", "Jonah", 32}, {"MIC", "Micah", 33},
	{"NAM", "Nahum", 34}, {"HAB", "Habakkuk", 35}, {"ZEP", "Zephaniah", 36},
	{"HAG", "Haggai", 37}, {"ZEC", "Zechariah", 38}, {"MAL", "Malachi", 39},
	{"MAT", "Matthew", 41}, {"MRK", "Mark", 42}, {"LUK", "Luke", 43},
	{"JHN", "John", 44}, {"ACT", "Acts", 45}, {"ROM", "Romans", 46},
	{"1CO", "1 Corinthians", 47}, {"2CO", "2 Corinthians", 48},
	{"GAL", "Galatians", 49}, {"EPH", "Ephesians", 50}, {"PHP", "Philippians", 51},
	{"COL", "Colossians", 52}, {"1TH", "1 Thessalonians", 53},
	{"2TH", "2 Thessalonians", 54}, {"1TI", "1 Timothy", 55},
	{"2TI", "2 Timothy", 56}, {"TIT", "Titus", 57}, {"PHM", "Philemon", 58},
	{"HEB", "Hebrews", 59}, {"JAS", "James", 60}, {"1PE", "1 Peter", 61},
	{"2PE", "2 Peter", 62}, {"1JN", "1 John", 63}, {"2JN", "2 John", 64},
	{"3JN", "3 John", 65}, {"JUD", "Jude", 66}, {"REV", "Revelation", 67},
}

var byCode = func() map[string]Book {
	m := make(map[string]Book, len(table))
	for _, b := range table {
		m[b.Code] = b
	}
	return m
}()

// ByCode looks up a book by its USFM code, case-insensitively.
func ByCode(code string) (Book, bool) {
	b, ok := byCode[strings.ToUpper(code)]
	return b, ok
}

// All returns the canonical book list in canon order.
func All() []Book {
	out := make([]Book, len(table))
	copy(out, table)
	return out
}

var (
	usfmNameRe  = regexp.MustCompile(`(?i)(?:^|[-_])([1-3]?[A-Z]{2,3})$`)
	notesTnRe   = regexp.MustCompile(`(?i)^tn_([1-3]?[A-Z]{2,3})$`)
	notesNumRe  = regexp.MustCompile(`(?i)^\d{2}-([1-3]?[A-Z]{2,3})$`)
	frontMarker = "front"
)

// FromUSFMPath resolves a book from a scripture filename such as
// "en_ult/44-JHN.usfm" or "JHN.usfm". Returns false for anything that does
// not map onto the 66-book table.
func FromUSFMPath(p string) (Book, bool) {
	base := strings.TrimSuffix(path.Base(p), path.Ext(p))
	if m := usfmNameRe.FindStringSubmatch(base); m != nil {
		if b, ok := ByCode(m[1]); ok {
			return b, true
		}
	}
	// Bare code with no separator, e.g. "JHN.usfm".
	if b, ok := ByCode(base); ok {
		return b, true
	}
	return Book{}, false
}

// FromNotesPath resolves a book from a translation-notes file path. Three
// conventions are accepted: "tn_JHN.tsv", "44-JHN.tsv", and a "JHN" path
// segment anywhere in the file's directory chain. "front" material carries
// no book and is rejected.
func FromNotesPath(p string) (Book, bool) {
	base := strings.TrimSuffix(path.Base(p), path.Ext(p))
	if strings.EqualFold(base, frontMarker) {
		return Book{}, false
	}
	if m := notesTnRe.FindStringSubmatch(base); m != nil {
		if b, ok := ByCode(m[1]); ok {
			return b, true
		}
	}
	if m := notesNumRe.FindStringSubmatch(base); m != nil {
		if b, ok := ByCode(m[1]); ok {
			return b, true
		}
	}
	// Older releases prefix the repo name: "en_tn_43-JHN.tsv".
	if m := usfmNameRe.FindStringSubmatch(base); m != nil {
		if b, ok := ByCode(m[1]); ok {
			return b, true
		}
	}
	for _, seg := range strings.Split(path.Dir(p), "/") {
		if strings.EqualFold(seg, frontMarker) {
			return Book{}, false
		}
		if b, ok := ByCode(seg); ok {
			return b, true
		}
	}
	return Book{}, false
}
