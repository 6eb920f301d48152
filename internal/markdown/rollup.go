// Package markdown rolls multiple raw markdown files up into logical
// articles. Translation Words terms and Translation Academy modules share
// the same layout convention: an article is either a single file
// ("kt/grace.md") or a folder of numbered parts ("figs-metaphor/01.md",
// "figs-metaphor/02.md") that must be combined before chunking.
package markdown

import (
	"path"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"translation-helps/internal/extract"
)

// Article is the roll-up of all files sharing one article folder.
type Article struct {
	ID      string
	Title   string
	Content string
}

// MinContentLen is the noise threshold: articles with fewer cleaned
// characters than this are dropped.
const MinContentLen = 10

var numericSegRe = regexp.MustCompile(`^\d+$`)

// ArticleID derives the article identity from a file path: the extension
// is stripped, and a purely numeric final segment (the multi-file
// convention) defers to its parent segment.
func ArticleID(p string) string {
	p = strings.TrimSuffix(p, path.Ext(p))
	base := path.Base(p)
	if numericSegRe.MatchString(base) {
		return path.Base(path.Dir(p))
	}
	return base
}

// excluded marks table-of-contents, index and readme files which carry no
// article content and are filtered before grouping.
func excluded(p string) bool {
	base := strings.ToLower(strings.TrimSuffix(path.Base(p), path.Ext(p)))
	switch base {
	case "toc", "index", "readme", "license", "contributing":
		return true
	}
	return false
}

// Group partitions markdown files by article ID. Only ".md" files
// participate; excluded housekeeping files are dropped first. The returned
// groups are sorted by path so folding order never depends on archive
// iteration order.
func Group(files []extract.RawFile) map[string][]extract.RawFile {
	groups := make(map[string][]extract.RawFile)
	for _, f := range extract.FilterExt(files, ".md") {
		if excluded(f.Path) {
			continue
		}
		id := ArticleID(f.Path)
		if id == "" || id == "." {
			continue
		}
		groups[id] = append(groups[id], f)
	}
	for id := range groups {
		sort.Slice(groups[id], func(i, j int) bool {
			return groups[id][i].Path < groups[id][j].Path
		})
	}
	return groups
}

// RollUp combines one article's files, in lexical path order, into a
// single Article. Returns false when the cleaned content falls below the
// noise threshold.
func RollUp(id string, files []extract.RawFile) (Article, bool) {
	parts := make([]string, 0, len(files))
	for _, f := range files {
		if s := strings.TrimSpace(f.Content); s != "" {
			parts = append(parts, s)
		}
	}
	combined := strings.Join(parts, "\n\n")

	content := CleanContent(combined)
	if len(content) < MinContentLen {
		return Article{}, false
	}

	return Article{
		ID:      id,
		Title:   ExtractTitle(combined, id),
		Content: content,
	}, true
}

var (
	mdLinkRe     = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`)
	rcLinkRe     = regexp.MustCompile(`rc://[^\s)\]]+`)
	manyNewlines = regexp.MustCompile(`\n{3,}`)
)

// CleanContent converts markdown links to their label text, strips rc://
// targets, and collapses runs of three or more newlines down to two. The
// heading structure is left intact.
func CleanContent(s string) string {
	s = mdLinkRe.ReplaceAllString(s, "$1")
	s = rcLinkRe.ReplaceAllString(s, "")
	s = manyNewlines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// TitleFromID turns an article id into a display title: hyphens and
// underscores become spaces and each word is capitalized.
func TitleFromID(id string) string {
	words := strings.FieldsFunc(id, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, w := range words {
		runes := []rune(w)
		if len(runes) > 0 {
			runes[0] = unicode.ToUpper(runes[0])
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
