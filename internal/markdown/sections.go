package markdown

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

var parser = goldmark.New()

func parse(content []byte) ast.Node {
	return parser.Parser().Parse(gmtext.NewReader(content))
}

// ExtractTitle returns the first H1 in the combined article content, or a
// title-cased transform of the article id when no H1 exists.
func ExtractTitle(content, id string) string {
	src := []byte(content)
	doc := parse(src)

	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			title = nodeText(h, src)
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})

	if title != "" {
		return title
	}
	return TitleFromID(id)
}

// ListSection locates the H2 section whose heading matches name
// (case-insensitive) and collects its list items and link labels until the
// next heading. Used for "See also" and "Bible References" roll-up fields.
func ListSection(content, name string) []string {
	src := []byte(content)
	doc := parse(src)

	var items []string
	collecting := false

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			if collecting {
				break
			}
			if h.Level == 2 && strings.EqualFold(strings.TrimSpace(nodeText(h, src)), name) {
				collecting = true
			}
			continue
		}
		if !collecting {
			continue
		}
		items = append(items, listItems(n, src)...)
	}

	return items
}

// listItems pulls the text of every list item beneath a node. Link labels
// come through naturally because only text nodes are flattened.
func listItems(n ast.Node, src []byte) []string {
	var items []string
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if _, ok := node.(*ast.ListItem); ok {
			if txt := nodeText(node, src); txt != "" {
				items = append(items, txt)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return items
}

// nodeText flattens a node and its children to plain text.
func nodeText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(src))
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// Section is an H2-delimited region of an article, used by the
// section-level academy chunking policy.
type Section struct {
	Title string
	Body  string
}

var h2Re = regexp.MustCompile(`(?m)^##\s+(.+)$`)

// Sections splits cleaned article content on H2 headings. Content before
// the first H2 belongs to no section and is represented only in the full
// article chunk.
func Sections(content string) []Section {
	matches := h2Re.FindAllStringSubmatchIndex(content, -1)
	sections := make([]Section, 0, len(matches))
	for i, m := range matches {
		end := len(content)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		title := strings.TrimSpace(content[m[2]:m[3]])
		body := strings.TrimSpace(content[m[1]:end])
		if body == "" {
			continue
		}
		sections = append(sections, Section{Title: title, Body: body})
	}
	return sections
}

var (
	h1LineRe    = regexp.MustCompile(`(?m)^#\s+.*$`)
	mdSyntaxRe  = regexp.MustCompile("[*_`>#]+")
	summaryMax  = 200
	ellipsisRun = "..."
)

// Summarize produces the one-line academy summary: the H1 is stripped, the
// first remaining paragraph is taken, leftover markdown syntax is removed,
// and the result is truncated to 200 characters with an ellipsis.
func Summarize(content string) string {
	s := h1LineRe.ReplaceAllString(content, "")
	s = strings.TrimSpace(s)

	if idx := strings.Index(s, "\n\n"); idx >= 0 {
		s = s[:idx]
	}
	s = strings.Join(strings.Fields(mdSyntaxRe.ReplaceAllString(s, "")), " ")

	runes := []rune(s)
	if len(runes) > summaryMax {
		s = strings.TrimSpace(string(runes[:summaryMax])) + ellipsisRun
	}
	return s
}
