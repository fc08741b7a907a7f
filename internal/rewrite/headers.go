package rewrite

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
)

// HeadingText concatenates the literal content of a heading's text and
// inline-code children, the Go equivalent of
// original_source/src/extensions/header_ids.c's apex_extract_heading_text.
func HeadingText(node ast.Node, source []byte) string {
	var b strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Text:
			b.Write(n.Segment.Value(source))
		case *ast.CodeSpan:
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*ast.Text); ok {
					b.Write(t.Segment.Value(source))
				}
			}
		default:
			b.WriteString(HeadingText(child, source))
		}
	}
	return b.String()
}

// ManualHeaderID extracts an author-supplied anchor id from the trailing
// portion of a heading's raw text: MultiMarkdown's "[id]" suffix or
// Kramdown's "{#id}" suffix. It returns the id and the text with the
// suffix (and any preceding whitespace) removed. ok is false when no
// recognizable suffix is present, in which case text is returned unchanged.
func ManualHeaderID(text string, format IDFormat) (id string, rest string, ok bool) {
	switch format {
	case FormatMMD:
		open := strings.LastIndexByte(text, '[')
		if open < 0 || !strings.HasSuffix(text, "]") {
			return "", text, false
		}
		candidate := text[open+1 : len(text)-1]
		if candidate == "" || strings.ContainsAny(candidate, " \t") {
			return "", text, false
		}
		return candidate, strings.TrimRight(text[:open], " \t"), true
	default:
		open := strings.LastIndexByte(text, '{')
		if open < 0 || !strings.HasPrefix(text[open:], "{#") || !strings.HasSuffix(text, "}") {
			return "", text, false
		}
		candidate := text[open+2 : len(text)-1]
		if candidate == "" {
			return "", text, false
		}
		return candidate, strings.TrimRight(text[:open], " \t"), true
	}
}

// SlugTable assigns and disambiguates heading anchor ids across a single
// document, honoring the Open Question (a) precedence: a manual id wins,
// then an IAL-attached "#id", then the auto-generated slug. Constructed
// fresh per Convert call — never a package-level var — per the no-globals
// rule in §5.
type SlugTable struct {
	format IDFormat
	seen   map[string]int
}

// NewSlugTable returns a table for the given id format.
func NewSlugTable(format IDFormat) *SlugTable {
	return &SlugTable{format: format, seen: make(map[string]int)}
}

// Assign returns the final id for a heading. manualID and ialID take
// precedence, in that order, over the auto-generated slug derived from
// text; whichever wins is still passed through disambiguation so two
// headings that resolve to the same manual id don't collide.
func (t *SlugTable) Assign(text, manualID, ialID string) string {
	base := manualID
	if base == "" {
		base = ialID
	}
	if base == "" {
		base = GenerateHeaderID(text, t.format)
	}
	return t.disambiguate(base)
}

func (t *SlugTable) disambiguate(base string) string {
	n, exists := t.seen[base]
	if !exists {
		t.seen[base] = 0
		return base
	}
	n++
	t.seen[base] = n
	candidate := fmt.Sprintf("%s-%d", base, n)
	for {
		if _, collide := t.seen[candidate]; !collide {
			t.seen[candidate] = 0
			return candidate
		}
		n++
		t.seen[base] = n
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}
