package ext

import (
	"strings"

	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/apexmd/apex/internal/rewrite"
)

// IALTransformer attaches Kramdown/Pandoc-style attribute lists
// ("{: #id .class key="v"}" or "{#id .class}") to the block they follow.
// Two attachment forms are recognized, mirroring kramdown's own grammar:
// trailing on the block's own last line ("## Heading {#id}"), or standing
// alone as the immediately following paragraph.
//
// Must run before HeaderIDTransformer (a lower ASTTransformer priority
// number) so a heading's manual "{#id}" is already on its attribute bag
// by the time the slug table resolves precedence.
type IALTransformer struct {
	alds map[string]string
}

// NewIALTransformer returns a transformer resolving named IAL references
// ("{:name}") against alds, the map populated by
// internal/preprocess.ExtractALDs.
func NewIALTransformer(alds map[string]string) *IALTransformer {
	return &IALTransformer{alds: alds}
}

func (t *IALTransformer) Transform(doc *gast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()

	var targets []gast.Node
	gast.Walk(doc, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering || n.Parent() == nil {
			return gast.WalkContinue, nil
		}
		switch n.(type) {
		case *gast.Heading, *gast.Paragraph, *gast.Blockquote, *gast.FencedCodeBlock, *gast.CodeBlock, *gast.List:
			targets = append(targets, n)
		}
		return gast.WalkContinue, nil
	})

	for _, n := range targets {
		if t.attachTrailing(n, source) {
			continue
		}
		t.attachStandalone(n, source)
	}
}

// attachTrailing handles "{...}" appearing at the very end of a heading
// or paragraph's last text segment.
func (t *IALTransformer) attachTrailing(n gast.Node, source []byte) bool {
	var last *gast.Text
	switch n.(type) {
	case *gast.Heading, *gast.Paragraph:
		if lc, ok := lastTextChild(n); ok {
			last = lc
		}
	default:
		return false
	}
	if last == nil {
		return false
	}

	seg := last.Segment
	raw := string(seg.Value(source))
	trimmed := strings.TrimRight(raw, " \t\n")
	if !strings.HasSuffix(trimmed, "}") {
		return false
	}
	open := strings.LastIndexByte(trimmed, '{')
	if open < 0 {
		return false
	}
	body := trimmed[open+1 : len(trimmed)-1]
	if !isAttrListBody(body) {
		return false
	}

	attrs := rewrite.ResolveIAL(strings.TrimPrefix(body, ":"), t.alds)
	if len(attrs) == 0 {
		return false
	}
	applyAttrs(n, attrs)

	newEnd := seg.Start + open
	for newEnd > seg.Start && (source[newEnd-1] == ' ' || source[newEnd-1] == '\t') {
		newEnd--
	}
	if newEnd <= seg.Start {
		last.Parent().RemoveChild(last.Parent(), last)
	} else {
		last.Segment = text.NewSegment(seg.Start, newEnd)
	}
	return true
}

// attachStandalone handles an IAL occupying its own paragraph directly
// after the target block, the form kramdown requires for non-heading,
// non-paragraph blocks (code fences, blockquotes, lists).
func (t *IALTransformer) attachStandalone(n gast.Node, source []byte) {
	next := n.NextSibling()
	para, ok := next.(*gast.Paragraph)
	if !ok {
		return
	}
	body := strings.TrimSpace(extractText(para, source))
	if len(body) < 2 || body[0] != '{' || body[len(body)-1] != '}' {
		return
	}
	inner := body[1 : len(body)-1]
	if !isAttrListBody(inner) {
		return
	}

	attrs := rewrite.ResolveIAL(strings.TrimPrefix(inner, ":"), t.alds)
	if len(attrs) == 0 {
		return
	}
	applyAttrs(n, attrs)
	para.Parent().RemoveChild(para.Parent(), para)
}

func applyAttrs(n gast.Node, attrs map[string]string) {
	for k, v := range attrs {
		if k == "class" {
			if existing, ok := n.AttributeString("class"); ok {
				if s, ok := existing.(string); ok && s != "" {
					v = s + " " + v
				}
			}
		}
		n.SetAttributeString(k, v)
	}
}

// isAttrListBody rejects bodies that look like ordinary prose rather than
// an attribute list, so "{not an IAL, just braces}" in running text is
// left alone.
func isAttrListBody(body string) bool {
	body = strings.TrimSpace(body)
	body = strings.TrimSpace(strings.TrimPrefix(body, ":"))
	if body == "" {
		return false
	}
	for _, r := range body {
		if r == '\n' {
			return false
		}
	}
	return strings.HasPrefix(body, "#") || strings.HasPrefix(body, ".") ||
		strings.Contains(body, "=") || strings.ContainsAny(body, " ") == false
}

func lastTextChild(n gast.Node) (*gast.Text, bool) {
	var last gast.Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		last = c
	}
	if t, ok := last.(*gast.Text); ok {
		return t, true
	}
	return nil, false
}
