package ext

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/apexmd/apex/internal/rewrite"
)

// HeaderIDTransformer is a parser.ASTTransformer run after parsing and
// before rendering. It is Apex's realization of Design Note 9's
// recommended renderer/parser-hook approach to attribute injection for
// headings specifically: ids are written directly onto each heading's
// goldmark attribute bag rather than matched against rendered HTML
// afterward.
//
// A fresh SlugTable is built per Transform call, honoring the no-globals
// rule in §5 — nothing here is package-level mutable state.
type HeaderIDTransformer struct {
	format rewrite.IDFormat
}

// NewHeaderIDTransformer returns a transformer that slugs headings using
// format.
func NewHeaderIDTransformer(format rewrite.IDFormat) *HeaderIDTransformer {
	return &HeaderIDTransformer{format: format}
}

// Transform walks every heading in source order, resolving an id through
// the Open Question (a) precedence (manual id, then IAL #id already
// present on the node's attribute bag, then auto-slug) and writing the
// winner back onto the node.
func (t *HeaderIDTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	table := rewrite.NewSlugTable(t.format)
	source := reader.Source()

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		text := rewrite.HeadingText(heading, source)
		manualID, trimmed, hasManual := rewrite.ManualHeaderID(text, t.format)
		if hasManual {
			// Drop the id syntax from the heading's trailing text nodes too.
			cut := len(text) - len(trimmed)
			for cut > 0 {
				last, ok := heading.LastChild().(*ast.Text)
				if !ok {
					break
				}
				if n := last.Segment.Len(); n <= cut {
					heading.RemoveChild(heading, last)
					cut -= n
				} else {
					last.Segment.Stop -= cut
					cut = 0
				}
			}
			text = trimmed
		}

		var ialID string
		if existing, ok := heading.AttributeString("id"); ok {
			if s, ok := existing.(string); ok {
				ialID = s
			}
		}

		id := table.Assign(text, manualID, ialID)
		heading.SetAttributeString("id", id)
		return ast.WalkContinue, nil
	})
}
