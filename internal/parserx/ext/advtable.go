package ext

import (
	"strings"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// AdvancedTable wraps goldmark's stock GFM table extension and adds an
// ASTTransformer pass for the features spec.md asks for that the stock
// parser doesn't support: a caption line immediately following the table
// (either "[caption]" on its own line or a ": caption" Pandoc-style line),
// rowspan via a cell containing only "^^", and colspan via runs of empty
// trailing cells in a row. Rather than a from-scratch table grammar, this
// rides goldmark's own table parser and rewrites its output — the same
// "adapt what the parser already builds" approach the header-id
// transformer takes for heading ids.
var AdvancedTable goldmark.Extender = advancedTableExtension{}

type advancedTableExtension struct{}

func (advancedTableExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		parserPrioritized(&advancedTableTransformer{}, 200),
	))
}

// parserPrioritized is a small local alias so this file doesn't need to
// import goldmark/util just for one call site.
func parserPrioritized(t parser.ASTTransformer, priority int) parserTransformerPriority {
	return parserTransformerPriority{value: t, priority: priority}
}

type parserTransformerPriority struct {
	value    parser.ASTTransformer
	priority int
}

func (p parserTransformerPriority) Value() any    { return p.value }
func (p parserTransformerPriority) Priority() int { return p.priority }

type advancedTableTransformer struct{}

func (t *advancedTableTransformer) Transform(doc *gast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()

	gast.Walk(doc, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		table, ok := n.(*east.Table)
		if !ok {
			return gast.WalkContinue, nil
		}
		attachCaption(table, source)
		collapseSpans(table, source)
		return gast.WalkContinue, nil
	})
}

// attachCaption looks at the table's next sibling; if it is a paragraph
// whose text is "[caption]" or starts with ": ", that text becomes the
// table's data-caption attribute and the paragraph is unlinked.
func attachCaption(table *east.Table, source []byte) {
	next := table.NextSibling()
	para, ok := next.(*gast.Paragraph)
	if !ok {
		return
	}
	text := extractText(para, source)
	trimmed := strings.TrimSpace(text)

	var caption string
	switch {
	case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
		caption = trimmed[1 : len(trimmed)-1]
	case strings.HasPrefix(trimmed, ": "):
		caption = strings.TrimPrefix(trimmed, ": ")
	default:
		return
	}

	table.SetAttributeString("data-caption", caption)
	para.Parent().RemoveChild(para.Parent(), para)
}

// collapseSpans scans each table row for "^^" cells (rowspan continuation,
// merged into the cell directly above) and trailing empty cells (colspan,
// merged into the preceding non-empty cell).
func collapseSpans(table *east.Table, source []byte) {
	var rows []*east.TableRow
	for c := table.FirstChild(); c != nil; c = c.NextSibling() {
		switch row := c.(type) {
		case *east.TableHeader:
			rows = append(rows, (*east.TableRow)(nil))
			_ = row
		case *east.TableRow:
			rows = append(rows, row)
		}
	}

	var prevCells []*east.TableCell
	for _, row := range rows {
		if row == nil {
			continue
		}
		var cells []*east.TableCell
		for cc := row.FirstChild(); cc != nil; cc = cc.NextSibling() {
			if cell, ok := cc.(*east.TableCell); ok {
				cells = append(cells, cell)
			}
		}

		for i, cell := range cells {
			txt := strings.TrimSpace(extractText(cell, source))
			if txt == "^^" && prevCells != nil && i < len(prevCells) {
				incrementSpan(prevCells[i], "rowspan")
				row.RemoveChild(row, cell)
			}
		}

		// Trailing empty cells collapse into the last non-empty cell as
		// colspan.
		last := -1
		for i, cell := range cells {
			if strings.TrimSpace(extractText(cell, source)) != "" {
				last = i
			}
		}
		if last >= 0 {
			for i := len(cells) - 1; i > last; i-- {
				incrementSpan(cells[last], "colspan")
				row.RemoveChild(row, cells[i])
			}
		}

		prevCells = cells
	}
}

func incrementSpan(cell *east.TableCell, attr string) {
	current := 1
	if v, ok := cell.AttributeString(attr); ok {
		if s, ok := v.(string); ok {
			if n := parsePositiveInt(s); n > 0 {
				current = n
			}
		}
	}
	cell.SetAttributeString(attr, itoa(current+1))
}

func parsePositiveInt(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

func extractText(n gast.Node, source []byte) string {
	var b strings.Builder
	gast.Walk(n, func(child gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		if t, ok := child.(*gast.Text); ok {
			b.Write(t.Segment.Value(source))
		}
		return gast.WalkContinue, nil
	})
	return b.String()
}
