package ext

import (
	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindHighlight is the AST node kind for "==text==" inline highlight
// marks. internal/parserx.New does not attach this extension; the
// conversion pipeline handles "==text==" with
// internal/preprocess.ApplyHighlightMarks instead.
var KindHighlight = gast.NewNodeKind("Highlight")

// HighlightNode wraps the literal text inside "==...==".
type HighlightNode struct {
	gast.BaseInline
	Value []byte
}

func (n *HighlightNode) Dump(source []byte, level int) {
	gast.DumpHelper(n, "Highlight", source, nil, nil)
}

// Kind implements ast.Node.
func (n *HighlightNode) Kind() gast.NodeKind { return KindHighlight }

type highlightInlineParser struct{}

func (p *highlightInlineParser) Trigger() []byte { return []byte{'='} }

func (p *highlightInlineParser) Parse(_ gast.Node, block text.Reader, _ parser.Context) gast.Node {
	line, _ := block.PeekLine()
	if len(line) < 2 || line[0] != '=' || line[1] != '=' {
		return nil
	}
	rest := line[2:]
	idx := indexOf(rest, []byte("=="))
	if idx <= 0 {
		return nil
	}
	value := make([]byte, idx)
	copy(value, rest[:idx])
	block.Advance(2 + idx + 2)
	return &HighlightNode{Value: value}
}

type highlightHTMLRenderer struct{}

func (r *highlightHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindHighlight, r.render)
}

func (r *highlightHTMLRenderer) render(w util.BufWriter, _ []byte, n gast.Node, entering bool) (gast.WalkStatus, error) {
	if entering {
		node := n.(*HighlightNode)
		w.WriteString("<mark>")
		_, _ = w.Write(escapeHTML(node.Value))
		w.WriteString("</mark>")
	}
	return gast.WalkContinue, nil
}

type highlightExtension struct{}

// Highlight registers the "==text==" inline parser/renderer pair.
var Highlight goldmark.Extender = highlightExtension{}

func (highlightExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&highlightInlineParser{}, 500),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&highlightHTMLRenderer{}, 500),
	))
}
