package ext

import (
	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindInlineMath and KindDisplayMath are Apex's custom AST node kinds for
// "$inline$" and "$$display$$" math spans — there is no stock goldmark
// extension for either. The Math extension's parser only produces
// InlineMathNode; DisplayMathNode has a renderer but no parser creates it.
var (
	KindInlineMath  = gast.NewNodeKind("InlineMath")
	KindDisplayMath = gast.NewNodeKind("DisplayMath")
)

// InlineMathNode wraps a raw TeX span rendered as "$...$".
type InlineMathNode struct {
	gast.BaseInline
	Value []byte
}

func (n *InlineMathNode) Dump(source []byte, level int) {
	gast.DumpHelper(n, "InlineMath", source, nil, nil)
}

// Kind implements ast.Node.
func (n *InlineMathNode) Kind() gast.NodeKind { return KindInlineMath }

// DisplayMathNode wraps a raw TeX block rendered as "$$...$$".
type DisplayMathNode struct {
	gast.BaseBlock
	Value []byte
}

func (n *DisplayMathNode) Dump(source []byte, level int) {
	gast.DumpHelper(n, "DisplayMath", source, nil, nil)
}

// Kind implements ast.Node.
func (n *DisplayMathNode) Kind() gast.NodeKind { return KindDisplayMath }

type mathInlineParser struct{}

func (p *mathInlineParser) Trigger() []byte { return []byte{'$'} }

func (p *mathInlineParser) Parse(_ gast.Node, block text.Reader, _ parser.Context) gast.Node {
	line, seg := block.PeekLine()
	if len(line) == 0 || line[0] != '$' {
		return nil
	}
	// There is no block parser for "$$": "$$...$$" anywhere, including at
	// the start of a line, becomes an InlineMathNode that keeps its "$$"
	// delimiters in Value.
	display := len(line) > 1 && line[1] == '$'
	offset := 1
	if display {
		offset = 2
	}
	closer := []byte("$")
	if display {
		closer = []byte("$$")
	}

	rest := line[offset:]
	idx := indexOf(rest, closer)
	if idx < 0 {
		return nil
	}

	value := make([]byte, idx)
	copy(value, rest[:idx])
	block.Advance(offset + idx + len(closer))
	_ = seg

	if display {
		return &InlineMathNode{Value: append([]byte("$$"), append(value, []byte("$$")...)...)}
	}
	return &InlineMathNode{Value: value}
}

func indexOf(haystack, needle []byte) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

type mathHTMLRenderer struct{}

func (r *mathHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindInlineMath, r.renderInline)
	reg.Register(KindDisplayMath, r.renderDisplay)
}

func (r *mathHTMLRenderer) renderInline(w util.BufWriter, _ []byte, n gast.Node, entering bool) (gast.WalkStatus, error) {
	if entering {
		node := n.(*InlineMathNode)
		w.WriteString(`<span class="math inline">`)
		_, _ = w.Write(escapeHTML(node.Value))
		w.WriteString(`</span>`)
	}
	return gast.WalkContinue, nil
}

func (r *mathHTMLRenderer) renderDisplay(w util.BufWriter, _ []byte, n gast.Node, entering bool) (gast.WalkStatus, error) {
	if entering {
		node := n.(*DisplayMathNode)
		w.WriteString(`<div class="math display">`)
		_, _ = w.Write(escapeHTML(node.Value))
		w.WriteString(`</div>`)
	}
	return gast.WalkContinue, nil
}

func escapeHTML(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for _, c := range b {
		switch c {
		case '<':
			out = append(out, []byte("&lt;")...)
		case '>':
			out = append(out, []byte("&gt;")...)
		case '&':
			out = append(out, []byte("&amp;")...)
		default:
			out = append(out, c)
		}
	}
	return out
}

type mathExtension struct{}

// Math registers the "$" inline parser (which also takes "$$...$$" spans)
// and the math renderers.
var Math goldmark.Extender = mathExtension{}

func (mathExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&mathInlineParser{}, 499),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&mathHTMLRenderer{}, 499),
	))
}
