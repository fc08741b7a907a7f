package ext

import (
	"strings"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// Highlighter is the subset of internal/highlight.Highlighter this package
// needs; declared locally so parserx/ext doesn't import a concrete
// highlighting backend, the same boundary AdvancedTable/Callout draw
// around internal/rewrite.
type Highlighter interface {
	Highlight(code, lang string) (string, bool)
}

// CodeHighlight overrides fenced-code-block rendering to run the block's
// content through h, grounded on the external-tools-bridge component: the
// parser adapter still owns the tree, it just delegates one renderer
// function to the chroma-backed bridge instead of goldmark's
// plain-escaping default.
func CodeHighlight(h Highlighter) goldmark.Extender {
	return codeHighlightExtension{h: h}
}

type codeHighlightExtension struct{ h Highlighter }

func (e codeHighlightExtension) Extend(m goldmark.Markdown) {
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&codeHighlightRenderer{h: e.h}, 10),
	))
}

type codeHighlightRenderer struct{ h Highlighter }

func (r *codeHighlightRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(gast.KindFencedCodeBlock, r.render)
}

func (r *codeHighlightRenderer) render(w util.BufWriter, source []byte, n gast.Node, entering bool) (gast.WalkStatus, error) {
	if !entering {
		return gast.WalkContinue, nil
	}
	block := n.(*gast.FencedCodeBlock)

	var lang string
	if info := block.Info; info != nil {
		if fields := strings.Fields(string(info.Segment.Value(source))); len(fields) > 0 {
			lang = fields[0]
		}
	}

	var code strings.Builder
	for i := 0; i < block.Lines().Len(); i++ {
		line := block.Lines().At(i)
		code.Write(line.Value(source))
	}

	highlighted, ok := r.h.Highlight(code.String(), lang)
	if !ok {
		return r.renderPlain(w, code.String(), lang)
	}
	_, _ = w.WriteString(highlighted)
	return gast.WalkSkipChildren, nil
}

func (r *codeHighlightRenderer) renderPlain(w util.BufWriter, code, lang string) (gast.WalkStatus, error) {
	class := ""
	if lang != "" {
		class = ` class="language-` + lang + `"`
	}
	w.WriteString("<pre><code" + class + ">")
	_, _ = w.Write(escapeHTML([]byte(code)))
	w.WriteString("</code></pre>\n")
	return gast.WalkSkipChildren, nil
}
