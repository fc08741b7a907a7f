package ext

import (
	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/apexmd/apex/internal/rewrite"
)

// WikiLinkSpacePolicy controls how spaces in a bare wiki-link target are
// encoded into the generated href; it mirrors rewrite.WikiLinkSpacePolicy
// so callers configuring WikiLink don't need to import internal/rewrite.
type WikiLinkSpacePolicy = rewrite.WikiLinkSpacePolicy

// KindWikiLink is the AST node kind for "[[Target]]" / "[[Target|Display]]"
// / "[[Target#Section]]" references.
var KindWikiLink = gast.NewNodeKind("WikiLink")

// WikiLinkNode wraps a parsed wiki-link reference.
type WikiLinkNode struct {
	gast.BaseInline
	Link rewrite.WikiLink
}

func (n *WikiLinkNode) Dump(source []byte, level int) {
	gast.DumpHelper(n, "WikiLink", source, nil, nil)
}

// Kind implements ast.Node.
func (n *WikiLinkNode) Kind() gast.NodeKind { return KindWikiLink }

type wikiLinkInlineParser struct{}

func (p *wikiLinkInlineParser) Trigger() []byte { return []byte{'['} }

// Parse matches "[[...]]" the same way rewrite.FindWikiLinks does, scoped
// to the remainder of the current line (wiki-link targets don't span
// lines).
func (p *wikiLinkInlineParser) Parse(_ gast.Node, block text.Reader, _ parser.Context) gast.Node {
	line, _ := block.PeekLine()
	if len(line) < 2 || line[0] != '[' || line[1] != '[' {
		return nil
	}
	rest := line[2:]
	idx := indexOf(rest, []byte("]]"))
	if idx < 0 {
		return nil
	}
	inner := string(rest[:idx])
	if idx == 0 {
		return nil
	}
	block.Advance(2 + idx + 2)
	return &WikiLinkNode{Link: rewrite.ParseWikiLink(inner)}
}

type wikiLinkHTMLRenderer struct {
	policy WikiLinkSpacePolicy
}

func (r *wikiLinkHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindWikiLink, r.render)
}

func (r *wikiLinkHTMLRenderer) render(w util.BufWriter, _ []byte, n gast.Node, entering bool) (gast.WalkStatus, error) {
	if entering {
		node := n.(*WikiLinkNode)
		w.WriteString(`<a class="wikilink" href="`)
		_, _ = w.Write(escapeHTML([]byte(node.Link.Href(r.policy))))
		w.WriteString(`">`)
		_, _ = w.Write(escapeHTML([]byte(node.Link.Display)))
		w.WriteString("</a>")
	}
	return gast.WalkContinue, nil
}

type wikiLinkExtension struct {
	policy WikiLinkSpacePolicy
}

// WikiLink builds the "[[Target]]" inline extension, encoding bare-target
// hrefs per policy (SpaceDash by default, matching most static-site
// routers).
func WikiLink(policy WikiLinkSpacePolicy) goldmark.Extender {
	return wikiLinkExtension{policy: policy}
}

func (e wikiLinkExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&wikiLinkInlineParser{}, 195),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&wikiLinkHTMLRenderer{policy: e.policy}, 195),
	))
}
