// Package inject implements Apex's attribute injector: the component that
// decides how special node-level attributes (data-remove,
// data-apex-replace-video/-picture, data-caption, and the ordinary IAL
// id/class/key=value set) reach the rendered HTML.
//
// Design Note 9 of the specification offers two admissible strategies —
// render-hook attribute flushing, or post-render structural/fingerprint
// matching. Apex takes the recommended render-hook strategy for every
// tree-owned node kind it controls (§4.8): headings via the
// parserx/ext.HeaderIDTransformer, and here, images/tables via custom
// NodeRenderers that consult goldmark's native attribute bag. The
// structural fallback (MatchAndInject, in match.go) is kept narrowly for
// the one case with no AST to hang attributes on: markdown="span"
// re-injection into content that already arrived as rendered HTML.
package inject

import (
	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Extender registers the attribute-injection AST transformer and the
// image/table NodeRenderer overrides onto a goldmark.Markdown instance.
// It is attached alongside the rest of internal/parserx/ext's extensions.
var Extender goldmark.Extender = injectExtension{}

type injectExtension struct{}

func (injectExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(removeTransformer{}, 10),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&mediaRenderer{}, 10),
		util.Prioritized(&tableFigureRenderer{}, 10),
	))
}

// removeTransformer deletes every node whose attribute bag carries
// data-remove="true", run as an ASTTransformer rather than a render-time
// skip so removed nodes never occupy a slot in sibling ordering the
// renderer has to reason about.
type removeTransformer struct{}

func (removeTransformer) Transform(doc *gast.Document, _ text.Reader, _ parser.Context) {
	var toRemove []gast.Node
	gast.Walk(doc, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering || n.Parent() == nil {
			return gast.WalkContinue, nil
		}
		if v, ok := n.AttributeString("data-remove"); ok {
			if s, ok := v.(string); ok && s == "true" {
				toRemove = append(toRemove, n)
			}
		}
		return gast.WalkContinue, nil
	})
	for _, n := range toRemove {
		if n.Parent() != nil {
			n.Parent().RemoveChild(n.Parent(), n)
		}
	}
}

// mediaRenderer overrides ast.Image rendering to honor
// data-apex-replace-video/-picture, rewriting the element into a <video>
// or <picture> shell around the same source instead of an <img>.
type mediaRenderer struct{}

func (r *mediaRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(gast.KindImage, r.render)
}

func (r *mediaRenderer) render(w util.BufWriter, source []byte, n gast.Node, entering bool) (gast.WalkStatus, error) {
	if !entering {
		return gast.WalkContinue, nil
	}
	img := n.(*gast.Image)
	src := string(img.Destination)
	alt := string(extractAltText(img, source))

	if _, ok := img.AttributeString("data-apex-replace-video"); ok {
		w.WriteString(`<video controls src="`)
		w.WriteString(src)
		w.WriteString(`"></video>`)
		return gast.WalkSkipChildren, nil
	}
	if _, ok := img.AttributeString("data-apex-replace-picture"); ok {
		w.WriteString(`<picture><img src="`)
		w.WriteString(src)
		w.WriteString(`" alt="`)
		w.WriteString(alt)
		w.WriteString(`"></picture>`)
		return gast.WalkSkipChildren, nil
	}

	w.WriteString(`<img src="`)
	w.WriteString(src)
	w.WriteString(`" alt="`)
	w.WriteString(alt)
	w.WriteString(`"`)
	writeExtraAttrs(w, img, "src", "alt")
	w.WriteString(`>`)
	return gast.WalkSkipChildren, nil
}

func extractAltText(n gast.Node, source []byte) []byte {
	var out []byte
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*gast.Text); ok {
			out = append(out, t.Segment.Value(source)...)
		}
	}
	return out
}

// tableFigureRenderer writes only the outer <table> tags of a table node:
// a plain "<table>" when no data-caption attribute is set, and
// <figure class="table-figure"><figcaption>caption</figcaption><table>
// ... </table></figure> when it is. Table attributes are not written; the
// header, rows and cells are rendered by goldmark's own table renderers.
type tableFigureRenderer struct{}

func (r *tableFigureRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(east.KindTable, r.render)
}

func (r *tableFigureRenderer) render(w util.BufWriter, _ []byte, n gast.Node, entering bool) (gast.WalkStatus, error) {
	table := n.(*east.Table)
	caption, hasCaption := table.AttributeString("data-caption")

	if !hasCaption {
		if entering {
			w.WriteString("<table>")
		} else {
			w.WriteString("</table>")
		}
		return gast.WalkContinue, nil
	}

	if entering {
		w.WriteString(`<figure class="table-figure"><figcaption>`)
		if s, ok := caption.(string); ok {
			w.WriteString(s)
		}
		w.WriteString("</figcaption><table>")
	} else {
		w.WriteString("</table></figure>")
	}
	return gast.WalkContinue, nil
}

func writeExtraAttrs(w util.BufWriter, n gast.Node, skip ...string) {
	attrs := n.Attributes()
	for _, attr := range attrs {
		name := string(attr.Name)
		if containsStr(skip, name) || name == "data-apex-replace-video" || name == "data-apex-replace-picture" {
			continue
		}
		if s, ok := attr.Value.(string); ok {
			w.WriteString(` `)
			w.WriteString(name)
			w.WriteString(`="`)
			w.WriteString(s)
			w.WriteString(`"`)
		}
	}
}

func containsStr(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
