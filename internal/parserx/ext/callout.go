package ext

import (
	"strings"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/apexmd/apex/internal/rewrite"
)

// Callout recognizes Obsidian-style "> [!TYPE]" blockquote callouts. It
// follows AdvancedTable's approach: an ASTTransformer tags the node with
// attributes, a NodeRenderer override produces the wrapper markup. Unlike
// the table/media overrides in internal/inject, this stays in parserx/ext
// because the detection itself (first-line marker) is tree-shaped, not a
// post-render structural match.
var Callout goldmark.Extender = calloutExtension{}

type calloutExtension struct{}

func (calloutExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		parserPrioritized(&calloutTransformer{}, 200),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&calloutRenderer{}, 50),
	))
}

type calloutTransformer struct{}

func (t *calloutTransformer) Transform(doc *gast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()
	gast.Walk(doc, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		bq, ok := n.(*gast.Blockquote)
		if !ok {
			return gast.WalkContinue, nil
		}
		tagCallout(bq, source)
		return gast.WalkContinue, nil
	})
}

// tagCallout inspects the blockquote's first paragraph; if its first line
// opens with "[!TYPE]", the parsed callout metadata is stashed on the
// blockquote's attribute bag and the marker is stripped from the text so
// it doesn't render twice.
func tagCallout(bq *gast.Blockquote, source []byte) {
	para, ok := bq.FirstChild().(*gast.Paragraph)
	if !ok {
		return
	}
	firstText, ok := para.FirstChild().(*gast.Text)
	if !ok {
		return
	}

	line := string(firstText.Segment.Value(source))
	callout, ok := rewrite.DetectCallout(line)
	if !ok {
		return
	}

	bq.SetAttributeString("data-callout-type", callout.Type)
	bq.SetAttributeString("data-callout-title", callout.Title)
	if callout.Collapsible {
		bq.SetAttributeString("data-callout-collapsible", "true")
		if callout.DefaultOpen {
			bq.SetAttributeString("data-callout-open", "true")
		}
	}

	// Strip the "[!TYPE]..." marker from the rendered line; whatever
	// remains on that line (rare, callouts usually own the whole line)
	// still renders normally.
	trimmedLeft := strings.TrimLeft(line, " \t")
	consumed := len(line) - len(trimmedLeft)
	close := strings.IndexByte(trimmedLeft, ']')
	if close < 0 {
		return
	}
	consumed += close + 1
	rest := trimmedLeft[close+1:]
	if strings.HasPrefix(rest, "+") || strings.HasPrefix(rest, "-") {
		consumed++
	}

	seg := firstText.Segment
	newStart := seg.Start + consumed
	for newStart < seg.Stop && (source[newStart] == ' ' || source[newStart] == '\t') {
		newStart++
	}
	if newStart >= seg.Stop {
		para.RemoveChild(para, firstText)
		return
	}
	firstText.Segment = text.NewSegment(newStart, seg.Stop)
}

type calloutRenderer struct{}

func (r *calloutRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(gast.KindBlockquote, r.render)
}

func (r *calloutRenderer) render(w util.BufWriter, _ []byte, n gast.Node, entering bool) (gast.WalkStatus, error) {
	calloutType, ok := n.AttributeString("data-callout-type")
	typeStr, _ := calloutType.(string)
	if !ok || typeStr == "" {
		if entering {
			w.WriteString("<blockquote>\n")
		} else {
			w.WriteString("</blockquote>\n")
		}
		return gast.WalkContinue, nil
	}

	title, _ := n.AttributeString("data-callout-title")
	titleStr, _ := title.(string)
	if titleStr == "" {
		titleStr = strings.ToUpper(typeStr[:1]) + typeStr[1:]
	}
	_, collapsible := n.AttributeString("data-callout-collapsible")
	_, open := n.AttributeString("data-callout-open")

	if entering {
		if collapsible {
			openAttr := ""
			if open {
				openAttr = " open"
			}
			w.WriteString(`<details class="callout callout-` + typeStr + `"` + openAttr + ">\n")
			w.WriteString("<summary>" + titleStr + "</summary>\n")
			w.WriteString(`<div class="callout-content">` + "\n")
		} else {
			w.WriteString(`<div class="callout callout-` + typeStr + `">` + "\n")
			w.WriteString(`<div class="callout-title">` + titleStr + "</div>\n")
			w.WriteString(`<div class="callout-content">` + "\n")
		}
	} else {
		w.WriteString("</div>\n")
		if collapsible {
			w.WriteString("</details>\n")
		} else {
			w.WriteString("</div>\n")
		}
	}
	return gast.WalkContinue, nil
}
