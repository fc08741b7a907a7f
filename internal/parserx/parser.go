// Package parserx adapts goldmark into Apex's configuration-driven parser,
// the way the teacher's internal/markdown/parser_goldmark.go built a
// goldmark.Markdown from a ParseOptions value.
package parserx

import (
	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/apexmd/apex/internal/parserx/ext"
	"github.com/apexmd/apex/internal/rewrite"
)

// Options is the subset of apex.Options the parser adapter needs.
type Options struct {
	Tables         bool
	Strikethrough  bool
	Autolink       bool
	Linkify        bool
	TaskList       bool
	Footnote       bool
	Emoji          bool
	Math           bool
	AdvancedTables bool
	HardWraps      bool
	Unsafe         bool // html.WithUnsafe(); disabled when SafeMode/Sanitize is on
	AutoHeadingID  bool // only when no custom header-id ASTTransformer is registered
	HeaderIDFormat rewrite.IDFormat
	IAL            bool
	ALDs           map[string]string // named "{:name: attrs}" definitions from preprocess.ExtractALDs
	Callouts       bool
	WikiLinks      bool
	WikiLinkPolicy ext.WikiLinkSpacePolicy
	Highlighter    ext.Highlighter // nil disables chroma-backed fenced-code-block rendering
}

// New builds a goldmark.Markdown instance wired per opts, the Apex
// analogue of the teacher's newGoldmarkEngine. The extenders themselves
// are package-level values, but each builds fresh parser and renderer
// instances when attached, and the header-ID and IAL transformers are
// constructed per call, so no parse state is shared across concurrent
// Convert calls (§5).
func New(opts Options) goldmark.Markdown {
	var extensions []goldmark.Extender
	if opts.Tables || opts.AdvancedTables {
		extensions = append(extensions, extension.Table)
	}
	if opts.Strikethrough {
		extensions = append(extensions, extension.Strikethrough)
	}
	if opts.Autolink || opts.Linkify {
		extensions = append(extensions, extension.Linkify)
	}
	if opts.TaskList {
		extensions = append(extensions, extension.TaskList)
	}
	if opts.Footnote {
		extensions = append(extensions, extension.Footnote)
	}
	if opts.Emoji {
		extensions = append(extensions, emoji.Emoji)
	}
	if opts.Math {
		extensions = append(extensions, ext.Math)
	}
	if opts.AdvancedTables {
		extensions = append(extensions, ext.AdvancedTable)
	}
	if opts.Callouts {
		extensions = append(extensions, ext.Callout)
	}
	if opts.WikiLinks {
		extensions = append(extensions, ext.WikiLink(opts.WikiLinkPolicy))
	}
	if opts.Highlighter != nil {
		extensions = append(extensions, ext.CodeHighlight(opts.Highlighter))
	}

	var transformers []util.PrioritizedValue
	if opts.IAL {
		transformers = append(transformers, util.Prioritized(ext.NewIALTransformer(opts.ALDs), 50))
	}

	var parserOpts []parser.Option
	if opts.AutoHeadingID {
		parserOpts = append(parserOpts, parser.WithAutoHeadingID())
	} else {
		transformers = append(transformers, util.Prioritized(ext.NewHeaderIDTransformer(opts.HeaderIDFormat), 100))
	}
	if len(transformers) > 0 {
		parserOpts = append(parserOpts, parser.WithASTTransformers(transformers...))
	}

	var rendererOpts []renderer.Option
	if opts.Unsafe {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}
	if opts.HardWraps {
		rendererOpts = append(rendererOpts, html.WithHardWraps())
	}

	return goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithParserOptions(parserOpts...),
		goldmark.WithRendererOptions(rendererOpts...),
	)
}
