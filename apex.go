package apex

import (
	"bytes"
	"context"

	"github.com/apexmd/apex/internal/docwrap"
	"github.com/apexmd/apex/internal/highlight"
	"github.com/apexmd/apex/internal/inject"
	"github.com/apexmd/apex/internal/logging"
	"github.com/apexmd/apex/internal/metadata"
	"github.com/apexmd/apex/internal/parserx"
	"github.com/apexmd/apex/internal/pluginhost"
	"github.com/apexmd/apex/internal/postprocess"
	"github.com/apexmd/apex/internal/preprocess"
	"github.com/apexmd/apex/internal/sanitize"
	"github.com/apexmd/apex/internal/shortcode"
	"github.com/apexmd/apex/internal/util"
	"github.com/apexmd/apex/pkg/interfaces"
)

// version is Apex's library version, bumped by the release process.
const version = "0.1.0"

// Version returns Apex's semantic version string.
func Version() string { return version }

// Convert runs the full pipeline (§2) over source: metadata extraction,
// the plugin host's pre_parse phase, the preprocessor chain (with the
// shortcode host spliced in between file inclusion and marker
// substitution, per §4.14), the CommonMark/GFM engine with Apex's
// extensions, attribute injection, the plugin host's post_render phase,
// and the HTML post-processor chain. A nil opts uses DefaultOptions;
// empty input yields empty output.
func Convert(source []byte, opts *Options) ([]byte, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if len(bytes.TrimSpace(source)) == 0 {
		return []byte{}, nil
	}

	logger := logging.ModuleLogger(opts.LoggerProvider, "")

	store, body := metadata.Extract(source)
	ctx := preprocess.NewContext()
	ctx.Meta = store
	ctx.Logger = logging.PreprocessLogger(opts.LoggerProvider)

	plugins := opts.Plugins
	if opts.PluginsFromEnv {
		plugins = pluginhost.FromEnvironment(plugins)
	}
	host := pluginhost.New(opts.LoggerProvider, plugins)

	body, err := runPlugins(host, pluginhost.PhasePreParse, body)
	if err != nil {
		return nil, err
	}

	body, err = runPreprocessChain(body, opts, ctx, logger)
	if err != nil {
		return nil, err
	}

	md := parserx.New(parserOptionsFor(opts, ctx))
	inject.Extender.Extend(md)

	var rendered bytes.Buffer
	if err := md.Convert(body, &rendered); err != nil {
		return nil, err
	}
	htmlOut := rendered.Bytes()

	htmlOut, err = runPlugins(host, pluginhost.PhasePostRender, htmlOut)
	if err != nil {
		return nil, err
	}

	htmlOut, err = postprocess.DefaultChain().Run(htmlOut, postprocessOptionsFor(opts, ctx))
	if err != nil {
		return nil, err
	}

	if opts.SafeMode {
		htmlOut = sanitize.New().SanitizeBytes(htmlOut)
	}
	return htmlOut, nil
}

// WrapDocument wraps an already-rendered fragment in a complete HTML5
// document shell (§4.11), independent of Convert's Options.Standalone
// flag — useful when a caller assembles the fragment itself.
func WrapDocument(fragment []byte, opts docwrap.Options) []byte {
	return docwrap.Wrap(fragment, opts)
}

// PrettyPrint reflows fragment with two-space indentation (§4.9 stage 12),
// independent of Convert's Options.PrettyPrint flag.
func PrettyPrint(fragment []byte) ([]byte, error) {
	return postprocess.PrettyPrint(fragment, postprocess.Options{PrettyPrint: true})
}

func runPlugins(host *pluginhost.Host, phase pluginhost.Phase, text []byte) ([]byte, error) {
	out, err := host.Run(context.Background(), phase, string(text))
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// runPreprocessChain mirrors internal/preprocess.Chain.Run's stage order
// and error handling (log and keep the prior buffer), but is written out
// explicitly here rather than built from preprocess.DefaultChain so the
// shortcode host (§4.14) can be spliced in between file inclusion and
// marker substitution.
func runPreprocessChain(body []byte, opts *Options, ctx *preprocess.Context, logger interfaces.Logger) ([]byte, error) {
	preOpts := preprocessOptionsFor(opts)

	run := func(name string, enabled bool, fn preprocess.Stage) {
		if !enabled {
			return
		}
		next, err := fn(body, preOpts, ctx)
		if err != nil {
			logger.Warn("preprocess.stage_error", "stage", name, "error", err.Error())
			return
		}
		body = next
	}

	run("ald", opts.EnableALD, preprocess.ExtractALDs)
	run("abbreviations", opts.EnableAbbrevs, preprocess.ExtractAbbreviations)
	run("includes", opts.EnableIncludes, preprocess.ResolveIncludes)

	if opts.EnableShortcodes {
		out, err := runShortcodes(body, opts, logger)
		if err != nil {
			logger.Warn("preprocess.stage_error", "stage", "shortcodes", "error", err.Error())
		} else {
			body = out
		}
	}

	run("markers", opts.EnableMarkers, preprocess.ApplyMarkers)
	run("footnotes", opts.EnableFootnotes, preprocess.ApplyInlineFootnotes)
	run("highlight", opts.EnableHighlight, preprocess.ApplyHighlightMarks)
	run("relaxed-tables", opts.RelaxedTables, preprocess.RelaxTables)
	run("definition-lists", opts.DefinitionList, preprocess.ConvertDefinitionLists)
	run("html-markdown", opts.HTMLMarkdown, preprocess.ProcessHTMLMarkdown)
	run("critic", opts.EnableCritic, preprocess.ApplyCriticMarkup)

	return body, nil
}

// runShortcodes hosts Apex's embedded-block directives ("{{< name >}}").
// A fresh registry/renderer pair is built per call, consistent with §5's
// no-shared-mutable-state rule.
func runShortcodes(body []byte, opts *Options, logger interfaces.Logger) ([]byte, error) {
	validator := shortcode.NewValidator()
	registry := shortcode.NewRegistry(validator)
	if err := shortcode.RegisterBuiltIns(registry, nil); err != nil {
		return body, err
	}
	renderer := shortcode.NewRenderer(registry, validator)
	service := shortcode.NewService(registry, renderer,
		shortcode.WithWordPressSyntax(opts.ShortcodeOpts.EnableWordPress),
		shortcode.WithLogger(logger),
	)

	out, err := service.Process(context.Background(), string(body), opts.ShortcodeOpts)
	if err != nil {
		return body, err
	}
	return []byte(out), nil
}

func preprocessOptionsFor(opts *Options) preprocess.Options {
	return preprocess.Options{
		IncludeDepth:    opts.IncludeDepth,
		EnableALD:       opts.EnableALD,
		EnableAbbrevs:   opts.EnableAbbrevs,
		EnableIncludes:  opts.EnableIncludes,
		EnableMarkers:   opts.EnableMarkers,
		EnableFootnotes: opts.EnableFootnotes,
		EnableHighlight: opts.EnableHighlight,
		RelaxedTables:   opts.RelaxedTables,
		DefinitionList:  opts.DefinitionList,
		HTMLMarkdown:    opts.HTMLMarkdown,
		CriticMode:      opts.CriticMode,
		EnableCritic:    opts.EnableCritic,
		ResolveInclude:  opts.ResolveInclude,
		ConvertMarkdown: func(src []byte) ([]byte, error) {
			return convertFragment(src, opts)
		},
	}
}

// convertFragment re-enters the parser/renderer stage only, for the
// html-markdown preprocessor stage's `markdown="1|block|span"` re-entry
// (§4.4): the fragment already had its own metadata/includes/markers
// resolved by the outer call, so re-running the whole preprocessor chain
// would be redundant and, for includes, unsafe (unbounded recursion).
func convertFragment(src []byte, opts *Options) ([]byte, error) {
	md := parserx.New(parserOptionsFor(opts, preprocess.NewContext()))
	inject.Extender.Extend(md)
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func parserOptionsFor(opts *Options, ctx *preprocess.Context) parserx.Options {
	popts := parserx.Options{
		Tables:         opts.Tables,
		Strikethrough:  opts.Strikethrough,
		Autolink:       opts.Autolink,
		Linkify:        opts.Linkify,
		TaskList:       opts.TaskList,
		Footnote:       opts.Footnote,
		Emoji:          opts.Emoji,
		Math:           opts.Math,
		AdvancedTables: opts.AdvancedTables,
		HardWraps:      opts.HardWraps,
		Unsafe:         !opts.SafeMode,
		HeaderIDFormat: opts.HeaderIDFormat,
		IAL:            opts.IAL,
		// ALDs is cloned so the parser's own attribute resolution can never
		// mutate the Context map preprocessing built (it's also read again
		// by the shortcode-splice path on a later Convert, if the caller
		// reuses opts across calls).
		ALDs:           util.CloneStringMap(ctx.ALDs),
		Callouts:       opts.Callouts,
		WikiLinks:      opts.WikiLinks,
		WikiLinkPolicy: opts.WikiLinkPolicy,
	}
	if opts.SyntaxHighlight {
		popts.Highlighter = highlight.New(highlight.WithStyle(opts.HighlightStyle))
	}
	return popts
}

func postprocessOptionsFor(opts *Options, ctx *preprocess.Context) postprocess.Options {
	return postprocess.Options{
		HeaderAnchors:     opts.HeaderAnchors,
		TOC:               opts.TOC,
		Standalone:        opts.Standalone,
		PrettyPrint:       opts.PrettyPrint,
		AutoMedia:         opts.AutoMedia,
		ImageCaptions:     opts.ImageCaptions,
		QuoteLanguage:     opts.QuoteLanguage,
		BaseHeaderLevel:   opts.BaseHeaderLevel,
		ARIA:              opts.ARIA,
		HRPageBreak:       opts.HRPageBreak,
		AbbrevDefinitions: util.CloneStringMap(ctx.Abbrev),
		Metadata:          ctx.Meta,
		HeaderIDFormat:    int(opts.HeaderIDFormat),
		MediaSearchPaths:  opts.MediaSearchPaths,
		DocWrap:           opts.DocWrap,
	}
}
