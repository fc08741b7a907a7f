// Package apex is a Markdown-to-HTML processor unifying CommonMark, GFM,
// MultiMarkdown, Kramdown, and Pandoc-ish extensions behind a single
// options-driven pipeline. Convert is the library's primary entry point;
// WrapDocument and PrettyPrint expose the document-wrapper and
// pretty-printer stages standalone for callers assembling fragments from
// elsewhere.
package apex

import (
	"github.com/apexmd/apex/internal/docwrap"
	"github.com/apexmd/apex/internal/parserx/ext"
	"github.com/apexmd/apex/internal/pluginhost"
	"github.com/apexmd/apex/internal/postprocess"
	"github.com/apexmd/apex/internal/preprocess"
	"github.com/apexmd/apex/internal/rewrite"
	"github.com/apexmd/apex/pkg/interfaces"
)

// Mode selects a named feature preset, the Apex analogue of the dialects
// §1 says the pipeline unifies. A mode only supplies defaults: any field
// set explicitly on the Options value returned by ForMode can still be
// overridden by the caller before passing it to Convert.
type Mode int

const (
	// ModeCommonMark enables only stock CommonMark/GFM behavior.
	ModeCommonMark Mode = iota
	// ModeGFM adds tables, strikethrough, autolinks, and task lists.
	ModeGFM
	// ModeMultiMarkdown enables tables, strikethrough, autolinks, and
	// footnotes plus MultiMarkdown's inline footnotes, abbreviations,
	// includes, critic markup, and MMD-style header IDs. Linkify and task
	// lists stay off.
	ModeMultiMarkdown
	// ModeKramdown adds IAL/ALD attribute attachment, definition lists,
	// and Kramdown-flavored header IDs.
	ModeKramdown
	// ModeFull enables every Apex feature.
	ModeFull
)

// Options is the frozen configuration for one Convert call. The zero
// value is ModeCommonMark-equivalent (every optional feature off); use
// DefaultOptions or ForMode to start from a sensible preset.
type Options struct {
	// Mode is informational only; ForMode is what actually seeds features.
	Mode Mode

	// Preprocessor toggles (§4.4).
	EnableALD       bool
	EnableAbbrevs   bool
	EnableIncludes  bool
	EnableMarkers   bool
	EnableFootnotes bool
	EnableHighlight bool
	RelaxedTables   bool
	DefinitionList  bool
	HTMLMarkdown    bool
	CriticMode      preprocess.CriticMode
	EnableCritic    bool
	IncludeDepth    int
	ResolveInclude  func(path string) ([]byte, error)

	// Parser/extension toggles (§4.5-4.8).
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
	IAL            bool
	Callouts       bool
	WikiLinks      bool
	WikiLinkPolicy ext.WikiLinkSpacePolicy
	HeaderIDFormat rewrite.IDFormat
	HeaderAnchors  bool

	// SyntaxHighlight enables the chroma-backed external-tools bridge for
	// fenced code blocks; HighlightStyle selects a chroma style name
	// ("monokai" when empty).
	SyntaxHighlight bool
	HighlightStyle  string

	// Safety.
	SafeMode bool // disables goldmark.WithUnsafe and sanitizes rendered output

	// Shortcode host (§4.14).
	EnableShortcodes bool
	ShortcodeOpts    interfaces.ShortcodeProcessOptions

	// Post-processor toggles (§4.9-§4.11).
	TOC              bool
	Standalone       bool
	PrettyPrint      bool
	AutoMedia        bool
	ImageCaptions    bool
	QuoteLanguage    string
	BaseHeaderLevel  int
	ARIA             bool
	HRPageBreak      bool
	MediaSearchPaths []string
	DocWrap          docwrap.Options

	// Plugin host (§4.12).
	Plugins        []pluginhost.Plugin
	PluginsFromEnv bool

	// Logging.
	LoggerProvider interfaces.LoggerProvider
}

// DefaultOptions is equivalent to ForMode(ModeGFM): CommonMark plus the
// GFM table stack, which is the dialect most Markdown users expect by
// default.
func DefaultOptions() *Options {
	return ForMode(ModeGFM)
}

// ForMode returns a preset Options value for mode. Every preset leaves
// Standalone and PrettyPrint off; ModeFull is the only preset that turns on
// the plugin host (PluginsFromEnv).
func ForMode(mode Mode) *Options {
	opts := &Options{
		Mode:           mode,
		IncludeDepth:   10,
		HeaderIDFormat: rewrite.FormatGFM,
		WikiLinkPolicy: rewrite.SpaceDash,
		EnableMarkers:  true,
	}

	switch mode {
	case ModeCommonMark:
		// leaves every optional feature off
	case ModeGFM:
		opts.Tables = true
		opts.Strikethrough = true
		opts.Autolink = true
		opts.Linkify = true
		opts.TaskList = true
		opts.Footnote = true
	case ModeMultiMarkdown:
		opts.Tables = true
		opts.Strikethrough = true
		opts.Autolink = true
		opts.Footnote = true
		opts.EnableFootnotes = true
		opts.EnableAbbrevs = true
		opts.EnableIncludes = true
		opts.EnableCritic = true
		opts.HeaderIDFormat = rewrite.FormatMMD
	case ModeKramdown:
		opts.Tables = true
		opts.AdvancedTables = true
		opts.IAL = true
		opts.EnableALD = true
		opts.DefinitionList = true
		opts.Callouts = true
		opts.HeaderIDFormat = rewrite.FormatKramdown
	case ModeFull:
		opts.Tables = true
		opts.Strikethrough = true
		opts.Autolink = true
		opts.Linkify = true
		opts.TaskList = true
		opts.Footnote = true
		opts.Emoji = true
		opts.Math = true
		opts.AdvancedTables = true
		opts.IAL = true
		opts.Callouts = true
		opts.WikiLinks = true
		opts.EnableALD = true
		opts.EnableAbbrevs = true
		opts.EnableIncludes = true
		opts.EnableFootnotes = true
		opts.EnableHighlight = true
		opts.RelaxedTables = true
		opts.DefinitionList = true
		opts.HTMLMarkdown = true
		opts.EnableCritic = true
		opts.EnableShortcodes = true
		opts.TOC = true
		opts.HeaderAnchors = true
		opts.AutoMedia = true
		opts.ImageCaptions = true
		opts.ARIA = true
		opts.HRPageBreak = true
		opts.SyntaxHighlight = true
		opts.PluginsFromEnv = true
		opts.HeaderIDFormat = rewrite.FormatKramdown
	}
	return opts
}
