// Package preprocess runs the ordered, text-level passes that rewrite
// Markdown source before it ever reaches the parser: metadata extraction,
// attribute-list definitions, abbreviations, file inclusion, special
// markers, inline footnotes, highlight marks, relaxed tables, definition
// lists, HTML-with-markdown re-entry, and Critic Markup.
//
// Every stage is grounded on the C preprocessor of the same name under
// original_source/src/extensions/ and follows the same discipline: a stage
// takes ownership of its input and returns a fresh slice, and malformed or
// unterminated syntax is left as literal text rather than raising an error
// (see §7 of the expanded specification — a pipeline stage never panics on
// user input).
package preprocess

import (
	"github.com/apexmd/apex/internal/metadata"
	"github.com/apexmd/apex/pkg/interfaces"
)

// CriticMode selects how Critic Markup resolves.
type CriticMode int

const (
	CriticMarkup CriticMode = iota
	CriticAccept
	CriticReject
)

// Options carries the subset of apex.Options each stage needs, expressed
// without importing the root package (which imports this one) to avoid a
// cycle.
type Options struct {
	IncludeDepth    int
	EnableALD       bool
	EnableAbbrevs   bool
	EnableIncludes  bool
	EnableMarkers   bool
	EnableFootnotes bool
	EnableHighlight bool
	RelaxedTables   bool
	DefinitionList  bool
	HTMLMarkdown    bool
	CriticMode      CriticMode
	EnableCritic    bool

	// ResolveInclude loads the content addressed by an inclusion path; nil
	// disables file inclusion even when EnableIncludes is set.
	ResolveInclude func(path string) ([]byte, error)

	// ConvertMarkdown renders a Markdown fragment to HTML; used by the
	// HTML-with-markdown stage to re-enter the pipeline for
	// `markdown="1|block|span"` content. nil disables that stage even
	// when HTMLMarkdown is set.
	ConvertMarkdown func(src []byte) ([]byte, error)
}

// Context is mutable state threaded through every stage: the populated
// metadata store, any extracted ALDs, and any abbreviation definitions.
type Context struct {
	Meta   *metadata.Store
	ALDs   map[string]string
	Abbrev map[string]string
	Logger interfaces.Logger
}

// NewContext returns an empty, ready-to-use Context.
func NewContext() *Context {
	return &Context{
		Meta:   metadata.NewStore(),
		ALDs:   make(map[string]string),
		Abbrev: make(map[string]string),
	}
}

// Stage is one preprocessing pass.
type Stage func(in []byte, opts Options, ctx *Context) ([]byte, error)

// Chain is the fixed, spec-ordered sequence of stages.
type Chain struct {
	stages []namedStage
}

type namedStage struct {
	name string
	fn   Stage
	on   func(Options) bool
}

// DefaultChain returns the ten-stage chain in the order mandated by the
// expanded specification §4.4. Metadata extraction is handled by the
// caller before the chain runs (internal/metadata.Extract), since it needs
// to return a Store alongside the body rather than fitting the
// Stage(in, opts, ctx) shape; every other stage below is part of the
// chain.
func DefaultChain() *Chain {
	return &Chain{stages: []namedStage{
		{"ald", ExtractALDs, func(o Options) bool { return o.EnableALD }},
		{"abbreviations", ExtractAbbreviations, func(o Options) bool { return o.EnableAbbrevs }},
		{"includes", ResolveIncludes, func(o Options) bool { return o.EnableIncludes }},
		{"markers", ApplyMarkers, func(o Options) bool { return o.EnableMarkers }},
		{"footnotes", ApplyInlineFootnotes, func(o Options) bool { return o.EnableFootnotes }},
		{"highlight", ApplyHighlightMarks, func(o Options) bool { return o.EnableHighlight }},
		{"relaxed-tables", RelaxTables, func(o Options) bool { return o.RelaxedTables }},
		{"definition-lists", ConvertDefinitionLists, func(o Options) bool { return o.DefinitionList }},
		{"html-markdown", ProcessHTMLMarkdown, func(o Options) bool { return o.HTMLMarkdown }},
		{"critic", ApplyCriticMarkup, func(o Options) bool { return o.EnableCritic }},
	}}
}

// Run executes every enabled stage in order, logging a trace entry per
// stage when a logger is present on ctx.
func (c *Chain) Run(in []byte, opts Options, ctx *Context) ([]byte, error) {
	out := in
	for _, stage := range c.stages {
		if !stage.on(opts) {
			continue
		}
		next, err := stage.fn(out, opts, ctx)
		if err != nil {
			if ctx.Logger != nil {
				ctx.Logger.Warn("preprocess.stage_error", "stage", stage.name, "error", err.Error())
			}
			continue
		}
		out = next
	}
	return out, nil
}
