package ext

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var stockFootnote = extension.Footnote

// AdvancedFootnote is goldmark's stock footnote extension, re-exported
// under Apex's naming so callers configure it alongside the rest of
// internal/parserx/ext without reaching into goldmark/extension directly.
//
// The stock parser already accepts multi-paragraph footnote bodies
// (anything indented under the "[^id]:" marker); what it does not accept
// is nested block content introduced by Apex's own preprocessing passes
// (definition lists, callouts) inside a footnote body. Rather than forking
// goldmark's footnote block parser, Apex resolves that case one layer
// earlier: internal/preprocess.ApplyInlineFootnotes and
// internal/preprocess.ConvertDefinitionLists both run before the parser
// sees the document, so a footnote body containing a definition list has
// already been flattened to literal HTML by the time this extension's
// parser runs over it.
var AdvancedFootnote goldmark.Extender = footnoteDelegate{}

type footnoteDelegate struct{}

func (footnoteDelegate) Extend(m goldmark.Markdown) {
	stockFootnote.Extend(m)
}
