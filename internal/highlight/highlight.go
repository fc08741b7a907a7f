// Package highlight wraps alecthomas/chroma/v2 as Apex's in-process
// syntax-highlighting collaborator (§4.13), used by the fenced-code
// NodeRenderer when Options.SyntaxHighlight is set.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter renders fenced code blocks to HTML with chroma.
type Highlighter struct {
	style     *chroma.Style
	formatter *html.Formatter
}

// Option configures a Highlighter.
type Option func(*Highlighter)

// WithStyle selects a chroma style by name, falling back to the default
// ("monokai") when the name is unknown.
func WithStyle(name string) Option {
	return func(h *Highlighter) {
		if _, ok := styles.Registry[strings.ToLower(name)]; ok {
			h.style = styles.Get(name)
		}
	}
}

// New constructs a Highlighter using inline styles (no external stylesheet
// dependency), matching the self-contained rendering Apex's document
// wrapper already assumes.
func New(opts ...Option) *Highlighter {
	h := &Highlighter{
		style:     styles.Get("monokai"),
		formatter: html.New(html.WithClasses(false), html.TabWidth(4)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Highlight renders code in lang to a <pre><code>...</code></pre> block
// with inline styling. ok is false when chroma has no lexer for lang and
// the fenced-code renderer should fall back to plain escaped output via
// lexers.Fallback.
func (h *Highlighter) Highlight(code, lang string) (string, bool) {
	lexer := lexers.Get(lang)
	ok := lexer != nil
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", false
	}

	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, iterator); err != nil {
		return "", false
	}
	return b.String(), ok
}
