package ext_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/util"

	"github.com/apexmd/apex/internal/parserx/ext"
	"github.com/apexmd/apex/internal/rewrite"
)

func newHeaderIDMarkdown(format rewrite.IDFormat) goldmark.Markdown {
	return goldmark.New(goldmark.WithParserOptions(
		parser.WithASTTransformers(util.Prioritized(ext.NewHeaderIDTransformer(format), 100)),
	))
}

func TestHeaderIDAutoSlug(t *testing.T) {
	md := newHeaderIDMarkdown(rewrite.FormatGFM)
	out := render(t, md, "## Getting Started\n")
	assert.Contains(t, out, `id="getting-started"`)
}

func TestHeaderIDManualSuffixKramdown(t *testing.T) {
	md := newHeaderIDMarkdown(rewrite.FormatKramdown)
	out := render(t, md, "## Introduction {#intro}\n")
	assert.Contains(t, out, `id="intro"`)
	assert.Contains(t, out, ">Introduction</h2>")
}

func TestHeaderIDDisambiguatesDuplicates(t *testing.T) {
	md := newHeaderIDMarkdown(rewrite.FormatGFM)
	out := render(t, md, "## Intro\n\n## Intro\n")
	assert.Contains(t, out, `id="intro"`)
	assert.Contains(t, out, `id="intro-1"`)
}
