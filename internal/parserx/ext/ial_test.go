package ext_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/util"

	"github.com/apexmd/apex/internal/parserx/ext"
)

func newIALMarkdown(alds map[string]string) goldmark.Markdown {
	return goldmark.New(goldmark.WithParserOptions(
		parser.WithASTTransformers(util.Prioritized(ext.NewIALTransformer(alds), 50)),
	))
}

func TestIALTrailingOnHeading(t *testing.T) {
	md := newIALMarkdown(nil)
	out := render(t, md, "## Introduction {#intro .section}\n")
	assert.Contains(t, out, `id="intro"`)
	assert.Contains(t, out, `class="section"`)
	assert.Contains(t, out, ">Introduction</h2>")
}

func TestIALStandaloneAfterBlockquote(t *testing.T) {
	md := newIALMarkdown(nil)
	out := render(t, md, "> A quote.\n\n{: .highlighted #q1}\n")
	assert.Contains(t, out, `class="highlighted"`)
	assert.Contains(t, out, `id="q1"`)
	assert.NotContains(t, out, "{: .highlighted")
}

func TestIALNamedReference(t *testing.T) {
	alds := map[string]string{"warn": ".callout #w1"}
	md := newIALMarkdown(alds)
	out := render(t, md, "Some paragraph. {:warn}\n")
	assert.Contains(t, out, `class="callout"`)
	assert.Contains(t, out, `id="w1"`)
}

func TestIALIgnoresOrdinaryBraces(t *testing.T) {
	md := newIALMarkdown(nil)
	out := render(t, md, "A sentence with {some prose in braces}.\n")
	assert.Contains(t, out, "{some prose in braces}")
}
