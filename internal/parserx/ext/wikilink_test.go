package ext_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yuin/goldmark"

	"github.com/apexmd/apex/internal/parserx/ext"
	"github.com/apexmd/apex/internal/rewrite"
)

func render(t *testing.T, md goldmark.Markdown, source string) string {
	t.Helper()
	var buf bytes.Buffer
	assert.NoError(t, md.Convert([]byte(source), &buf))
	return buf.String()
}

func TestWikiLinkPlainTarget(t *testing.T) {
	md := goldmark.New(goldmark.WithExtensions(ext.WikiLink(rewrite.SpaceDash)))
	out := render(t, md, "See [[Getting Started]] for more.\n")
	assert.Contains(t, out, `<a class="wikilink" href="Getting-Started">Getting Started</a>`)
}

func TestWikiLinkWithDisplayText(t *testing.T) {
	md := goldmark.New(goldmark.WithExtensions(ext.WikiLink(rewrite.SpaceDash)))
	out := render(t, md, "See [[Getting Started|here]].\n")
	assert.Contains(t, out, `href="Getting-Started">here</a>`)
}

func TestWikiLinkLeavesOrdinaryBracketsAlone(t *testing.T) {
	md := goldmark.New(goldmark.WithExtensions(ext.WikiLink(rewrite.SpaceDash)))
	out := render(t, md, "A single [bracket] stays untouched.\n")
	assert.Contains(t, out, "[bracket]")
	assert.NotContains(t, out, "wikilink")
}
