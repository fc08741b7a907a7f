package ext_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yuin/goldmark"

	"github.com/apexmd/apex/internal/parserx/ext"
)

type stubHighlighter struct{}

func (stubHighlighter) Highlight(code, lang string) (string, bool) {
	if lang == "" {
		return "", false
	}
	return `<pre class="chroma"><code>` + strings.ToUpper(code) + `</code></pre>`, true
}

func TestCodeHighlightDelegatesToHighlighter(t *testing.T) {
	md := goldmark.New(goldmark.WithExtensions(ext.CodeHighlight(stubHighlighter{})))
	out := render(t, md, "```go\nfunc f() {}\n```\n")
	assert.Contains(t, out, `<pre class="chroma">`)
	assert.Contains(t, out, "FUNC F() {}")
}

func TestCodeHighlightFallsBackWhenUnsupported(t *testing.T) {
	md := goldmark.New(goldmark.WithExtensions(ext.CodeHighlight(stubHighlighter{})))
	out := render(t, md, "```\nplain block\n```\n")
	assert.Contains(t, out, "<pre><code>")
	assert.Contains(t, out, "plain block")
}
