package sanitize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/apexmd/apex/internal/sanitize"
)

func TestSanitizeStripsScriptTags(t *testing.T) {
	p := sanitize.New()
	out := p.Sanitize(`<p>hi</p><script>alert(1)</script>`)
	assert.Contains(t, out, "<p>hi</p>")
	assert.NotContains(t, out, "<script>")
}

func TestSanitizeAllowsApexGeneratedMarkup(t *testing.T) {
	p := sanitize.New()
	in := `<figure class="table-figure"><table data-caption="x"><tr><td rowspan="2">a</td></tr></table><figcaption id="c">x</figcaption></figure>`
	out := p.Sanitize(in)
	assert.Contains(t, out, `class="table-figure"`)
	assert.Contains(t, out, `rowspan="2"`)
	assert.Contains(t, out, `id="c"`)
}

func TestSanitizeBytesMatchesSanitize(t *testing.T) {
	p := sanitize.New()
	in := []byte(`<p onclick="evil()">text</p>`)
	out := p.SanitizeBytes(in)
	assert.NotContains(t, string(out), "onclick")
	assert.Contains(t, string(out), "text")
}
