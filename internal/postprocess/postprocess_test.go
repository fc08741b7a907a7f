package postprocess_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apexmd/apex/internal/metadata"
	"github.com/apexmd/apex/internal/postprocess"
)

func TestHeaderIDsInjectsSlugAndDisambiguates(t *testing.T) {
	html := []byte("<h2>Getting Started</h2><h2>Getting Started</h2>")
	out, err := postprocess.HeaderIDs(html, postprocess.Options{})
	require.NoError(t, err)
	assert.Contains(t, string(out), `id="getting-started"`)
	assert.Contains(t, string(out), `id="getting-started-1"`)
}

func TestHeaderIDsSkipsExistingID(t *testing.T) {
	html := []byte(`<h2 id="manual">Getting Started</h2>`)
	out, err := postprocess.HeaderIDs(html, postprocess.Options{})
	require.NoError(t, err)
	assert.Equal(t, string(html), string(out))
}

func TestTOCExpansionBuildsNestedList(t *testing.T) {
	html := []byte(`<h1 id="intro">Intro</h1><h2 id="setup">Setup</h2><!--TOC-->`)
	out, err := postprocess.TOCExpansion(html, postprocess.Options{TOC: true})
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, `<nav class="toc">`)
	assert.Contains(t, s, `<a href="#intro">Intro</a>`)
	assert.Contains(t, s, `<a href="#setup">Setup</a>`)
}

func TestTOCExpansionHonorsPandocRange(t *testing.T) {
	html := []byte(`<h1 id="a">A</h1><h2 id="b">B</h2><h3 id="c">C</h3>{{TOC:2-2}}`)
	out, err := postprocess.TOCExpansion(html, postprocess.Options{TOC: true})
	require.NoError(t, err)
	s := string(out)
	assert.NotContains(t, s, `href="#a"`)
	assert.Contains(t, s, `href="#b"`)
	assert.NotContains(t, s, `href="#c"`)
}

func TestMetadataSubstitutionDelegatesToMetadataPackage(t *testing.T) {
	store := metadata.NewStore()
	store.Set("title", "Hello")
	out, err := postprocess.MetadataSubstitution([]byte("<h1>[%title]</h1>"), postprocess.Options{Metadata: store})
	require.NoError(t, err)
	assert.Equal(t, "<h1>Hello</h1>", string(out))
}

func TestAbbreviationWrappingWrapsWholeWordOnly(t *testing.T) {
	defs := map[string]string{"HTML": "HyperText Markup Language"}
	out, err := postprocess.AbbreviationWrapping([]byte("<p>HTML and XHTML</p>"), postprocess.Options{AbbrevDefinitions: defs})
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, `<abbr title="HyperText Markup Language">HTML</abbr> and XHTML`)
}

func TestAbbreviationWrappingSkipsCodeBlocks(t *testing.T) {
	defs := map[string]string{"ID": "Identifier"}
	out, err := postprocess.AbbreviationWrapping([]byte("<pre><code>ID</code></pre><p>ID</p>"), postprocess.Options{AbbrevDefinitions: defs})
	require.NoError(t, err)
	s := string(out)
	assert.Equal(t, "<pre><code>ID</code></pre><p><abbr title=\"Identifier\">ID</abbr></p>", s)
}

func TestTableBlankLineRemovalStripsWhitespaceOnlyLines(t *testing.T) {
	html := []byte("<table><tr><td>a</td></tr>\n   \n<tr><td>b</td></tr></table>")
	out, err := postprocess.TableBlankLineRemoval(html, postprocess.Options{})
	require.NoError(t, err)
	assert.NotContains(t, string(out), "\n   \n")
}

func TestTableSeparatorRowRemovalDropsDashOnlyRow(t *testing.T) {
	html := []byte("<table><tr><th>A</th></tr><tr><td>---</td></tr><tr><td>x</td></tr></table>")
	out, err := postprocess.TableSeparatorRowRemoval(html, postprocess.Options{})
	require.NoError(t, err)
	s := string(out)
	assert.NotContains(t, s, "---")
	assert.Contains(t, s, ">x<")
}

func TestRelaxedTableTheadToTbodyConvertsWhenNoSeparator(t *testing.T) {
	html := []byte("<table><thead><tr><th>a</th><th>b</th></tr></thead><tbody><tr><td>1</td><td>2</td></tr></tbody></table>")
	out, err := postprocess.RelaxedTableTheadToTbody(html, postprocess.Options{})
	require.NoError(t, err)
	s := string(out)
	assert.NotContains(t, s, "<thead>")
	assert.Contains(t, s, "<td>a</td><td>b</td>")
}

func TestRelaxedTableTheadToTbodyDropsAllEmptyHeader(t *testing.T) {
	html := []byte("<table><thead><tr><th></th><th> </th></tr></thead><tbody><tr><td>1</td></tr></tbody></table>")
	out, err := postprocess.RelaxedTableTheadToTbody(html, postprocess.Options{})
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<th")
}

func TestBaseHeaderLevelShiftClampsAtH6(t *testing.T) {
	out, err := postprocess.BaseHeaderLevelShift([]byte("<h5>X</h5></h5>"), postprocess.Options{BaseHeaderLevel: 3})
	require.NoError(t, err)
	assert.Contains(t, string(out), "<h6>X</h6></h6>")
}

func TestBaseHeaderLevelShiftNoopWhenUnset(t *testing.T) {
	html := []byte("<h2>X</h2>")
	out, err := postprocess.BaseHeaderLevelShift(html, postprocess.Options{})
	require.NoError(t, err)
	assert.Equal(t, string(html), string(out))
}

func TestQuoteLanguageAdjustmentRemapsToGuillemets(t *testing.T) {
	out, err := postprocess.QuoteLanguageAdjustment([]byte("<p>“Bonjour”</p>"), postprocess.Options{QuoteLanguage: "fr"})
	require.NoError(t, err)
	assert.Contains(t, string(out), "« Bonjour »")
}

func TestImageCaptionWrappingUsesExplicitCaption(t *testing.T) {
	out, err := postprocess.ImageCaptionWrapping([]byte(`<img src="a.png" alt="A" caption="A figure">`), postprocess.Options{ImageCaptions: true})
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, "<figure>")
	assert.Contains(t, s, "<figcaption>A figure</figcaption>")
}

func TestHRPageBreakSubstitutesMarker(t *testing.T) {
	out, err := postprocess.HRPageBreak([]byte(`<hr>{pagebreak}`), postprocess.Options{HRPageBreak: true})
	require.NoError(t, err)
	assert.Contains(t, string(out), "page-break-after")
}

func TestARIALabelsLinksTableToFigcaptionWithinSameFigure(t *testing.T) {
	html := []byte(`<figure class="table-figure"><table><tr><td>1</td></tr></table><figcaption>Caption</figcaption></figure>`)
	out, err := postprocess.ARIALabels(html, postprocess.Options{ARIA: true})
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, `role="table"`)
	assert.Contains(t, s, `aria-describedby=`)
	assert.Contains(t, s, `role="figure"`)
}

func TestDefaultChainRunsAllStagesInOrder(t *testing.T) {
	chain := postprocess.DefaultChain()
	html := []byte("<h1>Title</h1><p>Body</p>")
	out, err := chain.Run(html, postprocess.Options{})
	require.NoError(t, err)
	assert.Contains(t, string(out), `id="title"`)
}
