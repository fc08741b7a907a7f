package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/apexmd/apex/internal/rewrite"
)

func TestDetectCalloutBasic(t *testing.T) {
	c, ok := rewrite.DetectCallout("[!WARNING] Careful now")
	assert.True(t, ok)
	assert.Equal(t, "warning", c.Type)
	assert.Equal(t, "Careful now", c.Title)
	assert.False(t, c.Collapsible)
}

func TestDetectCalloutCollapsible(t *testing.T) {
	open, ok := rewrite.DetectCallout("[!FAQ]+ Expand me")
	assert.True(t, ok)
	assert.Equal(t, "question", open.Type)
	assert.True(t, open.Collapsible)
	assert.True(t, open.DefaultOpen)

	closed, ok := rewrite.DetectCallout("[!BUG]-")
	assert.True(t, ok)
	assert.Equal(t, "bug", closed.Type)
	assert.True(t, closed.Collapsible)
	assert.False(t, closed.DefaultOpen)
	assert.Empty(t, closed.Title)
}

func TestDetectCalloutUnknownKeyword(t *testing.T) {
	_, ok := rewrite.DetectCallout("[!NOTACALLOUT] text")
	assert.False(t, ok)
}

func TestDetectCalloutNotAMarker(t *testing.T) {
	_, ok := rewrite.DetectCallout("Just a regular blockquote.")
	assert.False(t, ok)
}

func TestCalloutHTMLNonCollapsible(t *testing.T) {
	c := rewrite.Callout{Type: "note"}
	html := rewrite.CalloutHTML(c, "<p>body</p>")
	assert.Equal(t, `<div class="callout callout-note"><div class="callout-title">Note</div><div class="callout-content"><p>body</p></div></div>`, html)
}

func TestCalloutHTMLCollapsibleOpen(t *testing.T) {
	c := rewrite.Callout{Type: "tip", Title: "Pro tip", Collapsible: true, DefaultOpen: true}
	html := rewrite.CalloutHTML(c, "<p>body</p>")
	assert.Equal(t, `<details class="callout callout-tip" open><summary>Pro tip</summary><div class="callout-content"><p>body</p></div></details>`, html)
}
