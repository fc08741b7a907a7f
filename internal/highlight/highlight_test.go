package highlight_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/apexmd/apex/internal/highlight"
)

func TestHighlightKnownLanguageReturnsOK(t *testing.T) {
	h := highlight.New()
	out, ok := h.Highlight("func main() {}", "go")
	assert.True(t, ok)
	assert.Contains(t, out, "func")
}

func TestHighlightUnknownLanguageFallsBack(t *testing.T) {
	h := highlight.New()
	out, ok := h.Highlight("plain text", "not-a-real-language")
	assert.False(t, ok)
	assert.Contains(t, out, "plain text")
}
