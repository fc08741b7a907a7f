package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/apexmd/apex/internal/rewrite"
)

func TestManualHeaderIDKramdown(t *testing.T) {
	id, rest, ok := rewrite.ManualHeaderID("Introduction {#intro}", rewrite.FormatKramdown)
	assert.True(t, ok)
	assert.Equal(t, "intro", id)
	assert.Equal(t, "Introduction", rest)
}

func TestManualHeaderIDMMD(t *testing.T) {
	id, rest, ok := rewrite.ManualHeaderID("Introduction [intro]", rewrite.FormatMMD)
	assert.True(t, ok)
	assert.Equal(t, "intro", id)
	assert.Equal(t, "Introduction", rest)
}

func TestManualHeaderIDAbsent(t *testing.T) {
	_, rest, ok := rewrite.ManualHeaderID("Plain Heading", rewrite.FormatKramdown)
	assert.False(t, ok)
	assert.Equal(t, "Plain Heading", rest)
}

func TestHeadingTextConcatenatesTextAndCodeSpan(t *testing.T) {
	source := []byte("Use `git commit` wisely")
	heading := ast.NewHeading(1)

	textNode := ast.NewText()
	textNode.Segment = text.NewSegment(0, 4) // "Use "
	heading.AppendChild(heading, textNode)

	code := ast.NewCodeSpan()
	codeText := ast.NewText()
	codeText.Segment = text.NewSegment(5, 15) // "git commit"
	code.AppendChild(code, codeText)
	heading.AppendChild(heading, code)

	trailing := ast.NewText()
	trailing.Segment = text.NewSegment(15, len(source)) // " wisely"
	heading.AppendChild(heading, trailing)

	assert.Equal(t, "Use git commit wisely", rewrite.HeadingText(heading, source))
}
