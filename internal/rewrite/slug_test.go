package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/apexmd/apex/internal/rewrite"
)

func TestGenerateHeaderIDGFM(t *testing.T) {
	assert.Equal(t, "hello-world", rewrite.GenerateHeaderID("Hello World", rewrite.FormatGFM))
	assert.Equal(t, "cafe-au-lait", rewrite.GenerateHeaderID("Café au Lait", rewrite.FormatGFM))
	assert.Equal(t, "a-b", rewrite.GenerateHeaderID("A!! B", rewrite.FormatGFM))
	assert.Equal(t, "header", rewrite.GenerateHeaderID("!!!", rewrite.FormatGFM))
}

func TestGenerateHeaderIDMMD(t *testing.T) {
	assert.Equal(t, "caféaulait", rewrite.GenerateHeaderID("Café au Lait", rewrite.FormatMMD))
	assert.Equal(t, "already-dashed", rewrite.GenerateHeaderID("already-dashed", rewrite.FormatMMD))
}

func TestGenerateHeaderIDKramdown(t *testing.T) {
	assert.Equal(t, "hello-world", rewrite.GenerateHeaderID("Hello World", rewrite.FormatKramdown))
	assert.Equal(t, "a--b", rewrite.GenerateHeaderID("A. B!", rewrite.FormatKramdown))
}

func TestSlugTableDisambiguates(t *testing.T) {
	table := rewrite.NewSlugTable(rewrite.FormatGFM)
	assert.Equal(t, "intro", table.Assign("Intro", "", ""))
	assert.Equal(t, "intro-1", table.Assign("Intro", "", ""))
	assert.Equal(t, "intro-2", table.Assign("Intro", "", ""))
}

func TestSlugTablePrecedence(t *testing.T) {
	table := rewrite.NewSlugTable(rewrite.FormatGFM)
	assert.Equal(t, "manual-id", table.Assign("Some Heading", "manual-id", "ial-id"))
	assert.Equal(t, "ial-id", table.Assign("Other Heading", "", "ial-id"))
	assert.Equal(t, "some-heading", table.Assign("Some Heading", "", ""))
}
