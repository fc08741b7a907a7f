package metadata_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apexmd/apex/internal/metadata"
)

func TestExtractYAML(t *testing.T) {
	source := []byte("---\ntitle: Hello World\nauthor: Ada\n---\nBody text.\n")
	store, body := metadata.Extract(source)
	require.Equal(t, 2, store.Len())

	title, ok := store.Get("title")
	require.True(t, ok)
	assert.Equal(t, "Hello World", title)
	assert.Equal(t, "Body text.\n", string(body))
}

func TestExtractMMD(t *testing.T) {
	source := []byte("Title: Hello World\nAuthor: Ada Lovelace\n  continued\n\nBody.\n")
	store, body := metadata.Extract(source)
	require.Equal(t, 2, store.Len())

	author, ok := store.Get("author")
	require.True(t, ok)
	assert.Equal(t, "Ada Lovelace continued", author)
	assert.Equal(t, "Body.\n", string(body))
}

func TestExtractPandoc(t *testing.T) {
	source := []byte("% My Title\n% Jane Doe\n% 2024-01-01\n\nBody.\n")
	store, body := metadata.Extract(source)

	title, _ := store.Get("title")
	author, _ := store.Get("author")
	assert.Equal(t, "My Title", title)
	assert.Equal(t, "Jane Doe", author)
	assert.Equal(t, "Body.\n", string(body))
}

func TestExtractNoMetadata(t *testing.T) {
	source := []byte("Just a paragraph.\n")
	store, body := metadata.Extract(source)
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, source, body)
}

func TestSubstituteBasic(t *testing.T) {
	store := metadata.NewStore()
	store.Set("title", "hello world")

	out := metadata.Substitute([]byte("<h1>[%title]</h1>"), store)
	assert.Equal(t, "<h1>hello world</h1>", string(out))
}

func TestSubstituteTransforms(t *testing.T) {
	store := metadata.NewStore()
	store.Set("title", "hello world")

	out := metadata.Substitute([]byte("[%title:upper]"), store)
	assert.Equal(t, "HELLO WORLD", string(out))
}

func TestSubstituteRegexReplace(t *testing.T) {
	store := metadata.NewStore()
	store.Set("slug", "Hello World")

	out := metadata.Substitute([]byte("[%slug:replace(regex:\\s+,-)]"), store)
	assert.Equal(t, "Hello-World", string(out))
}

func TestSubstituteUnknownKeyLeftLiteral(t *testing.T) {
	store := metadata.NewStore()
	out := metadata.Substitute([]byte("[%missing]"), store)
	assert.Equal(t, "[%missing]", string(out))
}

func TestSubstituteUnterminatedLeftLiteral(t *testing.T) {
	store := metadata.NewStore()
	store.Set("title", "x")
	out := metadata.Substitute([]byte("text [%title"), store)
	assert.Equal(t, "text [%title", string(out))
}
