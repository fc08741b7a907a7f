package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/apexmd/apex/internal/rewrite"
)

func TestParseAttrList(t *testing.T) {
	attrs := rewrite.ParseAttrList(`#intro .note .wide data-x="a b" key=value`)
	assert.Equal(t, "intro", attrs["id"])
	assert.Equal(t, "note wide", attrs["class"])
	assert.Equal(t, "a b", attrs["data-x"])
	assert.Equal(t, "value", attrs["key"])
}

func TestParseAttrListIgnoresUnrecognizedTokens(t *testing.T) {
	attrs := rewrite.ParseAttrList(`just some words`)
	assert.Empty(t, attrs)
}

func TestResolveIALExpandsNamedReference(t *testing.T) {
	alds := map[string]string{"warn": ".callout #w1"}
	attrs := rewrite.ResolveIAL("warn", alds)
	assert.Equal(t, "w1", attrs["id"])
	assert.Equal(t, "callout", attrs["class"])
}

func TestResolveIALParsesInlineBody(t *testing.T) {
	attrs := rewrite.ResolveIAL("#direct", map[string]string{})
	assert.Equal(t, "direct", attrs["id"])
}
