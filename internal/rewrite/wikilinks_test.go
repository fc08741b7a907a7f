package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/apexmd/apex/internal/rewrite"
)

func TestParseWikiLinkPlain(t *testing.T) {
	wl := rewrite.ParseWikiLink("Home Page")
	assert.Equal(t, "Home Page", wl.Target)
	assert.Equal(t, "Home Page", wl.Display)
	assert.Empty(t, wl.Section)
}

func TestParseWikiLinkWithDisplay(t *testing.T) {
	wl := rewrite.ParseWikiLink("Home Page|Home")
	assert.Equal(t, "Home Page", wl.Target)
	assert.Equal(t, "Home", wl.Display)
}

func TestParseWikiLinkWithSection(t *testing.T) {
	wl := rewrite.ParseWikiLink("Home Page#Getting Started")
	assert.Equal(t, "Home Page", wl.Target)
	assert.Equal(t, "Getting Started", wl.Section)
	assert.Equal(t, "Home Page § Getting Started", wl.Display)
}

func TestWikiLinkHrefSpacePolicies(t *testing.T) {
	wl := rewrite.WikiLink{Target: "Home Page"}
	assert.Equal(t, "Home-Page", wl.Href(rewrite.SpaceDash))
	assert.Equal(t, "HomePage", wl.Href(rewrite.SpaceNone))
	assert.Equal(t, "Home_Page", wl.Href(rewrite.SpaceUnderscore))
	assert.Equal(t, "Home%20Page", wl.Href(rewrite.SpacePercent20))
}

func TestWikiLinkHrefWithSection(t *testing.T) {
	wl := rewrite.WikiLink{Target: "Home", Section: "Getting Started"}
	assert.Equal(t, "Home#getting-started", wl.Href(rewrite.SpaceDash))
}

func TestFindWikiLinks(t *testing.T) {
	start, end, inner, ok := rewrite.FindWikiLinks("see [[Target|Label]] here", 0)
	assert.True(t, ok)
	assert.Equal(t, "Target|Label", inner)
	assert.Equal(t, "[[Target|Label]]", "see [[Target|Label]] here"[start:end])
}

func TestFindWikiLinksSkipsMultilineSpans(t *testing.T) {
	_, _, _, ok := rewrite.FindWikiLinks("a [[broken\nspan]] b", 0)
	assert.False(t, ok)
}

func TestFindWikiLinksNoneFound(t *testing.T) {
	_, _, _, ok := rewrite.FindWikiLinks("no links here", 0)
	assert.False(t, ok)
}
