package rewrite

import "strings"

// WikiLinkSpacePolicy controls how spaces in a wiki-link target are encoded
// into the resulting href when no display text narrows it down further.
type WikiLinkSpacePolicy int

const (
	// SpaceDash replaces spaces with "-" (the common static-site default).
	SpaceDash WikiLinkSpacePolicy = iota
	SpaceNone
	SpaceUnderscore
	SpacePercent20
)

// WikiLink is a parsed "[[Target]]", "[[Target|Display]]", or
// "[[Target#Section]]" reference.
type WikiLink struct {
	Target  string
	Section string
	Display string
}

// ParseWikiLink parses the content between "[[" and "]]" (exclusive).
func ParseWikiLink(inner string) WikiLink {
	wl := WikiLink{}
	target := inner
	if pipe := strings.IndexByte(inner, '|'); pipe >= 0 {
		target = inner[:pipe]
		wl.Display = inner[pipe+1:]
	}
	if hash := strings.IndexByte(target, '#'); hash >= 0 {
		wl.Section = target[hash+1:]
		target = target[:hash]
	}
	wl.Target = target
	if wl.Display == "" {
		if wl.Section != "" {
			wl.Display = wl.Target + " § " + wl.Section
		} else {
			wl.Display = wl.Target
		}
	}
	return wl
}

// Href builds the link destination by encoding spaces in the target per
// policy and appending a "#section" fragment derived the same way the
// header-id slug algorithm would, when Section is set.
func (wl WikiLink) Href(policy WikiLinkSpacePolicy) string {
	href := encodeSpaces(wl.Target, policy)
	if wl.Section != "" {
		href += "#" + GenerateHeaderID(wl.Section, FormatGFM)
	}
	return href
}

func encodeSpaces(s string, policy WikiLinkSpacePolicy) string {
	switch policy {
	case SpaceNone:
		return strings.ReplaceAll(s, " ", "")
	case SpaceUnderscore:
		return strings.ReplaceAll(s, " ", "_")
	case SpacePercent20:
		return strings.ReplaceAll(s, " ", "%20")
	default:
		return strings.ReplaceAll(s, " ", "-")
	}
}

// FindWikiLinks scans text for the next "[[...]]" span starting at or
// after offset. It returns the byte range (inclusive start, exclusive end)
// of the full "[[...]]" span and its inner content, or ok=false if none
// remain.
func FindWikiLinks(text string, offset int) (start, end int, inner string, ok bool) {
	for {
		open := strings.Index(text[offset:], "[[")
		if open < 0 {
			return 0, 0, "", false
		}
		open += offset
		close := strings.Index(text[open+2:], "]]")
		if close < 0 {
			return 0, 0, "", false
		}
		close += open + 2
		inner := text[open+2 : close]
		if strings.Contains(inner, "\n") {
			offset = open + 2
			continue
		}
		return open, close + 2, inner, true
	}
}
