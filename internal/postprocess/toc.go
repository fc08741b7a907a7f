package postprocess

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// tocMarkerPattern matches either the HTML-comment marker
// "<!--TOC max=N min=N-->" (attributes optional, any order) or the
// MultiMarkdown/Pandoc-style "{{TOC[:lo-hi]}}" marker.
var tocMarkerPattern = regexp.MustCompile(`<!--\s*TOC([^>]*)-->|\{\{\s*TOC(:[0-9]+(?:-[0-9]+)?)?\s*\}\}`)

var tocMaxPattern = regexp.MustCompile(`max\s*=\s*"?(\d+)`)
var tocMinPattern = regexp.MustCompile(`min\s*=\s*"?(\d+)`)

// TOCExpansion scans for TOC markers and replaces each with a generated
// <nav class="toc"> nested list, grounded on
// original_source/src/extensions/toc.c's collect_headers/generate_toc_html/
// parse_toc_marker. Headings are collected from the HTML itself (post-
// render, post header-id injection) rather than the AST, since by this
// point in the chain the tree no longer exists.
func TOCExpansion(html []byte, opts Options) ([]byte, error) {
	if !opts.TOC || !tocMarkerPattern.Match(html) {
		return html, nil
	}

	headings := collectHeadings(html)

	out := tocMarkerPattern.ReplaceAllFunc(html, func(m []byte) []byte {
		min, max := parseTOCMarker(string(m))
		return []byte(generateTOCHTML(headings, min, max))
	})
	return out, nil
}

// parseTOCMarker mirrors parse_toc_marker: a Pandoc-style "{{TOC:2-5}}"
// colon range takes precedence over separately-specified max=/min=
// attributes, matching the original's "colon wins last" control flow.
func parseTOCMarker(marker string) (min, max int) {
	min, max = 1, 6

	if m := tocMaxPattern.FindStringSubmatch(marker); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			max = n
		}
	}
	if m := tocMinPattern.FindStringSubmatch(marker); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			min = n
		}
	}

	if colon := strings.IndexByte(marker, ':'); colon >= 0 {
		rest := strings.TrimSpace(marker[colon+1:])
		rest = strings.TrimSuffix(rest, "}}")
		rest = strings.TrimSuffix(rest, "-->")
		if rest != "" && (rest[0] >= '0' && rest[0] <= '9') {
			parts := strings.SplitN(rest, "-", 2)
			if n, err := strconv.Atoi(parts[0]); err == nil {
				min = n
			}
			if len(parts) == 2 {
				if n, err := strconv.Atoi(parts[1]); err == nil {
					max = n
				}
			}
		}
	}
	return min, max
}

func generateTOCHTML(headings []collectedHeading, min, max int) string {
	var b strings.Builder
	b.WriteString("<nav class=\"toc\">\n")

	current := 0
	for _, h := range headings {
		if h.level < min || h.level > max {
			continue
		}
		for current > h.level {
			b.WriteString("</ul>\n")
			current--
		}
		for current < h.level {
			b.WriteString("<ul>\n")
			current++
		}
		fmt.Fprintf(&b, "<li><a href=\"#%s\">%s</a></li>\n", h.id, h.text)
	}
	for current > 0 {
		b.WriteString("</ul>\n")
		current--
	}

	b.WriteString("</nav>\n")
	return b.String()
}
