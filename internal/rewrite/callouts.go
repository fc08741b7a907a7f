package rewrite

import "strings"

// calloutAliases maps every recognized marker keyword (uppercased) to its
// canonical callout type name, grounded on
// original_source/src/extensions/callouts.c's detect_callout_type /
// callout_type_name tables.
var calloutAliases = map[string]string{
	"NOTE":      "note",
	"ABSTRACT":  "abstract",
	"SUMMARY":   "abstract",
	"TLDR":      "abstract",
	"INFO":      "info",
	"TODO":      "todo",
	"TIP":       "tip",
	"HINT":      "tip",
	"IMPORTANT": "tip",
	"SUCCESS":   "success",
	"CHECK":     "success",
	"DONE":      "success",
	"QUESTION":  "question",
	"HELP":      "question",
	"FAQ":       "question",
	"WARNING":   "warning",
	"CAUTION":   "warning",
	"ATTENTION": "warning",
	"FAILURE":   "failure",
	"FAIL":      "failure",
	"MISSING":   "failure",
	"DANGER":    "danger",
	"ERROR":     "danger",
	"BUG":       "bug",
	"EXAMPLE":   "example",
	"QUOTE":     "quote",
	"CITE":      "quote",
}

// Callout describes a blockquote recognized as an Obsidian-style "[!TYPE]"
// callout.
type Callout struct {
	Type         string // canonical type name, e.g. "warning"
	Title        string // remainder of the marker line; empty keeps the default title
	Collapsible  bool   // marker carried a trailing "+" or "-"
	DefaultOpen  bool   // true for "+", false for "-"; irrelevant unless Collapsible
	RemainingLen int    // number of runes to keep from the first line after stripping the marker
}

// DetectCallout inspects the first line of a blockquote's first paragraph
// and reports whether it opens with a "[!TYPE]", "[!TYPE]+", or "[!TYPE]-"
// marker. firstLine is the literal text of the paragraph's first text
// segment.
func DetectCallout(firstLine string) (Callout, bool) {
	line := strings.TrimLeft(firstLine, " \t")
	if !strings.HasPrefix(line, "[!") {
		return Callout{}, false
	}
	close := strings.IndexByte(line, ']')
	if close < 0 {
		return Callout{}, false
	}
	keyword := strings.ToUpper(line[2:close])
	canonical, ok := calloutAliases[keyword]
	if !ok {
		return Callout{}, false
	}

	rest := line[close+1:]
	c := Callout{Type: canonical}
	if strings.HasPrefix(rest, "+") {
		c.Collapsible, c.DefaultOpen = true, true
		rest = rest[1:]
	} else if strings.HasPrefix(rest, "-") {
		c.Collapsible, c.DefaultOpen = true, false
		rest = rest[1:]
	}
	c.Title = strings.TrimSpace(rest)
	return c, true
}

// CalloutHTML renders the open/close HTML around a callout's inner content.
// The caller supplies the already-rendered inner HTML (the blockquote's
// remaining paragraphs, with the marker line stripped from the first one).
func CalloutHTML(c Callout, innerHTML string) string {
	title := c.Title
	if title == "" {
		title = strings.ToUpper(c.Type[:1]) + c.Type[1:]
	}

	if c.Collapsible {
		openAttr := ""
		if c.DefaultOpen {
			openAttr = " open"
		}
		return "<details class=\"callout callout-" + c.Type + "\"" + openAttr + ">" +
			"<summary>" + title + "</summary>" +
			"<div class=\"callout-content\">" + innerHTML + "</div>" +
			"</details>"
	}

	return "<div class=\"callout callout-" + c.Type + "\">" +
		"<div class=\"callout-title\">" + title + "</div>" +
		"<div class=\"callout-content\">" + innerHTML + "</div>" +
		"</div>"
}
