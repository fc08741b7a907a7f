package postprocess

import (
	"regexp"
	"sort"
)

var htmlTagOrEntityPattern = regexp.MustCompile(`<[^>]*>|&[a-zA-Z#0-9]+;`)

// AbbreviationWrapping wraps every whole-word occurrence of each defined
// abbreviation (from "*[ABBR]: expansion" lines extracted during
// preprocessing, stage 3) in <abbr title="…">…</abbr>. Matches inside tags
// and <pre>/<code> blocks are skipped — both so an abbreviation's letters
// never get wrapped when they appear as part of an attribute value, and so
// literal code samples are never rewritten.
func AbbreviationWrapping(html []byte, opts Options) ([]byte, error) {
	if len(opts.AbbrevDefinitions) == 0 {
		return html, nil
	}

	keys := make([]string, 0, len(opts.AbbrevDefinitions))
	for k := range opts.AbbrevDefinitions {
		keys = append(keys, k)
	}
	// Longest-first so overlapping abbreviations (e.g. "ID" and "UUID")
	// never have the shorter one wrap inside the longer one's match.
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })

	segments := splitOutsideCode(html)
	for i, seg := range segments {
		if seg.isCode {
			continue
		}
		segments[i].data = wrapAbbreviations(seg.data, keys, opts.AbbrevDefinitions)
	}
	return joinSegments(segments), nil
}

func wrapAbbreviations(html []byte, keys []string, defs map[string]string) []byte {
	for _, key := range keys {
		pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(key) + `\b`)
		html = replaceOutsideTags(html, pattern, func(match []byte) []byte {
			return []byte(`<abbr title="` + defs[key] + `">` + string(match) + `</abbr>`)
		})
	}
	return html
}

// replaceOutsideTags applies fn to every match of pattern that falls
// outside an HTML tag's angle brackets.
func replaceOutsideTags(html []byte, pattern *regexp.Regexp, fn func([]byte) []byte) []byte {
	var out []byte
	last := 0
	for _, tagLoc := range htmlTagOrEntityPattern.FindAllIndex(html, -1) {
		out = append(out, pattern.ReplaceAllFunc(html[last:tagLoc[0]], fn)...)
		out = append(out, html[tagLoc[0]:tagLoc[1]]...)
		last = tagLoc[1]
	}
	out = append(out, pattern.ReplaceAllFunc(html[last:], fn)...)
	return out
}

type codeSegment struct {
	data   []byte
	isCode bool
}

// prePattern and codePattern are matched separately, each against its own
// exact closing tag, rather than as one alternation: a combined pattern
// would let a lazy ".*?</pre>" stop early at a nested "</code>" since Go's
// RE2 engine has no lookahead to rule that out.
var prePattern = regexp.MustCompile(`(?is)<pre[^>]*>.*?</pre>`)
var codePattern = regexp.MustCompile(`(?is)<code[^>]*>.*?</code>`)

// splitOutsideCode splits html into alternating code/non-code segments so
// stages that rewrite prose text never touch <pre>/<code> contents. <pre>
// blocks (which commonly wrap a nested <code>) are claimed first; inline
// <code> spans are then found only within what's left.
func splitOutsideCode(html []byte) []codeSegment {
	var segments []codeSegment
	last := 0
	for _, loc := range prePattern.FindAllIndex(html, -1) {
		if loc[0] > last {
			segments = append(segments, splitInlineCode(html[last:loc[0]])...)
		}
		segments = append(segments, codeSegment{data: html[loc[0]:loc[1]], isCode: true})
		last = loc[1]
	}
	if last < len(html) {
		segments = append(segments, splitInlineCode(html[last:])...)
	}
	return segments
}

func splitInlineCode(html []byte) []codeSegment {
	var segments []codeSegment
	last := 0
	for _, loc := range codePattern.FindAllIndex(html, -1) {
		if loc[0] > last {
			segments = append(segments, codeSegment{data: html[last:loc[0]]})
		}
		segments = append(segments, codeSegment{data: html[loc[0]:loc[1]], isCode: true})
		last = loc[1]
	}
	if last < len(html) {
		segments = append(segments, codeSegment{data: html[last:]})
	}
	return segments
}

func joinSegments(segments []codeSegment) []byte {
	var out []byte
	for _, s := range segments {
		out = append(out, s.data...)
	}
	return out
}
