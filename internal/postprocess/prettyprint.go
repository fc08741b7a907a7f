package postprocess

import (
	"regexp"
	"strings"
)

// inlineElements stay on their parent's line during reflow rather than
// each getting a line of their own.
var inlineElements = map[string]bool{
	"strong": true, "em": true, "a": true, "code": true, "img": true,
	"span": true, "mark": true, "ins": true, "del": true, "abbr": true,
	"b": true, "i": true, "sub": true, "sup": true, "small": true,
	"video": true, "source": true,
}

var preservedElements = map[string]bool{"pre": true, "code": true, "script": true, "style": true}

var tagPattern = regexp.MustCompile(`<(/?)([a-zA-Z][a-zA-Z0-9]*)[^>]*?(/?)>`)

type htmlToken struct {
	kind string // "open", "close", "selfclose", "text"
	name string
	raw  string
}

// PrettyPrint reflows HTML tags onto their own lines with two-space
// indentation. Inline elements stay on their parent's line; content
// inside <pre>/<code>/<script>/<style> is copied through verbatim, never
// reflowed or re-indented.
func PrettyPrint(html []byte, opts Options) ([]byte, error) {
	if !opts.PrettyPrint {
		return html, nil
	}

	tokens := tokenize(string(html))

	var b strings.Builder
	depth := 0
	atLineStart := true
	preserveDepth := -1

	writeIndent := func() {
		if atLineStart {
			b.WriteString(strings.Repeat("  ", depth))
			atLineStart = false
		}
	}

	for i, t := range tokens {
		if preserveDepth >= 0 {
			b.WriteString(t.raw)
			if t.kind == "close" && preservedElements[t.name] {
				preserveDepth = -1
				b.WriteString("\n")
				atLineStart = true
			}
			continue
		}

		switch t.kind {
		case "text":
			trimmed := strings.TrimSpace(t.raw)
			if trimmed == "" {
				continue
			}
			writeIndent()
			b.WriteString(trimmed)
			if !nextIsInline(tokens, i) {
				b.WriteString("\n")
				atLineStart = true
			}
		case "open":
			writeIndent()
			b.WriteString(t.raw)
			if preservedElements[t.name] {
				preserveDepth = depth
				continue
			}
			if !inlineElements[t.name] {
				depth++
				b.WriteString("\n")
				atLineStart = true
			}
		case "selfclose":
			writeIndent()
			b.WriteString(t.raw)
			if !inlineElements[t.name] {
				b.WriteString("\n")
				atLineStart = true
			}
		case "close":
			if !inlineElements[t.name] {
				depth--
				if depth < 0 {
					depth = 0
				}
				writeIndent()
			}
			b.WriteString(t.raw)
			if !inlineElements[t.name] {
				b.WriteString("\n")
				atLineStart = true
			}
		}
	}

	return []byte(b.String()), nil
}

func nextIsInline(tokens []htmlToken, i int) bool {
	if i+1 >= len(tokens) {
		return false
	}
	next := tokens[i+1]
	return (next.kind == "open" || next.kind == "close" || next.kind == "selfclose") && inlineElements[next.name]
}

func tokenize(html string) []htmlToken {
	var tokens []htmlToken
	last := 0
	for _, loc := range tagPattern.FindAllStringSubmatchIndex(html, -1) {
		if loc[0] > last {
			tokens = append(tokens, htmlToken{kind: "text", raw: html[last:loc[0]]})
		}
		raw := html[loc[0]:loc[1]]
		closing := html[loc[2]:loc[3]] == "/"
		name := strings.ToLower(html[loc[4]:loc[5]])
		selfClose := html[loc[6]:loc[7]] == "/"

		switch {
		case closing:
			tokens = append(tokens, htmlToken{kind: "close", name: name, raw: raw})
		case selfClose || voidElements[name]:
			tokens = append(tokens, htmlToken{kind: "selfclose", name: name, raw: raw})
		default:
			tokens = append(tokens, htmlToken{kind: "open", name: name, raw: raw})
		}
		last = loc[1]
	}
	if last < len(html) {
		tokens = append(tokens, htmlToken{kind: "text", raw: html[last:]})
	}
	return tokens
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}
