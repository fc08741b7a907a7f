package rewrite

import "strings"

// ParseAttrList parses a Kramdown/Pandoc-style attribute list body (the
// text between "{:" / "{" and the closing "}", exclusive) into a flat
// attribute map. Recognized tokens:
//
//	#id            -> "id"
//	.class         -> appended (space-joined) to "class"
//	key="value"    -> key/value pair
//	key=value      -> key/value pair (unquoted)
//
// Unrecognized tokens are ignored rather than rejected, matching the
// pipeline's "never fail on malformed syntax" rule.
func ParseAttrList(body string) map[string]string {
	attrs := make(map[string]string)
	var classes []string

	for _, tok := range tokenizeAttrList(body) {
		switch {
		case strings.HasPrefix(tok, "#"):
			attrs["id"] = tok[1:]
		case strings.HasPrefix(tok, "."):
			classes = append(classes, tok[1:])
		case strings.Contains(tok, "="):
			idx := strings.IndexByte(tok, '=')
			key := tok[:idx]
			val := strings.Trim(tok[idx+1:], `"'`)
			attrs[key] = val
		}
	}

	if len(classes) > 0 {
		attrs["class"] = strings.Join(classes, " ")
	}
	return attrs
}

// tokenizeAttrList splits an attribute-list body on whitespace, respecting
// double-quoted values that may themselves contain spaces.
func tokenizeAttrList(body string) []string {
	var tokens []string
	var cur strings.Builder
	inQuotes := false

	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	for _, r := range body {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			cur.WriteRune(r)
		case (r == ' ' || r == '\t') && !inQuotes:
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens
}

// ResolveIAL resolves an IAL reference body, expanding a named reference
// ("{:name}" whose body is just "name") against the ALD table before
// parsing it as an attribute list. ALDs themselves are populated by the
// preprocessor's ALD-extraction stage from "{:name: attrs}" definitions.
func ResolveIAL(body string, alds map[string]string) map[string]string {
	trimmed := strings.TrimSpace(body)
	if def, ok := alds[trimmed]; ok {
		return ParseAttrList(def)
	}
	return ParseAttrList(body)
}
