// Package metadata extracts document front matter (YAML, MultiMarkdown
// key/value, and Pandoc title-block styles) into an ordered key/value store,
// and substitutes `[%key]`/`[%key:T1:T2:…]` references back into rendered
// HTML.
//
// Grounded on the teacher's internal/markdown/frontmatter.go (envelope
// extraction via github.com/adrg/frontmatter) and
// internal/shortcode/parser/hugo.go (regex-driven marker scanning style).
package metadata

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/dlclark/regexp2"
)

// entry is one metadata key/value pair, preserved in encounter order so
// Store.Keys() round-trips deterministically.
type entry struct {
	key   string
	value string
}

// Store is an ordered key/value table. The zero value is an empty, usable
// store.
type Store struct {
	entries []entry
	index   map[string]int
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// Set inserts or overwrites key (normalized) with value, preserving the
// original insertion position on update.
func (s *Store) Set(key, value string) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	norm := normalizeKey(key)
	if i, ok := s.index[norm]; ok {
		s.entries[i].value = value
		return
	}
	s.index[norm] = len(s.entries)
	s.entries = append(s.entries, entry{key: norm, value: value})
}

// Get returns the value stored for key and whether it was present.
func (s *Store) Get(key string) (string, bool) {
	if s == nil || s.index == nil {
		return "", false
	}
	i, ok := s.index[normalizeKey(key)]
	if !ok {
		return "", false
	}
	return s.entries[i].value, true
}

// Len reports the number of stored keys.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Keys returns the normalized keys in insertion order.
func (s *Store) Keys() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.key
	}
	return out
}

// normalizeKey lowercases and trims the key and maps spaces, tabs and
// underscores to "-" (collapsing runs of "-"), so "Base Header Level",
// "base_header_level" and "base-header-level" resolve to the same slot.
// Internal whitespace is turned into "-", not removed, so "BaseHeaderLevel"
// is a different key.
func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '_':
			return '-'
		default:
			return r
		}
	}, s)
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return s
}

// Extract auto-detects and strips a leading metadata block from source,
// returning the populated Store and the remaining document body. Detection
// order: YAML front matter delimited by "---" lines, a Pandoc title block
// ("% title", "% author", "% date"), then a MultiMarkdown-style
// "Key: value" header block (terminated by a blank line). Absence of any
// recognizable block yields an empty Store and the source unchanged.
func Extract(source []byte) (*Store, []byte) {
	if store, body, ok := extractYAML(source); ok {
		return store, body
	}
	if store, body, ok := extractPandoc(source); ok {
		return store, body
	}
	if store, body, ok := extractMMD(source); ok {
		return store, body
	}
	return NewStore(), source
}

func extractYAML(source []byte) (*Store, []byte, bool) {
	trimmed := bytes.TrimLeft(source, "\uFEFF \t\r\n")
	if !bytes.HasPrefix(trimmed, []byte("---")) {
		return nil, nil, false
	}

	var matter map[string]any
	rest, err := frontmatter.Parse(bytes.NewReader(source), &matter)
	if err != nil || matter == nil {
		return nil, nil, false
	}

	store := NewStore()
	for _, k := range orderedMapKeys(matter) {
		store.Set(k, stringifyValue(matter[k]))
	}
	return store, rest, true
}

// extractPandoc recognizes a Pandoc title block: up to three leading lines
// each starting with "%", read as title, author and date in that order. No
// blank line is required after the block; one leading newline of the
// remaining body is dropped.
func extractPandoc(source []byte) (*Store, []byte, bool) {
	lines := splitLinesKeepTerm(source)
	if len(lines) == 0 || !strings.HasPrefix(lines[0].text, "% ") && lines[0].text != "%" {
		return nil, nil, false
	}

	store := NewStore()
	fields := []string{"title", "author", "date"}
	consumed := 0
	for consumed < len(lines) && consumed < len(fields) {
		line := strings.TrimRight(lines[consumed].text, "\r\n")
		if !strings.HasPrefix(line, "%") {
			break
		}
		value := strings.TrimSpace(strings.TrimPrefix(line, "%"))
		if value != "" {
			store.Set(fields[consumed], value)
		}
		consumed++
	}
	if consumed == 0 {
		return nil, nil, false
	}

	var rest strings.Builder
	for _, l := range lines[consumed:] {
		rest.WriteString(l.text)
	}
	return store, []byte(strings.TrimPrefix(rest.String(), "\n")), true
}

// extractMMD recognizes a MultiMarkdown "Key: value" header block: every
// leading non-blank line must match `key: value`, with indented
// continuation lines folded into the previous value. The block ends at the
// first blank line.
func extractMMD(source []byte) (*Store, []byte, bool) {
	lines := splitLinesKeepTerm(source)
	store := NewStore()
	var lastKey string
	consumed := 0

	for _, l := range lines {
		trimmed := strings.TrimRight(l.text, "\r\n")
		if trimmed == "" {
			break
		}
		if (strings.HasPrefix(l.text, " ") || strings.HasPrefix(l.text, "\t")) && lastKey != "" {
			if v, ok := store.Get(lastKey); ok {
				store.Set(lastKey, v+" "+strings.TrimSpace(trimmed))
			}
			consumed++
			continue
		}
		idx := strings.Index(trimmed, ":")
		if idx <= 0 {
			break
		}
		key := strings.TrimSpace(trimmed[:idx])
		if !isMMDKey(key) {
			break
		}
		value := strings.TrimSpace(trimmed[idx+1:])
		store.Set(key, value)
		lastKey = key
		consumed++
	}

	if consumed == 0 || store.Len() == 0 {
		return nil, nil, false
	}

	var rest strings.Builder
	for _, l := range lines[consumed:] {
		rest.WriteString(l.text)
	}
	body := strings.TrimPrefix(rest.String(), "\n")
	return store, []byte(body), true
}

func isMMDKey(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == ' ':
			continue
		default:
			return false
		}
	}
	return true
}

type line struct{ text string }

// splitLinesKeepTerm splits into lines, keeping the trailing "\n" attached
// to each entry (except possibly the last) so re-joining round-trips the
// document exactly.
func splitLinesKeepTerm(source []byte) []line {
	var out []line
	start := 0
	for i, b := range source {
		if b == '\n' {
			out = append(out, line{text: string(source[start : i+1])})
			start = i + 1
		}
	}
	if start < len(source) {
		out = append(out, line{text: string(source[start:])})
	}
	return out
}

func stringifyValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = stringifyValue(e)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", t)
	}
}

// orderedMapKeys returns m's keys sorted, so keys decoded from YAML into a
// map are stored in a stable order.
func orderedMapKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Substitute replaces every `[%key]` or `[%key:transform1:transform2:…]`
// reference in html with the corresponding metadata value (after applying
// the listed transforms in order). References to unknown keys, and
// malformed `[%…]` sequences that never find a closing bracket, are left
// untouched, matching the rule that a broken substitution degrades to
// literal text rather than erroring.
func Substitute(html []byte, store *Store) []byte {
	if store == nil || store.Len() == 0 || !bytes.Contains(html, []byte("[%")) {
		return html
	}

	var out bytes.Buffer
	out.Grow(len(html))

	i := 0
	for i < len(html) {
		start := bytes.Index(html[i:], []byte("[%"))
		if start < 0 {
			out.Write(html[i:])
			break
		}
		start += i
		out.Write(html[i:start])

		end := bytes.IndexByte(html[start+2:], ']')
		if end < 0 {
			out.Write(html[start:])
			break
		}
		end += start + 2

		spec := string(html[start+2 : end])
		// Split on ":" but keep a colon inside an open "(...)" transform
		// argument, as in replace(regex:pattern,replacement).
		var parts []string
		for _, p := range strings.Split(spec, ":") {
			if n := len(parts); n > 1 && strings.Count(parts[n-1], "(") > strings.Count(parts[n-1], ")") {
				parts[n-1] += ":" + p
				continue
			}
			parts = append(parts, p)
		}
		key := strings.TrimSpace(parts[0])

		value, ok := store.Get(key)
		if !ok {
			out.Write(html[start : end+1])
			i = end + 1
			continue
		}

		for _, transform := range parts[1:] {
			value = applyTransform(value, strings.TrimSpace(transform))
		}
		out.WriteString(value)
		i = end + 1
	}

	return out.Bytes()
}

// applyTransform implements the spec's variable-transform mini-language:
// lower/upper/title (alias titlecase)/sentence case the value, trim strips
// surrounding whitespace, and replace(regex:pattern,replacement) rewrites it
// with a dlclark/regexp2 pattern (PCRE-flavored). A replace argument without
// the "regex:" prefix, unknown transform names and invalid regexes pass the
// value through unchanged.
func applyTransform(value, transform string) string {
	switch {
	case transform == "lower":
		return strings.ToLower(value)
	case transform == "upper":
		return strings.ToUpper(value)
	case transform == "title" || transform == "titlecase":
		return strings.Title(strings.ToLower(value)) //nolint:staticcheck // MMD-style title casing, not Unicode word breaking
	case transform == "sentence":
		if value == "" {
			return value
		}
		r := []rune(strings.ToLower(value))
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		return string(r)
	case transform == "trim":
		return strings.TrimSpace(value)
	case strings.HasPrefix(transform, "replace(") && strings.HasSuffix(transform, ")"):
		return applyReplace(value, transform[len("replace("):len(transform)-1])
	default:
		return value
	}
}

// applyReplace parses "regex:pattern,replacement" and runs it through
// regexp2, honoring $1-style backreferences in replacement.
func applyReplace(value, args string) string {
	if !strings.HasPrefix(args, "regex:") {
		return value
	}
	args = strings.TrimPrefix(args, "regex:")
	comma := strings.LastIndex(args, ",")
	if comma < 0 {
		return value
	}
	pattern, replacement := args[:comma], args[comma+1:]

	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return value
	}
	out, err := re.Replace(value, replacement, -1, -1)
	if err != nil {
		return value
	}
	return out
}
