package preprocess

import (
	"bytes"
	"fmt"
)

// ApplyInlineFootnotes rewrites MultiMarkdown's inline footnote shorthand
// — "^[text]" and "[^ text with spaces]" (a leading space after "^["
// distinguishes an inline body from a reference to a named footnote like
// "[^note]") — into a goldmark-native footnote reference plus an appended
// definition, so the stock footnote extension renders them without any
// special-casing downstream.
func ApplyInlineFootnotes(in []byte, _ Options, ctx *Context) ([]byte, error) {
	if !bytes.Contains(in, []byte("^[")) {
		return in, nil
	}

	var out bytes.Buffer
	var defs bytes.Buffer
	counter := 0

	i := 0
	for i < len(in) {
		if bytes.HasPrefix(in[i:], []byte("^[")) || bytes.HasPrefix(in[i:], []byte("[^ ")) {
			skip := 2
			openIdx := i + 1 // the "[" following "^"
			if in[i] == '[' {
				skip = 3
				openIdx = i // the outer "["
			}
			end := findMatchingBracket(in, openIdx)
			if end < 0 {
				out.WriteByte(in[i])
				i++
				continue
			}
			text := in[i+skip : end]
			counter++
			label := fmt.Sprintf("inline-%d", counter)
			out.WriteString("[^")
			out.WriteString(label)
			out.WriteByte(']')
			defs.WriteString("\n[^")
			defs.WriteString(label)
			defs.WriteString("]: ")
			defs.Write(bytes.TrimSpace(text))
			defs.WriteByte('\n')
			i = end + 1
			continue
		}
		out.WriteByte(in[i])
		i++
	}

	out.Write(defs.Bytes())
	return out.Bytes(), nil
}

// findMatchingBracket returns the index of the "]" matching the "["
// at openIdx, accounting for nested brackets.
func findMatchingBracket(s []byte, openIdx int) int {
	depth := 0
	for i := openIdx; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
