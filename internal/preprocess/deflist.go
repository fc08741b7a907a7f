package preprocess

import "strings"

// ConvertDefinitionLists converts Kramdown/PHP-Extra style definition
// lists — a term line immediately followed by one or more ": definition"
// lines — into literal "<dl>" HTML blocks before the parser ever sees
// them, since goldmark has no native definition-list syntax of its own.
// Grounded on original_source/src/extensions/definition_list.c's
// line-pairing approach.
func ConvertDefinitionLists(in []byte, _ Options, _ *Context) ([]byte, error) {
	lines := strings.Split(string(in), "\n")
	var out []string

	i := 0
	for i < len(lines) {
		term := strings.TrimRight(lines[i], "\r")
		if term == "" || strings.HasPrefix(term, ":") || !hasUpcomingDef(lines, i+1) {
			out = append(out, lines[i])
			i++
			continue
		}

		var dl strings.Builder
		dl.WriteString("<dl>\n<dt>")
		dl.WriteString(strings.TrimSpace(term))
		dl.WriteString("</dt>\n")

		j := i + 1
		for j < len(lines) && strings.HasPrefix(strings.TrimRight(lines[j], "\r"), ":") {
			def := strings.TrimPrefix(strings.TrimRight(lines[j], "\r"), ":")
			dl.WriteString("<dd>")
			dl.WriteString(strings.TrimSpace(def))
			dl.WriteString("</dd>\n")
			j++
		}
		dl.WriteString("</dl>")
		out = append(out, dl.String())
		i = j
	}

	return []byte(strings.Join(out, "\n")), nil
}

func hasUpcomingDef(lines []string, idx int) bool {
	if idx >= len(lines) {
		return false
	}
	return strings.HasPrefix(strings.TrimSpace(lines[idx]), ":")
}
