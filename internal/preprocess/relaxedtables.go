package preprocess

import (
	"bytes"
	"strings"
)

// RelaxTables inserts a synthetic header-separator row ("| --- | --- |")
// after the first row of any run of two or more consecutive pipe-delimited
// lines that lacks one, so goldmark's GFM table extension (which requires
// a separator row) can parse tables written in the more permissive style
// some MultiMarkdown documents use.
func RelaxTables(in []byte, _ Options, _ *Context) ([]byte, error) {
	lines := splitKeepEmpty(in)
	var out []string

	i := 0
	for i < len(lines) {
		if !isPipeLine(lines[i]) {
			out = append(out, lines[i])
			i++
			continue
		}

		runStart := i
		for i < len(lines) && isPipeLine(lines[i]) {
			i++
		}
		run := lines[runStart:i]
		if len(run) >= 2 && !isSeparatorLine(run[1]) {
			out = append(out, run[0], syntheticSeparator(run[0]))
			out = append(out, run[1:]...)
		} else {
			out = append(out, run...)
		}
	}

	return []byte(strings.Join(out, "\n")), nil
}

func splitKeepEmpty(in []byte) []string {
	return strings.Split(string(in), "\n")
}

func isPipeLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "|") && strings.Count(trimmed, "|") >= 2
}

func isSeparatorLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	for _, r := range trimmed {
		switch r {
		case '|', '-', ':', ' ', '\t':
			continue
		default:
			return false
		}
	}
	return strings.ContainsAny(trimmed, "-")
}

func syntheticSeparator(headerLine string) string {
	cols := strings.Count(strings.TrimSpace(headerLine), "|") - 1
	if cols < 1 {
		cols = 1
	}
	var b bytes.Buffer
	b.WriteByte('|')
	for c := 0; c < cols; c++ {
		b.WriteString(" --- |")
	}
	return b.String()
}
