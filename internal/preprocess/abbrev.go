package preprocess

import (
	"bufio"
	"bytes"
	"strings"
)

// ExtractAbbreviations removes MultiMarkdown-style abbreviation
// definitions ("*[ABBR]: expansion") from the document and records them in
// ctx.Abbrev, so the post-processor's abbreviation-wrapping stage can wrap
// matching occurrences in "<abbr title=\"expansion\">ABBR</abbr>".
func ExtractAbbreviations(in []byte, _ Options, ctx *Context) ([]byte, error) {
	if !bytes.Contains(in, []byte("*[")) {
		return in, nil
	}

	var out bytes.Buffer
	scanner := bufio.NewScanner(bytes.NewReader(in))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if term, expansion, ok := parseAbbrevLine(line); ok {
			ctx.Abbrev[term] = expansion
			continue
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}
	return bytes.TrimSuffix(out.Bytes(), []byte("\n")), nil
}

func parseAbbrevLine(line string) (term, expansion string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "*[") {
		return "", "", false
	}
	close := strings.IndexByte(trimmed, ']')
	if close < 0 || close+1 >= len(trimmed) || trimmed[close+1] != ':' {
		return "", "", false
	}
	term = trimmed[2:close]
	expansion = strings.TrimSpace(trimmed[close+2:])
	if term == "" || expansion == "" {
		return "", "", false
	}
	return term, expansion, true
}
