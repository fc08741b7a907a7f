package preprocess

import (
	"bufio"
	"bytes"
	"strings"
)

// ExtractALDs removes attribute-list-definition lines of the form
// "{:name: attrs}" from the document and records name -> attrs in
// ctx.ALDs, so later IAL references ("{:name}") can resolve against them.
// Grounded on the same line-oriented scanning style as
// internal/markdown/loader.go's pattern matching in the teacher.
func ExtractALDs(in []byte, _ Options, ctx *Context) ([]byte, error) {
	if !bytes.Contains(in, []byte("{:")) {
		return in, nil
	}

	var out bytes.Buffer
	scanner := bufio.NewScanner(bytes.NewReader(in))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if name, attrs, ok := parseALDLine(line); ok {
			ctx.ALDs[name] = attrs
			continue
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}
	return bytes.TrimSuffix(out.Bytes(), []byte("\n")), nil
}

// parseALDLine matches a line that is exactly "{:name: attrs}" (optionally
// surrounded by whitespace) and returns its name and attribute body.
func parseALDLine(line string) (name, attrs string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{:") || !strings.HasSuffix(trimmed, "}") {
		return "", "", false
	}
	body := trimmed[2 : len(trimmed)-1]
	colon := strings.IndexByte(body, ':')
	if colon < 0 {
		return "", "", false
	}
	name = strings.TrimSpace(body[:colon])
	attrs = strings.TrimSpace(body[colon+1:])
	if name == "" || strings.ContainsAny(name, " \t") {
		return "", "", false
	}
	return name, attrs, true
}
