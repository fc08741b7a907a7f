package preprocess

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrIncludeDepthExceeded names the nested-inclusion depth error. The
// include stage does not return it: markers still unexpanded when the
// depth limit is reached are left in the output.
var ErrIncludeDepthExceeded = errors.New("preprocess: include depth exceeded")

const defaultIncludeDepth = 10

// ResolveIncludes expands MultiMarkdown transclusion ("{{path}}", with "*"
// glob support) and Marked.app-style inclusion ("<<[path.md]" for Markdown,
// "<<(path)" for a fenced code block, "<<{path.html}" for raw HTML
// passthrough), recursively, up to opts.IncludeDepth (default 10). A CSV or
// TSV include target is converted to a GFM table instead of being inlined
// verbatim. Any include whose target can't be resolved (opts.ResolveInclude
// is nil, returns an error, or the depth limit is hit) is left as a literal
// marker in the output.
func ResolveIncludes(in []byte, opts Options, ctx *Context) ([]byte, error) {
	if opts.ResolveInclude == nil {
		return in, nil
	}
	depth := opts.IncludeDepth
	if depth <= 0 {
		depth = defaultIncludeDepth
	}
	return expandIncludes(in, opts, ctx, depth)
}

func expandIncludes(in []byte, opts Options, ctx *Context, depthRemaining int) ([]byte, error) {
	if depthRemaining <= 0 {
		return in, nil
	}

	var out bytes.Buffer
	i := 0
	for i < len(in) {
		switch {
		case bytes.HasPrefix(in[i:], []byte("{{")):
			if end := bytes.Index(in[i+2:], []byte("}}")); end >= 0 {
				path := string(in[i+2 : i+2+end])
				out.Write(includeContent(path, opts, ctx, depthRemaining))
				i = i + 2 + end + 2
				continue
			}
		case bytes.HasPrefix(in[i:], []byte("<<[")):
			if end := bytes.IndexByte(in[i+3:], ']'); end >= 0 {
				path := string(in[i+3 : i+3+end])
				out.Write(includeContent(path, opts, ctx, depthRemaining))
				i = i + 3 + end + 1
				continue
			}
		case bytes.HasPrefix(in[i:], []byte("<<(")):
			if end := bytes.IndexByte(in[i+3:], ')'); end >= 0 {
				path := string(in[i+3 : i+3+end])
				out.WriteString(includeAsCode(path, opts))
				i = i + 3 + end + 1
				continue
			}
		case bytes.HasPrefix(in[i:], []byte("<<{")):
			if end := bytes.IndexByte(in[i+3:], '}'); end >= 0 {
				path := string(in[i+3 : i+3+end])
				out.WriteString(includeAsRawHTML(path, opts))
				i = i + 3 + end + 1
				continue
			}
		}
		out.WriteByte(in[i])
		i++
	}
	return out.Bytes(), nil
}

func includeContent(path string, opts Options, ctx *Context, depthRemaining int) []byte {
	matches, err := resolveGlob(path, opts)
	if err != nil || len(matches) == 0 {
		return []byte("{{" + path + "}}")
	}

	var out bytes.Buffer
	for _, m := range matches {
		content, err := opts.ResolveInclude(m)
		if err != nil {
			out.WriteString("{{" + m + "}}")
			continue
		}
		switch strings.ToLower(filepath.Ext(m)) {
		case ".csv":
			out.Write(csvToTable(content, ','))
		case ".tsv":
			out.Write(csvToTable(content, '\t'))
		default:
			expanded, err := expandIncludes(content, opts, ctx, depthRemaining-1)
			if err != nil {
				out.Write(content)
				continue
			}
			out.Write(expanded)
		}
		out.WriteByte('\n')
	}
	return out.Bytes()
}

func includeAsCode(path string, opts Options) string {
	content, err := opts.ResolveInclude(path)
	if err != nil {
		return "<<(" + path + ")"
	}
	lang := strings.TrimPrefix(filepath.Ext(path), ".")
	return fmt.Sprintf("```%s\n%s\n```", lang, strings.TrimRight(string(content), "\n"))
}

func includeAsRawHTML(path string, opts Options) string {
	content, err := opts.ResolveInclude(path)
	if err != nil {
		return "<<{" + path + "}"
	}
	return string(content)
}

func resolveGlob(path string, opts Options) ([]string, error) {
	if !strings.Contains(path, "*") {
		return []string{path}, nil
	}
	return filepath.Glob(path)
}

// csvToTable converts delimiter-separated content into a GFM table, the
// first row becoming the header.
func csvToTable(content []byte, delim byte) []byte {
	lines := bytes.Split(bytes.TrimRight(content, "\n"), []byte("\n"))
	if len(lines) == 0 {
		return nil
	}

	var b bytes.Buffer
	for i, line := range lines {
		cells := bytes.Split(line, []byte{delim})
		b.WriteByte('|')
		for _, c := range cells {
			b.WriteByte(' ')
			b.Write(bytes.TrimSpace(c))
			b.WriteString(" |")
		}
		b.WriteByte('\n')
		if i == 0 {
			b.WriteByte('|')
			for range cells {
				b.WriteString(" --- |")
			}
			b.WriteByte('\n')
		}
	}
	return b.Bytes()
}
