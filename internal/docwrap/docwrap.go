// Package docwrap implements Apex's HTML5 document wrapper (§4.11): it
// takes a rendered fragment and produces a complete standalone document
// when Options.Standalone requests one.
package docwrap

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Options controls the generated document shell.
type Options struct {
	Language        string
	Title           string
	TitleFromH1     bool
	Stylesheets     []string
	EmbedStylesheet bool
	HTMLHeader      string
	HTMLFooter      string
	Scripts         []string
	Generator       string
}

var firstH1Pattern = regexp.MustCompile(`(?s)<h1[^>]*>(.*?)</h1>`)
var innerTagPattern = regexp.MustCompile(`<[^>]+>`)

const defaultStyle = `body{font-family:system-ui,-apple-system,sans-serif;max-width:42rem;margin:2rem auto;padding:0 1rem;line-height:1.6}
pre{overflow-x:auto;padding:.75rem;background:#f5f5f5;border-radius:4px}
table{border-collapse:collapse}
th,td{border:1px solid #ccc;padding:.4rem .6rem}
blockquote{border-left:3px solid #ccc;margin-left:0;padding-left:1rem;color:#555}`

// Wrap builds a complete HTML5 document around fragment.
func Wrap(fragment []byte, opts Options) []byte {
	lang := opts.Language
	if lang == "" {
		lang = "en"
	}

	title := opts.Title
	if title == "" && opts.TitleFromH1 {
		if m := firstH1Pattern.FindSubmatch(fragment); m != nil {
			title = strings.TrimSpace(innerTagPattern.ReplaceAllString(string(m[1]), ""))
		}
	}
	if title == "" {
		title = "Document"
	}

	generator := opts.Generator
	if generator == "" {
		generator = "Apex"
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n")
	fmt.Fprintf(&b, "<html lang=\"%s\">\n<head>\n", lang)
	b.WriteString("<meta charset=\"UTF-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	fmt.Fprintf(&b, "<meta name=\"generator\" content=\"%s\">\n", generator)
	fmt.Fprintf(&b, "<title>%s</title>\n", title)

	writeStylesheets(&b, opts)

	b.WriteString("</head>\n<body>\n")
	if opts.HTMLHeader != "" {
		b.WriteString(opts.HTMLHeader)
		b.WriteString("\n")
	}
	b.Write(fragment)
	if opts.HTMLFooter != "" {
		b.WriteString("\n")
		b.WriteString(opts.HTMLFooter)
	}
	for _, script := range opts.Scripts {
		fmt.Fprintf(&b, "\n<script src=\"%s\"></script>", script)
	}
	b.WriteString("\n</body>\n</html>\n")

	return []byte(b.String())
}

func writeStylesheets(b *strings.Builder, opts Options) {
	if len(opts.Stylesheets) == 0 {
		fmt.Fprintf(b, "<style>\n%s\n</style>\n", defaultStyle)
		return
	}

	if !opts.EmbedStylesheet {
		for _, href := range opts.Stylesheets {
			fmt.Fprintf(b, "<link rel=\"stylesheet\" href=\"%s\">\n", href)
		}
		return
	}

	b.WriteString("<style>\n")
	for _, path := range opts.Stylesheets {
		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		b.Write(content)
		b.WriteString("\n")
	}
	b.WriteString("</style>\n")
}
