package preprocess

import (
	"bytes"
	"regexp"
)

var markdownAttrRe = regexp.MustCompile(`(?s)<(\w+)([^>]*\bmarkdown="(1|block|span)"[^>]*)>(.*?)</(\w+)>`)

// ProcessHTMLMarkdown finds HTML blocks carrying a `markdown="1|block|span"`
// attribute and re-converts their inner content through the Markdown
// pipeline (opts.ConvertMarkdown), splicing the rendered HTML back in place
// of the raw block and stripping the now-meaningless attribute. "span"
// mode runs the same block conversion as "1" and "block", so its output
// keeps block wrappers such as the outer <p>.
func ProcessHTMLMarkdown(in []byte, opts Options, _ *Context) ([]byte, error) {
	if opts.ConvertMarkdown == nil || !bytes.Contains(in, []byte(`markdown="`)) {
		return in, nil
	}

	return markdownAttrRe.ReplaceAllFunc(in, func(match []byte) []byte {
		groups := markdownAttrRe.FindSubmatch(match)
		if groups == nil {
			return match
		}
		tag, inner := groups[1], groups[4]
		rendered, err := opts.ConvertMarkdown(inner)
		if err != nil {
			return match
		}
		var out bytes.Buffer
		out.WriteByte('<')
		out.Write(tag)
		out.Write(bytes.Replace(groups[2], []byte(` markdown="`+string(groups[3])+`"`), nil, 1))
		out.WriteByte('>')
		out.Write(rendered)
		out.WriteString("</")
		out.Write(tag)
		out.WriteByte('>')
		return out.Bytes()
	}), nil
}
