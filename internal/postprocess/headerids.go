package postprocess

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/apexmd/apex/internal/rewrite"
)

var headingTagPattern = regexp.MustCompile(`(?s)<(h[1-6])([^>]*)>(.*?)</h[1-6]>`)

var innerTagPattern = regexp.MustCompile(`<[^>]+>`)

var existingIDPattern = regexp.MustCompile(`\bid="[^"]*"`)

// HeaderIDs injects id="slug" onto every heading tag that doesn't already
// carry one from the AST render pass (internal/parserx/ext.HeaderIDTransformer
// handles the common case during render; this stage is the fallback for
// headings that reach post-processing without one — e.g. headings produced
// by a plugin's post_render phase, or by raw HTML passthrough). When
// Options.HeaderAnchors is set, a leading <a class="anchor" id="slug"></a>
// is inserted instead of annotating the heading tag itself.
func HeaderIDs(html []byte, opts Options) ([]byte, error) {
	seen := rewrite.NewSlugTable(rewrite.IDFormat(opts.HeaderIDFormat))
	out := headingTagPattern.ReplaceAllFunc(html, func(m []byte) []byte {
		sub := headingTagPattern.FindSubmatch(m)
		attrs := string(sub[2])
		inner := sub[3]

		if existingIDPattern.Match([]byte(attrs)) {
			return m
		}

		text := strings.TrimSpace(innerTagPattern.ReplaceAllString(string(inner), ""))
		slug := seen.Assign(text, "", "")

		if opts.HeaderAnchors {
			return []byte(fmt.Sprintf(`<%s%s><a class="anchor" id="%s"></a>%s</%s>`,
				sub[1], attrs, slug, inner, sub[1]))
		}
		return []byte(fmt.Sprintf(`<%s%s id="%s">%s</%s>`, sub[1], attrs, slug, inner, sub[1]))
	})
	return out, nil
}

// collectedHeading is one heading found in already-rendered HTML, used by
// the TOC stage which (unlike internal/rewrite's AST-walking SlugTable)
// only has the post-render byte stream to work from.
type collectedHeading struct {
	level int
	text  string
	id    string
}

func collectHeadings(html []byte) []collectedHeading {
	var out []collectedHeading
	matches := headingTagPattern.FindAllSubmatch(html, -1)
	for _, m := range matches {
		level := int(m[1][1] - '0')
		attrs := string(m[2])
		text := strings.TrimSpace(innerTagPattern.ReplaceAllString(string(m[3]), ""))

		id := ""
		if idx := existingIDPattern.FindString(attrs); idx != "" {
			id = strings.Trim(strings.TrimPrefix(idx, `id="`), `"`)
		}
		out = append(out, collectedHeading{level: level, text: text, id: id})
	}
	return out
}
