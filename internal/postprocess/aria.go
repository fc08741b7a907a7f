package postprocess

import (
	"fmt"
	"regexp"
)

var (
	tocNavPattern      = regexp.MustCompile(`<nav class="toc">`)
	bareTablePattern   = regexp.MustCompile(`<table(\s[^>]*)?>`)
	figureBlockPattern = regexp.MustCompile(`(?s)<figure class="table-figure">(.*?)</figure>`)
	figcaptionPattern  = regexp.MustCompile(`<figcaption>`)
	hasRolePattern     = regexp.MustCompile(`role="table"`)
)

// ARIALabels adds role="table" to plain tables, role="figure" plus an
// aria-label to figures, aria-label to the TOC nav, and links a table to
// its figcaption via aria-describedby — but only when both live under the
// same <figure> parent, per Design Note (b): this pass never attempts a
// document-wide nearest-match, since a table's caption could otherwise be
// wrongly attributed to an unrelated figure elsewhere in the document.
func ARIALabels(html []byte, opts Options) ([]byte, error) {
	if !opts.ARIA {
		return html, nil
	}

	out := tocNavPattern.ReplaceAll(html, []byte(`<nav class="toc" aria-label="Table of contents">`))

	counter := 0
	out = figureBlockPattern.ReplaceAllFunc(out, func(block []byte) []byte {
		counter++
		figID := fmt.Sprintf("apex-table-figure-%d", counter)

		inner := figureBlockPattern.FindSubmatch(block)[1]
		if figcaptionPattern.Match(inner) {
			inner = bareTablePattern.ReplaceAllFunc(inner, func(t []byte) []byte {
				return insertAttr(t, fmt.Sprintf(`role="table" aria-describedby="%s-caption"`, figID))
			})
			inner = figcaptionPattern.ReplaceAll(inner, []byte(fmt.Sprintf(`<figcaption id="%s-caption">`, figID)))
		}

		return []byte(fmt.Sprintf(`<figure class="table-figure" role="figure" aria-label="Table">%s</figure>`, inner))
	})

	out = bareTablePattern.ReplaceAllFunc(out, func(t []byte) []byte {
		// Skip tables already handled inside a figure block above — those
		// were rewritten with role="table" already and won't match this
		// generic pattern redundantly since ReplaceAllFunc re-scans the
		// already-modified buffer only once, after the figure pass.
		if hasRolePattern.Match(t) {
			return t
		}
		return insertAttr(t, `role="table"`)
	})

	return out, nil
}

func insertAttr(tag []byte, attr string) []byte {
	if len(tag) < 2 {
		return tag
	}
	inner := tag[:len(tag)-1]
	return append(append(append([]byte{}, inner...), ' '), append([]byte(attr), '>')...)
}
