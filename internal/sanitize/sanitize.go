// Package sanitize wraps microcosm-cc/bluemonday as Apex's HTML sanitizer
// (§4.13), backing Options.SafeMode/Sanitize as well as the embedded-block
// and plugin output sanitizer previously hand-rolled in the teacher's
// shortcode.Sanitizer.
package sanitize

import "github.com/microcosm-cc/bluemonday"

// Policy sanitizes untrusted HTML fragments.
type Policy struct {
	p *bluemonday.Policy
}

// New builds Apex's sanitization policy: bluemonday's UGC baseline,
// widened to allow the table/heading/id/class markup Apex's own render
// pipeline legitimately produces (advanced tables, header-id anchors,
// callout/IAL classes) so sanitizing self-generated output never strips
// it back out.
func New() *Policy {
	p := bluemonday.UGCPolicy()

	p.AllowAttrs("id").Globally()
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("role", "aria-label", "aria-describedby").Globally()
	p.AllowAttrs("data-caption").OnElements("table", "figure")
	p.AllowAttrs("rowspan", "colspan").OnElements("td", "th")
	p.AllowAttrs("align").OnElements("td", "th")

	p.AllowElements("figure", "figcaption", "nav", "mark", "details", "summary", "abbr", "video", "picture", "source")
	p.AllowAttrs("controls", "src", "type", "srcset").OnElements("video", "source", "picture")
	p.AllowAttrs("title").OnElements("abbr")

	return &Policy{p: p}
}

// Sanitize strips disallowed markup from html.
func (s *Policy) Sanitize(html string) string {
	return s.p.Sanitize(html)
}

// SanitizeBytes is the []byte-oriented equivalent of Sanitize, convenient
// for callers threading a buffer through the postprocess chain.
func (s *Policy) SanitizeBytes(html []byte) []byte {
	return s.p.SanitizeBytes(html)
}
