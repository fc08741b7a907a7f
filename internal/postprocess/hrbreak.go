package postprocess

import "regexp"

var hrPageBreakMarkerPattern = regexp.MustCompile(`<hr\s*/?>\s*\{pagebreak\}|<p>\{pagebreak\}</p>`)

// HRPageBreak substitutes an "{pagebreak}" marker that survived alongside
// or instead of a plain <hr> into a print-oriented page-break div, the
// HTML equivalent of the print CSS page-break-after rule.
func HRPageBreak(html []byte, opts Options) ([]byte, error) {
	if !opts.HRPageBreak {
		return html, nil
	}
	return hrPageBreakMarkerPattern.ReplaceAll(html, []byte(`<div class="page-break" style="page-break-after: always;"></div>`)), nil
}
