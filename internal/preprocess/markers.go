package preprocess

import (
	"bytes"
	"regexp"
)

var pauseMarkerRe = regexp.MustCompile(`<!--\s*PAUSE:(\d+)\s*-->`)

// ApplyMarkers rewrites Apex's special single-line markers into their HTML
// equivalents: "<!--BREAK-->" becomes a section break rule,
// "{::pagebreak /}" becomes a print page-break rule, and
// "<!--PAUSE:N-->" becomes a data-pause marker consumed client-side (the
// numeric argument is preserved as a data attribute rather than
// interpreted by the pipeline itself).
func ApplyMarkers(in []byte, _ Options, _ *Context) ([]byte, error) {
	out := bytes.ReplaceAll(in, []byte("<!--BREAK-->"), []byte(`<hr class="break">`))
	out = bytes.ReplaceAll(out, []byte("{::pagebreak /}"), []byte(`<hr class="pagebreak">`))
	out = pauseMarkerRe.ReplaceAll(out, []byte(`<span class="pause" data-pause="$1"></span>`))
	return out, nil
}
