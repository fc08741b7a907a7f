package postprocess

import "github.com/apexmd/apex/internal/docwrap"

// StandaloneWrap wraps the fragment in a full HTML5 document when
// Options.Standalone is set, delegating to internal/docwrap for the
// actual shell. It runs after every other content-shaping stage and
// before PrettyPrint, so the wrapper markup itself gets reflowed too.
func StandaloneWrap(html []byte, opts Options) ([]byte, error) {
	if !opts.Standalone {
		return html, nil
	}
	return docwrap.Wrap(html, opts.DocWrap), nil
}
