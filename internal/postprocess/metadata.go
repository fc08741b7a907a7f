package postprocess

import "github.com/apexmd/apex/internal/metadata"

// MetadataSubstitution runs the "[%key:T1:T2]" substitution pass (§4.3)
// over the rendered HTML. It runs after TOCExpansion per the ordering
// guarantee in §5: TOC-inserted text can itself be substituted, but the
// TOC marker itself is never a variable reference.
func MetadataSubstitution(html []byte, opts Options) ([]byte, error) {
	if opts.Metadata == nil {
		return html, nil
	}
	return metadata.Substitute(html, opts.Metadata), nil
}
