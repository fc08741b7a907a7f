package preprocess

import (
	"bytes"
)

// ApplyHighlightMarks rewrites "==text==" into "<mark>text</mark>". It is
// the only highlight-mark pass in the conversion pipeline:
// internal/parserx.New does not attach internal/parserx/ext.Highlight.
func ApplyHighlightMarks(in []byte, _ Options, _ *Context) ([]byte, error) {
	if !bytes.Contains(in, []byte("==")) {
		return in, nil
	}

	var out bytes.Buffer
	i := 0
	for i < len(in) {
		if bytes.HasPrefix(in[i:], []byte("==")) {
			end := bytes.Index(in[i+2:], []byte("=="))
			if end >= 0 && end > 0 {
				text := in[i+2 : i+2+end]
				out.WriteString("<mark>")
				out.Write(text)
				out.WriteString("</mark>")
				i = i + 2 + end + 2
				continue
			}
		}
		out.WriteByte(in[i])
		i++
	}
	return out.Bytes(), nil
}
