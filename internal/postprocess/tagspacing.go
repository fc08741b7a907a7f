package postprocess

import "regexp"

var (
	tagInnerSpacesPattern = regexp.MustCompile(`<([a-zA-Z/][^<>]*?)>`)
	runOfSpacesPattern    = regexp.MustCompile(` {2,}`)
)

// TagSpacingCleanup collapses runs of spaces inside tags and removes
// spaces immediately before the closing ">", an artifact of attribute
// injection concatenating strings with a leading space even when the
// preceding text already ended in one.
func TagSpacingCleanup(html []byte, _ Options) ([]byte, error) {
	out := tagInnerSpacesPattern.ReplaceAllFunc(html, func(tag []byte) []byte {
		inner := tag[1 : len(tag)-1]
		inner = runOfSpacesPattern.ReplaceAll(inner, []byte(" "))
		inner = trimTrailingSpace(inner)
		result := make([]byte, 0, len(inner)+2)
		result = append(result, '<')
		result = append(result, inner...)
		result = append(result, '>')
		return result
	})
	return out, nil
}

func trimTrailingSpace(b []byte) []byte {
	for len(b) > 0 && b[len(b)-1] == ' ' {
		b = b[:len(b)-1]
	}
	return b
}
